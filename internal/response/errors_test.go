package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMessage(t *testing.T) {
	codes := []ErrCode{
		ErrTokenRequired, ErrTokenInvalid, ErrTokenExpired,
		ErrForbidden, ErrAdminOnly, ErrInstructorOnly,
		ErrValidation, ErrInvalidID,
		ErrNotFound,
		ErrNoSeatsLeft, ErrUserExists, ErrCartItemExists, ErrPaymentExists, ErrPaymentGateway,
		ErrRateLimitExceeded,
		ErrInternal,
	}

	seen := make(map[ErrCode]bool, len(codes))
	for _, code := range codes {
		t.Run(string(code), func(t *testing.T) {
			assert.False(t, seen[code], "duplicate code")
			seen[code] = true
			assert.NotEqual(t, "unexpected error", GetMessage(code))
		})
	}

	t.Run("Should keep the messages clients match on", func(t *testing.T) {
		assert.Equal(t, "user already exist", GetMessage(ErrUserExists))
		assert.Equal(t, "Data already exists", GetMessage(ErrCartItemExists))
		assert.Equal(t, "unauthorized access", GetMessage(ErrTokenRequired))
	})

	t.Run("Should fall back for unknown codes", func(t *testing.T) {
		assert.Equal(t, "unexpected error", GetMessage(ErrCode("CONFLICT")))
	})
}
