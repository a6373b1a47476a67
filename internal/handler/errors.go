package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/payment"
	"github.com/stemsi/coursehub-backend/internal/repository"
	"github.com/stemsi/coursehub-backend/internal/response"
	"github.com/stemsi/coursehub-backend/internal/service"
)

// failWithError maps a service or repository error onto the error envelope.
// Unrecognised errors are logged and reported as 500.
func failWithError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrClassNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		response.Fail(c, http.StatusConflict, response.ErrUserExists)
	case errors.Is(err, repository.ErrDuplicateCartItem):
		response.Fail(c, http.StatusBadRequest, response.ErrCartItemExists)
	case errors.Is(err, repository.ErrDuplicateTransaction):
		response.Fail(c, http.StatusConflict, response.ErrPaymentExists)
	case errors.Is(err, repository.ErrNoSeatsLeft):
		response.Fail(c, http.StatusConflict, response.ErrNoSeatsLeft)
	case errors.Is(err, repository.ErrValueOutOfRange):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"detail": "numeric value out of range"})
	case errors.Is(err, service.ErrEmailMismatch):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, payment.ErrInvalidAmount):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"price": "price must be greater than 0"})
	case errors.Is(err, payment.ErrGateway):
		log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Payment gateway failure")
		response.Fail(c, http.StatusBadGateway, response.ErrPaymentGateway)
	default:
		log.Error().Err(err).
			Str("request_id", response.RequestID(c)).
			Str("path", c.FullPath()).
			Msg("Unhandled request error")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// paramUUID parses a UUID path parameter, writing 400 INVALID_ID on failure.
func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
