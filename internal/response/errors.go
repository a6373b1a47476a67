package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"
	ErrTokenExpired  ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden      ErrCode = "FORBIDDEN"
	ErrAdminOnly      ErrCode = "ADMIN_ACCESS_ONLY"
	ErrInstructorOnly ErrCode = "INSTRUCTOR_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Enrollment-specific ───────────────────────────────────────────
	ErrNoSeatsLeft    ErrCode = "NO_SEATS_LEFT"
	ErrUserExists     ErrCode = "USER_EXISTS"
	ErrCartItemExists ErrCode = "CART_ITEM_EXISTS"
	ErrPaymentExists  ErrCode = "PAYMENT_EXISTS"
	ErrPaymentGateway ErrCode = "PAYMENT_GATEWAY_ERROR"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired, ErrTokenInvalid:
		return "unauthorized access"
	case ErrTokenExpired:
		return "unauthorized access: token expired"

	case ErrForbidden:
		return "forbidden access"
	case ErrAdminOnly:
		return "this resource is restricted to administrators"
	case ErrInstructorOnly:
		return "this resource is restricted to instructors"

	case ErrValidation:
		return "validation failed, please check your input"
	case ErrInvalidID:
		return "invalid id format"

	case ErrNotFound:
		return "resource not found"

	case ErrNoSeatsLeft:
		return "no seats left for this class"
	case ErrUserExists:
		return "user already exist"
	case ErrCartItemExists:
		return "Data already exists"
	case ErrPaymentExists:
		return "payment already recorded"
	case ErrPaymentGateway:
		return "payment gateway unavailable"

	case ErrRateLimitExceeded:
		return "too many requests, please try again later"

	case ErrInternal:
		return "internal server error"
	default:
		return "unexpected error"
	}
}
