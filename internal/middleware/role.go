package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/response"
	"github.com/stemsi/coursehub-backend/internal/service"
)

// RoleChecker reports whether the account behind an email holds a role.
type RoleChecker interface {
	HasRole(ctx context.Context, email string, role model.Role) (bool, error)
}

// RequireRole lets the request through only when the authenticated caller
// holds role. Must run after RequireJWT.
func RequireRole(checker RoleChecker, role model.Role, log zerolog.Logger) gin.HandlerFunc {
	denied := response.ErrForbidden
	switch role {
	case model.RoleAdmin:
		denied = response.ErrAdminOnly
	case model.RoleInstructor:
		denied = response.ErrInstructorOnly
	}

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		ok, err := checker.HasRole(c.Request.Context(), claims.Email, role)
		if err != nil {
			log.Error().Err(err).
				Str("request_id", response.RequestID(c)).
				Str("role", string(role)).
				Msg("Role lookup failed")
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		if !ok {
			response.AbortFail(c, http.StatusForbidden, denied)
			return
		}

		c.Next()
	}
}

// RequireSelf rejects the request when the email path parameter names
// someone other than the authenticated caller. Must run after RequireJWT.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if !service.SameEmail(c.Param(param), claims.Email) {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}

		c.Next()
	}
}
