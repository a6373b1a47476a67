package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/response"
	"github.com/stemsi/coursehub-backend/internal/service"
	"github.com/stemsi/coursehub-backend/internal/validator"
)

// AuthHandler handles token issuance.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// IssueToken godoc
// POST /jwt
// Exchanges an identity payload for a signed bearer token, returned as plain text.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req service.TokenIdentity
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.authService.IssueToken(req)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}

	response.Text(c, http.StatusOK, token)
}
