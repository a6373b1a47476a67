package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/response"
	"github.com/stemsi/coursehub-backend/internal/service"
	"github.com/stemsi/coursehub-backend/internal/validator"
)

// UserHandler handles user accounts and role checks.
type UserHandler struct {
	userService *service.UserService
	log         zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log.With().Str("component", "user_handler").Logger(),
	}
}

// List godoc
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// ListInstructors godoc
// GET /instructors
// GET /instructor-user
func (h *UserHandler) ListInstructors(c *gin.Context) {
	users, err := h.userService.ListInstructors(c.Request.Context())
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GetByEmail godoc
// GET /current-user/:email
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Create godoc
// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, model.Inserted(user.ID))
}

// Delete godoc
// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.userService.Delete(c.Request.Context(), id)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// PromoteAdmin godoc
// PATCH /users/admin/:id
func (h *UserHandler) PromoteAdmin(c *gin.Context) {
	h.promote(c, model.RoleAdmin)
}

// PromoteInstructor godoc
// PATCH /users/instructor/:id
func (h *UserHandler) PromoteInstructor(c *gin.Context) {
	h.promote(c, model.RoleInstructor)
}

func (h *UserHandler) promote(c *gin.Context, role model.Role) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.userService.Promote(c.Request.Context(), id, role)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// IsAdmin godoc
// GET /users/admin/:email
// The caller may only ask about themselves; RequireSelf enforces it.
func (h *UserHandler) IsAdmin(c *gin.Context) {
	ok, err := h.userService.HasRole(c.Request.Context(), c.Param("email"), model.RoleAdmin)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, model.AdminCheckResponse{Admin: ok})
}

// IsInstructor godoc
// GET /users/instructor/:email
func (h *UserHandler) IsInstructor(c *gin.Context) {
	ok, err := h.userService.HasRole(c.Request.Context(), c.Param("email"), model.RoleInstructor)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, model.InstructorCheckResponse{Instructor: ok})
}
