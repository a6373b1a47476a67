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

// ClassHandler handles the class catalog, approvals and seat reservation.
type ClassHandler struct {
	classService *service.ClassService
	log          zerolog.Logger
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, log zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		classService: classService,
		log:          log.With().Str("component", "class_handler").Logger(),
	}
}

// List godoc
// GET /classes
// GET /admin/classes
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, classes)
}

// ListApproved godoc
// GET /approve-classes
func (h *ClassHandler) ListApproved(c *gin.Context) {
	classes, err := h.classService.ListApproved(c.Request.Context())
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, classes)
}

// ListByInstructor godoc
// GET /classes/instructor/:email
func (h *ClassHandler) ListByInstructor(c *gin.Context) {
	classes, err := h.classService.ListByInstructor(c.Request.Context(), c.Param("email"))
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, classes)
}

// Create godoc
// POST /classes
func (h *ClassHandler) Create(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), req)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}

	h.log.Info().
		Str("class_id", class.ID.String()).
		Str("instructor", class.InstructorEmail).
		Msg("Class submitted")

	response.Success(c, http.StatusCreated, model.Inserted(class.ID))
}

// Approve godoc
// PATCH /classes/admin/:id
func (h *ClassHandler) Approve(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.classService.Approve(c.Request.Context(), id)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Deny godoc
// PATCH /classe/admin/:id
func (h *ClassHandler) Deny(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.classService.Deny(c.Request.Context(), id)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ReserveSeat godoc
// PATCH /select-course/:id
// Takes one seat; 409 once the class is full.
func (h *ClassHandler) ReserveSeat(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.classService.ReserveSeat(c.Request.Context(), id)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
