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

// FeedbackHandler handles feedback submitted from the admin dashboard.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	log             zerolog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *service.FeedbackService, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		log:             log.With().Str("component", "feedback_handler").Logger(),
	}
}

// Submit godoc
// POST /admin/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.CreateFeedbackRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	fb, err := h.feedbackService.Submit(c.Request.Context(), req)
	if err != nil {
		failWithError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, model.Inserted(fb.ID))
}
