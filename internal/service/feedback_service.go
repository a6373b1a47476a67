package service

import (
	"context"

	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/repository"
)

// FeedbackService records feedback messages.
type FeedbackService struct {
	feedbackRepo *repository.FeedbackRepository
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(feedbackRepo *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

// Submit appends a feedback message.
func (s *FeedbackService) Submit(ctx context.Context, req model.CreateFeedbackRequest) (*model.Feedback, error) {
	f := &model.Feedback{
		ClassID: req.ClassID,
		Email:   normalizeEmail(req.Email),
		Message: req.Message,
	}
	if err := s.feedbackRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
