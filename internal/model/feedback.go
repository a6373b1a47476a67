package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is an append-only message, typically an admin note on a class.
type Feedback struct {
	ID        uuid.UUID  `json:"_id" db:"id"`
	ClassID   *uuid.UUID `json:"class_id,omitempty" db:"class_id"`
	Email     string     `json:"email" db:"email"`
	Message   string     `json:"message" db:"message"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// CreateFeedbackRequest is the payload for POST /admin/feedback.
type CreateFeedbackRequest struct {
	ClassID *uuid.UUID `json:"class_id"`
	Email   string     `json:"email" binding:"omitempty,email,max=255"`
	Message string     `json:"message" binding:"required,min=1,max=4000"`
}
