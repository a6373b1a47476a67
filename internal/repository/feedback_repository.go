package repository

import (
	"context"

	"github.com/stemsi/coursehub-backend/internal/model"
)

// FeedbackRepository appends feedback messages.
type FeedbackRepository struct {
	db DBTX
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(db DBTX) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback message.
func (r *FeedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO feedback (class_id, email, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		f.ClassID, f.Email, f.Message,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil && pgErrCode(err) == pgForeignKeyViolation {
		return ErrClassNotFound
	}
	return err
}
