package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/stemsi/coursehub-backend/internal/model"
)

var classColumns = []string{
	"id", "name", "image", "instructor_name", "instructor_email",
	"seats", "price", "status", "selected", "created_at", "updated_at",
}

// ClassRepository handles class data access.
type ClassRepository struct {
	db DBTX
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(db DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	query, args, err := squirrel.Select(classColumns...).
		From("classes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build class query: %w", err)
	}

	var c model.Class
	if err := pgxscan.Get(ctx, r.db, &c, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get class: %w", err)
	}
	return &c, nil
}

// List retrieves classes matching the filter, newest first.
func (r *ClassRepository) List(ctx context.Context, f model.ClassFilter) ([]model.Class, error) {
	qb := squirrel.Select(classColumns...).
		From("classes").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	if f.Status != "" {
		qb = qb.Where(squirrel.Eq{"status": f.Status})
	}
	if f.InstructorEmail != "" {
		qb = qb.Where(squirrel.Eq{"instructor_email": f.InstructorEmail})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build classes query: %w", err)
	}

	var classes []model.Class
	if err := pgxscan.Select(ctx, r.db, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("select classes: %w", err)
	}
	return classes, nil
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO classes (name, image, instructor_name, instructor_email, seats, price, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, selected, created_at, updated_at`,
		c.Name, c.Image, c.InstructorName, c.InstructorEmail, c.Seats, c.Price, c.Status,
	).Scan(&c.ID, &c.Selected, &c.CreatedAt, &c.UpdatedAt)
	if pgErrCode(err) == pgNumericOutOfRange {
		return ErrValueOutOfRange
	}
	return err
}

// UpdateStatus overwrites the approval status. Setting the same status twice is allowed.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ClassStatus) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE classes SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return tag.RowsAffected(), nil
}

// ReserveSeat takes one seat from the class and marks it selected.
// The decrement only applies while seats remain, so concurrent callers
// cannot drive the count below zero; the loser gets ErrNoSeatsLeft.
func (r *ClassRepository) ReserveSeat(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE classes
		 SET seats = seats - 1, selected = TRUE, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND seats > 0`,
		id,
	)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() > 0 {
		return tag.RowsAffected(), nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM classes WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrNotFound
	}
	return 0, ErrNoSeatsLeft
}
