package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/stemsi/coursehub-backend/internal/model"
)

var cartColumns = []string{
	"id", "class_id", "owner_email", "name", "image", "instructor_name", "price", "seats", "created_at",
}

// CartRepository handles access to students' selected (unpaid) classes.
type CartRepository struct {
	db DBTX
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db DBTX) *CartRepository {
	return &CartRepository{db: db}
}

// Create inserts a cart item. The primary key rejects a second item with the same id.
func (r *CartRepository) Create(ctx context.Context, item *model.CartItem) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO selected_classes (id, class_id, owner_email, name, image, instructor_name, price, seats)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		item.ID, item.ClassID, item.OwnerEmail, item.Name, item.Image, item.InstructorName, item.Price, item.Seats,
	).Scan(&item.CreatedAt)
	if err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return ErrDuplicateCartItem
		case pgForeignKeyViolation:
			return ErrClassNotFound
		case pgNumericOutOfRange:
			return ErrValueOutOfRange
		}
		return err
	}
	return nil
}

// ListByOwner retrieves the cart of one student.
func (r *CartRepository) ListByOwner(ctx context.Context, email string) ([]model.CartItem, error) {
	query, args, err := squirrel.Select(cartColumns...).
		From("selected_classes").
		Where(squirrel.Eq{"owner_email": email}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cart query: %w", err)
	}

	var items []model.CartItem
	if err := pgxscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("select cart: %w", err)
	}
	return items, nil
}

// Delete removes a cart item by ID.
func (r *CartRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM selected_classes WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return tag.RowsAffected(), nil
}
