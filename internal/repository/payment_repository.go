package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/stemsi/coursehub-backend/internal/model"
)

var paymentColumns = []string{
	"id", "email", "transaction_id", "amount", "currency", "class_id", "cart_item_id", "class_name", "created_at",
}

// PaymentRepository handles payment records.
type PaymentRepository struct {
	db DBTX
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// RecordCheckout removes the paid cart item and stores the payment in one transaction.
// The cart item must belong to p.Email; otherwise nothing is written and ErrNotFound
// is returned. It reports how many cart rows were removed.
func (r *PaymentRepository) RecordCheckout(ctx context.Context, p *model.Payment) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin checkout: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`DELETE FROM selected_classes WHERE id = $1 AND owner_email = $2`,
		p.CartItemID, p.Email,
	)
	if err != nil {
		return 0, fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO payments (email, transaction_id, amount, currency, class_id, cart_item_id, class_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		p.Email, p.TransactionID, p.Amount, p.Currency, p.ClassID, p.CartItemID, p.ClassName,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return 0, ErrDuplicateTransaction
		case pgNumericOutOfRange:
			return 0, ErrValueOutOfRange
		}
		return 0, fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit checkout: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByEmail retrieves the payment history of one user, newest first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	query, args, err := squirrel.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"email": email}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build payments query: %w", err)
	}

	var payments []model.Payment
	if err := pgxscan.Select(ctx, r.db, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("select payments: %w", err)
	}
	return payments, nil
}
