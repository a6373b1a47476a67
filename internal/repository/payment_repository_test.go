package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayment() *model.Payment {
	return &model.Payment{
		Email:         "s@x.com",
		TransactionID: "pi_123",
		Amount:        49.99,
		Currency:      "usd",
		CartItemID:    uuid.New(),
		ClassName:     "Go 101",
	}
}

func TestPaymentRepository_RecordCheckout(t *testing.T) {
	t.Run("Should delete the owned cart item and insert the payment", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repository.NewPaymentRepository(mockPool)

		p := newPayment()
		id := uuid.New()
		mockPool.ExpectBegin()
		mockPool.ExpectExec("DELETE FROM selected_classes WHERE id = \\$1 AND owner_email = \\$2").
			WithArgs(p.CartItemID, p.Email).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mockPool.ExpectQuery("INSERT INTO payments").
			WithArgs(p.Email, p.TransactionID, p.Amount, p.Currency, p.ClassID, p.CartItemID, p.ClassName).
			WillReturnRows(mockPool.NewRows([]string{"id", "created_at"}).AddRow(id, time.Now()))
		mockPool.ExpectCommit()

		deleted, err := repo.RecordCheckout(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)
		assert.Equal(t, id, p.ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should insert nothing when the cart item is not the caller's", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repository.NewPaymentRepository(mockPool)

		p := newPayment()
		mockPool.ExpectBegin()
		mockPool.ExpectExec("DELETE FROM selected_classes").
			WithArgs(p.CartItemID, p.Email).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mockPool.ExpectRollback()

		_, err = repo.RecordCheckout(context.Background(), p)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should roll back on a duplicate transaction id", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repository.NewPaymentRepository(mockPool)

		p := newPayment()
		mockPool.ExpectBegin()
		mockPool.ExpectExec("DELETE FROM selected_classes").
			WithArgs(p.CartItemID, p.Email).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mockPool.ExpectQuery("INSERT INTO payments").
			WithArgs(p.Email, p.TransactionID, p.Amount, p.Currency, p.ClassID, p.CartItemID, p.ClassName).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mockPool.ExpectRollback()

		_, err = repo.RecordCheckout(context.Background(), p)
		assert.ErrorIs(t, err, repository.ErrDuplicateTransaction)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should wrap begin failures", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repository.NewPaymentRepository(mockPool)

		boom := errors.New("pool exhausted")
		mockPool.ExpectBegin().WillReturnError(boom)

		_, err = repo.RecordCheckout(context.Background(), newPayment())
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
