package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool used by repositories.
// pgxmock pools satisfy it as well.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Postgres SQLSTATE codes mapped to domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
)

// Shared repository errors. Handlers translate them into HTTP responses.
var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateEmail       = errors.New("user with this email already exists")
	ErrDuplicateCartItem    = errors.New("cart item with this id already exists")
	ErrDuplicateTransaction = errors.New("payment with this transaction id already exists")
	ErrClassNotFound        = errors.New("referenced class does not exist")
	ErrNoSeatsLeft          = errors.New("class has no seats left")
	ErrValueOutOfRange      = errors.New("numeric value out of range")
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
