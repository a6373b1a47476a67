package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/stemsi/coursehub-backend/internal/model"
)

var userColumns = []string{"id", "email", "name", "photo_url", "role", "created_at", "updated_at"}

// UserRepository handles user data access.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// List retrieves users, optionally restricted to one role.
func (r *UserRepository) List(ctx context.Context, role model.Role) ([]model.User, error) {
	qb := squirrel.Select(userColumns...).
		From("users").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	if role != "" {
		qb = qb.Where(squirrel.Eq{"role": role})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build users query: %w", err)
	}

	var users []model.User
	if err := pgxscan.Select(ctx, r.db, &users, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var u model.User
	if err := pgxscan.Get(ctx, r.db, &u, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user. The unique email constraint reports duplicates.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, name, photo_url)
		 VALUES ($1, $2, $3)
		 RETURNING id, role, created_at, updated_at`,
		u.Email, u.Name, u.PhotoURL,
	).Scan(&u.ID, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpsertAdmin creates the user as an admin, or promotes the existing account.
func (r *UserRepository) UpsertAdmin(ctx context.Context, u *model.User) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO users (email, name, role)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, updated_at = CURRENT_TIMESTAMP
		 RETURNING id, name, role, created_at, updated_at`,
		u.Email, u.Name, model.RoleAdmin,
	).Scan(&u.ID, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
}

// UpdateRole sets the role of a user. Returns ErrNotFound for an unknown id.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		role, id,
	)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return tag.RowsAffected(), nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return tag.RowsAffected(), nil
}
