package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/repository"
)

// UserService handles user accounts and role assignment.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List retrieves every user.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.list(ctx, "")
}

// ListInstructors retrieves users holding the instructor role.
func (s *UserService) ListInstructors(ctx context.Context) ([]model.User, error) {
	return s.list(ctx, model.RoleInstructor)
}

func (s *UserService) list(ctx context.Context, role model.Role) ([]model.User, error) {
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, normalizeEmail(email))
}

// Create registers a new student account. A second account with the same
// email fails with repository.ErrDuplicateEmail.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	user := &model.User{
		Email:    normalizeEmail(req.Email),
		Name:     req.Name,
		PhotoURL: req.Photo,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates or promotes the account behind email to admin.
func (s *UserService) EnsureAdmin(ctx context.Context, email, name string) (*model.User, error) {
	user := &model.User{Email: normalizeEmail(email), Name: name}
	if err := s.userRepo.UpsertAdmin(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Promote assigns role to the user with the given id.
func (s *UserService) Promote(ctx context.Context, id uuid.UUID, role model.Role) (model.UpdateResult, error) {
	n, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return model.UpdateResult{}, err
	}
	return model.Updated(n), nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (model.DeleteResult, error) {
	n, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return model.DeleteResult{}, err
	}
	return model.Deleted(n), nil
}

// HasRole reports whether the user behind email holds role.
// Unknown users hold no role.
func (s *UserService) HasRole(ctx context.Context, email string, role model.Role) (bool, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == role, nil
}
