package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/repository"
)

// ClassService handles the class catalog and its approval workflow.
type ClassService struct {
	classRepo *repository.ClassRepository
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository) *ClassService {
	return &ClassService{classRepo: classRepo}
}

// GetByID retrieves a class by its ID.
func (s *ClassService) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// List retrieves all classes regardless of status.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.list(ctx, model.ClassFilter{})
}

// ListApproved retrieves the classes visible in the public catalog.
func (s *ClassService) ListApproved(ctx context.Context) ([]model.Class, error) {
	return s.list(ctx, model.ClassFilter{Status: model.ClassStatusApproved})
}

// ListByInstructor retrieves the classes submitted by one instructor.
func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]model.Class, error) {
	return s.list(ctx, model.ClassFilter{InstructorEmail: normalizeEmail(email)})
}

func (s *ClassService) list(ctx context.Context, f model.ClassFilter) ([]model.Class, error) {
	classes, err := s.classRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if classes == nil {
		classes = []model.Class{}
	}
	return classes, nil
}

// Create stores a submitted class. Without an explicit status it awaits approval.
func (s *ClassService) Create(ctx context.Context, req model.CreateClassRequest) (*model.Class, error) {
	status := req.Status
	if status == "" {
		status = model.ClassStatusPending
	}

	class := &model.Class{
		Name:            req.Name,
		Image:           req.Image,
		InstructorName:  req.InstructorName,
		InstructorEmail: normalizeEmail(req.InstructorEmail),
		Seats:           req.Seats,
		Price:           req.Price,
		Status:          status,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// Approve marks the class approved.
func (s *ClassService) Approve(ctx context.Context, id uuid.UUID) (model.UpdateResult, error) {
	return s.setStatus(ctx, id, model.ClassStatusApproved)
}

// Deny marks the class denied.
func (s *ClassService) Deny(ctx context.Context, id uuid.UUID) (model.UpdateResult, error) {
	return s.setStatus(ctx, id, model.ClassStatusDenied)
}

func (s *ClassService) setStatus(ctx context.Context, id uuid.UUID, status model.ClassStatus) (model.UpdateResult, error) {
	n, err := s.classRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.UpdateResult{}, err
	}
	return model.Updated(n), nil
}

// ReserveSeat takes one seat of the class. It fails with repository.ErrNotFound
// for an unknown class and repository.ErrNoSeatsLeft once seats reach zero.
func (s *ClassService) ReserveSeat(ctx context.Context, id uuid.UUID) (model.UpdateResult, error) {
	n, err := s.classRepo.ReserveSeat(ctx, id)
	if err != nil {
		return model.UpdateResult{}, err
	}
	return model.Updated(n), nil
}
