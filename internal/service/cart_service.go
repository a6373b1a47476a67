package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/repository"
)

// CartService manages students' selected classes before payment.
type CartService struct {
	cartRepo *repository.CartRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo *repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// Add stores a selection. Items are deduplicated by id only, so a student may
// hold two entries for one class under different ids.
func (s *CartService) Add(ctx context.Context, req model.AddCartItemRequest) (*model.CartItem, error) {
	id := uuid.New()
	if req.ID != nil && *req.ID != uuid.Nil {
		id = *req.ID
	}

	item := &model.CartItem{
		ID:             id,
		ClassID:        req.ClassID,
		OwnerEmail:     normalizeEmail(req.OwnerEmail),
		Name:           req.Name,
		Image:          req.Image,
		InstructorName: req.InstructorName,
		Price:          req.Price,
		Seats:          req.Seats,
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListByOwner retrieves the cart of a student.
func (s *CartService) ListByOwner(ctx context.Context, email string) ([]model.CartItem, error) {
	items, err := s.cartRepo.ListByOwner(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return items, nil
}

// Remove deletes a cart item by id.
func (s *CartService) Remove(ctx context.Context, id uuid.UUID) (model.DeleteResult, error) {
	n, err := s.cartRepo.Delete(ctx, id)
	if err != nil {
		return model.DeleteResult{}, err
	}
	return model.Deleted(n), nil
}
