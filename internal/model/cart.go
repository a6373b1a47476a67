package model

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a pending, unpaid selection of a class by a student.
// Class fields are copied at selection time.
type CartItem struct {
	ID             uuid.UUID `json:"_id" db:"id"`
	ClassID        uuid.UUID `json:"class_id" db:"class_id"`
	OwnerEmail     string    `json:"my_email" db:"owner_email"`
	Name           string    `json:"name" db:"name"`
	Image          string    `json:"image" db:"image"`
	InstructorName string    `json:"instructor_name" db:"instructor_name"`
	Price          float64   `json:"price" db:"price"`
	Seats          int       `json:"seats" db:"seats"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// AddCartItemRequest is the payload for POST /new-selected-class.
// ID is optional; when omitted the server assigns one.
type AddCartItemRequest struct {
	ID             *uuid.UUID `json:"_id"`
	ClassID        uuid.UUID  `json:"class_id" binding:"required"`
	OwnerEmail     string     `json:"my_email" binding:"required,email,max=255"`
	Name           string     `json:"name" binding:"max=255"`
	Image          string     `json:"image" binding:"max=1024"`
	InstructorName string     `json:"instructor_name" binding:"max=100"`
	Price          float64    `json:"price" binding:"gte=0,max=99999999.99"`
	Seats          int        `json:"seats" binding:"gte=0,max=2147483647"`
}
