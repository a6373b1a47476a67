package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassStatus enumerates the approval states of a class.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

// Class represents a course listing submitted by an instructor.
type Class struct {
	ID              uuid.UUID   `json:"_id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Image           string      `json:"image" db:"image"`
	InstructorName  string      `json:"instructor_name" db:"instructor_name"`
	InstructorEmail string      `json:"email" db:"instructor_email"`
	Seats           int         `json:"seats" db:"seats"`
	Price           float64     `json:"price" db:"price"`
	Status          ClassStatus `json:"status" db:"status"`
	Selected        bool        `json:"selected" db:"selected"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// ClassFilter narrows class listings. Zero values mean "any".
type ClassFilter struct {
	Status          ClassStatus
	InstructorEmail string
}

// CreateClassRequest is the payload an instructor submits for a new class.
type CreateClassRequest struct {
	Name            string      `json:"name" binding:"required,min=2,max=255"`
	Image           string      `json:"image" binding:"omitempty,url,max=1024"`
	InstructorName  string      `json:"instructor_name" binding:"required,max=100"`
	InstructorEmail string      `json:"email" binding:"required,email,max=255"`
	Seats           int         `json:"seats" binding:"gte=0,max=2147483647"`
	Price           float64     `json:"price" binding:"gte=0,max=99999999.99"`
	Status          ClassStatus `json:"status" binding:"omitempty,oneof=pending approved denied"`
}
