package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the platform role of a user.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// User represents a platform account. Email is unique.
type User struct {
	ID        uuid.UUID `json:"_id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	PhotoURL  string    `json:"photo" db:"photo_url"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserRequest is the payload for registering a user after sign-up.
// Roles are never taken from the body; new users start as students.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"max=100"`
	Email string `json:"email" binding:"required,email,max=255"`
	Photo string `json:"photo" binding:"omitempty,url,max=1024"`
}

// AdminCheckResponse answers GET /users/admin/:email.
type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

// InstructorCheckResponse answers GET /users/instructor/:email.
type InstructorCheckResponse struct {
	Instructor bool `json:"instructor"`
}
