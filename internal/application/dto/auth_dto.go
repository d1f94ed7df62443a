package dto

import "time"

// RegisterRequest alta de usuario. El PIN es el secreto de acceso (se hashea
// con bcrypt, nunca se persiste en claro).
type RegisterRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name" validate:"required,min=2,max=100"`
	City  string `json:"city" validate:"omitempty,max=100"`
	Pin   string `json:"pin" validate:"required,min=4,max=12"`
}

// LoginRequest acceso con teléfono + PIN.
type LoginRequest struct {
	Phone string `json:"phone" validate:"required"`
	Pin   string `json:"pin" validate:"required"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID                 string    `json:"id"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email,omitempty"`
	Name               string    `json:"name"`
	City               string    `json:"city,omitempty"`
	Roles              []string  `json:"roles"`
	PrimaryRole        string    `json:"primary_role"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ReviewVerificationRequest decisión del admin sobre una verificación PENDING.
type ReviewVerificationRequest struct {
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejection_reason,omitempty" validate:"omitempty,max=500"`
}
