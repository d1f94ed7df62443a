package entity

import "time"

// Role rol de un usuario. Un usuario puede tener varios (un BUYER_SELLER del
// modelo simple se representa con el set {buyer, seller}).
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

// Estados de verificación de identidad (sellers deben estar VERIFIED para publicar).
const (
	VerificationUnverified = "UNVERIFIED"
	VerificationPending    = "PENDING"
	VerificationVerified   = "VERIFIED"
	VerificationRejected   = "REJECTED"
)

// User representa un actor de la plataforma.
type User struct {
	ID                 string
	Phone              string
	Email              string
	Name               string
	City               string
	PinHash            string // bcrypt, nunca en claro después de persistir
	Roles              []Role
	VerificationStatus string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasRole indica si el usuario tiene el rol dado.
func (u *User) HasRole(r Role) bool {
	for _, role := range u.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// IsVerified indica si el usuario pasó la verificación de identidad.
func (u *User) IsVerified() bool {
	return u.VerificationStatus == VerificationVerified
}
