package models

import "time"

// Roles recognised by the access control table.
const (
	RoleOwner       = "owner"
	RoleHeadKitchen = "head_kitchen"
	RoleKasir       = "kasir"
)

// User is one login account. PasswordHash is a bcrypt hash and never leaves
// the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
