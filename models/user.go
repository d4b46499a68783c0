package models

import "time"

// UserRole matches the ENUM in the database.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleWriter UserRole = "writer"
	RoleReader UserRole = "reader"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	AvatarKey *string `json:"-" db:"avatar_key"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`
}
