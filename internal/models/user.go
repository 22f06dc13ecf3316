package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint    `json:"id" gorm:"primaryKey"`
	Username    string  `json:"username" gorm:"uniqueIndex;size:150"`
	Name        string  `json:"name"`
	Email       string  `json:"email" gorm:"uniqueIndex"`                  // Ensure email is unique across all users
	Password    string  `json:"-"`                                         // Store hashed password, ignore for JSON serialization
	FirebaseUID *string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // nil for local accounts so the unique index ignores them
}

// UserCompact is the author payload embedded in feed items and profiles
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// ToCompact converts a User into its public compact form
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	}
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=150"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
