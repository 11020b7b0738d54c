package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Account is the login identity. An account may own several classroom
// profiles; the classroom, not the account, is the unit that gets matched.
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Organization string    `json:"organization,omitempty" gorm:"size:120"`
	CreatedAt    time.Time `json:"created_at"`

	Classrooms []Classroom `json:"classrooms,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

type SignupRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Organization string `json:"organization,omitempty" validate:"omitempty,max=120"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateAccountRequest struct {
	Organization *string `json:"organization,omitempty" validate:"omitempty,max=120"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	AccountID uint   `json:"account_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
