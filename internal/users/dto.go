package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// UserDTO is the transport shape that omits credential material.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	IsAdmin     bool       `json:"is_admin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FromModel maps the persistence model to its transport shape.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Phone:       u.Phone,
		Address:     u.Address,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		IsAdmin:     u.IsAdmin,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// RegisterInput carries the fields accepted when opening an account.
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
	Gender      *string
}

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Email    string
	Password string
}

// TokenPair is the access/refresh pair handed to authenticated clients.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult bundles the token pair with the authenticated profile.
type LoginResult struct {
	TokenPair
	User *UserDTO `json:"user"`
}

// RefreshInput identifies the session being rotated. AccessToken may be
// expired; its signature and jti are still what ties it to the session.
type RefreshInput struct {
	AccessToken  string
	RefreshToken string
}

// UpdateProfileInput applies partial updates to the caller's own account.
// Nil pointers leave the current value untouched.
type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
	Gender      *string
	Password    *string
}

// UserList pairs a page of users with its pagination metadata.
type UserList struct {
	Users      []UserDTO         `json:"users"`
	Pagination pagination.Result `json:"pagination"`
}
