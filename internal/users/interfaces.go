package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// Repository defines persistence for user accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, user *models.User) error
	// FindByEmail only returns active accounts; soft-deleted users cannot
	// authenticate.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, params pagination.Params) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Service exposes account registration, authentication and profile flows.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*UserDTO, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
	Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserDTO, error)
	List(ctx context.Context, params pagination.Params) (*UserList, error)
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (*UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
