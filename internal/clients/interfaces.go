package clients

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// Repository defines persistence for client records and their occupations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error)
	ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error)
	List(ctx context.Context, params pagination.Params) ([]models.Client, int64, error)
	Update(ctx context.Context, client *models.Client) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	AddOccupation(ctx context.Context, occ *models.Occupation) error
	FindOccupation(ctx context.Context, clientID, occupationID uuid.UUID) (*models.Occupation, error)
	UpdateOccupation(ctx context.Context, occ *models.Occupation) error
	RemoveOccupation(ctx context.Context, clientID, occupationID uuid.UUID) error
}

// Service exposes the client-record lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateClientInput) (*models.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error)
	List(ctx context.Context, params pagination.Params) (*ClientList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddOccupation(ctx context.Context, clientID uuid.UUID, input OccupationInput) (*models.Client, error)
	UpdateOccupation(ctx context.Context, clientID, occupationID uuid.UUID, input OccupationInput) (*models.Client, error)
	RemoveOccupation(ctx context.Context, clientID, occupationID uuid.UUID) (*models.Client, error)
}
