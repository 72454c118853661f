package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// Repository defines persistence for orders, their items and payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters OrderFilters) ([]models.Order, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, int64, error)
	// UpdateStateVersioned applies the status columns only when the stored
	// version still matches; a stale version returns ErrVersionConflict.
	UpdateStateVersioned(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) error
	AddPayment(ctx context.Context, payment *models.OrderPayment) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Service exposes the order lifecycle.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	ListMy(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*models.Order, error)
	AddPayment(ctx context.Context, id uuid.UUID, input AddPaymentInput) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
