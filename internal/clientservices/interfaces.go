package clientservices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// Repository defines persistence for client service records, their lines,
// commissions and payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.ClientService) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ClientService, error)
	List(ctx context.Context, params pagination.Params, filters RecordFilters) ([]models.ClientService, int64, error)
	// UpdateStateVersioned applies the given columns only when the stored
	// version still matches; a stale version returns ErrVersionConflict.
	UpdateStateVersioned(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) error
	ReplaceLines(ctx context.Context, recordID uuid.UUID, lines []models.ServiceLine) error
	AddPayment(ctx context.Context, payment *models.ServicePayment) error
}

// Service exposes the client service record lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateRecordInput) (*models.ClientService, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ClientService, error)
	List(ctx context.Context, params pagination.Params, filters RecordFilters) (*RecordList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRecordInput) (*models.ClientService, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next enums.ServiceStatus) (*models.ClientService, error)
	AddPayment(ctx context.Context, id uuid.UUID, input PaymentInput) (*models.ClientService, error)
	Void(ctx context.Context, id uuid.UUID, reason string) (*models.ClientService, error)
}
