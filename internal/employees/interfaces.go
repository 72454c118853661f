package employees

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// Repository defines persistence for employee records and their child
// collections (job positions, credentials).
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, employee *models.Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Employee, error)
	ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error)
	ExistsByTIN(ctx context.Context, tin string) (bool, error)
	List(ctx context.Context, params pagination.Params) ([]models.Employee, int64, error)
	Update(ctx context.Context, employee *models.Employee) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	AddJobPosition(ctx context.Context, pos *models.JobPosition) error
	FindJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) (*models.JobPosition, error)
	UpdateJobPosition(ctx context.Context, pos *models.JobPosition) error
	RemoveJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) error

	AddCredential(ctx context.Context, cred *models.Credential) error
	FindCredential(ctx context.Context, employeeID, credentialID uuid.UUID) (*models.Credential, error)
	UpdateCredential(ctx context.Context, cred *models.Credential) error
	RemoveCredential(ctx context.Context, employeeID, credentialID uuid.UUID) error
	// DeactivateCredentials flips is_active off for the given credential ids.
	DeactivateCredentials(ctx context.Context, ids []uuid.UUID) error
}

// Service exposes the employee-record lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Employee, error)
	List(ctx context.Context, params pagination.Params) (*EmployeeList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*models.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddJobPosition(ctx context.Context, employeeID uuid.UUID, input JobPositionInput) (*models.Employee, error)
	UpdateJobPosition(ctx context.Context, employeeID, positionID uuid.UUID, input JobPositionInput) (*models.Employee, error)
	EndJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) (*models.Employee, error)
	RemoveJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) (*models.Employee, error)

	AddCredential(ctx context.Context, employeeID uuid.UUID, input CredentialInput) (*models.Employee, error)
	UpdateCredential(ctx context.Context, employeeID, credentialID uuid.UUID, input CredentialInput) (*models.Employee, error)
	RemoveCredential(ctx context.Context, employeeID, credentialID uuid.UUID) (*models.Employee, error)
	ListCredentials(ctx context.Context, employeeID uuid.UUID) ([]models.Credential, error)
}
