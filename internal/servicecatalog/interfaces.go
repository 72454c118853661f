package servicecatalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// Repository defines persistence for catalog services and their materials.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, svc *models.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	List(ctx context.Context, params pagination.Params, activeOnly bool) ([]models.Service, int64, error)
	Update(ctx context.Context, svc *models.Service) error
	ReplaceMaterials(ctx context.Context, serviceID uuid.UUID, materials []models.ServiceMaterial) error
}

// CategoryRepository defines persistence for service categories.
type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	Create(ctx context.Context, category *models.ServiceCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceCategory, error)
	List(ctx context.Context) ([]models.ServiceCategory, error)
	Update(ctx context.Context, category *models.ServiceCategory) error
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error

	AddSubCategory(ctx context.Context, sub *models.ServiceSubCategory) error
	RemoveSubCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) error
}

// Service exposes catalog-service management.
type Service interface {
	Create(ctx context.Context, input CreateServiceInput) (*models.Service, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Service, error)
	List(ctx context.Context, params pagination.Params, activeOnly bool) (*ServiceList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateServiceInput) (*models.Service, error)
	Archive(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

// CategoryService exposes service-category management.
type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (*models.ServiceCategory, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ServiceCategory, error)
	List(ctx context.Context) ([]models.ServiceCategory, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*models.ServiceCategory, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddSubCategory(ctx context.Context, categoryID uuid.UUID, name string) (*models.ServiceCategory, error)
	RemoveSubCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) (*models.ServiceCategory, error)
}
