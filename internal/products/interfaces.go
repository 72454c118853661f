package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// Repository defines persistence for products and their price history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, params pagination.Params, filters ProductFilters) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	AddPriceHistory(ctx context.Context, entry *models.PriceHistory) error
}

// CategoryRepository defines persistence for product categories and their
// sub-categories.
type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	Create(ctx context.Context, category *models.ProductCategory) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductCategory, error)
	List(ctx context.Context) ([]models.ProductCategory, error)
	Update(ctx context.Context, category *models.ProductCategory) error
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error

	AddSubCategory(ctx context.Context, sub *models.ProductSubCategory) error
	RemoveSubCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) error
}

// Service exposes product catalog management.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, params pagination.Params, filters ProductFilters) (*ProductList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryService exposes product category management.
type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (*models.ProductCategory, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ProductCategory, error)
	List(ctx context.Context) ([]models.ProductCategory, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (*models.ProductCategory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*models.ProductCategory, error)

	AddSubCategory(ctx context.Context, categoryID uuid.UUID, name string) (*models.ProductCategory, error)
	RemoveSubCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) (*models.ProductCategory, error)
}
