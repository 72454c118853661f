package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/repo"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
)

type categoryRepository struct {
	base repo.Base
}

// NewCategoryRepository builds a product-category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{base: repo.NewBase(db)}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	if tx == nil {
		return r
	}
	return &categoryRepository{base: r.base.Rebind(tx)}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.ProductCategory) error {
	return r.base.DB(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductCategory, error) {
	var category models.ProductCategory
	err := repo.Active(r.base.DB(ctx)).
		Preload("SubCategories").
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.ProductCategory, error) {
	var rows []models.ProductCategory
	err := repo.Active(r.base.DB(ctx)).
		Preload("SubCategories").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.ProductCategory) error {
	return r.base.DB(ctx).
		Omit("SubCategories").
		Save(category).Error
}

func (r *categoryRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	res := r.base.DB(ctx).
		Model(&models.ProductCategory{}).
		Where("id = ? AND is_deleted = ?", id, !deleted).
		UpdateColumn("is_deleted", deleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) AddSubCategory(ctx context.Context, sub *models.ProductSubCategory) error {
	return r.base.DB(ctx).Create(sub).Error
}

func (r *categoryRepository) RemoveSubCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) error {
	res := r.base.DB(ctx).
		Where("category_id = ? AND id = ?", categoryID, subCategoryID).
		Delete(&models.ProductSubCategory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
