package servicecatalog

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

// NewCategoryRepository builds a service-category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{base: repo.NewBase(db)}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	if tx == nil {
		return r
	}
	return &categoryRepository{base: r.base.Rebind(tx)}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.ServiceCategory) error {
	return r.base.DB(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	err := repo.Active(r.base.DB(ctx)).
		Preload("SubCategories", "is_deleted = ?", false).
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.ServiceCategory, error) {
	var rows []models.ServiceCategory
	err := repo.Active(r.base.DB(ctx)).
		Preload("SubCategories", "is_deleted = ?", false).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.ServiceCategory) error {
	return r.base.DB(ctx).
		Omit("SubCategories").
		Save(category).Error
}

func (r *categoryRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	res := r.base.DB(ctx).
		Model(&models.ServiceCategory{}).
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

func (r *categoryRepository) AddSubCategory(ctx context.Context, sub *models.ServiceSubCategory) error {
	return r.base.DB(ctx).Create(sub).Error
}

// RemoveSubCategory soft-deletes the entry; services hold the id+name
// snapshot, so the row must stay resolvable.
func (r *categoryRepository) RemoveSubCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) error {
	res := r.base.DB(ctx).
		Model(&models.ServiceSubCategory{}).
		Where("category_id = ? AND id = ? AND is_deleted = ?", categoryID, subCategoryID, false).
		UpdateColumn("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
