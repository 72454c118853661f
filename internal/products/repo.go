package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/repo"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

type repository struct {
	base repo.Base
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.Rebind(tx)}
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	return r.base.DB(ctx).Create(product).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := repo.Active(r.base.DB(ctx)).
		Preload("PriceHistory", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("date_changed ASC")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters ProductFilters) ([]models.Product, int64, error) {
	params = params.Normalize()

	query := func() *gorm.DB {
		q := repo.Active(r.base.DB(ctx)).Model(&models.Product{})
		if filters.CategoryID != nil {
			q = q.Where("category_id = ?", *filters.CategoryID)
		}
		if filters.SubCategoryID != nil {
			q = q.Where("sub_category_id = ?", *filters.SubCategoryID)
		}
		if filters.Search != "" {
			q = q.Where("name LIKE ?", "%"+filters.Search+"%")
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := query().
		Order("name ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Update(ctx context.Context, product *models.Product) error {
	return r.base.DB(ctx).
		Omit("PriceHistory").
		Save(product).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := repo.Active(r.base.DB(ctx)).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) AddPriceHistory(ctx context.Context, entry *models.PriceHistory) error {
	return r.base.DB(ctx).Create(entry).Error
}
