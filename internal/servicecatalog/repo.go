package servicecatalog

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

// NewRepository builds a catalog-services repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.Rebind(tx)}
}

func (r *repository) Create(ctx context.Context, svc *models.Service) error {
	return r.base.DB(ctx).Create(svc).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	err := r.base.DB(ctx).
		Preload("Materials").
		First(&svc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, activeOnly bool) ([]models.Service, int64, error) {
	params = params.Normalize()

	query := func() *gorm.DB {
		q := r.base.DB(ctx).Model(&models.Service{})
		if activeOnly {
			q = q.Where("is_active = ?", true)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Service
	err := query().
		Preload("Materials").
		Order("name ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Update(ctx context.Context, svc *models.Service) error {
	return r.base.DB(ctx).
		Omit("Materials").
		Save(svc).Error
}

func (r *repository) ReplaceMaterials(ctx context.Context, serviceID uuid.UUID, materials []models.ServiceMaterial) error {
	tx := r.base.DB(ctx)
	if err := tx.Where("service_id = ?", serviceID).Delete(&models.ServiceMaterial{}).Error; err != nil {
		return err
	}
	if len(materials) == 0 {
		return nil
	}
	return tx.Create(&materials).Error
}
