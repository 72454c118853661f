package clientservices

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/repo"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// ErrVersionConflict signals that a versioned update lost the race and the
// caller is holding a stale copy of the record.
var ErrVersionConflict = errors.New("client service version conflict")

type repository struct {
	base repo.Base
}

// NewRepository builds a client services repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.Rebind(tx)}
}

func (r *repository) Create(ctx context.Context, record *models.ClientService) error {
	return r.base.DB(ctx).Create(record).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ClientService, error) {
	var record models.ClientService
	err := r.base.DB(ctx).
		Preload("Lines.Commissions").
		Preload("Payments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("date_paid ASC")
		}).
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters RecordFilters) ([]models.ClientService, int64, error) {
	params = params.Normalize()

	query := func() *gorm.DB {
		q := r.base.DB(ctx).Model(&models.ClientService{})
		if filters.ClientID != nil {
			q = q.Where("client_id = ?", *filters.ClientID)
		}
		if filters.Status != nil {
			q = q.Where("status = ?", *filters.Status)
		}
		if filters.IsVoid != nil {
			q = q.Where("is_void = ?", *filters.IsVoid)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ClientService
	err := query().
		Preload("Lines").
		Order("date_rendered DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) UpdateStateVersioned(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) error {
	payload := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		payload[k] = v
	}
	payload["version"] = version + 1

	res := r.base.DB(ctx).
		Model(&models.ClientService{}).
		Where("id = ? AND version = ?", id, version).
		UpdateColumns(payload)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *repository) ReplaceLines(ctx context.Context, recordID uuid.UUID, lines []models.ServiceLine) error {
	db := r.base.DB(ctx)

	var existing []models.ServiceLine
	if err := db.Where("client_service_id = ?", recordID).Find(&existing).Error; err != nil {
		return err
	}
	for _, line := range existing {
		if err := db.Where("service_line_id = ?", line.ID).Delete(&models.ServiceCommission{}).Error; err != nil {
			return err
		}
	}
	if err := db.Where("client_service_id = ?", recordID).Delete(&models.ServiceLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return db.Create(&lines).Error
}

func (r *repository) AddPayment(ctx context.Context, payment *models.ServicePayment) error {
	return r.base.DB(ctx).Create(payment).Error
}
