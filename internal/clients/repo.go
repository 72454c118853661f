package clients

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

// NewRepository builds a clients repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.Rebind(tx)}
}

func (r *repository) Create(ctx context.Context, client *models.Client) error {
	return r.base.DB(ctx).Create(client).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := repo.Active(r.base.DB(ctx)).
		Preload("Occupations").
		First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := repo.Active(r.base.DB(ctx)).
		Preload("Occupations").
		Where("user_id = ?", userID).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repository) ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := repo.Active(r.base.DB(ctx)).
		Model(&models.Client{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Client, int64, error) {
	params = params.Normalize()

	var total int64
	if err := repo.Active(r.base.DB(ctx)).
		Model(&models.Client{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Client
	err := repo.Active(r.base.DB(ctx)).
		Preload("Occupations").
		Order("client_code ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Update(ctx context.Context, client *models.Client) error {
	return r.base.DB(ctx).
		Omit("Occupations").
		Save(client).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := repo.Active(r.base.DB(ctx)).
		Model(&models.Client{}).
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

func (r *repository) AddOccupation(ctx context.Context, occ *models.Occupation) error {
	return r.base.DB(ctx).Create(occ).Error
}

func (r *repository) FindOccupation(ctx context.Context, clientID, occupationID uuid.UUID) (*models.Occupation, error) {
	var occ models.Occupation
	err := r.base.DB(ctx).
		Where("client_id = ? AND id = ?", clientID, occupationID).
		First(&occ).Error
	if err != nil {
		return nil, err
	}
	return &occ, nil
}

func (r *repository) UpdateOccupation(ctx context.Context, occ *models.Occupation) error {
	return r.base.DB(ctx).Save(occ).Error
}

func (r *repository) RemoveOccupation(ctx context.Context, clientID, occupationID uuid.UUID) error {
	res := r.base.DB(ctx).
		Where("client_id = ? AND id = ?", clientID, occupationID).
		Delete(&models.Occupation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
