package employees

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

// NewRepository builds an employees repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.Rebind(tx)}
}

func (r *repository) Create(ctx context.Context, employee *models.Employee) error {
	return r.base.DB(ctx).Create(employee).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := repo.Active(r.base.DB(ctx)).
		Preload("JobPositions").
		Preload("Credentials").
		First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := repo.Active(r.base.DB(ctx)).
		Preload("JobPositions").
		Preload("Credentials").
		Where("user_id = ?", userID).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := repo.Active(r.base.DB(ctx)).
		Model(&models.Employee{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByTIN(ctx context.Context, tin string) (bool, error) {
	var count int64
	err := repo.Active(r.base.DB(ctx)).
		Model(&models.Employee{}).
		Where("tax_identification_number = ?", tin).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Employee, int64, error) {
	params = params.Normalize()

	var total int64
	if err := repo.Active(r.base.DB(ctx)).
		Model(&models.Employee{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Employee
	err := repo.Active(r.base.DB(ctx)).
		Preload("JobPositions").
		Preload("Credentials").
		Order("employee_code ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Update(ctx context.Context, employee *models.Employee) error {
	return r.base.DB(ctx).
		Omit("JobPositions", "Credentials").
		Save(employee).Error
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := repo.Active(r.base.DB(ctx)).
		Model(&models.Employee{}).
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

func (r *repository) AddJobPosition(ctx context.Context, pos *models.JobPosition) error {
	return r.base.DB(ctx).Create(pos).Error
}

func (r *repository) FindJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) (*models.JobPosition, error) {
	var pos models.JobPosition
	err := r.base.DB(ctx).
		Where("employee_id = ? AND id = ?", employeeID, positionID).
		First(&pos).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *repository) UpdateJobPosition(ctx context.Context, pos *models.JobPosition) error {
	return r.base.DB(ctx).Save(pos).Error
}

func (r *repository) RemoveJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) error {
	res := r.base.DB(ctx).
		Where("employee_id = ? AND id = ?", employeeID, positionID).
		Delete(&models.JobPosition{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) AddCredential(ctx context.Context, cred *models.Credential) error {
	return r.base.DB(ctx).Create(cred).Error
}

func (r *repository) FindCredential(ctx context.Context, employeeID, credentialID uuid.UUID) (*models.Credential, error) {
	var cred models.Credential
	err := r.base.DB(ctx).
		Where("employee_id = ? AND id = ?", employeeID, credentialID).
		First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *repository) UpdateCredential(ctx context.Context, cred *models.Credential) error {
	return r.base.DB(ctx).Save(cred).Error
}

func (r *repository) RemoveCredential(ctx context.Context, employeeID, credentialID uuid.UUID) error {
	res := r.base.DB(ctx).
		Where("employee_id = ? AND id = ?", employeeID, credentialID).
		Delete(&models.Credential{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeactivateCredentials(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.base.DB(ctx).
		Model(&models.Credential{}).
		Where("id IN ?", ids).
		UpdateColumn("is_active", false).Error
}
