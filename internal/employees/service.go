package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/codes"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// Unique indexes GORM derives for employees.
const (
	employeesUserConstraint = "idx_employees_user_id"
	employeesTINConstraint  = "idx_employees_tax_identification_number"
)

type userGetter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type clientChecker interface {
	ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

type service struct {
	repo    Repository
	users   userGetter
	clients clientChecker
	codes   codes.Generator
	now     func() time.Time
}

// NewService wires the employee-record service.
func NewService(repo Repository, users userGetter, clients clientChecker, gen codes.Generator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("employees repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users getter required")
	}
	if clients == nil {
		return nil, fmt.Errorf("client checker required")
	}
	if gen == nil {
		return nil, fmt.Errorf("code generator required")
	}
	return &service{
		repo:    repo,
		users:   users,
		clients: clients,
		codes:   gen,
		now:     time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_id is required")
	}
	tin := strings.TrimSpace(input.TIN)
	if tin == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax_identification_number is required")
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up user")
	}

	// A user holds at most one of the two roles.
	isClient, err := s.clients.ExistsByUser(ctx, input.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking client record")
	}
	if isClient {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already has a client record")
	}

	exists, err := s.repo.ExistsByUser(ctx, input.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking employee record")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already has an employee record")
	}

	tinTaken, err := s.repo.ExistsByTIN(ctx, tin)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking tax identification number")
	}
	if tinTaken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "tax identification number already registered")
	}

	code, err := s.codes.Generate(ctx, enums.CodeKindEmployee, input.Branch)
	if err != nil {
		return nil, err
	}

	dateHired := s.now().UTC()
	if input.DateHired != nil {
		dateHired = *input.DateHired
	}

	employee := &models.Employee{
		ID:           uuid.New(),
		UserID:       input.UserID,
		EmployeeCode: code,
		DateHired:    dateHired,
		TIN:          tin,
	}
	for _, pos := range input.JobPositions {
		child, err := s.buildJobPosition(employee.ID, pos)
		if err != nil {
			return nil, err
		}
		employee.JobPositions = append(employee.JobPositions, *child)
	}
	for _, cred := range input.Credentials {
		child, err := s.buildCredential(employee.ID, cred)
		if err != nil {
			return nil, err
		}
		employee.Credentials = append(employee.Credentials, *child)
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		switch {
		case db.IsUniqueViolation(err, employeesTINConstraint):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "tax identification number already registered")
		case db.IsUniqueViolation(err, employeesUserConstraint):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already has an employee record")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating employee")
	}
	return employee, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return s.find(ctx, id)
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	employee, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up employee")
	}
	if err := s.sweepExpiredCredentials(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*EmployeeList, error) {
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing employees")
	}
	for i := range rows {
		if err := s.sweepExpiredCredentials(ctx, &rows[i]); err != nil {
			return nil, err
		}
	}
	return &EmployeeList{
		Employees:  rows,
		Pagination: pagination.NewResult(params, total),
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TIN != nil {
		tin := strings.TrimSpace(*input.TIN)
		if tin == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax_identification_number cannot be blank")
		}
		if tin != employee.TIN {
			taken, err := s.repo.ExistsByTIN(ctx, tin)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking tax identification number")
			}
			if taken {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "tax identification number already registered")
			}
			employee.TIN = tin
		}
	}
	if input.DateRetired != nil {
		employee.DateRetired = input.DateRetired
	}

	if err := s.repo.Update(ctx, employee); err != nil {
		if db.IsUniqueViolation(err, employeesTINConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "tax identification number already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating employee")
	}
	return employee, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting employee")
	}
	return nil
}

func (s *service) AddJobPosition(ctx context.Context, employeeID uuid.UUID, input JobPositionInput) (*models.Employee, error) {
	employee, err := s.find(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	pos, err := s.buildJobPosition(employee.ID, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddJobPosition(ctx, pos); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adding job position")
	}
	return s.find(ctx, employeeID)
}

func (s *service) UpdateJobPosition(ctx context.Context, employeeID, positionID uuid.UUID, input JobPositionInput) (*models.Employee, error) {
	if _, err := s.find(ctx, employeeID); err != nil {
		return nil, err
	}

	pos, err := s.findJobPosition(ctx, employeeID, positionID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) != "" {
		pos.Title = strings.TrimSpace(input.Title)
	}
	if strings.TrimSpace(input.Entity) != "" {
		pos.Entity = strings.TrimSpace(input.Entity)
	}
	if input.DateStarted != nil {
		pos.DateStarted = *input.DateStarted
	}
	if input.DateEnded != nil {
		pos.DateEnded = input.DateEnded
		pos.IsActive = false
	}
	if input.IsActive != nil {
		pos.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateJobPosition(ctx, pos); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating job position")
	}
	return s.find(ctx, employeeID)
}

// EndJobPosition closes a position: date_ended = now, is_active = false.
func (s *service) EndJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) (*models.Employee, error) {
	if _, err := s.find(ctx, employeeID); err != nil {
		return nil, err
	}

	pos, err := s.findJobPosition(ctx, employeeID, positionID)
	if err != nil {
		return nil, err
	}
	if pos.DateEnded != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "job position already ended")
	}

	now := s.now().UTC()
	pos.DateEnded = &now
	pos.IsActive = false
	if err := s.repo.UpdateJobPosition(ctx, pos); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ending job position")
	}
	return s.find(ctx, employeeID)
}

func (s *service) RemoveJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) (*models.Employee, error) {
	if _, err := s.find(ctx, employeeID); err != nil {
		return nil, err
	}

	if err := s.repo.RemoveJobPosition(ctx, employeeID, positionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job position not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing job position")
	}
	return s.find(ctx, employeeID)
}

func (s *service) AddCredential(ctx context.Context, employeeID uuid.UUID, input CredentialInput) (*models.Employee, error) {
	employee, err := s.find(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	cred, err := s.buildCredential(employee.ID, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddCredential(ctx, cred); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adding credential")
	}
	return s.find(ctx, employeeID)
}

func (s *service) UpdateCredential(ctx context.Context, employeeID, credentialID uuid.UUID, input CredentialInput) (*models.Employee, error) {
	if _, err := s.find(ctx, employeeID); err != nil {
		return nil, err
	}

	cred, err := s.repo.FindCredential(ctx, employeeID, credentialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "credential not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up credential")
	}

	if strings.TrimSpace(input.CredentialType) != "" {
		cred.CredentialType = strings.TrimSpace(input.CredentialType)
	}
	if strings.TrimSpace(input.Value) != "" {
		cred.Value = strings.TrimSpace(input.Value)
	}
	if input.AcquireOnDate != nil {
		cred.AcquireOnDate = *input.AcquireOnDate
	}
	if input.ExpireOnDate != nil {
		cred.ExpireOnDate = input.ExpireOnDate
	}
	if input.IsActive != nil {
		cred.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateCredential(ctx, cred); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating credential")
	}
	return s.find(ctx, employeeID)
}

func (s *service) RemoveCredential(ctx context.Context, employeeID, credentialID uuid.UUID) (*models.Employee, error) {
	if _, err := s.find(ctx, employeeID); err != nil {
		return nil, err
	}

	if err := s.repo.RemoveCredential(ctx, employeeID, credentialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "credential not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing credential")
	}
	return s.find(ctx, employeeID)
}

func (s *service) ListCredentials(ctx context.Context, employeeID uuid.UUID) ([]models.Credential, error) {
	employee, err := s.find(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return employee.Credentials, nil
}

// find loads the employee and sweeps expired credentials so reads never
// surface an expired-but-active entry.
func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up employee")
	}
	if err := s.sweepExpiredCredentials(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *service) sweepExpiredCredentials(ctx context.Context, employee *models.Employee) error {
	now := s.now().UTC()
	var expired []uuid.UUID
	for i := range employee.Credentials {
		cred := &employee.Credentials[i]
		if cred.IsActive && cred.IsExpired(now) {
			cred.IsActive = false
			expired = append(expired, cred.ID)
		}
	}
	if len(expired) == 0 {
		return nil
	}
	if err := s.repo.DeactivateCredentials(ctx, expired); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivating expired credentials")
	}
	return nil
}

func (s *service) findJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) (*models.JobPosition, error) {
	pos, err := s.repo.FindJobPosition(ctx, employeeID, positionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job position not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up job position")
	}
	return pos, nil
}

func (s *service) buildJobPosition(employeeID uuid.UUID, input JobPositionInput) (*models.JobPosition, error) {
	title := strings.TrimSpace(input.Title)
	entity := strings.TrimSpace(input.Entity)
	if title == "" || entity == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job position title and entity are required")
	}

	started := s.now().UTC()
	if input.DateStarted != nil {
		started = *input.DateStarted
	}
	pos := &models.JobPosition{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Title:       title,
		Entity:      entity,
		DateStarted: started,
		DateEnded:   input.DateEnded,
		IsActive:    input.DateEnded == nil,
	}
	if input.IsActive != nil {
		pos.IsActive = *input.IsActive
	}
	return pos, nil
}

func (s *service) buildCredential(employeeID uuid.UUID, input CredentialInput) (*models.Credential, error) {
	credType := strings.TrimSpace(input.CredentialType)
	value := strings.TrimSpace(input.Value)
	if credType == "" || value == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "credential_type and value are required")
	}

	acquired := s.now().UTC()
	if input.AcquireOnDate != nil {
		acquired = *input.AcquireOnDate
	}
	if input.ExpireOnDate != nil && !input.ExpireOnDate.After(acquired) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expire_on_date must be after acquire_on_date")
	}

	cred := &models.Credential{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		CredentialType: credType,
		Value:          value,
		AcquireOnDate:  acquired,
		ExpireOnDate:   input.ExpireOnDate,
		IsActive:       true,
	}
	if input.IsActive != nil {
		cred.IsActive = *input.IsActive
	}
	return cred, nil
}
