package clients

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

// clientsUserConstraint is the unique index GORM derives for clients.user_id.
const clientsUserConstraint = "idx_clients_user_id"

type userGetter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type employeeChecker interface {
	ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

type service struct {
	repo      Repository
	users     userGetter
	employees employeeChecker
	codes     codes.Generator
	now       func() time.Time
}

// NewService wires the client-record service.
func NewService(repo Repository, users userGetter, employees employeeChecker, gen codes.Generator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("clients repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("users getter required")
	}
	if employees == nil {
		return nil, fmt.Errorf("employee checker required")
	}
	if gen == nil {
		return nil, fmt.Errorf("code generator required")
	}
	return &service{
		repo:      repo,
		users:     users,
		employees: employees,
		codes:     gen,
		now:       time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateClientInput) (*models.Client, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user_id is required")
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up user")
	}

	// A user holds at most one of the two roles.
	isEmployee, err := s.employees.ExistsByUser(ctx, input.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking employee record")
	}
	if isEmployee {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already has an employee record")
	}

	exists, err := s.repo.ExistsByUser(ctx, input.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking client record")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already has a client record")
	}

	code, err := s.codes.Generate(ctx, enums.CodeKindClient, input.Branch)
	if err != nil {
		return nil, err
	}

	dateCreated := s.now().UTC()
	if input.DateCreated != nil {
		dateCreated = *input.DateCreated
	}

	client := &models.Client{
		ID:          uuid.New(),
		UserID:      input.UserID,
		ClientCode:  code,
		DateCreated: dateCreated,
		Notes:       input.Notes,
	}
	for _, occ := range input.Occupations {
		child, err := buildOccupation(client.ID, occ)
		if err != nil {
			return nil, err
		}
		client.Occupations = append(client.Occupations, *child)
	}

	if err := s.repo.Create(ctx, client); err != nil {
		if db.IsUniqueViolation(err, clientsUserConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already has a client record")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating client")
	}
	return client, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return s.find(ctx, id)
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	client, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up client")
	}
	return client, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ClientList, error) {
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing clients")
	}
	return &ClientList{
		Clients:    rows,
		Pagination: pagination.NewResult(params, total),
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*models.Client, error) {
	client, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Notes != nil {
		client.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating client")
	}
	return client, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting client")
	}
	return nil
}

func (s *service) AddOccupation(ctx context.Context, clientID uuid.UUID, input OccupationInput) (*models.Client, error) {
	client, err := s.find(ctx, clientID)
	if err != nil {
		return nil, err
	}

	occ, err := buildOccupation(client.ID, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddOccupation(ctx, occ); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adding occupation")
	}
	return s.find(ctx, clientID)
}

func (s *service) UpdateOccupation(ctx context.Context, clientID, occupationID uuid.UUID, input OccupationInput) (*models.Client, error) {
	if _, err := s.find(ctx, clientID); err != nil {
		return nil, err
	}

	occ, err := s.repo.FindOccupation(ctx, clientID, occupationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "occupation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up occupation")
	}

	if strings.TrimSpace(input.Position) != "" {
		occ.Position = strings.TrimSpace(input.Position)
	}
	if strings.TrimSpace(input.CompanyName) != "" {
		occ.CompanyName = strings.TrimSpace(input.CompanyName)
	}
	if input.Address != nil {
		occ.Address = input.Address
	}
	if input.YearJoined != nil {
		occ.YearJoined = input.YearJoined
	}
	if input.IsActive != nil {
		occ.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateOccupation(ctx, occ); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating occupation")
	}
	return s.find(ctx, clientID)
}

func (s *service) RemoveOccupation(ctx context.Context, clientID, occupationID uuid.UUID) (*models.Client, error) {
	if _, err := s.find(ctx, clientID); err != nil {
		return nil, err
	}

	if err := s.repo.RemoveOccupation(ctx, clientID, occupationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "occupation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing occupation")
	}
	return s.find(ctx, clientID)
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up client")
	}
	return client, nil
}

func buildOccupation(clientID uuid.UUID, input OccupationInput) (*models.Occupation, error) {
	position := strings.TrimSpace(input.Position)
	company := strings.TrimSpace(input.CompanyName)
	if position == "" || company == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "occupation position and company_name are required")
	}

	occ := &models.Occupation{
		ID:          uuid.New(),
		ClientID:    clientID,
		Position:    position,
		CompanyName: company,
		Address:     input.Address,
		YearJoined:  input.YearJoined,
		IsActive:    true,
	}
	if input.IsActive != nil {
		occ.IsActive = *input.IsActive
	}
	return occ, nil
}
