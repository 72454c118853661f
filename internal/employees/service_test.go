package employees

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

type stubEmployeesRepo struct {
	byID        map[uuid.UUID]*models.Employee
	positions   map[uuid.UUID]*models.JobPosition
	credentials map[uuid.UUID]*models.Credential
	deactivated []uuid.UUID
}

func newStubEmployeesRepo() *stubEmployeesRepo {
	return &stubEmployeesRepo{
		byID:        make(map[uuid.UUID]*models.Employee),
		positions:   make(map[uuid.UUID]*models.JobPosition),
		credentials: make(map[uuid.UUID]*models.Credential),
	}
}

func (s *stubEmployeesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubEmployeesRepo) Create(ctx context.Context, employee *models.Employee) error {
	for i := range employee.JobPositions {
		pos := employee.JobPositions[i]
		s.positions[pos.ID] = &pos
	}
	for i := range employee.Credentials {
		cred := employee.Credentials[i]
		s.credentials[cred.ID] = &cred
	}
	s.byID[employee.ID] = employee
	return nil
}

func (s *stubEmployeesRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	e, ok := s.byID[id]
	if !ok || e.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	copied.JobPositions = nil
	copied.Credentials = nil
	for _, pos := range s.positions {
		if pos.EmployeeID == id {
			copied.JobPositions = append(copied.JobPositions, *pos)
		}
	}
	for _, cred := range s.credentials {
		if cred.EmployeeID == id {
			copied.Credentials = append(copied.Credentials, *cred)
		}
	}
	return &copied, nil
}

func (s *stubEmployeesRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	for _, e := range s.byID {
		if e.UserID == userID && !e.IsDeleted {
			return s.FindByID(ctx, e.ID)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubEmployeesRepo) ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	for _, e := range s.byID {
		if e.UserID == userID && !e.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubEmployeesRepo) ExistsByTIN(ctx context.Context, tin string) (bool, error) {
	for _, e := range s.byID {
		if e.TIN == tin && !e.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubEmployeesRepo) List(ctx context.Context, params pagination.Params) ([]models.Employee, int64, error) {
	var rows []models.Employee
	for id, e := range s.byID {
		if e.IsDeleted {
			continue
		}
		full, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		rows = append(rows, *full)
	}
	return rows, int64(len(rows)), nil
}

func (s *stubEmployeesRepo) Update(ctx context.Context, employee *models.Employee) error {
	s.byID[employee.ID] = employee
	return nil
}

func (s *stubEmployeesRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	e, ok := s.byID[id]
	if !ok || e.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	e.IsDeleted = true
	return nil
}

func (s *stubEmployeesRepo) AddJobPosition(ctx context.Context, pos *models.JobPosition) error {
	s.positions[pos.ID] = pos
	return nil
}

func (s *stubEmployeesRepo) FindJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) (*models.JobPosition, error) {
	pos, ok := s.positions[positionID]
	if !ok || pos.EmployeeID != employeeID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *pos
	return &copied, nil
}

func (s *stubEmployeesRepo) UpdateJobPosition(ctx context.Context, pos *models.JobPosition) error {
	s.positions[pos.ID] = pos
	return nil
}

func (s *stubEmployeesRepo) RemoveJobPosition(ctx context.Context, employeeID, positionID uuid.UUID) error {
	pos, ok := s.positions[positionID]
	if !ok || pos.EmployeeID != employeeID {
		return gorm.ErrRecordNotFound
	}
	delete(s.positions, positionID)
	return nil
}

func (s *stubEmployeesRepo) AddCredential(ctx context.Context, cred *models.Credential) error {
	s.credentials[cred.ID] = cred
	return nil
}

func (s *stubEmployeesRepo) FindCredential(ctx context.Context, employeeID, credentialID uuid.UUID) (*models.Credential, error) {
	cred, ok := s.credentials[credentialID]
	if !ok || cred.EmployeeID != employeeID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *cred
	return &copied, nil
}

func (s *stubEmployeesRepo) UpdateCredential(ctx context.Context, cred *models.Credential) error {
	s.credentials[cred.ID] = cred
	return nil
}

func (s *stubEmployeesRepo) RemoveCredential(ctx context.Context, employeeID, credentialID uuid.UUID) error {
	cred, ok := s.credentials[credentialID]
	if !ok || cred.EmployeeID != employeeID {
		return gorm.ErrRecordNotFound
	}
	delete(s.credentials, credentialID)
	return nil
}

func (s *stubEmployeesRepo) DeactivateCredentials(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		if cred, ok := s.credentials[id]; ok {
			cred.IsActive = false
		}
		s.deactivated = append(s.deactivated, id)
	}
	return nil
}

type stubUserGetter struct {
	users map[uuid.UUID]*models.User
}

func (s *stubUserGetter) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type stubClientChecker struct {
	clients map[uuid.UUID]bool
}

func (s *stubClientChecker) ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.clients[userID], nil
}

type seqCodeGen struct {
	next int
}

func (g *seqCodeGen) Generate(ctx context.Context, kind enums.CodeKind, branch string) (string, error) {
	g.next++
	if branch == "" {
		branch = "DVO"
	}
	return fmt.Sprintf("FMH%s-%s-%05d", kind.Letter(), strings.ToUpper(branch), g.next), nil
}

type employeesFixture struct {
	repo    *stubEmployeesRepo
	users   *stubUserGetter
	clients *stubClientChecker
	svc     *service
}

func newEmployeesFixture(t *testing.T) *employeesFixture {
	t.Helper()

	f := &employeesFixture{
		repo:    newStubEmployeesRepo(),
		users:   &stubUserGetter{users: make(map[uuid.UUID]*models.User)},
		clients: &stubClientChecker{clients: make(map[uuid.UUID]bool)},
	}
	svc, err := NewService(f.repo, f.users, f.clients, &seqCodeGen{})
	require.NoError(t, err)
	f.svc = svc.(*service)
	return f
}

func (f *employeesFixture) addUser() uuid.UUID {
	id := uuid.New()
	f.users.users[id] = &models.User{ID: id, Email: fmt.Sprintf("%s@fmh.ph", id)}
	return id
}

func (f *employeesFixture) createEmployee(t *testing.T, tin string) *models.Employee {
	t.Helper()

	employee, err := f.svc.Create(context.Background(), CreateEmployeeInput{
		UserID: f.addUser(),
		TIN:    tin,
	})
	require.NoError(t, err)
	return employee
}

func TestCreateEmployee_AllocatesCode(t *testing.T) {
	f := newEmployeesFixture(t)

	employee, err := f.svc.Create(context.Background(), CreateEmployeeInput{
		UserID: f.addUser(),
		Branch: "ceb",
		TIN:    "123-456-789-000",
		JobPositions: []JobPositionInput{
			{Title: "Mechanic", Entity: "FMH Motors"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "FMHE-CEB-00001", employee.EmployeeCode)
	require.Len(t, employee.JobPositions, 1)
	assert.True(t, employee.JobPositions[0].IsActive)
}

func TestCreateEmployee_UserIsClient(t *testing.T) {
	f := newEmployeesFixture(t)
	userID := f.addUser()
	f.clients.clients[userID] = true

	_, err := f.svc.Create(context.Background(), CreateEmployeeInput{UserID: userID, TIN: "123-456-789-000"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
	assert.Contains(t, pkgerrors.As(err).Message(), "client record")
}

func TestCreateEmployee_DuplicateTIN(t *testing.T) {
	f := newEmployeesFixture(t)
	f.createEmployee(t, "123-456-789-000")

	_, err := f.svc.Create(context.Background(), CreateEmployeeInput{
		UserID: f.addUser(),
		TIN:    "123-456-789-000",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
	assert.Contains(t, pkgerrors.As(err).Message(), "tax identification number")
}

func TestEndJobPosition(t *testing.T) {
	f := newEmployeesFixture(t)
	employee := f.createEmployee(t, "111-111-111-000")

	withPos, err := f.svc.AddJobPosition(context.Background(), employee.ID, JobPositionInput{
		Title:  "Welder",
		Entity: "FMH Motors",
	})
	require.NoError(t, err)
	posID := withPos.JobPositions[0].ID

	ended, err := f.svc.EndJobPosition(context.Background(), employee.ID, posID)
	require.NoError(t, err)
	require.NotNil(t, ended.JobPositions[0].DateEnded)
	assert.False(t, ended.JobPositions[0].IsActive)

	_, err = f.svc.EndJobPosition(context.Background(), employee.ID, posID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestCredentials_ExpiredAutoDeactivateOnRead(t *testing.T) {
	f := newEmployeesFixture(t)
	employee := f.createEmployee(t, "222-222-222-000")

	acquired := time.Now().UTC().AddDate(-2, 0, 0)
	expired := acquired.AddDate(1, 0, 0) // a year ago
	_, err := f.svc.AddCredential(context.Background(), employee.ID, CredentialInput{
		CredentialType: "license",
		Value:          "N01-23-456789",
		AcquireOnDate:  &acquired,
		ExpireOnDate:   &expired,
	})
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), employee.ID)
	require.NoError(t, err)
	require.Len(t, got.Credentials, 1)
	assert.False(t, got.Credentials[0].IsActive, "expired credential reads as inactive")
	assert.NotEmpty(t, f.repo.deactivated, "deactivation is persisted, not just in the response")
}

func TestCredentials_ExpiryBeforeAcquisitionRejected(t *testing.T) {
	f := newEmployeesFixture(t)
	employee := f.createEmployee(t, "333-333-333-000")

	acquired := time.Now().UTC()
	expires := acquired.AddDate(0, -1, 0)
	_, err := f.svc.AddCredential(context.Background(), employee.ID, CredentialInput{
		CredentialType: "license",
		Value:          "N01-23-456789",
		AcquireOnDate:  &acquired,
		ExpireOnDate:   &expires,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestEmployeeUpdate_TINConflict(t *testing.T) {
	f := newEmployeesFixture(t)
	f.createEmployee(t, "444-444-444-000")
	other := f.createEmployee(t, "555-555-555-000")

	taken := "444-444-444-000"
	_, err := f.svc.Update(context.Background(), other.ID, UpdateEmployeeInput{TIN: &taken})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}
