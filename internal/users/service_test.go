package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/auth"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/config"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/security"
)

type stubUsersRepo struct {
	byID      map[uuid.UUID]*models.User
	byEmail   map[string]*models.User
	createErr error
	lastLogin map[uuid.UUID]time.Time
}

func newStubUsersRepo() *stubUsersRepo {
	return &stubUsersRepo{
		byID:      make(map[uuid.UUID]*models.User),
		byEmail:   make(map[string]*models.User),
		lastLogin: make(map[uuid.UUID]time.Time),
	}
}

func (s *stubUsersRepo) add(u *models.User) {
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
}

func (s *stubUsersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubUsersRepo) Create(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.add(user)
	return nil
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok || u.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok || u.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *stubUsersRepo) List(ctx context.Context, params pagination.Params) ([]models.User, int64, error) {
	var rows []models.User
	for _, u := range s.byID {
		if !u.IsDeleted {
			rows = append(rows, *u)
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *stubUsersRepo) Update(ctx context.Context, user *models.User) error {
	s.add(user)
	return nil
}

func (s *stubUsersRepo) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	u, ok := s.byID[id]
	if !ok || u.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	u.IsAdmin = isAdmin
	return nil
}

func (s *stubUsersRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	u, ok := s.byID[id]
	if !ok || u.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	u.IsDeleted = true
	return nil
}

func (s *stubUsersRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin[id] = at
	return nil
}

type stubSessions struct {
	generated map[string]string
	rotateErr error
}

func newStubSessions() *stubSessions {
	return &stubSessions{generated: make(map[string]string)}
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.generated[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	stored, ok := s.generated[oldAccessID]
	if !ok || stored != provided {
		return "", "", auth.ErrInvalidRefreshToken
	}
	delete(s.generated, oldAccessID)
	newID := auth.NewAccessID()
	token := "refresh-" + newID
	s.generated[newID] = token
	return newID, token, nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	delete(s.generated, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "fmh-backend",
		ExpirationMinutes: 15,
	}
}

func newTestService(t *testing.T, repo Repository, sessions sessionManager) Service {
	t.Helper()
	svc, err := NewService(repo, sessions, testJWTConfig())
	require.NoError(t, err)
	return svc
}

func seedAccount(t *testing.T, repo *stubUsersRepo, email, password string, admin bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{
		ID:           uuid.New(),
		FirstName:    "Jose",
		LastName:     "Rizal",
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	repo.add(u)
	return u
}

func TestRegister_NormalizesEmailAndHashes(t *testing.T) {
	repo := newStubUsersRepo()
	svc := newTestService(t, repo, newStubSessions())

	dto, err := svc.Register(context.Background(), RegisterInput{
		Email:     "  New.User@FMH.PH ",
		Password:  "s3cretpass",
		FirstName: "New",
		LastName:  "User",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.user@fmh.ph", dto.Email)

	stored := repo.byEmail["new.user@fmh.ph"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cretpass", stored.PasswordHash)
	ok, err := security.VerifyPassword("s3cretpass", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestService(t, newStubUsersRepo(), newStubSessions())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:     "short@fmh.ph",
		Password:  "tiny",
		FirstName: "Short",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newStubUsersRepo()
	repo.createErr = errDuplicateEmail()
	svc := newTestService(t, repo, newStubSessions())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:     "taken@fmh.ph",
		Password:  "s3cretpass",
		FirstName: "Taken",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

// errDuplicateEmail mimics the driver text IsUniqueViolation falls back on.
func errDuplicateEmail() error {
	return &stringError{"UNIQUE constraint failed: users.email"}
}

type stringError struct{ msg string }

func (e *stringError) Error() string { return e.msg }

func TestLogin_IssuesTokensAndRecordsLogin(t *testing.T) {
	repo := newStubUsersRepo()
	sessions := newStubSessions()
	svc := newTestService(t, repo, sessions)
	user := seedAccount(t, repo, "jose@fmh.ph", "s3cretpass", true)

	res, err := svc.Login(context.Background(), LoginInput{Email: "Jose@FMH.PH", Password: "s3cretpass"})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, user.ID, res.User.ID)

	claims, err := auth.ParseAccessToken(testJWTConfig(), res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, sessions.generated[claims.ID], res.RefreshToken)

	_, recorded := repo.lastLogin[user.ID]
	assert.True(t, recorded)
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := newStubUsersRepo()
	svc := newTestService(t, repo, newStubSessions())
	seedAccount(t, repo, "jose@fmh.ph", "s3cretpass", false)

	cases := []LoginInput{
		{Email: "jose@fmh.ph", Password: "wrongpass1"},
		{Email: "nobody@fmh.ph", Password: "s3cretpass"},
	}
	for _, in := range cases {
		_, err := svc.Login(context.Background(), in)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
		assert.Equal(t, "invalid credentials", pkgerrors.As(err).Message())
	}
}

func TestLogin_SoftDeletedAccount(t *testing.T) {
	repo := newStubUsersRepo()
	svc := newTestService(t, repo, newStubSessions())
	user := seedAccount(t, repo, "gone@fmh.ph", "s3cretpass", false)
	user.IsDeleted = true

	_, err := svc.Login(context.Background(), LoginInput{Email: "gone@fmh.ph", Password: "s3cretpass"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestRefresh_RotatesSession(t *testing.T) {
	repo := newStubUsersRepo()
	sessions := newStubSessions()
	svc := newTestService(t, repo, sessions)
	seedAccount(t, repo, "jose@fmh.ph", "s3cretpass", false)

	login, err := svc.Login(context.Background(), LoginInput{Email: "jose@fmh.ph", Password: "s3cretpass"})
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), RefreshInput{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	// The old pair is single-use.
	_, err = svc.Refresh(context.Background(), RefreshInput{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestRefresh_DeletedAccountRejected(t *testing.T) {
	repo := newStubUsersRepo()
	sessions := newStubSessions()
	svc := newTestService(t, repo, sessions)
	user := seedAccount(t, repo, "jose@fmh.ph", "s3cretpass", false)

	login, err := svc.Login(context.Background(), LoginInput{Email: "jose@fmh.ph", Password: "s3cretpass"})
	require.NoError(t, err)

	user.IsDeleted = true

	_, err = svc.Refresh(context.Background(), RefreshInput{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogout_RevokesSession(t *testing.T) {
	repo := newStubUsersRepo()
	sessions := newStubSessions()
	svc := newTestService(t, repo, sessions)
	seedAccount(t, repo, "jose@fmh.ph", "s3cretpass", false)

	login, err := svc.Login(context.Background(), LoginInput{Email: "jose@fmh.ph", Password: "s3cretpass"})
	require.NoError(t, err)

	claims, err := auth.ParseAccessToken(testJWTConfig(), login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims.ID))
	_, alive := sessions.generated[claims.ID]
	assert.False(t, alive)
}

func TestUpdateMe_PartialAndRehash(t *testing.T) {
	repo := newStubUsersRepo()
	svc := newTestService(t, repo, newStubSessions())
	user := seedAccount(t, repo, "jose@fmh.ph", "s3cretpass", false)

	phone := "+63 917 000 1234"
	newPass := "an0therpass"
	dto, err := svc.UpdateMe(context.Background(), user.ID, UpdateProfileInput{
		Phone:    &phone,
		Password: &newPass,
	})
	require.NoError(t, err)
	require.NotNil(t, dto.Phone)
	assert.Equal(t, phone, *dto.Phone)
	assert.Equal(t, "Jose", dto.FirstName, "untouched fields survive")

	ok, err := security.VerifyPassword(newPass, repo.byID[user.ID].PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMe_NotFound(t *testing.T) {
	svc := newTestService(t, newStubUsersRepo(), newStubSessions())

	_, err := svc.Me(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSetAdminAndDelete(t *testing.T) {
	repo := newStubUsersRepo()
	svc := newTestService(t, repo, newStubSessions())
	user := seedAccount(t, repo, "jose@fmh.ph", "s3cretpass", false)

	dto, err := svc.SetAdmin(context.Background(), user.ID, true)
	require.NoError(t, err)
	assert.True(t, dto.IsAdmin)

	require.NoError(t, svc.Delete(context.Background(), user.ID))

	err = svc.Delete(context.Background(), user.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestList_WrapsPagination(t *testing.T) {
	repo := newStubUsersRepo()
	svc := newTestService(t, repo, newStubSessions())
	seedAccount(t, repo, "a@fmh.ph", "s3cretpass", false)
	seedAccount(t, repo, "b@fmh.ph", "s3cretpass", false)

	list, err := svc.List(context.Background(), pagination.Params{Page: 1, Limit: 25})
	require.NoError(t, err)
	assert.Len(t, list.Users, 2)
	assert.Equal(t, int64(2), list.Pagination.TotalRows)
	for _, u := range list.Users {
		assert.True(t, strings.HasSuffix(u.Email, "@fmh.ph"))
	}
}
