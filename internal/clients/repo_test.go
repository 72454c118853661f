package clients

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

func setupClientsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{`
CREATE TABLE IF NOT EXISTS clients (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  client_code TEXT NOT NULL UNIQUE,
  date_created DATETIME NOT NULL,
  notes TEXT,
  is_deleted BOOLEAN NOT NULL DEFAULT 0,
  version INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS occupations (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  position TEXT NOT NULL,
  company_name TEXT NOT NULL,
  address TEXT,
  year_joined TEXT,
  is_active BOOLEAN NOT NULL DEFAULT 1
);`}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	require.NoError(t, db.Exec(`DELETE FROM occupations`).Error)
	require.NoError(t, db.Exec(`DELETE FROM clients`).Error)
	return db
}

func seedClient(t *testing.T, db *gorm.DB, code string) *models.Client {
	t.Helper()

	client := &models.Client{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		ClientCode:  code,
		DateCreated: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func TestClientsRepo_CreateWithOccupations(t *testing.T) {
	db := setupClientsTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	client := &models.Client{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		ClientCode:  "FMHC-DVO-00001",
		DateCreated: time.Now().UTC(),
		Occupations: []models.Occupation{
			{ID: uuid.New(), Position: "Teacher", CompanyName: "DepEd", IsActive: true},
		},
	}
	require.NoError(t, r.Create(ctx, client))

	got, err := r.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, got.Occupations, 1)
	assert.Equal(t, "Teacher", got.Occupations[0].Position)
}

func TestClientsRepo_FindByUserAndExists(t *testing.T) {
	db := setupClientsTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "FMHC-DVO-00002")

	got, err := r.FindByUser(ctx, client.UserID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.ID)

	exists, err := r.ExistsByUser(ctx, client.UserID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.ExistsByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClientsRepo_SoftDeleteHidesRecord(t *testing.T) {
	db := setupClientsTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "FMHC-DVO-00003")
	require.NoError(t, r.SoftDelete(ctx, client.ID))

	_, err := r.FindByID(ctx, client.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := r.ExistsByUser(ctx, client.UserID)
	require.NoError(t, err)
	assert.False(t, exists, "soft-deleted client no longer blocks the user slot")

	assert.ErrorIs(t, r.SoftDelete(ctx, client.ID), gorm.ErrRecordNotFound)
}

func TestClientsRepo_OccupationLifecycle(t *testing.T) {
	db := setupClientsTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	client := seedClient(t, db, "FMHC-DVO-00004")

	occ := &models.Occupation{
		ID:          uuid.New(),
		ClientID:    client.ID,
		Position:    "Nurse",
		CompanyName: "City Hospital",
		IsActive:    true,
	}
	require.NoError(t, r.AddOccupation(ctx, occ))

	found, err := r.FindOccupation(ctx, client.ID, occ.ID)
	require.NoError(t, err)
	found.Position = "Head Nurse"
	require.NoError(t, r.UpdateOccupation(ctx, found))

	again, err := r.FindOccupation(ctx, client.ID, occ.ID)
	require.NoError(t, err)
	assert.Equal(t, "Head Nurse", again.Position)

	require.NoError(t, r.RemoveOccupation(ctx, client.ID, occ.ID))
	assert.ErrorIs(t, r.RemoveOccupation(ctx, client.ID, occ.ID), gorm.ErrRecordNotFound)
}

func TestClientsRepo_ListPaginates(t *testing.T) {
	db := setupClientsTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	seedClient(t, db, "FMHC-DVO-00005")
	seedClient(t, db, "FMHC-DVO-00006")
	seedClient(t, db, "FMHC-DVO-00007")

	rows, total, err := r.List(ctx, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "FMHC-DVO-00007", rows[0].ClientCode, "ordered by client_code")
}
