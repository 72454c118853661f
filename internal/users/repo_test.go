package users

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

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  date_of_birth DATETIME,
  gender TEXT,
  is_admin BOOLEAN NOT NULL DEFAULT 0,
  is_deleted BOOLEAN NOT NULL DEFAULT 0,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec(`DELETE FROM users`).Error)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    "Maria",
		LastName:     "Santos",
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUsersRepo_CreateAndFind(t *testing.T) {
	db := setupUsersTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "maria@fmh.ph")

	byEmail, err := r.FindByEmail(ctx, "maria@fmh.ph")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := r.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria@fmh.ph", byID.Email)
}

func TestUsersRepo_FindSkipsSoftDeleted(t *testing.T) {
	db := setupUsersTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "gone@fmh.ph")
	require.NoError(t, r.SoftDelete(ctx, user.ID))

	_, err := r.FindByEmail(ctx, "gone@fmh.ph")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = r.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUsersRepo_SoftDeleteMissing(t *testing.T) {
	db := setupUsersTestDB(t)
	r := NewRepository(db)

	err := r.SoftDelete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUsersRepo_SetAdmin(t *testing.T) {
	db := setupUsersTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "admin@fmh.ph")
	require.NoError(t, r.SetAdmin(ctx, user.ID, true))

	got, err := r.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
}

func TestUsersRepo_ListPaginates(t *testing.T) {
	db := setupUsersTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	for _, email := range []string{"a@fmh.ph", "b@fmh.ph", "c@fmh.ph"} {
		seedUser(t, db, email)
	}
	deleted := seedUser(t, db, "d@fmh.ph")
	require.NoError(t, r.SoftDelete(ctx, deleted.ID))

	rows, total, err := r.List(ctx, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total, "soft-deleted rows are excluded from totals")
	assert.Len(t, rows, 2)
}

func TestUsersRepo_UpdateLastLogin(t *testing.T) {
	db := setupUsersTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "login@fmh.ph")
	at := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, r.UpdateLastLogin(ctx, user.ID, at))

	got, err := r.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, got.LastLoginAt.Equal(at))
}
