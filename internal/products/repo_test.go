package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{`
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  images TEXT,
  category_id TEXT NOT NULL,
  sub_category_id TEXT,
  is_deleted BOOLEAN NOT NULL DEFAULT 0,
  version INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS product_price_history (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  price NUMERIC NOT NULL,
  date_changed DATETIME NOT NULL
);`, `
CREATE TABLE IF NOT EXISTS product_categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  is_deleted BOOLEAN NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS product_sub_categories (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL
);`}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range []string{"product_price_history", "products", "product_sub_categories", "product_categories"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, categoryID uuid.UUID) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:         uuid.New(),
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestProductsRepo_PriceHistoryOrdered(t *testing.T) {
	db := setupCatalogTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Engine Oil 1L", "450.00", uuid.New())

	older := &models.PriceHistory{
		ID:          uuid.New(),
		ProductID:   product.ID,
		Price:       decimal.RequireFromString("400.00"),
		DateChanged: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &models.PriceHistory{
		ID:          uuid.New(),
		ProductID:   product.ID,
		Price:       decimal.RequireFromString("450.00"),
		DateChanged: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.AddPriceHistory(ctx, newer))
	require.NoError(t, r.AddPriceHistory(ctx, older))

	got, err := r.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.PriceHistory, 2)
	assert.True(t, got.PriceHistory[0].DateChanged.Before(got.PriceHistory[1].DateChanged))
}

func TestProductsRepo_ListFilters(t *testing.T) {
	db := setupCatalogTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	catA := uuid.New()
	catB := uuid.New()
	seedProduct(t, db, "Brake Pad", "1200.00", catA)
	seedProduct(t, db, "Brake Fluid", "350.00", catA)
	deleted := seedProduct(t, db, "Old Brake Pad", "900.00", catA)
	seedProduct(t, db, "Wiper Blade", "250.00", catB)
	require.NoError(t, r.SoftDelete(ctx, deleted.ID))

	rows, total, err := r.List(ctx, pagination.Params{}, ProductFilters{CategoryID: &catA})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	rows, total, err = r.List(ctx, pagination.Params{}, ProductFilters{Search: "Fluid"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Brake Fluid", rows[0].Name)
}

func TestCategoryRepo_DeleteAndRestore(t *testing.T) {
	db := setupCatalogTestDB(t)
	r := NewCategoryRepository(db)
	ctx := context.Background()

	category := &models.ProductCategory{
		ID:   uuid.New(),
		Name: "Lubricants",
		SubCategories: []models.ProductSubCategory{
			{ID: uuid.New(), Name: "Engine Oil"},
		},
	}
	require.NoError(t, r.Create(ctx, category))

	require.NoError(t, r.SetDeleted(ctx, category.ID, true))
	_, err := r.FindByID(ctx, category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting again is a no-op the caller sees as not-found.
	assert.ErrorIs(t, r.SetDeleted(ctx, category.ID, true), gorm.ErrRecordNotFound)

	require.NoError(t, r.SetDeleted(ctx, category.ID, false))
	got, err := r.FindByID(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, got.SubCategories, 1)
	assert.Equal(t, "Engine Oil", got.SubCategories[0].Name)
}
