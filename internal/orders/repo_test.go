package orders

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
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{`
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'placed',
  payment_status TEXT NOT NULL DEFAULT 'unpaid',
  is_deleted BOOLEAN NOT NULL DEFAULT 0,
  version INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL
);`, `
CREATE TABLE IF NOT EXISTS order_payments (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  type_of_payment TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  reference_number TEXT,
  paid_at DATETIME NOT NULL
);`}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range []string{"order_payments", "order_items", "orders"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, total string) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		TotalAmount:   decimal.RequireFromString(total),
		Status:        enums.OrderStatusPlaced,
		PaymentStatus: enums.PaymentStatusUnpaid,
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2, Price: decimal.RequireFromString("50.00"), Subtotal: decimal.RequireFromString("100.00")},
		},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestOrdersRepo_FindByIDPreloads(t *testing.T) {
	db := setupOrdersTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), "100.00")

	early := &models.OrderPayment{
		ID:            uuid.New(),
		OrderID:       order.ID,
		TypeOfPayment: enums.PaymentMethodCash,
		Amount:        decimal.RequireFromString("40.00"),
		PaidAt:        time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	late := &models.OrderPayment{
		ID:            uuid.New(),
		OrderID:       order.ID,
		TypeOfPayment: enums.PaymentMethodGCash,
		Amount:        decimal.RequireFromString("60.00"),
		PaidAt:        time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.AddPayment(ctx, late))
	require.NoError(t, r.AddPayment(ctx, early))

	got, err := r.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Len(t, got.Payments, 2)
	assert.True(t, got.Payments[0].PaidAt.Before(got.Payments[1].PaidAt))
	assert.True(t, got.AmountPaid().Equal(decimal.RequireFromString("100.00")))
}

func TestOrdersRepo_UpdateStateVersioned(t *testing.T) {
	db := setupOrdersTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), "100.00")

	err := r.UpdateStateVersioned(ctx, order.ID, order.Version, map[string]any{
		"status": enums.OrderStatusPaid,
	})
	require.NoError(t, err)

	// The first writer bumped the version, so the same stale version loses.
	err = r.UpdateStateVersioned(ctx, order.ID, order.Version, map[string]any{
		"status": enums.OrderStatusCancelled,
	})
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := r.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, got.Status)
	assert.Equal(t, order.Version+1, got.Version)
}

func TestOrdersRepo_ListFiltersAndSoftDelete(t *testing.T) {
	db := setupOrdersTestDB(t)
	r := NewRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	mine := seedOrder(t, db, alice, "100.00")
	seedOrder(t, db, alice, "250.00")
	seedOrder(t, db, bob, "75.00")

	rows, total, err := r.ListByUser(ctx, alice, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	require.NoError(t, r.SoftDelete(ctx, mine.ID))
	_, total, err = r.ListByUser(ctx, alice, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = r.FindByID(ctx, mine.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, r.SoftDelete(ctx, mine.ID), gorm.ErrRecordNotFound)
}
