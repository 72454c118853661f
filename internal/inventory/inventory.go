// Package inventory is a thin facade over the relational inventory
// database: writes delegate to the inventory.adjust_stock procedure and
// reads project the precomputed inventory views. No stock math happens
// here beyond input validation.
package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
)

// StockLevel is one row of inventory.v_product_stock.
type StockLevel struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	OnHand       int64     `json:"on_hand"`
	ReorderLevel int64     `json:"reorder_level"`
}

// Movement is one row of inventory.v_stock_movements.
type Movement struct {
	ID        int64     `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Direction enums.StockMovementType `json:"direction"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

type dbConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Facade exposes the inventory operations. It is satisfied by *sql.DB via
// the dbConn surface; no GORM involvement on this datasource.
type Facade struct {
	db dbConn
}

// NewFacade builds the inventory facade.
func NewFacade(db dbConn) (*Facade, error) {
	if db == nil {
		return nil, fmt.Errorf("inventory database required")
	}
	return &Facade{db: db}, nil
}

// AdjustStock records one stock movement through the stored procedure.
func (f *Facade) AdjustStock(ctx context.Context, productID uuid.UUID, direction enums.StockMovementType, quantity int64, reference string) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if !direction.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown stock direction")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	_, err := f.db.ExecContext(ctx,
		`SELECT inventory.adjust_stock($1, $2, $3, $4)`,
		productID, string(direction), quantity, reference)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjusting stock")
	}
	return nil
}

// ConsumeStock records an OUT movement tagged with the consuming entity,
// e.g. "order:<id>".
func (f *Facade) ConsumeStock(ctx context.Context, productID uuid.UUID, quantity int64, referenceType string, referenceID uuid.UUID) error {
	referenceType = strings.TrimSpace(referenceType)
	if referenceType == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "reference type is required")
	}
	if referenceID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "reference id is required")
	}
	reference := fmt.Sprintf("%s:%s", referenceType, referenceID)
	return f.AdjustStock(ctx, productID, enums.StockMovementOut, quantity, reference)
}

// ListProducts returns current stock levels for every tracked product.
func (f *Facade) ListProducts(ctx context.Context) ([]StockLevel, error) {
	return f.queryLevels(ctx,
		`SELECT product_id, product_name, on_hand, reorder_level
		 FROM inventory.v_product_stock
		 ORDER BY product_name`)
}

// LowStock returns products at or below their reorder level.
func (f *Facade) LowStock(ctx context.Context) ([]StockLevel, error) {
	return f.queryLevels(ctx,
		`SELECT product_id, product_name, on_hand, reorder_level
		 FROM inventory.v_low_stock
		 ORDER BY on_hand`)
}

// ListMovements returns the most recent movements, optionally for one
// product. limit is clamped to 1..500.
func (f *Facade) ListMovements(ctx context.Context, productID *uuid.UUID, limit int) ([]Movement, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	query := `SELECT id, product_id, direction, quantity, reference, created_at
		 FROM inventory.v_stock_movements`
	args := []any{}
	if productID != nil {
		query += ` WHERE product_id = $1`
		args = append(args, *productID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing stock movements")
	}
	defer rows.Close()

	var movements []Movement
	for rows.Next() {
		var m Movement
		var direction string
		if err := rows.Scan(&m.ID, &m.ProductID, &direction, &m.Quantity, &m.Reference, &m.CreatedAt); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scanning stock movement")
		}
		m.Direction = enums.StockMovementType(direction)
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading stock movements")
	}
	return movements, nil
}

func (f *Facade) queryLevels(ctx context.Context, query string) ([]StockLevel, error) {
	rows, err := f.db.QueryContext(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing stock levels")
	}
	defer rows.Close()

	var levels []StockLevel
	for rows.Next() {
		var lvl StockLevel
		if err := rows.Scan(&lvl.ProductID, &lvl.ProductName, &lvl.OnHand, &lvl.ReorderLevel); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scanning stock level")
		}
		levels = append(levels, lvl)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading stock levels")
	}
	return levels, nil
}
