package controllers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/validators"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/inventory"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

// A nil facade means the inventory database was not configured; the
// endpoints stay mounted and report the missing dependency.
func inventoryUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeDependency, "inventory database not configured")
}

type adjustStockBody struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Direction string    `json:"direction" validate:"required"`
	Quantity  int64     `json:"quantity" validate:"required"`
	Reference string    `json:"reference"`
}

// InventoryAdjust records a manual stock movement. Admin only.
func InventoryAdjust(facade *inventory.Facade, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if facade == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}

		var body adjustStockBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := facade.AdjustStock(r.Context(), body.ProductID, enums.StockMovementType(body.Direction), body.Quantity, body.Reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "stock adjusted", "status", "ok")
	}
}

type consumeStockBody struct {
	ProductID     uuid.UUID `json:"product_id" validate:"required"`
	Quantity      int64     `json:"quantity" validate:"required"`
	ReferenceType string    `json:"reference_type" validate:"required"`
	ReferenceID   uuid.UUID `json:"reference_id" validate:"required"`
}

// InventoryConsume records an OUT movement tagged with the consuming
// entity, e.g. an order or a rendered service. Admin only.
func InventoryConsume(facade *inventory.Facade, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if facade == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}

		var body consumeStockBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := facade.ConsumeStock(r.Context(), body.ProductID, body.Quantity, body.ReferenceType, body.ReferenceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "stock consumed", "status", "ok")
	}
}

// InventoryListProducts returns current stock levels. Admin only.
func InventoryListProducts(facade *inventory.Facade, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if facade == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}

		levels, err := facade.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "stock levels fetched", "products", levels)
	}
}

// InventoryLowStock returns products at or below their reorder level. Admin
// only.
func InventoryLowStock(facade *inventory.Facade, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if facade == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}

		levels, err := facade.LowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "low stock fetched", "products", levels)
	}
}

// InventoryListMovements returns recent stock movements, optionally scoped
// to one product. Admin only.
func InventoryListMovements(facade *inventory.Facade, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if facade == nil {
			responses.WriteError(r.Context(), logg, w, inventoryUnavailable())
			return
		}

		productID, err := validators.OptionalUUIDQuery(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		movements, err := facade.ListMovements(r.Context(), productID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "stock movements fetched", "movements", movements)
	}
}
