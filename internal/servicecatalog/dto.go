package servicecatalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// CreateServiceInput holds the payload to create a catalog service.
type CreateServiceInput struct {
	Name          string
	Description   *string
	CategoryID    uuid.UUID
	SubCategoryID *uuid.UUID
	Duration      int
	DurationUnit  enums.DurationUnit
	LaborPrice    decimal.Decimal
	// TotalPrice overrides labor + materials when provided.
	TotalPrice  *decimal.Decimal
	Materials   []MaterialInput
	DateOffered *time.Time
	DateEnded   *time.Time
	CreatedBy   *uuid.UUID
}

// UpdateServiceInput holds optional mutation values; nil leaves the current
// value untouched. Materials, when non-nil, replace the existing set.
type UpdateServiceInput struct {
	Name         *string
	Description  *string
	Duration     *int
	DurationUnit *enums.DurationUnit
	LaborPrice   *decimal.Decimal
	TotalPrice   *decimal.Decimal
	Materials    []MaterialInput
	DateEnded    *time.Time
}

// MaterialInput is one product line consumed by a service.
type MaterialInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// ServiceList pairs a page of services with its pagination metadata.
type ServiceList struct {
	Services   []models.Service  `json:"services"`
	Pagination pagination.Result `json:"pagination"`
}

// CreateCategoryInput holds the payload to create a service category.
type CreateCategoryInput struct {
	Name          string
	SubCategories []string
}
