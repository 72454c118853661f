package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

// CreateProductInput holds the payload to create a product.
type CreateProductInput struct {
	Name          string
	Description   *string
	Price         decimal.Decimal
	Images        []string
	CategoryID    uuid.UUID
	SubCategoryID *uuid.UUID
}

// UpdateProductInput holds optional mutation values; nil leaves the current
// value untouched. A price change appends to the price history.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	Images        []string
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
}

// ProductFilters narrows product listings.
type ProductFilters struct {
	CategoryID    *uuid.UUID
	SubCategoryID *uuid.UUID
	Search        string
}

// ProductList pairs a page of products with its pagination metadata.
type ProductList struct {
	Products   []models.Product  `json:"products"`
	Pagination pagination.Result `json:"pagination"`
}

// CreateCategoryInput holds the payload to create a product category.
type CreateCategoryInput struct {
	Name          string
	SubCategories []string
}
