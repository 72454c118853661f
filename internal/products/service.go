package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

type service struct {
	repo       Repository
	categories CategoryRepository
	now        func() time.Time
}

// NewService wires the product catalog service.
func NewService(repo Repository, categories CategoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category_id is required")
	}

	if err := s.checkCategory(ctx, input.CategoryID, input.SubCategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Images:      pq.StringArray(input.Images),
		CategoryID:  input.CategoryID,
		SubCategory: input.SubCategoryID,
	}
	product.PriceHistory = []models.PriceHistory{
		{ID: uuid.New(), ProductID: product.ID, Price: input.Price, DateChanged: s.now().UTC()},
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ProductFilters) (*ProductList, error) {
	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return &ProductList{
		Products:   rows,
		Pagination: pagination.NewResult(params, total),
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Images != nil {
		product.Images = pq.StringArray(input.Images)
	}

	categoryID := product.CategoryID
	subCategoryID := product.SubCategory
	if input.CategoryID != nil {
		categoryID = *input.CategoryID
		subCategoryID = nil
	}
	if input.SubCategoryID != nil {
		subCategoryID = input.SubCategoryID
	}
	if categoryID != product.CategoryID || !uuidPtrEqual(subCategoryID, product.SubCategory) {
		if err := s.checkCategory(ctx, categoryID, subCategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
		product.SubCategory = subCategoryID
	}

	priceChanged := false
	if input.Price != nil && !input.Price.Equal(product.Price) {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
		priceChanged = true
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}

	if priceChanged {
		entry := &models.PriceHistory{
			ID:          uuid.New(),
			ProductID:   product.ID,
			Price:       product.Price,
			DateChanged: s.now().UTC(),
		}
		if err := s.repo.AddPriceHistory(ctx, entry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording price change")
		}
		product.PriceHistory = append(product.PriceHistory, *entry)
	}
	return product, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up product")
	}
	return product, nil
}

// checkCategory verifies the category exists and, when set, that the
// sub-category belongs to it.
func (s *service) checkCategory(ctx context.Context, categoryID uuid.UUID, subCategoryID *uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up product category")
	}
	if subCategoryID == nil {
		return nil
	}
	for _, sub := range category.SubCategories {
		if sub.ID == *subCategoryID {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "sub_category_id does not belong to the category")
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
