package servicecatalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

type productGetter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo       Repository
	categories CategoryRepository
	products   productGetter
	now        func() time.Time
}

// NewService wires the catalog-services service.
func NewService(repo Repository, categories CategoryRepository, products productGetter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("services repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product getter required")
	}
	return &service{
		repo:       repo,
		categories: categories,
		products:   products,
		now:        time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Duration <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}
	if !input.DurationUnit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid duration_unit %q", input.DurationUnit))
	}
	if input.LaborPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "labor_price cannot be negative")
	}

	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up service category")
	}

	svc := &models.Service{
		ID:           uuid.New(),
		Name:         name,
		Description:  input.Description,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Duration:     input.Duration,
		DurationUnit: input.DurationUnit,
		LaborPrice:   input.LaborPrice,
		IsActive:     true,
		CreatedBy:    input.CreatedBy,
	}

	// Sub-category snapshot, same rule as the category itself.
	if input.SubCategoryID != nil {
		var matched *models.ServiceSubCategory
		for i := range category.SubCategories {
			if category.SubCategories[i].ID == *input.SubCategoryID {
				matched = &category.SubCategories[i]
				break
			}
		}
		if matched == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sub_category_id does not belong to the category")
		}
		svc.SubCategoryID = &matched.ID
		subName := matched.Name
		svc.SubCategoryName = &subName
	}

	svc.DateOffered = s.now().UTC()
	if input.DateOffered != nil {
		svc.DateOffered = *input.DateOffered
	}
	if input.DateEnded != nil {
		if !input.DateEnded.After(svc.DateOffered) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "date_ended must be after date_offered")
		}
		svc.DateEnded = input.DateEnded
		svc.IsActive = false
	}

	materials, materialsTotal, err := s.buildMaterials(ctx, svc.ID, input.Materials)
	if err != nil {
		return nil, err
	}
	svc.Materials = materials

	svc.TotalPrice = svc.LaborPrice.Add(materialsTotal)
	if input.TotalPrice != nil {
		if input.TotalPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_price cannot be negative")
		}
		svc.TotalPrice = *input.TotalPrice
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating service")
	}
	return svc, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context, params pagination.Params, activeOnly bool) (*ServiceList, error) {
	rows, total, err := s.repo.List(ctx, params, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing services")
	}
	return &ServiceList{
		Services:   rows,
		Pagination: pagination.NewResult(params, total),
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateServiceInput) (*models.Service, error) {
	svc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		svc.Name = name
	}
	if input.Description != nil {
		svc.Description = input.Description
	}
	if input.Duration != nil {
		if *input.Duration <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
		}
		svc.Duration = *input.Duration
	}
	if input.DurationUnit != nil {
		if !input.DurationUnit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid duration_unit %q", *input.DurationUnit))
		}
		svc.DurationUnit = *input.DurationUnit
	}
	if input.LaborPrice != nil {
		if input.LaborPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "labor_price cannot be negative")
		}
		svc.LaborPrice = *input.LaborPrice
	}
	if input.DateEnded != nil {
		if !input.DateEnded.After(svc.DateOffered) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "date_ended must be after date_offered")
		}
		svc.DateEnded = input.DateEnded
		svc.IsActive = false
	}

	materialsTotal := sumMaterials(svc.Materials)
	if input.Materials != nil {
		materials, total, err := s.buildMaterials(ctx, svc.ID, input.Materials)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceMaterials(ctx, svc.ID, materials); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replacing materials")
		}
		svc.Materials = materials
		materialsTotal = total
	}

	switch {
	case input.TotalPrice != nil:
		if input.TotalPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_price cannot be negative")
		}
		svc.TotalPrice = *input.TotalPrice
	case input.LaborPrice != nil || input.Materials != nil:
		svc.TotalPrice = svc.LaborPrice.Add(materialsTotal)
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating service")
	}
	return svc, nil
}

// Archive ends the offering: date_ended = now, is_active = false.
func (s *service) Archive(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	svc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "service is already archived")
	}

	now := s.now().UTC()
	svc.DateEnded = &now
	svc.IsActive = false
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archiving service")
	}
	return svc, nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up service")
	}
	return svc, nil
}

// buildMaterials resolves each product, snapshots its name and price and
// computes quantity-based subtotals.
func (s *service) buildMaterials(ctx context.Context, serviceID uuid.UUID, inputs []MaterialInput) ([]models.ServiceMaterial, decimal.Decimal, error) {
	total := decimal.Zero
	materials := make([]models.ServiceMaterial, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "material quantity must be at least 1")
		}
		product, err := s.products.FindByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", in.ProductID))
			}
			return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up product")
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		materials = append(materials, models.ServiceMaterial{
			ID:          uuid.New(),
			ServiceID:   serviceID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			Price:       product.Price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}
	return materials, total, nil
}

func sumMaterials(materials []models.ServiceMaterial) decimal.Decimal {
	total := decimal.Zero
	for _, m := range materials {
		total = total.Add(m.Subtotal)
	}
	return total
}
