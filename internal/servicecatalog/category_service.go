package servicecatalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
)

const serviceCategoriesNameConstraint = "idx_service_categories_name"

type categoryService struct {
	repo CategoryRepository
}

// NewCategoryService wires the service-category service.
func NewCategoryService(repo CategoryRepository) (CategoryService, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &categoryService{repo: repo}, nil
}

func (s *categoryService) Create(ctx context.Context, input CreateCategoryInput) (*models.ServiceCategory, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	category := &models.ServiceCategory{
		ID:   uuid.New(),
		Name: name,
	}
	for _, sub := range input.SubCategories {
		subName := strings.TrimSpace(sub)
		if subName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sub-category name cannot be blank")
		}
		category.SubCategories = append(category.SubCategories, models.ServiceSubCategory{
			ID:         uuid.New(),
			CategoryID: category.ID,
			Name:       subName,
		})
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, serviceCategoriesNameConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating category")
	}
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*models.ServiceCategory, error) {
	return s.find(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]models.ServiceCategory, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing categories")
	}
	return rows, nil
}

// Rename changes the category name going forward; services that snapshotted
// the previous name keep it.
func (s *categoryService) Rename(ctx context.Context, id uuid.UUID, name string) (*models.ServiceCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name

	if err := s.repo.Update(ctx, category); err != nil {
		if db.IsUniqueViolation(err, serviceCategoriesNameConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "renaming category")
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetDeleted(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting category")
	}
	return nil
}

func (s *categoryService) AddSubCategory(ctx context.Context, categoryID uuid.UUID, name string) (*models.ServiceCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	category, err := s.find(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	for _, sub := range category.SubCategories {
		if strings.EqualFold(sub.Name, name) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sub-category already exists")
		}
	}

	sub := &models.ServiceSubCategory{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       name,
	}
	if err := s.repo.AddSubCategory(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adding sub-category")
	}
	return s.find(ctx, categoryID)
}

func (s *categoryService) RemoveSubCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) (*models.ServiceCategory, error) {
	if _, err := s.find(ctx, categoryID); err != nil {
		return nil, err
	}

	if err := s.repo.RemoveSubCategory(ctx, categoryID, subCategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sub-category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing sub-category")
	}
	return s.find(ctx, categoryID)
}

func (s *categoryService) find(ctx context.Context, id uuid.UUID) (*models.ServiceCategory, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up category")
	}
	return category, nil
}
