package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

type stubProductsRepo struct {
	byID    map[uuid.UUID]*models.Product
	history []models.PriceHistory
}

func newStubProductsRepo() *stubProductsRepo {
	return &stubProductsRepo{byID: make(map[uuid.UUID]*models.Product)}
}

func (s *stubProductsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubProductsRepo) Create(ctx context.Context, product *models.Product) error {
	s.byID[product.ID] = product
	s.history = append(s.history, product.PriceHistory...)
	return nil
}

func (s *stubProductsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok || p.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	copied.PriceHistory = nil
	for _, h := range s.history {
		if h.ProductID == id {
			copied.PriceHistory = append(copied.PriceHistory, h)
		}
	}
	return &copied, nil
}

func (s *stubProductsRepo) List(ctx context.Context, params pagination.Params, filters ProductFilters) ([]models.Product, int64, error) {
	var rows []models.Product
	for _, p := range s.byID {
		if p.IsDeleted {
			continue
		}
		if filters.CategoryID != nil && p.CategoryID != *filters.CategoryID {
			continue
		}
		rows = append(rows, *p)
	}
	return rows, int64(len(rows)), nil
}

func (s *stubProductsRepo) Update(ctx context.Context, product *models.Product) error {
	s.byID[product.ID] = product
	return nil
}

func (s *stubProductsRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := s.byID[id]
	if !ok || p.IsDeleted {
		return gorm.ErrRecordNotFound
	}
	p.IsDeleted = true
	return nil
}

func (s *stubProductsRepo) AddPriceHistory(ctx context.Context, entry *models.PriceHistory) error {
	s.history = append(s.history, *entry)
	return nil
}

type stubCategoriesRepo struct {
	byID map[uuid.UUID]*models.ProductCategory
}

func newStubCategoriesRepo() *stubCategoriesRepo {
	return &stubCategoriesRepo{byID: make(map[uuid.UUID]*models.ProductCategory)}
}

func (s *stubCategoriesRepo) WithTx(tx *gorm.DB) CategoryRepository { return s }

func (s *stubCategoriesRepo) Create(ctx context.Context, category *models.ProductCategory) error {
	for _, existing := range s.byID {
		if existing.Name == category.Name {
			return &stringError{"duplicate key value violates unique constraint"}
		}
	}
	s.byID[category.ID] = category
	return nil
}

func (s *stubCategoriesRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductCategory, error) {
	c, ok := s.byID[id]
	if !ok || c.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *stubCategoriesRepo) List(ctx context.Context) ([]models.ProductCategory, error) {
	var rows []models.ProductCategory
	for _, c := range s.byID {
		if !c.IsDeleted {
			rows = append(rows, *c)
		}
	}
	return rows, nil
}

func (s *stubCategoriesRepo) Update(ctx context.Context, category *models.ProductCategory) error {
	s.byID[category.ID] = category
	return nil
}

func (s *stubCategoriesRepo) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) error {
	c, ok := s.byID[id]
	if !ok || c.IsDeleted != !deleted {
		return gorm.ErrRecordNotFound
	}
	c.IsDeleted = deleted
	return nil
}

func (s *stubCategoriesRepo) AddSubCategory(ctx context.Context, sub *models.ProductSubCategory) error {
	c, ok := s.byID[sub.CategoryID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.SubCategories = append(c.SubCategories, *sub)
	return nil
}

func (s *stubCategoriesRepo) RemoveSubCategory(ctx context.Context, categoryID, subCategoryID uuid.UUID) error {
	c, ok := s.byID[categoryID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i, sub := range c.SubCategories {
		if sub.ID == subCategoryID {
			c.SubCategories = append(c.SubCategories[:i], c.SubCategories[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stringError struct{ msg string }

func (e *stringError) Error() string { return e.msg }

type catalogFixture struct {
	repo       *stubProductsRepo
	categories *stubCategoriesRepo
	svc        Service
	catSvc     CategoryService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	f := &catalogFixture{
		repo:       newStubProductsRepo(),
		categories: newStubCategoriesRepo(),
	}
	svc, err := NewService(f.repo, f.categories)
	require.NoError(t, err)
	f.svc = svc

	catSvc, err := NewCategoryService(f.categories)
	require.NoError(t, err)
	f.catSvc = catSvc
	return f
}

func (f *catalogFixture) addCategory(t *testing.T, name string, subs ...string) *models.ProductCategory {
	t.Helper()
	category, err := f.catSvc.Create(context.Background(), CreateCategoryInput{Name: name, SubCategories: subs})
	require.NoError(t, err)
	return category
}

func TestCreateProduct_SeedsPriceHistory(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.addCategory(t, "Lubricants")

	product, err := f.svc.Create(context.Background(), CreateProductInput{
		Name:       "Engine Oil 1L",
		Price:      decimal.RequireFromString("450.00"),
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	require.Len(t, product.PriceHistory, 1)
	assert.True(t, product.PriceHistory[0].Price.Equal(decimal.RequireFromString("450.00")))
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.svc.Create(context.Background(), CreateProductInput{
		Name:       "Engine Oil 1L",
		Price:      decimal.RequireFromString("450.00"),
		CategoryID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateProduct_SubCategoryMustBelong(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.addCategory(t, "Lubricants", "Engine Oil")
	other := uuid.New()

	_, err := f.svc.Create(context.Background(), CreateProductInput{
		Name:          "Engine Oil 1L",
		Price:         decimal.RequireFromString("450.00"),
		CategoryID:    category.ID,
		SubCategoryID: &other,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateProduct_PriceChangeAppendsHistory(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.addCategory(t, "Lubricants")

	product, err := f.svc.Create(context.Background(), CreateProductInput{
		Name:       "Engine Oil 1L",
		Price:      decimal.RequireFromString("450.00"),
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("475.00")
	updated, err := f.svc.Update(context.Background(), product.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Len(t, f.repo.history, 2)

	// Re-submitting the same price adds nothing.
	_, err = f.svc.Update(context.Background(), product.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)
	assert.Len(t, f.repo.history, 2)
}

func TestDeleteProduct_ThenNotFound(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.addCategory(t, "Lubricants")

	product, err := f.svc.Create(context.Background(), CreateProductInput{
		Name:       "Engine Oil 1L",
		Price:      decimal.RequireFromString("450.00"),
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), product.ID))

	err = f.svc.Delete(context.Background(), product.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCategory_DuplicateName(t *testing.T) {
	f := newCatalogFixture(t)
	f.addCategory(t, "Lubricants")

	_, err := f.catSvc.Create(context.Background(), CreateCategoryInput{Name: "Lubricants"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCategory_SubCategoryLifecycle(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.addCategory(t, "Lubricants")

	withSub, err := f.catSvc.AddSubCategory(context.Background(), category.ID, "Engine Oil")
	require.NoError(t, err)
	require.Len(t, withSub.SubCategories, 1)

	_, err = f.catSvc.AddSubCategory(context.Background(), category.ID, "engine oil")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())

	removed, err := f.catSvc.RemoveSubCategory(context.Background(), category.ID, withSub.SubCategories[0].ID)
	require.NoError(t, err)
	assert.Empty(t, removed.SubCategories)
}

func TestCategory_DeleteRestore(t *testing.T) {
	f := newCatalogFixture(t)
	category := f.addCategory(t, "Lubricants")

	require.NoError(t, f.catSvc.Delete(context.Background(), category.ID))
	_, err := f.catSvc.Get(context.Background(), category.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	restored, err := f.catSvc.Restore(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lubricants", restored.Name)
}
