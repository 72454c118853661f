package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/orders"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

type stubCartRepo struct {
	carts map[uuid.UUID]*models.Cart
	items map[uuid.UUID]*models.CartItem
	// raceCart, when set, is installed by the next Create call in place of
	// the caller's cart, simulating a concurrent winner hitting the unique
	// index first.
	raceCart *models.Cart
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{
		carts: make(map[uuid.UUID]*models.Cart),
		items: make(map[uuid.UUID]*models.CartItem),
	}
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCartRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	for _, c := range s.carts {
		if c.UserID == userID && c.Status == enums.CartStatusActive && !c.IsDeleted {
			copied := *c
			copied.Items = nil
			for _, item := range s.items {
				if item.CartID == c.ID {
					copied.Items = append(copied.Items, *item)
				}
			}
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) Create(ctx context.Context, cart *models.Cart) error {
	if s.raceCart != nil {
		s.carts[s.raceCart.ID] = s.raceCart
		s.raceCart = nil
		return errors.New(`duplicate key value violates unique constraint "uq_carts_active_user"`)
	}
	s.carts[cart.ID] = cart
	return nil
}

func (s *stubCartRepo) UpsertItem(ctx context.Context, item *models.CartItem) error {
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	item, ok := s.items[itemID]
	if !ok || item.CartID != cartID {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, itemID)
	return nil
}

func (s *stubCartRepo) UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error {
	c, ok := s.carts[cartID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.TotalAmount = total
	return nil
}

func (s *stubCartRepo) MarkCheckedOutVersioned(ctx context.Context, cartID uuid.UUID, version int64) error {
	c, ok := s.carts[cartID]
	if !ok || c.Status != enums.CartStatusActive || c.Version != version {
		return ErrVersionConflict
	}
	c.Status = enums.CartStatusCheckedOut
	c.Version++
	return nil
}

type stubOrderRepo struct {
	created []*models.Order
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) orders.Repository { return s }

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error {
	s.created = append(s.created, order)
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) List(ctx context.Context, params pagination.Params, filters orders.OrderFilters) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderRepo) UpdateStateVersioned(ctx context.Context, id uuid.UUID, version int64, updates map[string]any) error {
	return nil
}

func (s *stubOrderRepo) AddPayment(ctx context.Context, payment *models.OrderPayment) error {
	return nil
}

func (s *stubOrderRepo) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }

type stubProducts struct {
	byID map[uuid.UUID]*models.Product
}

func (s *stubProducts) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newCartService(t *testing.T) (Service, *stubCartRepo, *stubOrderRepo, *stubProducts) {
	t.Helper()

	cartRepo := newStubCartRepo()
	orderRepo := &stubOrderRepo{}
	products := &stubProducts{byID: make(map[uuid.UUID]*models.Product)}
	svc, err := NewService(cartRepo, orderRepo, products, passthroughTx{})
	require.NoError(t, err)
	return svc, cartRepo, orderRepo, products
}

func seedStubProduct(products *stubProducts, price string) *models.Product {
	p := &models.Product{
		ID:    uuid.New(),
		Name:  "Air Filter",
		Price: decimal.RequireFromString(price),
	}
	products.byID[p.ID] = p
	return p
}

func TestCartService_AddItemMergesDuplicateProduct(t *testing.T) {
	svc, _, _, products := newCartService(t)
	ctx := context.Background()

	userID := uuid.New()
	product := seedStubProduct(products, "50.00")

	cart, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	// Bump the catalog price; the merged line keeps its snapshot.
	product.Price = decimal.RequireFromString("80.00")

	cart, err = svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].Price.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, cart.TotalAmount.Equal(decimal.RequireFromString("250.00")))
}

func TestCartService_GetActiveCartLostRaceReusesWinner(t *testing.T) {
	svc, cartRepo, _, _ := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	winner := &models.Cart{ID: uuid.New(), UserID: userID, Status: enums.CartStatusActive}
	cartRepo.raceCart = winner

	got, err := svc.GetActiveCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
	assert.Len(t, cartRepo.carts, 1)
}

func TestCartService_AddItemValidation(t *testing.T) {
	svc, _, _, _ := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, uuid.New(), AddItemInput{ProductID: uuid.New(), Quantity: 0})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.AddItem(ctx, uuid.New(), AddItemInput{ProductID: uuid.New(), Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCartService_UpdateAndRemoveItem(t *testing.T) {
	svc, _, _, products := newCartService(t)
	ctx := context.Background()

	userID := uuid.New()
	product := seedStubProduct(products, "40.00")

	cart, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(ctx, userID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.True(t, cart.TotalAmount.Equal(decimal.RequireFromString("160.00")))

	_, err = svc.UpdateItem(ctx, userID, itemID, 0)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	cart, err = svc.RemoveItem(ctx, userID, itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalAmount.IsZero())

	_, err = svc.RemoveItem(ctx, userID, itemID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCartService_CheckoutEmptyCart(t *testing.T) {
	svc, _, _, _ := newCartService(t)
	ctx := context.Background()

	userID := uuid.New()
	_, err := svc.GetActiveCart(ctx, userID)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, userID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCartService_CheckoutFreezesCartIntoOrder(t *testing.T) {
	svc, cartRepo, orderRepo, products := newCartService(t)
	ctx := context.Background()

	userID := uuid.New()
	oil := seedStubProduct(products, "450.00")
	filter := seedStubProduct(products, "150.00")

	_, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: oil.ID, Quantity: 2})
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, userID, AddItemInput{ProductID: filter.ID, Quantity: 1})
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, enums.OrderStatusPlaced, order.Status)
	assert.Equal(t, enums.PaymentStatusUnpaid, order.PaymentStatus)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("1050.00")))
	require.Len(t, order.Items, len(cart.Items))
	require.Len(t, orderRepo.created, 1)

	// The closed cart is gone; the next access starts a fresh one.
	assert.Equal(t, enums.CartStatusCheckedOut, cartRepo.carts[cart.ID].Status)
	fresh, err := svc.GetActiveCart(ctx, userID)
	require.NoError(t, err)
	assert.NotEqual(t, cart.ID, fresh.ID)
	assert.Empty(t, fresh.Items)
}
