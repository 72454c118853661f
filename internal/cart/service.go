package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/orders"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
)

const cartsActiveUserConstraint = "uq_carts_active_user"

type productGetter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     Repository
	orders   orders.Repository
	products productGetter
	tx       txRunner
}

// NewService wires the cart service. Checkout spans the cart and orders
// tables, so the orders repository and a transaction runner are required.
func NewService(repo Repository, orderRepo orders.Repository, products productGetter, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product getter required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, orders: orderRepo, products: products, tx: tx}, nil
}

func (s *service) GetActiveCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.FindActiveByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	cart = &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Status: enums.CartStatusActive,
	}
	if err := s.repo.Create(ctx, cart); err != nil {
		// Two first accesses can race; the unique index on active carts
		// lets the loser pick up the winner's cart.
		if db.IsUniqueViolation(err, cartsActiveUserConstraint) {
			existing, findErr := s.repo.FindActiveByUser(ctx, userID)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "loading cart")
			}
			return existing, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating cart")
	}
	return cart, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.Cart, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}

	cart, err := s.GetActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var line *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == input.ProductID {
			line = &cart.Items[i]
			break
		}
	}
	if line != nil {
		line.Quantity += input.Quantity
	} else {
		product, err := s.products.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
		}
		cart.Items = append(cart.Items, models.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
			Price:     product.Price,
		})
		line = &cart.Items[len(cart.Items)-1]
	}

	cart.Recalculate()
	if err := s.repo.UpsertItem(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart item")
	}
	if err := s.repo.UpdateTotal(ctx, cart.ID, cart.TotalAmount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart total")
	}
	return cart, nil
}

func (s *service) UpdateItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	cart, err := s.GetActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	line := findItem(cart, itemID)
	if line == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	line.Quantity = quantity

	cart.Recalculate()
	if err := s.repo.UpsertItem(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart item")
	}
	if err := s.repo.UpdateTotal(ctx, cart.ID, cart.TotalAmount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart total")
	}
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*models.Cart, error) {
	cart, err := s.GetActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if findItem(cart, itemID) == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	if err := s.repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing cart item")
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	cart.Recalculate()
	if err := s.repo.UpdateTotal(ctx, cart.ID, cart.TotalAmount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart total")
	}
	return cart, nil
}

func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	cart, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	if len(cart.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	cart.Recalculate()

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		TotalAmount:   cart.TotalAmount,
		Status:        enums.OrderStatusPlaced,
		PaymentStatus: enums.PaymentStatusUnpaid,
		Items:         make([]models.OrderItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal,
		})
	}

	// Closing the cart and creating the order commit together; the
	// versioned close rejects a cart that changed since it was read.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).MarkCheckedOutVersioned(ctx, cart.ID, cart.Version); err != nil {
			return err
		}
		return s.orders.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart was modified concurrently, retry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking out cart")
	}
	return order, nil
}

func findItem(cart *models.Cart, itemID uuid.UUID) *models.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}
