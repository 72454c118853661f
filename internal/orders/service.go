package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService wires the orders service. Payment recording spans the order
// row and the payment ledger, so a transaction runner is required.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.find(ctx, id)
}

func (s *service) GetForUser(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	// Foreign orders are indistinguishable from missing ones.
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return &OrderList{Orders: rows, Pagination: pagination.NewResult(params, total)}, nil
}

func (s *service) ListMy(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error) {
	rows, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return &OrderList{Orders: rows, Pagination: pagination.NewResult(params, total)}, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*models.Order, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == input.Status {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order is already %s", order.Status))
	}
	if !order.Status.CanTransitionTo(input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, input.Status))
	}

	updates := map[string]any{"status": input.Status}
	if err := s.repo.UpdateStateVersioned(ctx, order.ID, order.Version, updates); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order was modified concurrently, retry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order status")
	}
	return s.find(ctx, order.ID)
}

func (s *service) AddPayment(ctx context.Context, id uuid.UUID, input AddPaymentInput) (*models.Order, error) {
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}

	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.ActorUserID != nil && order.UserID != *input.ActorUserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if order.Status == enums.OrderStatusCancelled || order.Status == enums.OrderStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is closed for payments")
	}

	// Customers retrying a submission tend to resend the same reference;
	// staff may legitimately key the same slip across split payments.
	if !input.ActorIsAdmin && input.Reference != nil {
		for _, p := range order.Payments {
			if p.ReferenceNumber != nil && *p.ReferenceNumber == *input.Reference {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment reference already recorded")
			}
		}
	}

	remaining := order.TotalAmount.Sub(order.AmountPaid())
	if input.Amount.GreaterThan(remaining) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment exceeds remaining balance")
	}

	newPaid := order.AmountPaid().Add(input.Amount)
	paymentStatus := enums.PaymentStatusPartial
	if newPaid.Equal(order.TotalAmount) {
		paymentStatus = enums.PaymentStatusPaid
	}

	// A staff-recorded payment that settles the balance confirms the order;
	// customer payments wait for manual confirmation.
	updates := map[string]any{"payment_status": paymentStatus}
	if input.ActorIsAdmin && paymentStatus == enums.PaymentStatusPaid &&
		(order.Status == enums.OrderStatusPlaced || order.Status == enums.OrderStatusProcessing) {
		updates["status"] = enums.OrderStatusPaid
	}
	payment := &models.OrderPayment{
		ID:              uuid.New(),
		OrderID:         order.ID,
		TypeOfPayment:   input.Method,
		Amount:          input.Amount,
		ReferenceNumber: input.Reference,
		PaidAt:          s.now().UTC(),
	}

	// The derived payment_status and the ledger row commit together so the
	// order never reads as paid without the payment that made it so.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateStateVersioned(ctx, order.ID, order.Version, updates); err != nil {
			return err
		}
		return txRepo.AddPayment(ctx, payment)
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order was modified concurrently, retry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording payment")
	}
	return s.find(ctx, order.ID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting order")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return order, nil
}
