package clientservices

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
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/pagination"
)

type clientGetter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

type employeeGetter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
}

type catalogGetter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo      Repository
	clients   clientGetter
	employees employeeGetter
	catalog   catalogGetter
	tx        txRunner
	now       func() time.Time
}

// NewService wires the client service record service. Updates and payments
// touch the record row together with its lines or ledger, so a transaction
// runner is required.
func NewService(repo Repository, clients clientGetter, employees employeeGetter, catalog catalogGetter, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client services repository required")
	}
	if clients == nil {
		return nil, fmt.Errorf("client getter required")
	}
	if employees == nil {
		return nil, fmt.Errorf("employee getter required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("service catalog getter required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      repo,
		clients:   clients,
		employees: employees,
		catalog:   catalog,
		tx:        tx,
		now:       time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateRecordInput) (*models.ClientService, error) {
	if input.ClientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client_id is required")
	}
	if input.CreatedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "created_by is required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one service line is required")
	}
	if input.DiscountAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}

	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading client")
	}

	rendered := s.now().UTC()
	if input.DateRendered != nil {
		rendered = input.DateRendered.UTC()
	}

	record := &models.ClientService{
		ID:             uuid.New(),
		ClientID:       input.ClientID,
		DateRendered:   rendered,
		Status:         enums.ServiceStatusPending,
		DiscountAmount: input.DiscountAmount,
		PaymentStatus:  enums.PaymentStatusUnpaid,
		ReferenceCode:  input.ReferenceCode,
		Notes:          input.Notes,
		CreatedBy:      input.CreatedBy,
	}

	lines, err := s.buildLines(ctx, record.ID, input.Lines)
	if err != nil {
		return nil, err
	}
	record.Lines = lines

	if err := recalcTotals(record); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating client service")
	}
	return record, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.ClientService, error) {
	return s.find(ctx, id)
}

func (s *service) List(ctx context.Context, params pagination.Params, filters RecordFilters) (*RecordList, error) {
	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing client services")
	}
	return &RecordList{Records: rows, Pagination: pagination.NewResult(params, total)}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRecordInput) (*models.ClientService, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.IsVoid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "record is void")
	}
	if input.Lines != nil && record.Status != enums.ServiceStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "service lines can only change while pending")
	}
	if input.DiscountAmount != nil && input.DiscountAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}

	if input.Lines != nil {
		if len(input.Lines) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one service line is required")
		}
		lines, err := s.buildLines(ctx, record.ID, input.Lines)
		if err != nil {
			return nil, err
		}
		record.Lines = lines
	}
	if input.DiscountAmount != nil {
		record.DiscountAmount = *input.DiscountAmount
	}
	if input.ReferenceCode != nil {
		record.ReferenceCode = input.ReferenceCode
	}
	if input.Notes != nil {
		record.Notes = input.Notes
	}

	if err := recalcTotals(record); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"total_amount":    record.TotalAmount,
		"discount_amount": record.DiscountAmount,
		"payment_status":  record.PaymentStatus,
		"reference_code":  record.ReferenceCode,
		"notes":           record.Notes,
	}
	// Recalculated totals only make sense next to the lines they describe,
	// so the record row and the line swap commit together.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateStateVersioned(ctx, record.ID, record.Version, updates); err != nil {
			return err
		}
		if input.Lines != nil {
			return txRepo.ReplaceLines(ctx, record.ID, record.Lines)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "record was modified concurrently, retry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating client service")
	}
	return s.find(ctx, record.ID)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, next enums.ServiceStatus) (*models.ClientService, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown service status")
	}

	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.IsVoid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "record is void")
	}
	if record.Status == next {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("record is already %s", record.Status))
	}
	if !record.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move record from %s to %s", record.Status, next))
	}

	updates := map[string]any{"status": next}
	switch next {
	case enums.ServiceStatusCompleted:
		if record.DateCompleted == nil {
			updates["date_completed"] = s.now().UTC()
		}
	case enums.ServiceStatusCancelled:
		if record.DateCancelled == nil {
			updates["date_cancelled"] = s.now().UTC()
		}
	}
	if err := s.applyVersioned(ctx, record, updates); err != nil {
		return nil, err
	}
	return s.find(ctx, record.ID)
}

func (s *service) AddPayment(ctx context.Context, id uuid.UUID, input PaymentInput) (*models.ClientService, error) {
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}

	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.IsVoid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "record is void")
	}

	newPaid := record.AmountPaid().Add(input.Amount)
	if newPaid.GreaterThan(record.TotalAmount) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payments exceed total amount")
	}

	paymentStatus := enums.PaymentStatusPartial
	if newPaid.GreaterThanOrEqual(record.TotalAmount) {
		paymentStatus = enums.PaymentStatusPaid
	}

	payment := &models.ServicePayment{
		ID:              uuid.New(),
		ClientServiceID: record.ID,
		TypeOfPayment:   input.Method,
		Amount:          input.Amount,
		ReferenceNumber: input.Reference,
		DatePaid:        s.now().UTC(),
	}

	// payment_status stays derived from the ledger only if both commit.
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateStateVersioned(ctx, record.ID, record.Version,
			map[string]any{"payment_status": paymentStatus}); err != nil {
			return err
		}
		return txRepo.AddPayment(ctx, payment)
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "record was modified concurrently, retry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording payment")
	}
	return s.find(ctx, record.ID)
}

func (s *service) Void(ctx context.Context, id uuid.UUID, reason string) (*models.ClientService, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "void reason is required")
	}

	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.IsVoid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "record is already void")
	}
	if record.Status == enums.ServiceStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "completed record cannot be voided")
	}

	updates := map[string]any{
		"is_void":     true,
		"void_reason": reason,
		"status":      enums.ServiceStatusCancelled,
	}
	if record.DateCancelled == nil {
		updates["date_cancelled"] = s.now().UTC()
	}
	if err := s.applyVersioned(ctx, record, updates); err != nil {
		return nil, err
	}
	return s.find(ctx, record.ID)
}

func (s *service) buildLines(ctx context.Context, recordID uuid.UUID, inputs []LineInput) ([]models.ServiceLine, error) {
	lines := make([]models.ServiceLine, 0, len(inputs))
	for _, in := range inputs {
		if in.ServiceID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service_id is required")
		}
		catalogService, err := s.catalog.FindByID(ctx, in.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading service")
		}

		amount := catalogService.TotalPrice
		if in.Amount != nil {
			amount = *in.Amount
		}
		if amount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line amount cannot be negative")
		}

		line := models.ServiceLine{
			ID:              uuid.New(),
			ClientServiceID: recordID,
			ServiceID:       in.ServiceID,
			Amount:          amount,
			Notes:           in.Notes,
		}
		for _, c := range in.Commissions {
			if c.EmployeeID == uuid.Nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission employee_id is required")
			}
			if c.Percentage.IsNegative() || c.Percentage.GreaterThan(decimal.NewFromInt(100)) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission percentage must be between 0 and 100")
			}
			if _, err := s.employees.FindByID(ctx, c.EmployeeID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading employee")
			}
			line.Commissions = append(line.Commissions, models.ServiceCommission{
				ID:                   uuid.New(),
				ServiceLineID:        line.ID,
				EmployeeID:           c.EmployeeID,
				PercentageCommission: c.Percentage,
			})
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *service) applyVersioned(ctx context.Context, record *models.ClientService, updates map[string]any) error {
	if err := s.repo.UpdateStateVersioned(ctx, record.ID, record.Version, updates); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return pkgerrors.New(pkgerrors.CodeConflict, "record was modified concurrently, retry")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating client service")
	}
	return nil
}

func (s *service) find(ctx context.Context, id uuid.UUID) (*models.ClientService, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading client service")
	}
	return record, nil
}

// recalcTotals refreshes the record total and payment status before persist.
// total = max(0, sum of line amounts - discount). Payments above the new
// total abort the save.
func recalcTotals(record *models.ClientService) error {
	sum := decimal.Zero
	for _, line := range record.Lines {
		sum = sum.Add(line.Amount)
	}
	total := sum.Sub(record.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	record.TotalAmount = total

	paid := record.AmountPaid()
	if paid.GreaterThan(total) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "payments exceed total amount")
	}
	switch {
	case paid.IsZero():
		record.PaymentStatus = enums.PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(total):
		record.PaymentStatus = enums.PaymentStatusPaid
	default:
		record.PaymentStatus = enums.PaymentStatusPartial
	}
	return nil
}
