package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/validators"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/clientservices"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

type commissionBody struct {
	EmployeeID uuid.UUID       `json:"employee_id" validate:"required"`
	Percentage decimal.Decimal `json:"percentage" validate:"required"`
}

type serviceLineBody struct {
	ServiceID   uuid.UUID        `json:"service_id" validate:"required"`
	Amount      *decimal.Decimal `json:"amount"`
	Notes       *string          `json:"notes"`
	Commissions []commissionBody `json:"commissions" validate:"omitempty,dive"`
}

func (b serviceLineBody) toInput() clientservices.LineInput {
	line := clientservices.LineInput{
		ServiceID: b.ServiceID,
		Amount:    b.Amount,
		Notes:     b.Notes,
	}
	for _, com := range b.Commissions {
		line.Commissions = append(line.Commissions, clientservices.CommissionInput{
			EmployeeID: com.EmployeeID,
			Percentage: com.Percentage,
		})
	}
	return line
}

func lineInputs(bodies []serviceLineBody) []clientservices.LineInput {
	if bodies == nil {
		return nil
	}
	lines := make([]clientservices.LineInput, 0, len(bodies))
	for _, b := range bodies {
		lines = append(lines, b.toInput())
	}
	return lines
}

type createRecordBody struct {
	ClientID       uuid.UUID         `json:"client_id" validate:"required"`
	DateRendered   *time.Time        `json:"date_rendered"`
	Lines          []serviceLineBody `json:"lines" validate:"required,min=1,dive"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	ReferenceCode  *string           `json:"reference_code"`
	Notes          *string           `json:"notes"`
}

// ClientServicesCreate opens a rendered-service record for a client.
func ClientServicesCreate(svc clientservices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := principalID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createRecordBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), clientservices.CreateRecordInput{
			ClientID:       body.ClientID,
			DateRendered:   body.DateRendered,
			Lines:          lineInputs(body.Lines),
			DiscountAmount: body.DiscountAmount,
			ReferenceCode:  body.ReferenceCode,
			Notes:          body.Notes,
			CreatedBy:      actorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "service record created", "client_service", record)
	}
}

// ClientServicesGet fetches one record with its lines and payments.
func ClientServicesGet(svc clientservices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "service record fetched", "client_service", record)
	}
}

// ClientServicesList pages through records with optional filters.
func ClientServicesList(svc clientservices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := validators.OptionalUUIDQuery(r, "client_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		isVoid, err := validators.OptionalBoolQuery(r, "is_void")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := clientservices.RecordFilters{ClientID: clientID, IsVoid: isVoid}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseServiceStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			filters.Status = &status
		}

		list, err := svc.List(r.Context(), validators.Pagination(r), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "service records fetched", "result", list)
	}
}

type updateRecordBody struct {
	Lines          []serviceLineBody `json:"lines" validate:"omitempty,min=1,dive"`
	DiscountAmount *decimal.Decimal  `json:"discount_amount"`
	ReferenceCode  *string           `json:"reference_code"`
	Notes          *string           `json:"notes"`
}

// ClientServicesUpdate edits an open record. Lines may only change while the
// record is still pending.
func ClientServicesUpdate(svc clientservices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateRecordBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), id, clientservices.UpdateRecordInput{
			Lines:          lineInputs(body.Lines),
			DiscountAmount: body.DiscountAmount,
			ReferenceCode:  body.ReferenceCode,
			Notes:          body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "service record updated", "client_service", record)
	}
}

type updateRecordStatusBody struct {
	Status string `json:"status" validate:"required"`
}

// ClientServicesUpdateStatus moves a record along its lifecycle.
func ClientServicesUpdateStatus(svc clientservices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateRecordStatusBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateStatus(r.Context(), id, enums.ServiceStatus(body.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "service record status updated", "client_service", record)
	}
}

type recordPaymentBody struct {
	Method    string          `json:"method" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Reference *string         `json:"reference"`
}

// ClientServicesAddPayment records a payment against a record. Payments can
// never exceed the record's total.
func ClientServicesAddPayment(svc clientservices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body recordPaymentBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AddPayment(r.Context(), id, clientservices.PaymentInput{
			Method:    enums.PaymentMethod(body.Method),
			Amount:    body.Amount,
			Reference: body.Reference,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "payment recorded", "client_service", record)
	}
}

type voidRecordBody struct {
	Reason string `json:"reason" validate:"required"`
}

// ClientServicesVoid voids a record, which cancels and freezes it.
func ClientServicesVoid(svc clientservices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body voidRecordBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Void(r.Context(), id, body.Reason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "service record voided", "client_service", record)
	}
}
