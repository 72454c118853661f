package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/middleware"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/validators"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/orders"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db/models"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

// OrdersListMy pages through the caller's own orders.
func OrdersListMy(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := principalID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMy(r.Context(), userID, validators.Pagination(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "orders fetched", "result", list)
	}
}

// OrdersGet fetches one order. Admins see any order; everyone else is
// scoped to their own, with foreign orders reading as not found.
func OrdersGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var order *models.Order
		if middleware.IsAdminFromContext(r.Context()) {
			order, err = svc.Get(r.Context(), id)
		} else {
			userID, perr := principalID(r)
			if perr != nil {
				responses.WriteError(r.Context(), logg, w, perr)
				return
			}
			order, err = svc.GetForUser(r.Context(), userID, id)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "order fetched", "order", order)
	}
}

// OrdersList pages through all orders with optional filters. Admin only.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.OptionalUUIDQuery(r, "user_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := orders.OrderFilters{UserID: userID}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("payment_status")); raw != "" {
			paymentStatus := enums.PaymentStatus(raw)
			if !paymentStatus.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment_status"))
				return
			}
			filters.PaymentStatus = &paymentStatus
		}

		list, err := svc.List(r.Context(), validators.Pagination(r), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "orders fetched", "result", list)
	}
}

type updateOrderStatusBody struct {
	Status string `json:"status" validate:"required"`
}

// OrdersUpdateStatus moves an order along its lifecycle. Admin only.
func OrdersUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateOrderStatusBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, orders.UpdateStatusInput{
			Status: enums.OrderStatus(body.Status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "order status updated", "order", order)
	}
}

type orderPaymentBody struct {
	Method    string          `json:"method" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Reference *string         `json:"reference"`
}

// OrdersAddPayment records a payment against an order. A staff payment that
// settles the balance confirms the order; customer payments are scoped to
// the caller's own orders and never advance status.
func OrdersAddPayment(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body orderPaymentBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.AddPaymentInput{
			Method:    enums.PaymentMethod(body.Method),
			Amount:    body.Amount,
			Reference: body.Reference,
		}
		if middleware.IsAdminFromContext(r.Context()) {
			input.ActorIsAdmin = true
		} else {
			userID, perr := principalID(r)
			if perr != nil {
				responses.WriteError(r.Context(), logg, w, perr)
				return
			}
			input.ActorUserID = &userID
		}

		order, err := svc.AddPayment(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "payment recorded", "order", order)
	}
}

// OrdersDelete soft-deletes an order. Admin only.
func OrdersDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "order deleted", "status", "ok")
	}
}
