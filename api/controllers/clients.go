package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/validators"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/clients"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

type occupationBody struct {
	Position    string  `json:"position" validate:"required"`
	CompanyName string  `json:"company_name" validate:"required"`
	Address     *string `json:"address"`
	YearJoined  *string `json:"year_joined"`
	IsActive    *bool   `json:"is_active"`
}

func (b occupationBody) toInput() clients.OccupationInput {
	return clients.OccupationInput{
		Position:    b.Position,
		CompanyName: b.CompanyName,
		Address:     b.Address,
		YearJoined:  b.YearJoined,
		IsActive:    b.IsActive,
	}
}

type createClientBody struct {
	UserID      uuid.UUID        `json:"user_id" validate:"required"`
	Branch      string           `json:"branch"`
	DateCreated *time.Time       `json:"date_created"`
	Notes       *string          `json:"notes"`
	Occupations []occupationBody `json:"occupations" validate:"omitempty,dive"`
}

// ClientsCreate opens a client record for an existing user.
func ClientsCreate(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createClientBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := clients.CreateClientInput{
			UserID:      body.UserID,
			Branch:      body.Branch,
			DateCreated: body.DateCreated,
			Notes:       body.Notes,
		}
		for _, occ := range body.Occupations {
			input.Occupations = append(input.Occupations, occ.toInput())
		}

		client, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "client created", "client", client)
	}
}

// ClientsMe fetches the caller's own client record.
func ClientsMe(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := principalID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := svc.GetByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "client fetched", "client", client)
	}
}

// ClientsGet fetches one client record.
func ClientsGet(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "client fetched", "client", client)
	}
}

// ClientsList pages through client records.
func ClientsList(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), validators.Pagination(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "clients fetched", "result", list)
	}
}

type updateClientBody struct {
	Notes *string `json:"notes"`
}

// ClientsUpdate applies partial updates to a client record.
func ClientsUpdate(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateClientBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := svc.Update(r.Context(), id, clients.UpdateClientInput{Notes: body.Notes})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "client updated", "client", client)
	}
}

// ClientsDelete soft-deletes a client record.
func ClientsDelete(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, "client deleted", "status", "ok")
	}
}

// ClientsAddOccupation appends an occupation entry to a client.
func ClientsAddOccupation(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body occupationBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := svc.AddOccupation(r.Context(), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "occupation added", "client", client)
	}
}

// ClientsUpdateOccupation rewrites one occupation entry.
func ClientsUpdateOccupation(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		occupationID, err := validators.UUIDParam(r, "occupationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body occupationBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := svc.UpdateOccupation(r.Context(), id, occupationID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "occupation updated", "client", client)
	}
}

// ClientsRemoveOccupation removes one occupation entry.
func ClientsRemoveOccupation(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		occupationID, err := validators.UUIDParam(r, "occupationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		client, err := svc.RemoveOccupation(r.Context(), id, occupationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "occupation removed", "client", client)
	}
}
