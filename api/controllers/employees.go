package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/validators"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/employees"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

type jobPositionBody struct {
	Title       string     `json:"title" validate:"required"`
	Entity      string     `json:"entity" validate:"required"`
	DateStarted *time.Time `json:"date_started"`
	DateEnded   *time.Time `json:"date_ended"`
	IsActive    *bool      `json:"is_active"`
}

func (b jobPositionBody) toInput() employees.JobPositionInput {
	return employees.JobPositionInput{
		Title:       b.Title,
		Entity:      b.Entity,
		DateStarted: b.DateStarted,
		DateEnded:   b.DateEnded,
		IsActive:    b.IsActive,
	}
}

type credentialBody struct {
	CredentialType string     `json:"credential_type" validate:"required"`
	Value          string     `json:"value" validate:"required"`
	AcquireOnDate  *time.Time `json:"acquire_on_date"`
	ExpireOnDate   *time.Time `json:"expire_on_date"`
	IsActive       *bool      `json:"is_active"`
}

func (b credentialBody) toInput() employees.CredentialInput {
	return employees.CredentialInput{
		CredentialType: b.CredentialType,
		Value:          b.Value,
		AcquireOnDate:  b.AcquireOnDate,
		ExpireOnDate:   b.ExpireOnDate,
		IsActive:       b.IsActive,
	}
}

type createEmployeeBody struct {
	UserID       uuid.UUID         `json:"user_id" validate:"required"`
	Branch       string            `json:"branch"`
	TIN          string            `json:"tin"`
	DateHired    *time.Time        `json:"date_hired"`
	JobPositions []jobPositionBody `json:"job_positions" validate:"omitempty,dive"`
	Credentials  []credentialBody  `json:"credentials" validate:"omitempty,dive"`
}

// EmployeesCreate opens an employee record for an existing user.
func EmployeesCreate(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createEmployeeBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := employees.CreateEmployeeInput{
			UserID:    body.UserID,
			Branch:    body.Branch,
			TIN:       body.TIN,
			DateHired: body.DateHired,
		}
		for _, pos := range body.JobPositions {
			input.JobPositions = append(input.JobPositions, pos.toInput())
		}
		for _, cred := range body.Credentials {
			input.Credentials = append(input.Credentials, cred.toInput())
		}

		employee, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "employee created", "employee", employee)
	}
}

// EmployeesMe fetches the caller's own employee record.
func EmployeesMe(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := principalID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.GetByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "employee fetched", "employee", employee)
	}
}

// EmployeesGet fetches one employee record.
func EmployeesGet(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "employee fetched", "employee", employee)
	}
}

// EmployeesList pages through employee records.
func EmployeesList(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), validators.Pagination(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "employees fetched", "result", list)
	}
}

type updateEmployeeBody struct {
	TIN         *string    `json:"tin"`
	DateRetired *time.Time `json:"date_retired"`
}

// EmployeesUpdate applies partial updates to an employee record.
func EmployeesUpdate(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateEmployeeBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.Update(r.Context(), id, employees.UpdateEmployeeInput{
			TIN:         body.TIN,
			DateRetired: body.DateRetired,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "employee updated", "employee", employee)
	}
}

// EmployeesDelete soft-deletes an employee record.
func EmployeesDelete(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, "employee deleted", "status", "ok")
	}
}

// EmployeesAddJobPosition appends a position-history entry.
func EmployeesAddJobPosition(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body jobPositionBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.AddJobPosition(r.Context(), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "job position added", "employee", employee)
	}
}

// EmployeesUpdateJobPosition rewrites one position-history entry.
func EmployeesUpdateJobPosition(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		positionID, err := validators.UUIDParam(r, "positionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body jobPositionBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.UpdateJobPosition(r.Context(), id, positionID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "job position updated", "employee", employee)
	}
}

// EmployeesEndJobPosition closes an active position without deleting it.
func EmployeesEndJobPosition(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		positionID, err := validators.UUIDParam(r, "positionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.EndJobPosition(r.Context(), id, positionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "job position ended", "employee", employee)
	}
}

// EmployeesRemoveJobPosition removes one position-history entry.
func EmployeesRemoveJobPosition(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		positionID, err := validators.UUIDParam(r, "positionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.RemoveJobPosition(r.Context(), id, positionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "job position removed", "employee", employee)
	}
}

// EmployeesAddCredential appends a credential entry.
func EmployeesAddCredential(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body credentialBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.AddCredential(r.Context(), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "credential added", "employee", employee)
	}
}

// EmployeesUpdateCredential rewrites one credential entry.
func EmployeesUpdateCredential(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		credentialID, err := validators.UUIDParam(r, "credentialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body credentialBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.UpdateCredential(r.Context(), id, credentialID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "credential updated", "employee", employee)
	}
}

// EmployeesRemoveCredential removes one credential entry.
func EmployeesRemoveCredential(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		credentialID, err := validators.UUIDParam(r, "credentialId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.RemoveCredential(r.Context(), id, credentialID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "credential removed", "employee", employee)
	}
}

// EmployeesListCredentials lists an employee's credentials.
func EmployeesListCredentials(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		credentials, err := svc.ListCredentials(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "credentials fetched", "credentials", credentials)
	}
}
