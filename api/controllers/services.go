package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/middleware"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/validators"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/servicecatalog"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

type materialBody struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type createServiceBody struct {
	Name          string           `json:"name" validate:"required"`
	Description   *string          `json:"description"`
	CategoryID    uuid.UUID        `json:"category_id" validate:"required"`
	SubCategoryID *uuid.UUID       `json:"sub_category_id"`
	Duration      int              `json:"duration" validate:"required,gt=0"`
	DurationUnit  string           `json:"duration_unit" validate:"required"`
	LaborPrice    decimal.Decimal  `json:"labor_price"`
	TotalPrice    *decimal.Decimal `json:"total_price"`
	Materials     []materialBody   `json:"materials" validate:"omitempty,dive"`
	DateOffered   *time.Time       `json:"date_offered"`
	DateEnded     *time.Time       `json:"date_ended"`
}

// ServicesCreate adds a service offering to the catalog. Admin only.
func ServicesCreate(svc servicecatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createServiceBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := servicecatalog.CreateServiceInput{
			Name:          body.Name,
			Description:   body.Description,
			CategoryID:    body.CategoryID,
			SubCategoryID: body.SubCategoryID,
			Duration:      body.Duration,
			DurationUnit:  enums.DurationUnit(body.DurationUnit),
			LaborPrice:    body.LaborPrice,
			TotalPrice:    body.TotalPrice,
			DateOffered:   body.DateOffered,
			DateEnded:     body.DateEnded,
		}
		if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
			input.CreatedBy = &userID
		}
		for _, mat := range body.Materials {
			input.Materials = append(input.Materials, servicecatalog.MaterialInput{
				ProductID: mat.ProductID,
				Quantity:  mat.Quantity,
			})
		}

		service, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "service created", "service", service)
	}
}

// ServicesGet fetches one catalog service.
func ServicesGet(svc servicecatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		service, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "service fetched", "service", service)
	}
}

// ServicesList pages through the service catalog. active=true narrows to
// currently offered services.
func ServicesList(svc servicecatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))

		list, err := svc.List(r.Context(), validators.Pagination(r), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "services fetched", "result", list)
	}
}

type updateServiceBody struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Duration     *int             `json:"duration" validate:"omitempty,gt=0"`
	DurationUnit *string          `json:"duration_unit"`
	LaborPrice   *decimal.Decimal `json:"labor_price"`
	TotalPrice   *decimal.Decimal `json:"total_price"`
	Materials    []materialBody   `json:"materials" validate:"omitempty,dive"`
	DateEnded    *time.Time       `json:"date_ended"`
}

// ServicesUpdate applies partial updates to a catalog service. Admin only.
func ServicesUpdate(svc servicecatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateServiceBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := servicecatalog.UpdateServiceInput{
			Name:        body.Name,
			Description: body.Description,
			Duration:    body.Duration,
			LaborPrice:  body.LaborPrice,
			TotalPrice:  body.TotalPrice,
			DateEnded:   body.DateEnded,
		}
		if body.DurationUnit != nil {
			unit := enums.DurationUnit(*body.DurationUnit)
			input.DurationUnit = &unit
		}
		if body.Materials != nil {
			input.Materials = make([]servicecatalog.MaterialInput, 0, len(body.Materials))
			for _, mat := range body.Materials {
				input.Materials = append(input.Materials, servicecatalog.MaterialInput{
					ProductID: mat.ProductID,
					Quantity:  mat.Quantity,
				})
			}
		}

		service, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "service updated", "service", service)
	}
}

// ServicesArchive ends a service offering. Admin only.
func ServicesArchive(svc servicecatalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		service, err := svc.Archive(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "service archived", "service", service)
	}
}

// ServiceCategoriesCreate adds a service category. Admin only.
func ServiceCategoriesCreate(svc servicecatalog.CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCategoryBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), servicecatalog.CreateCategoryInput{
			Name:          body.Name,
			SubCategories: body.SubCategories,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "category created", "category", category)
	}
}

// ServiceCategoriesList returns all service categories.
func ServiceCategoriesList(svc servicecatalog.CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "categories fetched", "categories", categories)
	}
}

// ServiceCategoriesRename renames a service category. Admin only.
func ServiceCategoriesRename(svc servicecatalog.CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body renameCategoryBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Rename(r.Context(), id, body.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "category renamed", "category", category)
	}
}

// ServiceCategoriesDelete soft-deletes a service category. Admin only.
func ServiceCategoriesDelete(svc servicecatalog.CategoryService, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, "category deleted", "status", "ok")
	}
}

// ServiceCategoriesAddSub adds a sub-category. Admin only.
func ServiceCategoriesAddSub(svc servicecatalog.CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body renameCategoryBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.AddSubCategory(r.Context(), id, body.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "sub-category added", "category", category)
	}
}

// ServiceCategoriesRemoveSub removes a sub-category. Admin only.
func ServiceCategoriesRemoveSub(svc servicecatalog.CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		subCategoryID, err := validators.UUIDParam(r, "subCategoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.RemoveSubCategory(r.Context(), id, subCategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "sub-category removed", "category", category)
	}
}
