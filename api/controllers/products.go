package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/responses"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/validators"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/products"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
)

type createProductBody struct {
	Name          string          `json:"name" validate:"required"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	Images        []string        `json:"images"`
	CategoryID    uuid.UUID       `json:"category_id" validate:"required"`
	SubCategoryID *uuid.UUID      `json:"sub_category_id"`
}

// ProductsCreate adds a product to the catalog. Admin only.
func ProductsCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createProductBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), products.CreateProductInput{
			Name:          body.Name,
			Description:   body.Description,
			Price:         body.Price,
			Images:        body.Images,
			CategoryID:    body.CategoryID,
			SubCategoryID: body.SubCategoryID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteCreated(w, "product created", "product", product)
	}
}

// ProductsGet fetches one product.
func ProductsGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "product fetched", "product", product)
	}
}

// ProductsList pages through the catalog with optional category and search
// filters.
func ProductsList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.OptionalUUIDQuery(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		subCategoryID, err := validators.OptionalUUIDQuery(r, "sub_category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), validators.Pagination(r), products.ProductFilters{
			CategoryID:    categoryID,
			SubCategoryID: subCategoryID,
			Search:        strings.TrimSpace(r.URL.Query().Get("search")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "products fetched", "result", list)
	}
}

type updateProductBody struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Images        []string         `json:"images"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SubCategoryID *uuid.UUID       `json:"sub_category_id"`
}

// ProductsUpdate applies partial updates. Admin only.
func ProductsUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, products.UpdateProductInput{
			Name:          body.Name,
			Description:   body.Description,
			Price:         body.Price,
			Images:        body.Images,
			CategoryID:    body.CategoryID,
			SubCategoryID: body.SubCategoryID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "product updated", "product", product)
	}
}

// ProductsDelete soft-deletes a product. Admin only.
func ProductsDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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

		responses.WriteSuccess(w, "product deleted", "status", "ok")
	}
}

type createCategoryBody struct {
	Name          string   `json:"name" validate:"required"`
	SubCategories []string `json:"sub_categories"`
}

// ProductCategoriesCreate adds a product category. Admin only.
func ProductCategoriesCreate(svc products.CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCategoryBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Create(r.Context(), products.CreateCategoryInput{
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

// ProductCategoriesList returns all product categories.
func ProductCategoriesList(svc products.CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "categories fetched", "categories", categories)
	}
}

type renameCategoryBody struct {
	Name string `json:"name" validate:"required"`
}

// ProductCategoriesRename renames a product category. Admin only.
func ProductCategoriesRename(svc products.CategoryService, logg *logger.Logger) http.HandlerFunc {
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

// ProductCategoriesDelete soft-deletes a product category. Admin only.
func ProductCategoriesDelete(svc products.CategoryService, logg *logger.Logger) http.HandlerFunc {
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

// ProductCategoriesRestore brings back a soft-deleted category. Admin only.
func ProductCategoriesRestore(svc products.CategoryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.Restore(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "category restored", "category", category)
	}
}

// ProductCategoriesAddSub adds a sub-category. Admin only.
func ProductCategoriesAddSub(svc products.CategoryService, logg *logger.Logger) http.HandlerFunc {
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

// ProductCategoriesRemoveSub removes a sub-category. Admin only.
func ProductCategoriesRemoveSub(svc products.CategoryService, logg *logger.Logger) http.HandlerFunc {
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
