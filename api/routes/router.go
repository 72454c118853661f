package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/controllers"
	"github.com/rexbugcalao2025-netizen/fmh-backend/api/middleware"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/cart"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/clients"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/clientservices"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/employees"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/inventory"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/orders"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/products"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/servicecatalog"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/users"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/auth"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/config"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/db"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/logger"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/metrics"
	redisclient "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redisclient.Client
	Sessions *auth.SessionManager

	Users             users.Service
	Clients           clients.Service
	Employees         employees.Service
	Products          products.Service
	ProductCategories products.CategoryService
	Catalog           servicecatalog.Service
	ServiceCategories servicecatalog.CategoryService
	Cart              cart.Service
	Orders            orders.Service
	ClientServices    clientservices.Service
	// Inventory is nil when no inventory database is configured.
	Inventory *inventory.Facade
}

// NewRouter builds the full route tree.
func NewRouter(deps Deps) http.Handler {
	logg := deps.Logger
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS(deps.Config.App.Origins()))
	r.Use(middleware.Metrics(httpMetrics))

	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(deps.DB, deps.Redis, logg))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	loginLimit := middleware.AuthRateLimit(middleware.LoginRateLimitPolicy(deps.Config.AuthRateLimit), deps.Redis, logg)
	registerLimit := middleware.AuthRateLimit(middleware.RegisterRateLimitPolicy(deps.Config.AuthRateLimit), deps.Redis, logg)

	authed := middleware.Auth(deps.Config.JWT, deps.Sessions, logg)
	admin := middleware.RequireAdmin(logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.With(registerLimit).Post("/register", controllers.AuthRegister(deps.Users, logg))
			r.With(loginLimit).Post("/login", controllers.AuthLogin(deps.Users, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Users, logg))

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/logout", controllers.AuthLogout(deps.Users, logg))
				r.Get("/me", controllers.UsersMe(deps.Users, logg))
				r.Patch("/me", controllers.UsersUpdateMe(deps.Users, logg))

				r.Group(func(r chi.Router) {
					r.Use(admin)
					r.Get("/", controllers.UsersList(deps.Users, logg))
					r.Patch("/{id}/admin", controllers.UsersSetAdmin(deps.Users, logg))
					r.Delete("/{id}", controllers.UsersDelete(deps.Users, logg))
				})
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authed)

			r.Route("/clients", func(r chi.Router) {
				r.Get("/me", controllers.ClientsMe(deps.Clients, logg))

				r.Group(func(r chi.Router) {
					r.Use(admin)
					r.Post("/", controllers.ClientsCreate(deps.Clients, logg))
					r.Get("/", controllers.ClientsList(deps.Clients, logg))
					r.Get("/{id}", controllers.ClientsGet(deps.Clients, logg))
					r.Patch("/{id}", controllers.ClientsUpdate(deps.Clients, logg))
					r.Delete("/{id}", controllers.ClientsDelete(deps.Clients, logg))
					r.Post("/{id}/occupations", controllers.ClientsAddOccupation(deps.Clients, logg))
					r.Patch("/{id}/occupations/{occupationId}", controllers.ClientsUpdateOccupation(deps.Clients, logg))
					r.Delete("/{id}/occupations/{occupationId}", controllers.ClientsRemoveOccupation(deps.Clients, logg))
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", controllers.EmployeesMe(deps.Employees, logg))

				r.Group(func(r chi.Router) {
					r.Use(admin)
					r.Post("/", controllers.EmployeesCreate(deps.Employees, logg))
					r.Get("/", controllers.EmployeesList(deps.Employees, logg))
					r.Get("/{id}", controllers.EmployeesGet(deps.Employees, logg))
					r.Patch("/{id}", controllers.EmployeesUpdate(deps.Employees, logg))
					r.Delete("/{id}", controllers.EmployeesDelete(deps.Employees, logg))
					r.Post("/{id}/positions", controllers.EmployeesAddJobPosition(deps.Employees, logg))
					r.Patch("/{id}/positions/{positionId}", controllers.EmployeesUpdateJobPosition(deps.Employees, logg))
					r.Patch("/{id}/positions/{positionId}/end", controllers.EmployeesEndJobPosition(deps.Employees, logg))
					r.Delete("/{id}/positions/{positionId}", controllers.EmployeesRemoveJobPosition(deps.Employees, logg))
					r.Get("/{id}/credentials", controllers.EmployeesListCredentials(deps.Employees, logg))
					r.Post("/{id}/credentials", controllers.EmployeesAddCredential(deps.Employees, logg))
					r.Patch("/{id}/credentials/{credentialId}", controllers.EmployeesUpdateCredential(deps.Employees, logg))
					r.Delete("/{id}/credentials/{credentialId}", controllers.EmployeesRemoveCredential(deps.Employees, logg))
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductsList(deps.Products, logg))
				r.Get("/{id}", controllers.ProductsGet(deps.Products, logg))

				r.Group(func(r chi.Router) {
					r.Use(admin)
					r.Post("/", controllers.ProductsCreate(deps.Products, logg))
					r.Patch("/{id}", controllers.ProductsUpdate(deps.Products, logg))
					r.Delete("/{id}", controllers.ProductsDelete(deps.Products, logg))
				})
			})

			r.Route("/product-categories", func(r chi.Router) {
				r.Get("/", controllers.ProductCategoriesList(deps.ProductCategories, logg))

				r.Group(func(r chi.Router) {
					r.Use(admin)
					r.Post("/", controllers.ProductCategoriesCreate(deps.ProductCategories, logg))
					r.Patch("/{id}", controllers.ProductCategoriesRename(deps.ProductCategories, logg))
					r.Delete("/{id}", controllers.ProductCategoriesDelete(deps.ProductCategories, logg))
					r.Patch("/{id}/restore", controllers.ProductCategoriesRestore(deps.ProductCategories, logg))
					r.Post("/{id}/sub-categories", controllers.ProductCategoriesAddSub(deps.ProductCategories, logg))
					r.Delete("/{id}/sub-categories/{subCategoryId}", controllers.ProductCategoriesRemoveSub(deps.ProductCategories, logg))
				})
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", controllers.ServicesList(deps.Catalog, logg))
				r.Get("/{id}", controllers.ServicesGet(deps.Catalog, logg))

				r.Group(func(r chi.Router) {
					r.Use(admin)
					r.Post("/", controllers.ServicesCreate(deps.Catalog, logg))
					r.Patch("/{id}", controllers.ServicesUpdate(deps.Catalog, logg))
					r.Patch("/{id}/archive", controllers.ServicesArchive(deps.Catalog, logg))
				})
			})

			r.Route("/service-categories", func(r chi.Router) {
				r.Get("/", controllers.ServiceCategoriesList(deps.ServiceCategories, logg))

				r.Group(func(r chi.Router) {
					r.Use(admin)
					r.Post("/", controllers.ServiceCategoriesCreate(deps.ServiceCategories, logg))
					r.Patch("/{id}", controllers.ServiceCategoriesRename(deps.ServiceCategories, logg))
					r.Delete("/{id}", controllers.ServiceCategoriesDelete(deps.ServiceCategories, logg))
					r.Post("/{id}/sub-categories", controllers.ServiceCategoriesAddSub(deps.ServiceCategories, logg))
					r.Delete("/{id}/sub-categories/{subCategoryId}", controllers.ServiceCategoriesRemoveSub(deps.ServiceCategories, logg))
				})
			})

			r.Route("/carts", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Put("/items/{itemId}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.Cart, logg))
				r.Post("/checkout", controllers.CartCheckout(deps.Cart, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/my", controllers.OrdersListMy(deps.Orders, logg))
				r.Get("/{id}", controllers.OrdersGet(deps.Orders, logg))
				r.Post("/{id}/payment", controllers.OrdersAddPayment(deps.Orders, logg))

				r.Group(func(r chi.Router) {
					r.Use(admin)
					r.Get("/", controllers.OrdersList(deps.Orders, logg))
					r.Patch("/{id}/status", controllers.OrdersUpdateStatus(deps.Orders, logg))
					r.Delete("/{id}", controllers.OrdersDelete(deps.Orders, logg))
				})
			})

			r.Route("/client-services", func(r chi.Router) {
				r.Use(admin)
				r.Post("/", controllers.ClientServicesCreate(deps.ClientServices, logg))
				r.Get("/", controllers.ClientServicesList(deps.ClientServices, logg))
				r.Get("/{id}", controllers.ClientServicesGet(deps.ClientServices, logg))
				r.Patch("/{id}", controllers.ClientServicesUpdate(deps.ClientServices, logg))
				r.Patch("/{id}/status", controllers.ClientServicesUpdateStatus(deps.ClientServices, logg))
				r.Patch("/{id}/payment", controllers.ClientServicesAddPayment(deps.ClientServices, logg))
				r.Patch("/{id}/void", controllers.ClientServicesVoid(deps.ClientServices, logg))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Use(admin)
				r.Post("/adjust", controllers.InventoryAdjust(deps.Inventory, logg))
				r.Post("/consume", controllers.InventoryConsume(deps.Inventory, logg))
				r.Get("/products", controllers.InventoryListProducts(deps.Inventory, logg))
				r.Get("/low-stock", controllers.InventoryLowStock(deps.Inventory, logg))
				r.Get("/movements", controllers.InventoryListMovements(deps.Inventory, logg))
			})
		})
	})

	return r
}
