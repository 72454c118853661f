package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/rexbugcalao2025-netizen/fmh-backend/api/routes"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/cart"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/clients"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/clientservices"
	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/codes"
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
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/migrate"
	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := auth.NewSessionManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()

	userRepo := users.NewRepository(gormDB)
	clientRepo := clients.NewRepository(gormDB)
	employeeRepo := employees.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	productCategoryRepo := products.NewCategoryRepository(gormDB)
	catalogRepo := servicecatalog.NewRepository(gormDB)
	serviceCategoryRepo := servicecatalog.NewCategoryRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)
	recordRepo := clientservices.NewRepository(gormDB)

	codeGen, err := codes.NewGenerator(codes.NewRepository(gormDB), cfg.Codes.DefaultBranch)
	if err != nil {
		logg.Error(context.Background(), "failed to create code generator", err)
		os.Exit(1)
	}

	userService, err := users.NewService(userRepo, sessionManager, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	clientService, err := clients.NewService(clientRepo, userRepo, employeeRepo, codeGen)
	if err != nil {
		logg.Error(context.Background(), "failed to create clients service", err)
		os.Exit(1)
	}

	employeeService, err := employees.NewService(employeeRepo, userRepo, clientRepo, codeGen)
	if err != nil {
		logg.Error(context.Background(), "failed to create employees service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productRepo, productCategoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	productCategoryService, err := products.NewCategoryService(productCategoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product categories service", err)
		os.Exit(1)
	}

	catalogService, err := servicecatalog.NewService(catalogRepo, serviceCategoryRepo, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create service catalog service", err)
		os.Exit(1)
	}

	serviceCategoryService, err := servicecatalog.NewCategoryService(serviceCategoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create service categories service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartRepo, orderRepo, productRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orderRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	recordService, err := clientservices.NewService(recordRepo, clientRepo, employeeRepo, catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create client services service", err)
		os.Exit(1)
	}

	var inventoryFacade *inventory.Facade
	if cfg.Inventory.DSN != "" {
		inventoryDB, err := sql.Open("postgres", cfg.Inventory.DSN)
		if err != nil {
			logg.Error(context.Background(), "failed to open inventory database", err)
			os.Exit(1)
		}
		inventoryDB.SetMaxOpenConns(cfg.Inventory.MaxOpenConns)
		defer func() {
			if err := inventoryDB.Close(); err != nil {
				logg.Error(context.Background(), "error closing inventory database", err)
			}
		}()

		inventoryFacade, err = inventory.NewFacade(inventoryDB)
		if err != nil {
			logg.Error(context.Background(), "failed to create inventory facade", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "inventory database not configured, inventory endpoints disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:            cfg,
			Logger:            logg,
			DB:                dbClient,
			Redis:             redisClient,
			Sessions:          sessionManager,
			Users:             userService,
			Clients:           clientService,
			Employees:         employeeService,
			Products:          productService,
			ProductCategories: productCategoryService,
			Catalog:           catalogService,
			ServiceCategories: serviceCategoryService,
			Cart:              cartService,
			Orders:            orderService,
			ClientServices:    recordService,
			Inventory:         inventoryFacade,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
