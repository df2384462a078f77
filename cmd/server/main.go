// @title           Field Operations Backend API
// @version         1.0.0
// @description     Backend API for concrete cutting field jobs. Operators move each job through arrival, the silica exposure control plan, work performed and customer sign-off. The API generates the job PDFs, tracks blades and bits, and gives admins costing, reconciliation and reporting.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fieldops-backend/docs"
	"fieldops-backend/internal/assets"
	"fieldops-backend/internal/config"
	"fieldops-backend/internal/costing"
	"fieldops-backend/internal/database"
	"fieldops-backend/internal/documents"
	"fieldops-backend/internal/drafts"
	"fieldops-backend/internal/handlers"
	"fieldops-backend/internal/memstore"
	"fieldops-backend/internal/reconcile"
	"fieldops-backend/internal/services"
	"fieldops-backend/internal/supabase"
)

// recordStore is everything the server needs from the record store.
type recordStore interface {
	services.Store
	assets.Store
	reconcile.Store
	handlers.Pinger
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Record store: PostgreSQL when configured, in-memory otherwise
	var store recordStore
	if cfg.DatabaseURL != "" {
		dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database client: %v", err)
		}
		defer dbClient.Close()

		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize migrator: %v", err)
		} else {
			if err := migrator.Run(context.Background()); err != nil {
				log.Printf("Warning: Migration failed: %v", err)
			} else {
				log.Println("Migrations completed successfully")
			}
			migrator.Close()
		}
		store = dbClient
	} else {
		if cfg.IsProduction() {
			log.Fatal("DATABASE_URL is required in production")
		}
		log.Println("Warning: DATABASE_URL not set. Using an in-memory store; records are lost on restart.")
		store = memstore.New()
	}

	// Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	// Device-local drafts
	if dir := filepath.Dir(cfg.DraftsDBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create drafts directory: %v", err)
		}
	}
	draftRepo, err := drafts.Open(cfg.DraftsDBPath)
	if err != nil {
		log.Fatalf("Failed to open drafts database: %v", err)
	}
	defer draftRepo.Close()

	// Services
	jobService := services.NewJobService(services.Deps{
		Store:   store,
		Objects: storageClient,
		Drafts:  draftRepo,
		Events:  realtimeClient,
		Locator: services.DeviceLocator{},
		Letterhead: documents.Letterhead{
			Name:    cfg.CompanyName,
			Address: cfg.CompanyAddress,
			Phone:   cfg.CompanyPhone,
		},
		Rates: costing.NewRates(
			cfg.Rates.LaborRate,
			cfg.Rates.StandbyRate,
			cfg.Rates.OverheadPercent,
			cfg.Rates.EquipmentRates,
			cfg.Rates.Materials,
		),
		LocateTimeout: cfg.GeolocationTimeout,
	})
	operatorService := services.NewOperatorService(store, storageClient)
	tracker := assets.NewTracker(store, storageClient)
	reconciler := reconcile.New(store)

	// Setup router
	router := gin.Default()

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.Register(router, cfg, handlers.Set{
		Health:    handlers.NewHealthHandler(store),
		Jobs:      handlers.NewJobsHandler(jobService),
		OnSite:    handlers.NewOnSiteHandler(jobService),
		Documents: handlers.NewDocumentsHandler(jobService),
		Operators: handlers.NewOperatorsHandler(operatorService),
		Assets:    handlers.NewAssetsHandler(tracker),
		Admin:     handlers.NewAdminHandler(reconciler, jobService, operatorService, realtimeClient),
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
