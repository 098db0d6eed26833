package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fexa-gateway/internal/config"
	"fexa-gateway/internal/fexa"
	"fexa-gateway/internal/handlers"
	"fexa-gateway/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title       Fexa Gateway API
// @version     1.0
// @description Backend-for-frontend gateway over the Fexa facilities management API.
// @BasePath    /
func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting fexa gateway")

	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize upstream API client
	tokens := fexa.NewTokenManager(cfg, nil, logger)
	api := fexa.NewClient(cfg, tokens, nil, logger)

	// Initialize services
	clientService := services.NewClientService(api, logger)
	cachedClients := services.NewCachedClientService(clientService, cfg.ClientCacheTTL, logger)
	workOrderService := services.NewWorkOrderService(api, logger)
	visitService := services.NewVisitService(api, cfg.VisitsEndpoint, logger)
	vendorService := services.NewVendorService(api, logger)
	userService := services.NewUserService(api, logger)
	locationService := services.NewLocationService(api, logger)
	invoiceService := services.NewInvoiceService(api, logger)
	noteService := services.NewNoteService(api, logger)
	documentService := services.NewDocumentService(api, logger)
	transitionService := services.NewTransitionService(api, logger)

	priorityService := services.NewPriorityService(api, cfg.ReferenceCacheTTL, logger)
	severityService := services.NewSeverityService(api, cfg.ReferenceCacheTTL, logger)
	regionService := services.NewRegionService(api, cfg.ReferenceCacheTTL, logger)
	documentTypeService := services.NewDocumentTypeService(api, cfg.ReferenceCacheTTL, logger)
	categoryService := services.NewWorkOrderCategoryService(api, cfg.ReferenceCacheTTL, logger)
	classService := services.NewWorkOrderClassService(api, cfg.ReferenceCacheTTL, logger)

	// Periodically refresh the long-lived caches so lookups stay warm.
	// Disabled when the interval is zero.
	if cfg.CacheRefreshInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.CacheRefreshInterval)
			defer ticker.Stop()

			for range ticker.C {
				logger.Info("Scheduled cache refresh", zap.Duration("interval", cfg.CacheRefreshInterval))
				cachedClients.RefreshInBackground()
				priorityService.RefreshInBackground()
				severityService.RefreshInBackground()
				regionService.RefreshInBackground()
				documentTypeService.RefreshInBackground()
				categoryService.RefreshInBackground()
				classService.RefreshInBackground()
			}
		}()
	}

	// Initialize handlers
	clientHandler := handlers.NewClientHandler(clientService, cachedClients, logger)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderService, logger)
	visitHandler := handlers.NewVisitHandler(visitService, logger)
	vendorHandler := handlers.NewVendorHandler(vendorService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	locationHandler := handlers.NewLocationHandler(locationService, logger)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, logger)
	noteHandler := handlers.NewNoteHandler(noteService, logger)
	documentHandler := handlers.NewDocumentHandler(documentService, logger)
	referenceHandler := handlers.NewReferenceHandler(
		priorityService, severityService, regionService,
		documentTypeService, categoryService, classService,
		transitionService, logger,
	)
	healthHandler := handlers.NewHealthHandler(cachedClients, transitionService)

	router := SetupRouter(
		clientHandler, workOrderHandler, visitHandler, vendorHandler,
		userHandler, locationHandler, invoiceHandler,
		noteHandler, referenceHandler, documentHandler, healthHandler,
		logger,
	)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
