package main

import (
	"fexa-gateway/internal/handlers"
	"fexa-gateway/internal/middleware"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter configures and returns the HTTP router with all routes and middleware
func SetupRouter(
	clientHandler *handlers.ClientHandler,
	workOrderHandler *handlers.WorkOrderHandler,
	visitHandler *handlers.VisitHandler,
	vendorHandler *handlers.VendorHandler,
	userHandler *handlers.UserHandler,
	locationHandler *handlers.LocationHandler,
	invoiceHandler *handlers.InvoiceHandler,
	noteHandler *handlers.NoteHandler,
	referenceHandler *handlers.ReferenceHandler,
	documentHandler *handlers.DocumentHandler,
	healthHandler *handlers.HealthHandler,
	logger *zap.Logger,
) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	// Clients. Fixed paths are registered before the {id} catch-all.
	router.HandleFunc("/api/clients/directory", clientHandler.HandleDirectory).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/clients/search", clientHandler.HandleSearch).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/clients/lookup", clientHandler.HandleLookup).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/clients/cache", clientHandler.HandleCacheStatus).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/clients/cache/refresh", clientHandler.HandleCacheRefresh).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/clients", clientHandler.HandleList).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/clients/{id:[0-9]+}", clientHandler.HandleGet).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/clients/{id:[0-9]+}/locations", locationHandler.HandleByClient).Methods("GET", "OPTIONS")

	// Work orders
	router.HandleFunc("/api/workorders", workOrderHandler.HandleList).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/workorders", workOrderHandler.HandleCreate).Methods("POST")
	router.HandleFunc("/api/workorders/{id:[0-9]+}", workOrderHandler.HandleGet).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/workorders/{id:[0-9]+}/status", workOrderHandler.HandleUpdateStatus).Methods("PUT")

	// Notes, documents and invoices ride under their work order
	router.HandleFunc("/api/workorders/{id:[0-9]+}/notes", noteHandler.HandleList).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/workorders/{id:[0-9]+}/notes", noteHandler.HandleCreate).Methods("POST")
	router.HandleFunc("/api/workorders/{id:[0-9]+}/documents", documentHandler.HandleUpload).Methods("POST")
	router.HandleFunc("/api/workorders/{id:[0-9]+}/invoices", invoiceHandler.HandleByWorkOrder).Methods("GET", "OPTIONS")

	// Visits
	router.HandleFunc("/api/visits/check-ins", visitHandler.HandleCheckIns).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/visits/schedule", visitHandler.HandleSchedule).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/visits", visitHandler.HandleList).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/visits/{id:[0-9]+}", visitHandler.HandleGet).Methods("GET", "OPTIONS")

	// Vendors
	router.HandleFunc("/api/vendors", vendorHandler.HandleList).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/vendors/{id:[0-9]+}", vendorHandler.HandleGet).Methods("GET", "OPTIONS")

	// Users
	router.HandleFunc("/api/users", userHandler.HandleList).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/users/{id:[0-9]+}", userHandler.HandleGet).Methods("GET", "OPTIONS")

	// Locations
	router.HandleFunc("/api/locations", locationHandler.HandleList).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/locations/{id:[0-9]+}", locationHandler.HandleGet).Methods("GET", "OPTIONS")

	// Invoices
	router.HandleFunc("/api/invoices", invoiceHandler.HandleList).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/invoices/{id:[0-9]+}", invoiceHandler.HandleGet).Methods("GET", "OPTIONS")

	// Reference data
	router.HandleFunc("/api/reference/priorities", referenceHandler.HandlePriorities).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/reference/severities", referenceHandler.HandleSeverities).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/reference/regions", referenceHandler.HandleRegions).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/reference/document-types", referenceHandler.HandleDocumentTypes).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/reference/categories", referenceHandler.HandleCategories).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/reference/classes", referenceHandler.HandleClasses).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/reference/transitions", referenceHandler.HandleTransitions).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/reference/refresh", referenceHandler.HandleRefresh).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/reference/{table}/{id:[0-9]+}", referenceHandler.HandleLookup).Methods("GET", "OPTIONS")

	// Health
	router.HandleFunc("/health", healthHandler.HandleHealth).Methods("GET")
	router.HandleFunc("/status", healthHandler.HandleStatus).Methods("GET")

	// Swagger documentation
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return router
}
