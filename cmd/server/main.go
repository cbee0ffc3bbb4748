package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"gorm.io/gorm"

	clienthttp "github.com/amrani/pharmacy-backend/internal/client/delivery/http"
	clientdomain "github.com/amrani/pharmacy-backend/internal/client/domain"
	"github.com/amrani/pharmacy-backend/internal/invoice"
	invoicedomain "github.com/amrani/pharmacy-backend/internal/invoice/domain"
	"github.com/amrani/pharmacy-backend/internal/medication"
	meddomain "github.com/amrani/pharmacy-backend/internal/medication/domain"
	"github.com/amrani/pharmacy-backend/internal/order"
	orderdomain "github.com/amrani/pharmacy-backend/internal/order/domain"
	"github.com/amrani/pharmacy-backend/internal/reporting"
	"github.com/amrani/pharmacy-backend/internal/server"
	supplierhttp "github.com/amrani/pharmacy-backend/internal/supplier/delivery/http"
	supplierdomain "github.com/amrani/pharmacy-backend/internal/supplier/domain"
	"github.com/amrani/pharmacy-backend/kafka"
	"github.com/amrani/pharmacy-backend/pkg/database"
	"github.com/amrani/pharmacy-backend/pkg/logger"
	"github.com/amrani/pharmacy-backend/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "pharmacy-backend")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting pharmacy backend")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "pharmacydb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	err = db.AutoMigrate(
		&meddomain.Group{},
		&meddomain.Medication{},
		&supplierdomain.Supplier{},
		&clientdomain.Client{},
		&orderdomain.Order{},
		&orderdomain.OrderLine{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLine{},
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher is optional; without brokers events are disabled
	var events *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		events, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to connect to Kafka, events disabled")
			events = nil
		} else {
			defer events.Close()
			logger.Logger.Info().Str("brokers", brokers).Msg("Kafka publisher initialized")
		}
	}

	router, err := buildRouter(db, sqlDB, events)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func buildRouter(db *gorm.DB, sqlDB *sql.DB, events *kafka.Publisher) (*mux.Router, error) {
	router := mux.NewRouter()

	metrics := server.NewMetrics()
	router.Use(server.RecoveryMiddleware)
	router.Use(server.RequestIDMiddleware)
	router.Use(server.TracingMiddleware)
	router.Use(server.LoggingMiddleware)
	router.Use(metrics.Middleware)
	router.Use(server.TimeoutMiddleware(30 * time.Second))
	router.Use(server.AuthMiddleware)

	medicationHandler, err := medication.InitializeHTTPHandler(db, events)
	if err != nil {
		return nil, err
	}
	orderHandler, err := order.InitializeHTTPHandler(db, events)
	if err != nil {
		return nil, err
	}
	invoiceHandler, err := invoice.InitializeHTTPHandler(db, events)
	if err != nil {
		return nil, err
	}
	reportingHandler, err := reporting.InitializeHTTPHandler(db)
	if err != nil {
		return nil, err
	}

	ledger := medication.ProvideStockLedger(db)
	supplierHandler := supplierhttp.NewSupplierHandler(
		order.ProvideSupplierRepository(db),
		order.ProvideOrderRepository(db, ledger),
	)
	clientHandler := clienthttp.NewClientHandler(
		invoice.ProvideClientRepository(db),
		invoice.ProvideInvoiceRepository(db, ledger),
	)

	medicationHandler.RegisterRoutes(router)
	supplierHandler.RegisterRoutes(router)
	clientHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	invoiceHandler.RegisterRoutes(router)
	reportingHandler.RegisterRoutes(router)

	server.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	return router, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
