package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"order-backoffice/internal/cache"
	"order-backoffice/internal/client"
	"order-backoffice/internal/config"
	"order-backoffice/internal/events"
	"order-backoffice/internal/repository"
	"order-backoffice/internal/server"
	"order-backoffice/internal/service"
	"order-backoffice/internal/storage"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db := client.InitSqliteClient(cfg.DatabasePath)
	rdb := cache.New(cfg.Redis.Addr)

	producerCtx, producerCancel := context.WithCancel(context.Background())
	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, "order-backoffice", 256)
	producer.Start(producerCtx)

	uploader := storage.NewDiskStore(cfg.Uploads.Dir)

	orderRepo := repository.NewOrderRepository(db)
	recordRepo := repository.NewPaymentRecordRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	confirmationService := service.NewConfirmationService(db, orderRepo, recordRepo, uploader, producer, logger)
	catalogService := service.NewCatalogService(productRepo, uploader)
	crmService := service.NewCRMService(customerRepo, producer, logger)

	srv := server.NewServer(cfg.Auth.JWTSecret, confirmationService, catalogService, crmService, rdb)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	// flush remaining events before exit
	producerCancel()
	producer.WaitClosed()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment.Name == "development" && cfg.Log.Format != "json" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
