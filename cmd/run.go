package cmd

import (
	"context"
	"fmt"
	"time"

	"lotocart/application"
	"lotocart/config"
	"lotocart/database"
	"lotocart/domain/interfaces"
	"lotocart/domain/services"
	"lotocart/infrastructure"
	"lotocart/repository"
	"lotocart/server"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting lotocart...")

	cfg := config.Get()

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established")

	// Event publishing degrades to a no-op when NATS is not configured.
	var publisher interfaces.EventPublisher = infrastructure.NewNoopEventPublisher()
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		log.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")
		natsClient = infrastructure.NewNATSClient(cfg.NATSServers)
		if err := natsClient.Connect(ctx); err != nil {
			log.WithError(err).Warn("NATS unavailable, order events will not be published")
			natsClient = nil
		} else {
			natsPublisher := infrastructure.NewNATSEventPublisher(natsClient, infrastructure.NewEventSubjectMapper())
			if err := natsPublisher.EnsureOrderEventStream(); err != nil {
				return fmt.Errorf("failed to ensure event stream: %w", err)
			}
			publisher = natsPublisher
		}
	}

	gateway := infrastructure.NewLotteryAPIClient(cfg.LotteryAPIBaseURL)
	handoff := infrastructure.NewWhatsAppHandoff(cfg.WhatsAppPhone)
	cartRepo := repository.NewCartRepository(db)
	cartService := services.NewCartService(services.NewNumberService(), gateway, publisher, cfg.LotteryAPIUserID)
	checkout := application.NewCheckoutService(cartService, cartRepo, gateway, handoff)

	srv := server.NewServer(cfg.ListenAddr, checkout)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	log.WithField("environment", cfg.Environment).Info("Service is running")

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down HTTP server")
	}

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}
