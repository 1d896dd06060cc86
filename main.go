package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productapi/internal/app"
	"productapi/internal/config"
	"productapi/internal/logger"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	bootLog := logger.New("info", true)
	if err := config.LoadDotEnv(); err != nil {
		bootLog.Fatal().Err(err).Msg("failed to read .env")
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	ln, err := net.Listen("tcp", cfg.AppPort)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.AppPort).Msg("failed to listen")
	}

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info().Msg("shutting down server")
		cancel()
	}()

	if err := run(ctx, cfg, log, ln); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server gracefully stopped")
}

// run serves the product API on ln until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, ln net.Listener) error {
	// --- Product store ---
	repo, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		ln.Close()
		return fmt.Errorf("failed to open product store: %w", err)
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Error().Err(err).Msg("error closing product store")
		}
	}()

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			ln.Close()
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeProductEvents(app.AuditProductEvents(log)); err != nil {
			log.Error().Err(err).Msg("failed to start product event consumer")
		}
	} else {
		log.Info().Msg("RABBITMQ_URL not set, product events are not published")
	}

	// --- Services and HTTP app ---
	productService := services.NewProductService(repo, publisher, rabbitmq.ProductExchange, log)
	application := app.New(productService, log)

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Str("store", cfg.DBDriver).Msg("starting server")
		serveErr <- application.Listener(ln)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	if err := application.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("error during fiber shutdown: %w", err)
	}
	return nil
}
