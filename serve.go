package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/foodiego/config"
	"github.com/yeremiapane/foodiego/events"
	"github.com/yeremiapane/foodiego/live"
	"github.com/yeremiapane/foodiego/router"
	"github.com/yeremiapane/foodiego/telemetry"
	"github.com/yeremiapane/foodiego/utils"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.ConfigureJWT(cfg.JWTSecret, cfg.TokenTTL())

	tracing := false
	if cfg.OTLPEndpoint != "" {
		shutdown, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			utils.ErrorLogger.Printf("Tracing disabled: %v", err)
		} else {
			tracing = true
			defer shutdown(context.Background())
		}
	}

	publisher, closePublisher := orderPublisher(cfg)
	defer closePublisher()

	r := router.SetupRouter(db, router.Options{
		Config:    cfg,
		Hub:       live.NewHub(),
		Publisher: publisher,
		Tracing:   tracing,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	utils.InfoLogger.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// orderPublisher connects to RabbitMQ when configured. Without a broker,
// or when it is unreachable, events only reach the live hub.
func orderPublisher(cfg config.Config) (events.Publisher, func()) {
	if cfg.RabbitURL == "" {
		return events.Noop{}, func() {}
	}
	pub, err := events.NewAMQPPublisher(cfg.RabbitURL, cfg.OrderExchange)
	if err != nil {
		utils.ErrorLogger.Printf("Order events disabled: %v", err)
		return events.Noop{}, func() {}
	}
	utils.InfoLogger.Printf("Publishing order events to exchange %s", cfg.OrderExchange)
	return pub, func() {
		if err := pub.Close(); err != nil {
			utils.ErrorLogger.Printf("Closing AMQP publisher: %v", err)
		}
	}
}
