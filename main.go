package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/mrops-br/lots-api/internal/app/service"
	"github.com/mrops-br/lots-api/internal/infrastructure/config"
	"github.com/mrops-br/lots-api/internal/infrastructure/http"
	"github.com/mrops-br/lots-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/lots-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/lots-api/internal/infrastructure/telemetry"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telem, err := telemetry.NewTelemetry(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer(cfg.OTLP.ServiceName)
	meter := telem.MeterProvider.Meter(cfg.OTLP.ServiceName)
	logger := telem.Logger

	logger.Info("Starting Lots API")

	repo := memory.NewLotRepository(tracer, logger)
	lotService := service.NewLotService(repo, tracer, meter, logger)
	lotHandler := handler.NewLotHandler(lotService, logger)
	server := http.NewServer(&cfg.Server, lotHandler, logger, telem)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")
}
