package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/herosheet/sheet-api/internal/engine/pfcalc"
	handlerv1alpha1 "github.com/herosheet/sheet-api/internal/handlers/sheet/v1alpha1"
	sheetorch "github.com/herosheet/sheet-api/internal/orchestrators/sheet"
	redisclient "github.com/herosheet/sheet-api/internal/redis"
	characterrepo "github.com/herosheet/sheet-api/internal/repositories/character"
	featurerepo "github.com/herosheet/sheet-api/internal/repositories/feature"
	"github.com/herosheet/sheet-api/internal/repositories/sheetcache"
)

// serverConfig is read from the environment
type serverConfig struct {
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	HTTPPort  int    `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort  int    `env:"GRPC_PORT" envDefault:"50051"`
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  `Start the sheet API server with the HTTP endpoints and the gRPC health surface.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}

	featureRepo, err := featurerepo.NewRedis(&featurerepo.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create feature repository: %w", err)
	}

	charRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create character repository: %w", err)
	}

	cache, err := sheetcache.NewRedis(&sheetcache.RedisConfig{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create sheet cache: %w", err)
	}

	calcEngine, err := pfcalc.NewAdapter(&pfcalc.AdapterConfig{
		FeatureRepo: featureRepo,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	orchestrator, err := sheetorch.New(&sheetorch.Config{
		CharacterRepo: charRepo,
		SheetCache:    cache,
		Engine:        calcEngine,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	handler, err := handlerv1alpha1.NewHandler(&handlerv1alpha1.HandlerConfig{
		Service: orchestrator,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	mux := http.NewServeMux()
	handler.Register(mux)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	errChan := make(chan error, 2)

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	go func() {
		logger.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := grpcServer.Serve(grpcLis); err != nil {
			errChan <- fmt.Errorf("grpc server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down servers")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("graceful shutdown timeout exceeded, forcing stop")
			grpcServer.Stop()
		case <-stopped:
			logger.Info("servers stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	log.Printf("[%v] %s %v", level, msg, fields)
}
