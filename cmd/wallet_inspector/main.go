package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wallet_inspector/internal/app/service"
	"wallet_inspector/internal/app/validation"
	"wallet_inspector/internal/config"
	"wallet_inspector/internal/infrastructure/covalent"
	networkdefinition "wallet_inspector/internal/infrastructure/network/definition"
	"wallet_inspector/internal/infrastructure/ratelimit"
	"wallet_inspector/internal/infrastructure/restapi"
	"wallet_inspector/internal/pkg/logger"
	"wallet_inspector/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfgPath := config.GetEnv(config.EnvConfigPath, config.DefaultConfigPath)
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		logrus.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Route slog, and the port.Logger adapter built on it, through zap.
	logger.InitFromZap(zapLogger)
	appLogger := logger.NewSlogAdapter()

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	registry, err := networkdefinition.NewChainRegistry(appLogger, cfg.Chains.Enabled)
	if err != nil {
		zapLogger.Fatal("Failed to build chain registry", zap.Error(err))
	}

	covalentClient := covalent.NewClient(covalent.Config{
		BaseURL:         cfg.Indexer.BaseURL,
		APIKey:          cfg.Indexer.APIKey,
		Timeout:         cfg.Indexer.RequestTimeout(),
		MaxConnsPerHost: cfg.Indexer.MaxConnsPerHost,
	}, zapLogger)
	zapLogger.Info("Covalent client initialized",
		zap.String("baseURL", cfg.Indexer.BaseURL),
		zap.Duration("timeout", cfg.Indexer.RequestTimeout()))

	walletService := service.NewWalletService(covalentClient, appLogger)
	validator := validation.NewValidator(registry)

	limiter := ratelimit.NewIPRateLimiter(cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests)
	if limiter == nil {
		zapLogger.Warn("Rate limiting disabled")
	} else {
		zapLogger.Info("Rate limiting enabled",
			zap.Duration("window", limiter.Window()),
			zap.Int("maxRequests", limiter.Max()))
	}

	if !strings.EqualFold(cfg.Logging.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	walletHandler := restapi.NewWalletHandler(walletService, validator, registry, zapLogger)
	router := restapi.SetupRouter(walletHandler, zapLogger, restapi.RouterOptions{
		CORS:        cfg.CORS,
		RateLimiter: limiter,
		Swagger:     cfg.Swagger,
		Pprof:       cfg.Debug.PprofEnabled,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on %s", srv.Addr),
			zap.String("walletEndpoint", "/api/wallet/:address"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
