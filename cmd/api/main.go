package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"payment_relay/internal/adapter/http/routes"
	"payment_relay/internal/config"
	"payment_relay/internal/logger"
	"payment_relay/internal/metrics"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Whish Payment Relay API
// @version         1.0
// @description     Starts Whish Money payments, verifies gateway callbacks and records paid orders in the invoicing system.

// @host      localhost:10000
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatal("invalid configuration", zap.Error(err))
	}

	logger.Init(cfg.Log.Env, cfg.Log.Level)
	defer logger.Sync()

	metrics.MustRegister()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := routes.BuildDependencies(ctx, cfg)
	if err != nil {
		logger.L().Fatal("failed to build dependencies", zap.Error(err))
	}

	if err := routes.Run(ctx, cfg, deps); err != nil {
		logger.L().Fatal("failed to startup the application", zap.Error(err))
	}
	logger.L().Info("server stopped")
}
