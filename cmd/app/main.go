package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/surgearcade/portal/internal/bootstrap"
	"github.com/surgearcade/portal/internal/catalog"
	"github.com/surgearcade/portal/internal/challenge"
	"github.com/surgearcade/portal/internal/config"
	"github.com/surgearcade/portal/internal/database"
	"github.com/surgearcade/portal/internal/eventlog"
	"github.com/surgearcade/portal/internal/games"
	"github.com/surgearcade/portal/internal/handler"
	"github.com/surgearcade/portal/internal/profile"
	"github.com/surgearcade/portal/internal/rotation"
	"github.com/surgearcade/portal/internal/server"
	"github.com/surgearcade/portal/internal/shop"
	"github.com/surgearcade/portal/internal/wallet"
	"github.com/surgearcade/portal/internal/worker"
)

// Database pool settings
const (
	dbMaxConnections  = 25
	dbMaxIdleTime     = 5 * time.Minute
	dbMaxConnLifetime = 30 * time.Minute
)

// shutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxConnLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	eventBus, publisher, deadLetter, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system initialization failed", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	catalogCfg, err := catalog.DefaultConfig()
	if err != nil {
		slog.Error("Catalog content load failed", "error", err)
		os.Exit(1)
	}

	challengePool, err := challenge.DefaultPool()
	if err != nil {
		slog.Error("Challenge content load failed", "error", err)
		os.Exit(1)
	}

	// Services publish through the resilient publisher; subscribers
	// register on the underlying bus.
	rotationSvc := rotation.NewService(catalog.NewGenerator(catalogCfg), cfg.RotationSize)
	shopSvc := shop.NewService(repos.Shop, rotationSvc, publisher)
	walletSvc := wallet.NewService(repos.Wallet, publisher)
	profileSvc := profile.NewService(repos.Profile)
	challengeSvc := challenge.NewService(challengePool, repos.Challenge, publisher, cfg.DailyChallengeCount)
	gamesSvc := games.NewService(repos.Games, publisher)
	eventLogSvc := eventlog.NewService(repos.EventLog)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:         eventBus,
		ChallengeService: challengeSvc,
		EventLogService:  eventLogSvc,
	}); err != nil {
		slog.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	handler.InitValidator()

	rolloverWorker := worker.NewRolloverWorker(rotationSvc, challengeSvc, publisher,
		eventlog.NewCleanupJob(eventLogSvc, eventlog.DefaultRetentionDays))
	rolloverWorker.Start()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, server.Services{
		Rotation:  rotationSvc,
		Shop:      shopSvc,
		Wallet:    walletSvc,
		Profile:   profileSvc,
		Challenge: challengeSvc,
		Games:     gamesSvc,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		RolloverWorker:     rolloverWorker,
		ResilientPublisher: publisher,
		DeadLetterWriter:   deadLetter,
	})
}
