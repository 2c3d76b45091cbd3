package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"stylescout-go/config"
	"stylescout-go/internal/database"
	"stylescout-go/internal/extract"
	"stylescout-go/internal/handler"
	"stylescout-go/internal/metrics"
	"stylescout-go/internal/repository"
	"stylescout-go/internal/router"
	"stylescout-go/internal/scheduler"
	"stylescout-go/internal/service"
	"stylescout-go/internal/storage"
)

func main() {
	// Configure logging
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	logrus.Info("Starting StyleScout Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Configuration validation failed: %v", err)
	}

	// Initialize database
	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize metrics
	m := metrics.NewMetrics()

	repo := repository.New(db)
	blobs := storage.NewBlobStore(cfg.Storage.DataDir)
	tokens := service.NewTokenService(&cfg.Mail, repo)

	// Mail source factory: Gmail API by default, IMAP when configured.
	var sources service.SourceFactory
	if cfg.Mail.UseIMAP {
		logrus.Info("Using IMAP for mail fetching")
		sources = func(ctx context.Context, userID uint) (service.MailSource, error) {
			return service.NewIMAPSource(&cfg.Mail)
		}
	} else {
		logrus.Info("Using Gmail API for mail fetching")
		sources = func(ctx context.Context, userID uint) (service.MailSource, error) {
			token, err := tokens.ValidToken(ctx, userID)
			if err != nil {
				return nil, err
			}
			return service.NewGmailSource(ctx, token)
		}
	}

	// Extraction chain: remote service first when configured, then direct
	// fetch, then the URL heuristic.
	var strategies []extract.Strategy
	remote := extract.NewRemoteService(cfg.Extraction.ServiceURL, cfg.Extraction.ServiceKey, cfg.Extraction.FetchTimeout)
	if remote.Available() {
		strategies = append(strategies, remote)
	}
	strategies = append(strategies,
		extract.NewDirectFetch(cfg.Extraction.FetchTimeout),
		extract.NewURLHeuristic(),
	)
	chain := extract.NewChain(strategies...)
	chain.Observer = func(tier string, ok bool) {
		outcome := "error"
		if ok {
			outcome = "ok"
		}
		m.TierOutcomes.WithLabelValues(tier, outcome).Inc()
	}

	policy := service.QuotaPolicyFromConfig(&cfg.Mail)
	scans := service.NewScanService(repo, sources, policy, m)
	items := service.NewItemService(repo, blobs, chain, m)

	// Initialize HTTP handlers
	handlers := handler.New(repo, scans, items, cfg.Auth.JWTSecret)

	// Setup HTTP server
	r := router.SetupRouter(handlers)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start the background scheduler when enabled. Scans stay request
	// triggered by default.
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(&cfg.Scheduler, repo, scans)
		if err := sched.Start(); err != nil {
			logrus.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("Starting HTTP server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(); err != nil {
			logrus.Errorf("Failed to stop scheduler: %v", err)
		}
		sched.Wait()
	}

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
