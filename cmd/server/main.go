package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"portops/internal/config"
	"portops/internal/domain"
	"portops/internal/email/noop"
	"portops/internal/email/ses"
	"portops/internal/handler"
	"portops/internal/port"
	"portops/internal/reconcile"
	"portops/internal/repository/postgres"
	"portops/internal/router"
	"portops/internal/service"
	s3storage "portops/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	vesselRepo := postgres.NewVesselRepo(db)
	containerRepo := postgres.NewContainerRepo(db)
	tariffRepo := postgres.NewTariffRepo(db)

	// Initialize email
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		log.Printf("Email: SES (%s)", cfg.Email.Region)
	default:
		emailSender = noop.NewNoopSender()
		log.Printf("Email: noop")
	}

	// Initialize storage. Archiving is disabled without a bucket.
	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Printf("S3 bucket not configured, inventory archiving disabled")
	}

	detention := domain.DetentionConfig{
		UrgentDays:  cfg.Detention.UrgentDays,
		WarningDays: cfg.Detention.WarningDays,
	}
	reconciler := reconcile.NewReconciler(reconcile.Defaults{
		Pkgs:              cfg.Import.DefaultPkgs,
		Weight:            cfg.Import.DefaultWeight,
		ContainerSize:     cfg.Import.ContainerSize,
		VehicleSize:       cfg.Import.VehicleSize,
		Depot:             cfg.Import.Depot,
		Carrier:           cfg.Import.Carrier,
		DetentionFreeDays: cfg.Import.DetentionFreeDays,
	})

	// Initialize services
	vesselSvc := service.NewVesselService(vesselRepo, containerRepo, emailSender, reconciler, cfg.Email.DeptEmails, nil)
	containerSvc := service.NewContainerService(containerRepo, vesselRepo, emailSender, detention, cfg.Email.DepotEmail, nil)
	tariffSvc := service.NewTariffService(tariffRepo, cfg.Billing.WeightFactor)
	reportSvc := service.NewReportService(vesselRepo, containerRepo, tariffRepo, storage, service.ReportConfig{
		VATRate:       cfg.Billing.VATRate,
		WeightFactor:  cfg.Billing.WeightFactor,
		Company:       cfg.Billing.Company,
		PresignExpiry: time.Duration(cfg.S3.PresignExpiry) * time.Second,
	}, nil)
	statsSvc := service.NewStatsService(vesselRepo, containerRepo, detention, nil)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	workerDone := make(chan struct{})
	if cfg.Alerts.PollInterval > 0 {
		worker := service.NewDetentionAlertWorker(containerRepo, containerSvc, service.DetentionAlertConfig{
			PollInterval: cfg.Alerts.PollInterval,
			RemindAfter:  cfg.Alerts.RemindAfter,
			Concurrency:  cfg.Alerts.Concurrency,
		}, nil)
		go func() {
			worker.Start(workerCtx)
			close(workerDone)
		}()
	} else {
		close(workerDone)
	}

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, router.Handlers{
		Health:    handler.NewHealthHandler(db),
		Vessel:    handler.NewVesselHandler(vesselSvc),
		Container: handler.NewContainerHandler(containerSvc),
		Tariff:    handler.NewTariffHandler(tariffSvc),
		Report:    handler.NewReportHandler(reportSvc, nil),
		Stats:     handler.NewStatsHandler(statsSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	stopWorker()
	<-workerDone
	log.Println("Server stopped")
	return nil
}
