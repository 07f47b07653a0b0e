package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pawsitive-drive-server/internal/app/api"
	platformobservability "github.com/Apurer/pawsitive-drive-server/internal/platform/observability"
	donationactivities "github.com/Apurer/pawsitive-drive-server/internal/platform/temporal/activities/donations"
	donationworkflows "github.com/Apurer/pawsitive-drive-server/internal/platform/temporal/workflows/donations"
)

func main() {
	ctx := context.Background()
	const serviceName = "pawsitive-drive-worker"
	if err := api.LoadEnvFiles(); err != nil {
		log.Fatalf("failed to load env files: %v", err)
	}
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	// the worker writes the same store as the API; without POSTGRES_DSN its donations are not shared
	services, cleanup, err := api.BuildServices(ctx, cfg, instruments)
	if err != nil {
		logger.Error("failed to wire services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	if services.Backend != api.BackendPostgres {
		logger.Warn("worker running against the in-memory store")
	}
	donationActivities := donationactivities.NewActivities(services.Donations)

	cfg.TemporalDisabled = false
	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, donationworkflows.DonationIntakeTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(donationworkflows.DonationIntakeWorkflow, workflow.RegisterOptions{Name: donationworkflows.DonationIntakeWorkflowName})
	w.RegisterActivityWithOptions(donationActivities.RecordDonation, activity.RegisterOptions{Name: donationactivities.RecordDonationActivityName})

	logger.Info("worker listening", slog.String("taskQueue", donationworkflows.DonationIntakeTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
