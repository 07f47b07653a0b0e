package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	pawsitiveserver "github.com/Apurer/pawsitive-drive-server/go"

	donationworkflows "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/workflows"
	donationports "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	platformobservability "github.com/Apurer/pawsitive-drive-server/internal/platform/observability"
)

const serviceName = "pawsitive-drive-api"

// Run boots the Pawsitive Drive HTTP API with observability, repositories, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	if err := LoadEnvFiles(); err != nil {
		return err
	}
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	// registration resolves roles by name, so they must exist before traffic arrives
	roles, err := services.Registry.SeedRoles(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	logger.Info("roles seeded", slog.Int("count", len(roles)))

	var donationWorkflows donationports.WorkflowOrchestrator = donationworkflows.NewInlineDonationWorkflows(services.Donations)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, recording donations inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		donationWorkflows = donationworkflows.NewTemporalDonationWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := pawsitiveserver.ApiHandleFunctions{
		ApplicationsAPI: pawsitiveserver.NewApplicationsAPI(services.Adoptions),
		DonationsAPI:    pawsitiveserver.NewDonationsAPI(services.Donations, donationWorkflows),
		RegistryAPI:     pawsitiveserver.NewRegistryAPI(services.Registry),
	}

	// middleware only reaches routes registered after it
	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName), pawsitiveserver.RequestTimeout(cfg.RequestTimeout))
	router = pawsitiveserver.NewRouterWithGinEngine(router, handlers)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Pawsitive Drive API listening", slog.String("addr", srv.Addr), slog.String("backend", string(services.Backend)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Pawsitive Drive API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down Pawsitive Drive API")
		return srv.Shutdown(shutdownCtx)
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// ConnectTemporalClient dials Temporal with the tracing interceptor used by the API.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	return connectTemporalClient(cfg, instruments)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
