package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	donationactivities "github.com/Apurer/pawsitive-drive-server/internal/platform/temporal/activities/donations"
	donationworkflows "github.com/Apurer/pawsitive-drive-server/internal/platform/temporal/workflows/donations"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalDonationWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineDonationWorkflows)(nil)
)

// TemporalDonationWorkflows starts donation workflows on a Temporal cluster.
type TemporalDonationWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalDonationWorkflows wires a Temporal client into the orchestrator.
func NewTemporalDonationWorkflows(c client.Client) *TemporalDonationWorkflows {
	return &TemporalDonationWorkflows{client: c, taskQueue: donationworkflows.DonationIntakeTaskQueue}
}

// RecordDonation starts the intake workflow and waits for its result. With an
// idempotency key the workflow id is derived from the key, so a retried request
// attaches to the run already in flight.
func (o *TemporalDonationWorkflows) RecordDonation(ctx context.Context, input ports.RecordDonationInput) (*domain.Donation, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal donation workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildDonationIntakeWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		donationworkflows.DonationIntakeWorkflowName,
		donationworkflows.DonationIntakeWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && strings.TrimSpace(input.IdempotencyKey) != "" {
			run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
		} else {
			return nil, err
		}
	}
	var donation domain.Donation
	if err := run.Get(ctx, &donation); err != nil {
		return nil, donationactivities.FromApplicationError(err)
	}
	return &donation, nil
}

// InlineDonationWorkflows executes the service directly without Temporal, used when no cluster is reachable.
type InlineDonationWorkflows struct {
	service ports.Service
}

// NewInlineDonationWorkflows wraps the donation service for synchronous execution.
func NewInlineDonationWorkflows(service ports.Service) *InlineDonationWorkflows {
	return &InlineDonationWorkflows{service: service}
}

// RecordDonation delegates to the application service without durable orchestration.
func (o *InlineDonationWorkflows) RecordDonation(ctx context.Context, input ports.RecordDonationInput) (*domain.Donation, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline donation workflows not configured")
	}
	return o.service.RecordDonation(ctx, input)
}

func buildDonationIntakeWorkflowID(input ports.RecordDonationInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("donation-intake-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("donation-intake-%s-%s", uuid.NewString(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// first 16 hex chars
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
