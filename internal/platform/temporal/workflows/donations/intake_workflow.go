package donations

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/temporal/sequences"
)

const (
	// DonationIntakeWorkflowName is the public identifier for registering the workflow.
	DonationIntakeWorkflowName = "donations.workflows.Intake"
	// DonationIntakeTaskQueue is the queue consumed by the worker processing donation workflows.
	DonationIntakeTaskQueue = "DONATION_INTAKE"
)

// DonationIntakeWorkflowInput captures the payload required to record a donation.
type DonationIntakeWorkflowInput struct {
	Command ports.RecordDonationInput
	TraceID string
}

// DonationIntakeWorkflow durably records a donation with its history entry and receipt.
func DonationIntakeWorkflow(ctx workflow.Context, input DonationIntakeWorkflowInput) (*domain.Donation, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("DonationIntakeWorkflow started", withTraceID(input.TraceID, "userId", userID(input.Command))...)
	donation, err := sequences.RunDonationIntakeSequence(ctx, input.Command)
	if err != nil {
		logger.Error("DonationIntakeWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("DonationIntakeWorkflow completed", withTraceID(input.TraceID, "donationId", donation.ID)...)
	return donation, nil
}

func userID(cmd ports.RecordDonationInput) int64 {
	if cmd.UserID == nil {
		return 0
	}
	return *cmd.UserID
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
