package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	donationactivities "github.com/Apurer/pawsitive-drive-server/internal/platform/temporal/activities/donations"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

// IntakeActivityOptions bounds one intake attempt and retries transient failures with backoff.
var IntakeActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: time.Minute,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    2 * time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    10 * time.Second,
		MaximumAttempts:    5,
		NonRetryableErrorTypes: []string{
			string(sharederrors.KindInvalidInput),
			string(sharederrors.KindNotFound),
			string(sharederrors.KindConflict),
		},
	},
}

// RunDonationIntakeSequence records the donation as a single activity. The
// activity owns the transaction, so a retry never leaves partial rows behind.
func RunDonationIntakeSequence(ctx workflow.Context, input ports.RecordDonationInput) (*domain.Donation, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("donation intake sequence started")

	var donation domain.Donation
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, IntakeActivityOptions), donationactivities.RecordDonationActivityName, input).Get(ctx, &donation)
	if err != nil {
		logger.Error("donation intake sequence failed", "error", err)
		return nil, err
	}
	logger.Info("donation intake sequence recorded", "donationId", donation.ID)
	return &donation, nil
}
