package donations

import (
	"context"
	"errors"
	"strings"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

const (
	// RecordDonationActivityName records a donation with its history entry and receipt.
	RecordDonationActivityName = "donations.activities.RecordDonation"

	workflowKeyPrefix = "workflow:"
)

// Activities groups activities that operate on the donations bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the donation service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// RecordDonation runs one intake attempt. Caller errors are returned as
// non-retryable application errors typed with their kind so the workflow
// fails fast; transient and internal failures are retried by the activity policy.
// Without a caller key the workflow ID keys the request, so a retry after a
// commit replays the recorded donation.
func (a *Activities) RecordDonation(ctx context.Context, input ports.RecordDonationInput) (*domain.Donation, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("donation intake activity not initialized")
		return nil, errors.New("donation intake activity not initialized")
	}
	info := activity.GetInfo(ctx)
	if strings.TrimSpace(input.IdempotencyKey) == "" && info.WorkflowExecution.ID != "" {
		input.IdempotencyKey = workflowKeyPrefix + info.WorkflowExecution.ID
	}
	logger.Info("RecordDonation activity started", "attempt", info.Attempt)
	donation, err := a.service.RecordDonation(ctx, input)
	if err != nil {
		logger.Error("RecordDonation activity failed", "error", err)
		return nil, ToApplicationError(err)
	}
	logger.Info("RecordDonation activity completed", "donationId", donation.ID)
	return donation, nil
}

// ToApplicationError tags err with its failure kind for transport through Temporal.
func ToApplicationError(err error) error {
	if err == nil {
		return nil
	}
	kind := sharederrors.KindOf(err)
	switch kind {
	case sharederrors.KindInvalidInput, sharederrors.KindNotFound, sharederrors.KindConflict:
		return temporal.NewNonRetryableApplicationError(err.Error(), string(kind), nil)
	default:
		return temporal.NewApplicationError(err.Error(), string(kind))
	}
}

// FromApplicationError restores the failure kind carried by a Temporal error chain.
// Errors without a recognised kind are returned unchanged.
func FromApplicationError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch kind := sharederrors.Kind(appErr.Type()); kind {
	case sharederrors.KindInvalidInput, sharederrors.KindNotFound, sharederrors.KindConflict, sharederrors.KindTransient:
		return sharederrors.New(kind, appErr.Error())
	default:
		return err
	}
}
