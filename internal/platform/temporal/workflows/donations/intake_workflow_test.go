package donations_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	donationmemory "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/memory"
	donationapp "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/application"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	registrymemory "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/memory"
	registryapp "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/application"
	registryports "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"
	donationactivities "github.com/Apurer/pawsitive-drive-server/internal/platform/temporal/activities/donations"
	donationworkflows "github.com/Apurer/pawsitive-drive-server/internal/platform/temporal/workflows/donations"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

type stubService struct {
	ports.Service
	calls  atomic.Int32
	record func(attempt int32, input ports.RecordDonationInput) (*domain.Donation, error)
}

func (s *stubService) RecordDonation(_ context.Context, input ports.RecordDonationInput) (*domain.Donation, error) {
	return s.record(s.calls.Add(1), input)
}

func newEnv(t *testing.T, svc ports.Service) *testsuite.TestWorkflowEnvironment {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(donationactivities.NewActivities(svc).RecordDonation, activity.RegisterOptions{Name: donationactivities.RecordDonationActivityName})
	return env
}

func TestDonationIntakeWorkflow_Records(t *testing.T) {
	userID := int64(5)
	svc := &stubService{record: func(_ int32, input ports.RecordDonationInput) (*domain.Donation, error) {
		return &domain.Donation{ID: 9, UserID: *input.UserID, Amount: decimal.RequireFromString(input.Amount), PaymentMethod: "Card", Status: domain.StatusPending}, nil
	}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(donationworkflows.DonationIntakeWorkflow, donationworkflows.DonationIntakeWorkflowInput{
		Command: ports.RecordDonationInput{UserID: &userID, Amount: "50.5", PaymentMethod: "Card"},
		TraceID: "trace-1",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var donation domain.Donation
	require.NoError(t, env.GetWorkflowResult(&donation))
	assert.Equal(t, int64(9), donation.ID)
	assert.True(t, donation.Amount.Equal(decimal.RequireFromString("50.5")))
}

func TestDonationIntakeWorkflow_CallerErrorsAreNotRetried(t *testing.T) {
	svc := &stubService{record: func(int32, ports.RecordDonationInput) (*domain.Donation, error) {
		return nil, sharederrors.New(sharederrors.KindNotFound, "donor 404: user not found")
	}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(donationworkflows.DonationIntakeWorkflow, donationworkflows.DonationIntakeWorkflowInput{})

	require.True(t, env.IsWorkflowCompleted())
	err := donationactivities.FromApplicationError(env.GetWorkflowError())
	require.Error(t, err)
	assert.Equal(t, sharederrors.KindNotFound, sharederrors.KindOf(err))
	assert.Equal(t, "donor 404: user not found", err.Error())
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestDonationIntakeWorkflow_TransientErrorsAreRetried(t *testing.T) {
	svc := &stubService{record: func(attempt int32, _ ports.RecordDonationInput) (*domain.Donation, error) {
		if attempt < 3 {
			return nil, sharederrors.New(sharederrors.KindTransient, "store timeout")
		}
		return &domain.Donation{ID: 3, UserID: 5, Status: domain.StatusPending}, nil
	}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(donationworkflows.DonationIntakeWorkflow, donationworkflows.DonationIntakeWorkflowInput{})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	assert.Equal(t, int32(3), svc.calls.Load())
}

// commitThenFail records through the real service but reports a transient
// failure on the first attempt, as when the store deadline fires after commit.
type commitThenFail struct {
	ports.Service
	calls atomic.Int32
	keys  []string
}

func (s *commitThenFail) RecordDonation(ctx context.Context, input ports.RecordDonationInput) (*domain.Donation, error) {
	s.keys = append(s.keys, input.IdempotencyKey)
	donation, err := s.Service.RecordDonation(ctx, input)
	if s.calls.Add(1) == 1 && err == nil {
		return nil, sharederrors.New(sharederrors.KindTransient, "store call: context deadline exceeded")
	}
	return donation, err
}

func TestDonationIntakeWorkflow_RetryAfterCommitRecordsOnce(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	registry := registrymemory.NewRepositories(store)
	registrySvc := registryapp.NewService(registry.Users, registry.Pets, registry.Roles)
	_, err := registrySvc.SeedRoles(ctx)
	require.NoError(t, err)
	donor, err := registrySvc.RegisterUser(ctx, registryports.RegisterUserInput{Name: "Uma", Email: "uma@example.com"})
	require.NoError(t, err)

	repos := donationmemory.NewRepositories(store, registry.Users, registry.Pets)
	donationSvc := donationapp.NewService(repos, donationmemory.NewUnitOfWork(store, repos))
	svc := &commitThenFail{Service: donationSvc}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(donationworkflows.DonationIntakeWorkflow, donationworkflows.DonationIntakeWorkflowInput{
		Command: ports.RecordDonationInput{UserID: &donor.ID, Amount: "20", PaymentMethod: "Card"},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var donation domain.Donation
	require.NoError(t, env.GetWorkflowResult(&donation))

	assert.Equal(t, int32(2), svc.calls.Load())
	require.Len(t, svc.keys, 2)
	assert.NotEmpty(t, svc.keys[0])
	assert.Equal(t, svc.keys[0], svc.keys[1])

	all, err := donationSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, donation.ID, all[0].Donation.ID)
	history, err := donationSvc.ListHistory(ctx, donation.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestDonationIntakeWorkflow_KeepsCallerKey(t *testing.T) {
	userID := int64(5)
	var got string
	svc := &stubService{record: func(_ int32, input ports.RecordDonationInput) (*domain.Donation, error) {
		got = input.IdempotencyKey
		return &domain.Donation{ID: 1, UserID: userID}, nil
	}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(donationworkflows.DonationIntakeWorkflow, donationworkflows.DonationIntakeWorkflowInput{
		Command: ports.RecordDonationInput{UserID: &userID, Amount: "1", IdempotencyKey: "abc-1"},
	})

	require.NoError(t, env.GetWorkflowError())
	assert.Equal(t, "abc-1", got)
}
