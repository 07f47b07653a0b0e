package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptionmemory "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/memory"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/application"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
	registrymemory "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/memory"
	registrydomain "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	registryports "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

type fixture struct {
	store    *memstore.Store
	registry registrymemory.Repositories
	repos    ports.Repositories
	svc      *application.Service
	admin    *registrydomain.User
	donor    *registrydomain.User
	pet      *registrydomain.Pet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	registry := registrymemory.NewRepositories(store)
	repos := ports.Repositories{
		Applications: adoptionmemory.NewApplicationRepository(store),
		Pets:         registry.Pets,
		Users:        registry.Users,
	}
	f := &fixture{store: store, registry: registry, repos: repos}
	f.svc = application.NewService(repos, adoptionmemory.NewUnitOfWork(store, repos)).
		WithClock(func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) })

	var err error
	f.admin, err = registry.Users.Create(ctx, &registrydomain.User{ID: 1, Name: "Ada", Email: "ada@example.com", RoleID: 2, Status: registrydomain.UserStatusActive})
	require.NoError(t, err)
	f.donor, err = registry.Users.Create(ctx, &registrydomain.User{ID: 5, Name: "Uma", Email: "uma@example.com", RoleID: 1, Status: registrydomain.UserStatusActive})
	require.NoError(t, err)
	f.pet, err = registry.Pets.Create(ctx, &registrydomain.Pet{ID: 101, Name: "Rex", Species: "Dog", Status: registrydomain.PetStatusAvailable, AddedBy: 1})
	require.NoError(t, err)
	return f
}

func ptr[T any](v T) *T { return &v }

func TestSubmit_DefaultsToPendingAndIsRetrievable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5))})
	require.NoError(t, err)
	assert.NotZero(t, app.ID)
	assert.Equal(t, domain.StatusPending, app.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), app.ApplicationDate)

	fetched, err := f.svc.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app, fetched)
}

func TestSubmit_ExplicitStatusIsCanonicalised(t *testing.T) {
	f := newFixture(t)

	app, err := f.svc.Submit(context.Background(), ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5)), Status: ptr("rejected")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, app.Status)
}

func TestSubmit_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, ports.SubmitInput{UserID: ptr(int64(5))})
	require.ErrorIs(t, err, sharederrors.ErrInvalidInput)

	_, err = f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101))})
	require.ErrorIs(t, err, sharederrors.ErrInvalidInput)

	_, err = f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(999)), UserID: ptr(int64(5))})
	require.ErrorIs(t, err, registryports.ErrPetNotFound)

	_, err = f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(999))})
	require.ErrorIs(t, err, registryports.ErrUserNotFound)

	_, err = f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5)), Status: ptr("Withdrawn")})
	require.ErrorIs(t, err, sharederrors.ErrInvalidInput)

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReview_ApprovalAdoptsPet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5))})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, app.Status)

	reviewed, err := f.svc.Review(ctx, ports.ReviewInput{ApplicationID: app.ID, Status: ptr("approved"), ReviewerID: ptr(int64(1))})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, int64(1), *reviewed.ReviewedBy)

	pet, err := f.registry.Pets.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, registrydomain.PetStatusAdopted, pet.Status)
}

func TestReview_RejectionLeavesPetAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5))})
	require.NoError(t, err)

	reviewed, err := f.svc.Review(ctx, ports.ReviewInput{ApplicationID: app.ID, Status: ptr("Rejected")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, reviewed.Status)
	assert.Nil(t, reviewed.ReviewedBy)

	pet, err := f.registry.Pets.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, registrydomain.PetStatusAvailable, pet.Status)
}

func TestReview_ApprovingAlreadyAdoptedPetIsNotAnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5))})
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(1))})
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, ports.ReviewInput{ApplicationID: first.ID, Status: ptr("Approved")})
	require.NoError(t, err)
	again, err := f.svc.Review(ctx, ports.ReviewInput{ApplicationID: second.ID, Status: ptr("Approved")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, again.Status)

	// re-reviewing a terminal application is allowed
	_, err = f.svc.Review(ctx, ports.ReviewInput{ApplicationID: first.ID, Status: ptr("Approved")})
	require.NoError(t, err)
}

func TestReview_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Review(ctx, ports.ReviewInput{ApplicationID: 404, Status: ptr("Approved")})
	require.ErrorIs(t, err, ports.ErrApplicationNotFound)

	app, err := f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5))})
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, ports.ReviewInput{ApplicationID: app.ID, Status: ptr("Approved"), ReviewerID: ptr(int64(77))})
	require.ErrorIs(t, err, sharederrors.ErrNotFound)

	_, err = f.svc.Review(ctx, ports.ReviewInput{ApplicationID: app.ID, Status: ptr("Maybe")})
	require.ErrorIs(t, err, sharederrors.ErrInvalidInput)

	// neither failure touched the pet or the application
	pet, err := f.registry.Pets.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, registrydomain.PetStatusAvailable, pet.Status)
	stored, err := f.svc.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

type failingApplications struct {
	ports.ApplicationRepository
}

func (failingApplications) Update(context.Context, *domain.Application) (*domain.Application, error) {
	return nil, errors.New("disk full")
}

func TestReview_FailedApplicationWriteRollsBackPet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5))})
	require.NoError(t, err)

	broken := f.repos
	broken.Applications = failingApplications{ApplicationRepository: f.repos.Applications}
	svc := application.NewService(broken, adoptionmemory.NewUnitOfWork(f.store, broken))

	_, err = svc.Review(ctx, ports.ReviewInput{ApplicationID: app.ID, Status: ptr("Approved")})
	require.Error(t, err)
	assert.Equal(t, sharederrors.KindInternal, sharederrors.KindOf(err))

	pet, err := f.registry.Pets.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, registrydomain.PetStatusAvailable, pet.Status, "pet update must roll back with the application")
}

func TestReview_ConcurrentApprovalsBothSucceed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5))})
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(1))})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []int64{first.ID, second.ID} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.Review(ctx, ports.ReviewInput{ApplicationID: id, Status: ptr("Approved")})
		}()
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	pet, err := f.registry.Pets.GetByID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, registrydomain.PetStatusAdopted, pet.Status)
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.registry.Pets.Create(ctx, &registrydomain.Pet{Name: "Tom", Species: "Cat", Status: registrydomain.PetStatusAvailable, AddedBy: 1})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(int64(101)), UserID: ptr(int64(5))})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(other.ID), UserID: ptr(int64(5))})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, ports.SubmitInput{PetID: ptr(other.ID), UserID: ptr(int64(1))})
	require.NoError(t, err)

	byDonor, err := f.svc.ListByApplicant(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, byDonor, 2)

	byPet, err := f.svc.ListByPet(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, byPet, 2)

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Less(t, all[0].ID, all[1].ID)

	_, err = f.svc.ListByApplicant(ctx, 999)
	require.ErrorIs(t, err, registryports.ErrUserNotFound)
	_, err = f.svc.ListByPet(ctx, 999)
	require.ErrorIs(t, err, registryports.ErrPetNotFound)
}
