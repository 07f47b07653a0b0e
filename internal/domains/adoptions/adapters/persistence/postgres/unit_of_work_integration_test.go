//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptionpostgres "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/persistence/postgres"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/application"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
	registrydomain "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/migrations"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/postgres/postgrestest"
)

func setupAdoptionPostgres(t *testing.T) (*application.Service, ports.Repositories) {
	t.Helper()
	db := postgrestest.StartPostgres(t)
	require.NoError(t, migrations.Run(db))
	repos := adoptionpostgres.NewRepositories(db)
	return application.NewService(repos, adoptionpostgres.NewUnitOfWork(db, 5*time.Second)), repos
}

func TestPostgres_ConcurrentApprovalsForOnePet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	svc, repos := setupAdoptionPostgres(t)
	ctx := context.Background()

	admin, err := repos.Users.Create(ctx, &registrydomain.User{Name: "Ada", Email: "ada@example.com", RoleID: 2, Status: registrydomain.UserStatusActive})
	require.NoError(t, err)
	pet, err := repos.Pets.Create(ctx, &registrydomain.Pet{Name: "Rex", Species: "Dog", Status: registrydomain.PetStatusAvailable, AddedBy: admin.ID})
	require.NoError(t, err)

	const applicants = 4
	appIDs := make([]int64, 0, applicants)
	for i := 0; i < applicants; i++ {
		user, err := repos.Users.Create(ctx, &registrydomain.User{
			Name: "Applicant", Email: "applicant" + string(rune('a'+i)) + "@example.com", RoleID: 1, Status: registrydomain.UserStatusActive,
		})
		require.NoError(t, err)
		app, err := svc.Submit(ctx, ports.SubmitInput{PetID: &pet.ID, UserID: &user.ID})
		require.NoError(t, err)
		appIDs = append(appIDs, app.ID)
	}

	approved := string(domain.StatusApproved)
	var wg sync.WaitGroup
	errs := make([]error, applicants)
	for i, id := range appIDs {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = svc.Review(ctx, ports.ReviewInput{ApplicationID: id, Status: &approved, ReviewerID: &admin.ID})
		}(i, id)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}

	stored, err := repos.Pets.GetByID(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, registrydomain.PetStatusAdopted, stored.Status)

	apps, err := svc.ListByPet(ctx, pet.ID)
	require.NoError(t, err)
	require.Len(t, apps, applicants)
	for _, app := range apps {
		assert.Equal(t, domain.StatusApproved, app.Status)
	}
}

func TestPostgres_ReviewOfUnknownReviewerRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	svc, repos := setupAdoptionPostgres(t)
	ctx := context.Background()

	user, err := repos.Users.Create(ctx, &registrydomain.User{Name: "Uma", Email: "uma@example.com", RoleID: 1, Status: registrydomain.UserStatusActive})
	require.NoError(t, err)
	pet, err := repos.Pets.Create(ctx, &registrydomain.Pet{Name: "Rex", Status: registrydomain.PetStatusAvailable, AddedBy: user.ID})
	require.NoError(t, err)
	app, err := svc.Submit(ctx, ports.SubmitInput{PetID: &pet.ID, UserID: &user.ID})
	require.NoError(t, err)

	approved := string(domain.StatusApproved)
	ghost := int64(9999)
	_, err = svc.Review(ctx, ports.ReviewInput{ApplicationID: app.ID, Status: &approved, ReviewerID: &ghost})
	require.Error(t, err)

	stored, err := svc.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	storedPet, err := repos.Pets.GetByID(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, registrydomain.PetStatusAvailable, storedPet.Status)
}
