//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/pawsitive-drive-server/test/pact"

	pawsitiveserver "github.com/Apurer/pawsitive-drive-server/go"
	adoptionmemory "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/memory"
	adoptionobs "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/observability"
	adoptionapp "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/application"
	adoptionports "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
	donationmemory "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/memory"
	donationobs "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/observability"
	donationworkflows "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/workflows"
	donationapp "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/application"
	donationports "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	registrymemory "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/memory"
	registryobs "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/observability"
	registryapp "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/application"
	registryports "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestPawsitiveProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateDonorAndPetExist: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateDonationExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedDonation(t)
			}
			return nil, nil
		},
		pacttest.StateDonationMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StatePendingApplication: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedApplication(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves the real router over a store that each provider
// state replaces.
type contractProviderApp struct {
	mu        sync.RWMutex
	router    http.Handler
	adoptions adoptionports.Service
	donations donationports.Service
	server    *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

// reset rebuilds the services over an empty store and seeds the admin,
// the donor, and one pet.
func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	store := memstore.New()
	registry := registrymemory.NewRepositories(store)
	registrySvc := registryobs.New(registryapp.NewService(registry.Users, registry.Pets, registry.Roles))

	adoptionRepos := adoptionports.Repositories{
		Applications: adoptionmemory.NewApplicationRepository(store),
		Pets:         registry.Pets,
		Users:        registry.Users,
	}
	adoptionSvc := adoptionobs.New(adoptionapp.NewService(adoptionRepos, adoptionmemory.NewUnitOfWork(store, adoptionRepos)))

	donationRepos := donationmemory.NewRepositories(store, registry.Users, registry.Pets)
	donationSvc := donationobs.New(donationapp.NewService(donationRepos, donationmemory.NewUnitOfWork(store, donationRepos)))

	handlers := pawsitiveserver.ApiHandleFunctions{
		ApplicationsAPI: pawsitiveserver.NewApplicationsAPI(adoptionSvc),
		DonationsAPI:    pawsitiveserver.NewDonationsAPI(donationSvc, donationworkflows.NewInlineDonationWorkflows(donationSvc)),
		RegistryAPI:     pawsitiveserver.NewRegistryAPI(registrySvc),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = pawsitiveserver.NewRouterWithGinEngine(router, handlers)

	ctx := context.Background()
	_, err := registrySvc.SeedRoles(ctx)
	require.NoError(t, err)
	admin, err := registrySvc.RegisterUser(ctx, registryports.RegisterUserInput{Name: pacttest.AdminName, Email: pacttest.AdminEmail, RoleName: "Admin"})
	require.NoError(t, err)
	require.Equal(t, pacttest.AdminUserID, admin.ID)
	donor, err := registrySvc.RegisterUser(ctx, registryports.RegisterUserInput{Name: pacttest.DonorName, Email: pacttest.DonorEmail, Address: pacttest.DonorAddress})
	require.NoError(t, err)
	require.Equal(t, pacttest.DonorUserID, donor.ID)
	pet, err := registrySvc.AddPet(ctx, registryports.AddPetInput{Name: pacttest.PetName, Species: pacttest.PetSpecies, AddedBy: &admin.ID})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingPetID, pet.ID)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.router = router
	a.adoptions = adoptionSvc
	a.donations = donationSvc
}

func (a *contractProviderApp) seedDonation(t testing.TB) {
	t.Helper()
	a.mu.RLock()
	svc := a.donations
	a.mu.RUnlock()
	userID, petID := pacttest.DonorUserID, pacttest.ExistingPetID
	donation, err := svc.RecordDonation(context.Background(), donationports.RecordDonationInput{
		UserID: &userID, Amount: "25.5", PaymentMethod: "Card", PetID: &petID,
	})
	require.NoError(t, err)
	require.Equal(t, pacttest.ExistingDonationID, donation.ID)
}

func (a *contractProviderApp) seedApplication(t testing.TB) {
	t.Helper()
	a.mu.RLock()
	svc := a.adoptions
	a.mu.RUnlock()
	userID, petID := pacttest.DonorUserID, pacttest.ExistingPetID
	app, err := svc.Submit(context.Background(), adoptionports.SubmitInput{UserID: &userID, PetID: &petID})
	require.NoError(t, err)
	require.Equal(t, pacttest.PendingAppID, app.ID)
}
