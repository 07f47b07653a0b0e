package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/memory"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/application"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	"github.com/Apurer/pawsitive-drive-server/internal/platform/memstore"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

func newRegistry(t *testing.T) (*application.Service, memory.Repositories) {
	t.Helper()
	repos := memory.NewRepositories(memstore.New())
	fixed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	svc := application.NewService(repos.Users, repos.Pets, repos.Roles).WithClock(func() time.Time { return fixed })
	_, err := svc.SeedRoles(context.Background())
	require.NoError(t, err)
	return svc, repos
}

func TestSeedRoles_IsIdempotentAndCaseInsensitive(t *testing.T) {
	svc, repos := newRegistry(t)
	ctx := context.Background()

	_, err := svc.SeedRoles(ctx)
	require.NoError(t, err)

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)

	donor, err := repos.Roles.GetByName(ctx, "Donor")
	require.NoError(t, err)
	for _, name := range []string{"donor", "DONOR", " Donor "} {
		got, err := repos.Roles.GetByName(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, donor.ID, got.ID)
	}
}

func TestCreateRole_DuplicateIgnoringCaseIsConflict(t *testing.T) {
	svc, _ := newRegistry(t)

	_, err := svc.CreateRole(context.Background(), "admin")
	require.ErrorIs(t, err, ports.ErrRoleExists)
	require.ErrorIs(t, err, sharederrors.ErrConflict)

	role, err := svc.CreateRole(context.Background(), "Volunteer")
	require.NoError(t, err)
	assert.Equal(t, "Volunteer", role.Name)
}

func TestRegisterUser_DefaultsRoleAndStatus(t *testing.T) {
	svc, repos := newRegistry(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "Uma", Email: "uma@example.com"})
	require.NoError(t, err)

	donor, err := repos.Roles.GetByName(ctx, domain.RoleDonor)
	require.NoError(t, err)
	assert.Equal(t, donor.ID, user.RoleID)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), user.CreatedAt)
}

func TestRegisterUser_Failures(t *testing.T) {
	svc, _ := newRegistry(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "Uma", Email: "uma@example.com", RoleName: "admin"})
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "Other", Email: "uma@example.com"})
	require.ErrorIs(t, err, sharederrors.ErrConflict)

	_, err = svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "Ghost", Email: "ghost@example.com", RoleName: "Wizard"})
	require.ErrorIs(t, err, sharederrors.ErrNotFound)

	_, err = svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "", Email: "blank@example.com"})
	require.ErrorIs(t, err, sharederrors.ErrInvalidInput)

	_, err = svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "Sus", Email: "sus@example.com", Status: "frozen"})
	require.ErrorIs(t, err, sharederrors.ErrInvalidInput)
}

func TestUpdateUser_PartialChange(t *testing.T) {
	svc, _ := newRegistry(t)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "Uma", Email: "uma@example.com", Address: "1 Elm"})
	require.NoError(t, err)
	other, err := svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "Ola", Email: "ola@example.com"})
	require.NoError(t, err)

	name := "Uma Renamed"
	updated, err := svc.UpdateUser(ctx, ports.UpdateUserInput{ID: user.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Uma Renamed", updated.Name)
	assert.Equal(t, "1 Elm", updated.Address)

	taken := other.Email
	_, err = svc.UpdateUser(ctx, ports.UpdateUserInput{ID: user.ID, Email: &taken})
	require.ErrorIs(t, err, ports.ErrEmailTaken)

	_, err = svc.UpdateUser(ctx, ports.UpdateUserInput{ID: 999, Name: &name})
	require.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestAddPet_RequiresExistingAddedBy(t *testing.T) {
	svc, _ := newRegistry(t)
	ctx := context.Background()

	_, err := svc.AddPet(ctx, ports.AddPetInput{Name: "Rex", Species: "Dog"})
	require.ErrorIs(t, err, sharederrors.ErrInvalidInput)

	missing := int64(42)
	_, err = svc.AddPet(ctx, ports.AddPetInput{Name: "Rex", Species: "Dog", AddedBy: &missing})
	require.ErrorIs(t, err, ports.ErrUserNotFound)

	owner, err := svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "Uma", Email: "uma@example.com"})
	require.NoError(t, err)
	_, err = svc.AddPet(ctx, ports.AddPetInput{Name: "Rex", Age: -2, AddedBy: &owner.ID})
	require.ErrorIs(t, err, sharederrors.ErrInvalidInput)

	pet, err := svc.AddPet(ctx, ports.AddPetInput{Name: "Rex", Species: "Dog", AddedBy: &owner.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.PetStatusAvailable, pet.Status)

	fetched, err := svc.GetPet(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet, fetched)
}

func TestListPets_FiltersIgnoringCase(t *testing.T) {
	svc, _ := newRegistry(t)
	ctx := context.Background()

	owner, err := svc.RegisterUser(ctx, ports.RegisterUserInput{Name: "Uma", Email: "uma@example.com"})
	require.NoError(t, err)
	for _, in := range []ports.AddPetInput{
		{Name: "Rex", Species: "Dog", AddedBy: &owner.ID},
		{Name: "Tom", Species: "Cat", AddedBy: &owner.ID},
		{Name: "Old", Species: "Cat", Status: "Adopted", AddedBy: &owner.ID},
	} {
		_, err := svc.AddPet(ctx, in)
		require.NoError(t, err)
	}

	cats, err := svc.ListPets(ctx, domain.PetFilter{Species: "cat"})
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Tom", cats[0].Name)

	available, err := svc.ListPets(ctx, domain.PetFilter{Status: "available"})
	require.NoError(t, err)
	assert.Len(t, available, 2)

	all, err := svc.ListPets(ctx, domain.PetFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
