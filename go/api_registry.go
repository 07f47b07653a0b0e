package pawsitiveserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	registrymapper "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/adapters/http/mapper"
	registrydomain "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	registryports "github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
)

// RegistryAPI wires HTTP transport with users, pets, and roles.
type RegistryAPI struct {
	service registryports.Service
}

// NewRegistryAPI creates a RegistryAPI backed by the provided service.
func NewRegistryAPI(service registryports.Service) RegistryAPI {
	return RegistryAPI{service: service}
}

// Get /api/users
func (api *RegistryAPI) ListUsers(c *gin.Context) {
	users, err := api.service.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrymapper.FromUsers(users))
}

// Get /api/users/:id
func (api *RegistryAPI) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := api.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrymapper.FromUser(user))
}

// Post /api/users
// Registers a user; the role defaults to Donor
func (api *RegistryAPI) RegisterUser(c *gin.Context) {
	var payload registrymapper.RegisterUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := api.service.RegisterUser(c.Request.Context(), registrymapper.ToRegisterUserInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	created(c, fmt.Sprintf("/api/users/%d", user.ID), registrymapper.FromUser(user))
}

// Put /api/users/:id
// Updates profile fields present in the body
func (api *RegistryAPI) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload registrymapper.UpdateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := api.service.UpdateUser(c.Request.Context(), registrymapper.ToUpdateUserInput(id, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrymapper.FromUser(user))
}

// Get /api/pets
// Lists pets, optionally filtered by species and status
func (api *RegistryAPI) ListPets(c *gin.Context) {
	filter := registrydomain.PetFilter{Species: c.Query("species"), Status: c.Query("status")}
	pets, err := api.service.ListPets(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrymapper.FromPets(pets))
}

// Get /api/pets/:id
func (api *RegistryAPI) GetPet(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	pet, err := api.service.GetPet(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrymapper.FromPet(pet))
}

// Post /api/pets
func (api *RegistryAPI) AddPet(c *gin.Context) {
	var payload registrymapper.AddPetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	pet, err := api.service.AddPet(c.Request.Context(), registrymapper.ToAddPetInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	created(c, fmt.Sprintf("/api/pets/%d", pet.ID), registrymapper.FromPet(pet))
}

// Get /api/roles
func (api *RegistryAPI) ListRoles(c *gin.Context) {
	roles, err := api.service.ListRoles(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrymapper.FromRoles(roles))
}

// Post /api/roles
func (api *RegistryAPI) CreateRole(c *gin.Context) {
	var payload registrymapper.CreateRoleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	role, err := api.service.CreateRole(c.Request.Context(), payload.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	created(c, fmt.Sprintf("/api/roles/%d", role.ID), registrymapper.FromRoles([]*registrydomain.Role{role})[0])
}
