package pawsitiveserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionmapper "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/adapters/http/mapper"
	adoptionports "github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
)

// ApplicationsAPI wires HTTP transport with the adoption workflow.
type ApplicationsAPI struct {
	service adoptionports.Service
}

// NewApplicationsAPI creates an ApplicationsAPI backed by the provided service.
func NewApplicationsAPI(service adoptionports.Service) ApplicationsAPI {
	return ApplicationsAPI{service: service}
}

// Get /api/applications
// Lists every adoption application
func (api *ApplicationsAPI) ListApplications(c *gin.Context) {
	apps, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromApplications(apps))
}

// Get /api/applications/user/:userId
// Lists the applications a user submitted
func (api *ApplicationsAPI) ListApplicationsByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	apps, err := api.service.ListByApplicant(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromApplications(apps))
}

// Get /api/applications/pet/:petId
// Lists the applications filed for a pet
func (api *ApplicationsAPI) ListApplicationsByPet(c *gin.Context) {
	petID, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	apps, err := api.service.ListByPet(c.Request.Context(), petID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromApplications(apps))
}

// Get /api/applications/:id
// Find application by ID
func (api *ApplicationsAPI) GetApplication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	app, err := api.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromApplication(app))
}

// Post /api/applications
// Submit an adoption application
func (api *ApplicationsAPI) SubmitApplication(c *gin.Context) {
	var payload adoptionmapper.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	app, err := api.service.Submit(c.Request.Context(), adoptionmapper.ToSubmitInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	created(c, fmt.Sprintf("/api/applications/%d", app.ID), adoptionmapper.FromApplication(app))
}

// Put /api/applications/:id
// Review an adoption application; approval marks the pet adopted
func (api *ApplicationsAPI) ReviewApplication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload adoptionmapper.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	app, err := api.service.Review(c.Request.Context(), adoptionmapper.ToReviewInput(id, payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromApplication(app))
}
