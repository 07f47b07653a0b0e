// Package pawsitiveserver is the HTTP transport of the adoption and donation API.
package pawsitiveserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func init() {
	// request bodies with unknown fields are rejected
	binding.EnableDecoderDisallowUnknownFields = true
}

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.Use(RequestID())
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions bundles the handler groups the router exposes.
type ApiHandleFunctions struct {
	// Routes for the applications part of the API
	ApplicationsAPI ApplicationsAPI
	// Routes for the donations part of the API
	DonationsAPI DonationsAPI
	// Routes for users, pets and roles
	RegistryAPI RegistryAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListApplications", http.MethodGet, "/api/applications", handleFunctions.ApplicationsAPI.ListApplications},
		{"ListApplicationsByUser", http.MethodGet, "/api/applications/user/:userId", handleFunctions.ApplicationsAPI.ListApplicationsByUser},
		{"ListApplicationsByPet", http.MethodGet, "/api/applications/pet/:petId", handleFunctions.ApplicationsAPI.ListApplicationsByPet},
		{"GetApplication", http.MethodGet, "/api/applications/:id", handleFunctions.ApplicationsAPI.GetApplication},
		{"SubmitApplication", http.MethodPost, "/api/applications", handleFunctions.ApplicationsAPI.SubmitApplication},
		{"ReviewApplication", http.MethodPut, "/api/applications/:id", handleFunctions.ApplicationsAPI.ReviewApplication},

		{"ListDonations", http.MethodGet, "/api/donations", handleFunctions.DonationsAPI.ListDonations},
		{"ListDonationsByUser", http.MethodGet, "/api/donations/user/:userId", handleFunctions.DonationsAPI.ListDonationsByUser},
		{"GetDonation", http.MethodGet, "/api/donations/:id", handleFunctions.DonationsAPI.GetDonation},
		{"ListDonationHistory", http.MethodGet, "/api/donations/:id/history", handleFunctions.DonationsAPI.ListDonationHistory},
		{"GetDonationReceipt", http.MethodGet, "/api/donations/:id/receipt", handleFunctions.DonationsAPI.GetDonationReceipt},
		{"RecordDonation", http.MethodPost, "/api/donations", handleFunctions.DonationsAPI.RecordDonation},

		{"ListUsers", http.MethodGet, "/api/users", handleFunctions.RegistryAPI.ListUsers},
		{"GetUser", http.MethodGet, "/api/users/:id", handleFunctions.RegistryAPI.GetUser},
		{"RegisterUser", http.MethodPost, "/api/users", handleFunctions.RegistryAPI.RegisterUser},
		{"UpdateUser", http.MethodPut, "/api/users/:id", handleFunctions.RegistryAPI.UpdateUser},
		{"ListPets", http.MethodGet, "/api/pets", handleFunctions.RegistryAPI.ListPets},
		{"GetPet", http.MethodGet, "/api/pets/:id", handleFunctions.RegistryAPI.GetPet},
		{"AddPet", http.MethodPost, "/api/pets", handleFunctions.RegistryAPI.AddPet},
		{"ListRoles", http.MethodGet, "/api/roles", handleFunctions.RegistryAPI.ListRoles},
		{"CreateRole", http.MethodPost, "/api/roles", handleFunctions.RegistryAPI.CreateRole},
	}
}
