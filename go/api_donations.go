package pawsitiveserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	donationmapper "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/adapters/http/mapper"
	donationdomain "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	donationports "github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
	apierrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

// HeaderIdempotencyKey makes a record-donation request safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLength = 255

// DonationsAPI wires HTTP transport with the donation intake pipeline.
type DonationsAPI struct {
	service   donationports.Service
	workflows donationports.WorkflowOrchestrator
}

// NewDonationsAPI creates a DonationsAPI. A nil orchestrator records donations through the service directly.
func NewDonationsAPI(service donationports.Service, workflows donationports.WorkflowOrchestrator) DonationsAPI {
	return DonationsAPI{service: service, workflows: workflows}
}

// Get /api/donations
// Lists every donation with donor and pet resolved
func (api *DonationsAPI) ListDonations(c *gin.Context) {
	details, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, donationmapper.FromDonationDetails(details))
}

// Get /api/donations/user/:userId
func (api *DonationsAPI) ListDonationsByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	donations, err := api.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, donationmapper.FromDonations(donations))
}

// Get /api/donations/:id
func (api *DonationsAPI) GetDonation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	donation, err := api.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, donationmapper.FromDonation(donation))
}

// Get /api/donations/:id/history
func (api *DonationsAPI) ListDonationHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entries, err := api.service.ListHistory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, donationmapper.FromHistory(entries))
}

// Get /api/donations/:id/receipt
func (api *DonationsAPI) GetDonationReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	receipt, err := api.service.GetReceipt(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, donationmapper.FromReceipt(receipt))
}

// Post /api/donations
// Records a donation together with its history entry and receipt
func (api *DonationsAPI) RecordDonation(c *gin.Context) {
	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLength {
		respondProblem(c, apierrors.ProblemBadRequest.WithDetail(fmt.Sprintf("%s must be at most %d characters", HeaderIdempotencyKey, maxIdempotencyKeyLength)))
		return
	}
	var payload donationmapper.RecordDonationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := donationmapper.ToRecordDonationInput(payload, key)
	var (
		saved *donationdomain.Donation
		err   error
	)
	if api.workflows != nil {
		saved, err = api.workflows.RecordDonation(c.Request.Context(), input)
	} else {
		saved, err = api.service.RecordDonation(c.Request.Context(), input)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	created(c, fmt.Sprintf("/api/donations/%d", saved.ID), donationmapper.FromDonation(saved))
}
