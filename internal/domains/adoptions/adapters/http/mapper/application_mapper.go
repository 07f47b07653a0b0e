package mapper

import (
	"time"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
)

// SubmitApplicationRequest is the inbound payload for a new application.
// References are plain ids; nested objects are rejected by strict decoding.
type SubmitApplicationRequest struct {
	PetID  *int64  `json:"petId"`
	UserID *int64  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ReviewApplicationRequest is the inbound payload for a review decision.
type ReviewApplicationRequest struct {
	Status     *string `json:"status,omitempty"`
	ReviewedBy *int64  `json:"reviewedBy,omitempty"`
}

// Application is the outbound application representation.
type Application struct {
	ID              int64     `json:"id"`
	PetID           int64     `json:"petId"`
	UserID          int64     `json:"userId"`
	ReviewedBy      *int64    `json:"reviewedBy,omitempty"`
	ApplicationDate time.Time `json:"applicationDate"`
	Status          string    `json:"status"`
}

func ToSubmitInput(req SubmitApplicationRequest) ports.SubmitInput {
	return ports.SubmitInput{PetID: req.PetID, UserID: req.UserID, Status: req.Status}
}

func ToReviewInput(id int64, req ReviewApplicationRequest) ports.ReviewInput {
	return ports.ReviewInput{ApplicationID: id, Status: req.Status, ReviewerID: req.ReviewedBy}
}

func FromApplication(app *domain.Application) Application {
	if app == nil {
		return Application{}
	}
	return Application{
		ID:              app.ID,
		PetID:           app.PetID,
		UserID:          app.UserID,
		ReviewedBy:      app.ReviewedBy,
		ApplicationDate: app.ApplicationDate,
		Status:          string(app.Status),
	}
}

func FromApplications(apps []*domain.Application) []Application {
	out := make([]Application, 0, len(apps))
	for _, app := range apps {
		out = append(out, FromApplication(app))
	}
	return out
}
