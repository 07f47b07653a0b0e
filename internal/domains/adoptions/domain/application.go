package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates the review lifecycle of an application.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var (
	ErrMissingPet       = errors.New("pet is required")
	ErrMissingApplicant = errors.New("applicant user is required")
	ErrInvalidStatus    = errors.New("application status must be Pending, Approved or Rejected")
)

// Application is a user's request to adopt a pet. Pet, applicant and reviewer
// are non-owning references by id.
type Application struct {
	ID              int64
	PetID           int64
	UserID          int64
	ReviewedBy      *int64
	ApplicationDate time.Time
	Status          Status
}

// ParseStatus accepts a status case-insensitively and returns its canonical form.
func ParseStatus(raw string) (Status, error) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected} {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// NewApplication builds a submitted application. An empty status defaults to Pending.
func NewApplication(petID, userID int64, status Status, submittedAt time.Time) (*Application, error) {
	if petID <= 0 {
		return nil, ErrMissingPet
	}
	if userID <= 0 {
		return nil, ErrMissingApplicant
	}
	if status == "" {
		status = StatusPending
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	return &Application{
		PetID:           petID,
		UserID:          userID,
		ApplicationDate: submittedAt,
		Status:          status,
	}, nil
}

// Review records a decision. A nil reviewer keeps the current one.
// Terminal applications may be reviewed again.
func (a *Application) Review(status Status, reviewerID *int64) {
	if status != "" {
		a.Status = status
	}
	if reviewerID != nil {
		id := *reviewerID
		a.ReviewedBy = &id
	}
}

// Approved reports whether the application is in the Approved state.
func (a *Application) Approved() bool {
	return a.Status == StatusApproved
}

// Clone returns a deep copy.
func (a *Application) Clone() *Application {
	clone := *a
	if a.ReviewedBy != nil {
		id := *a.ReviewedBy
		clone.ReviewedBy = &id
	}
	return &clone
}
