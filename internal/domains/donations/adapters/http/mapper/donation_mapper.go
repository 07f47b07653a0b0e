package mapper

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
)

// Amount accepts a JSON number or a numeric string and keeps the literal text,
// so no precision is lost before the service parses it.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(data)
	}
	return nil
}

// RecordDonationRequest is the inbound payload for a new donation.
type RecordDonationRequest struct {
	UserID        *int64 `json:"userId"`
	Amount        Amount `json:"amount"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Status        string `json:"status,omitempty"`
	PetID         *int64 `json:"petId,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Donation is the outbound donation representation. Amount is rendered as a JSON number.
type Donation struct {
	ID            int64       `json:"id"`
	Amount        json.Number `json:"amount"`
	DonationDate  time.Time   `json:"donationDate"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	UserID        int64       `json:"userId"`
	PetID         *int64      `json:"petId,omitempty"`
}

// DonorSummary and PetSummary are the resolved references in donation listings.
type DonorSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PetSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species,omitempty"`
}

// DonationWithRelations is a listing row.
type DonationWithRelations struct {
	Donation
	Donor *DonorSummary `json:"donor,omitempty"`
	Pet   *PetSummary   `json:"pet,omitempty"`
}

type HistoryEntry struct {
	ID         int64     `json:"id"`
	DonationID int64     `json:"donationId"`
	Action     string    `json:"action"`
	ActionDate time.Time `json:"actionDate"`
}

type Receipt struct {
	ID            int64     `json:"id"`
	DonationID    int64     `json:"donationId"`
	ReceiptNumber string    `json:"receiptNumber"`
	ReceiptDate   time.Time `json:"receiptDate"`
	DonorName     string    `json:"donorName"`
	DonorEmail    string    `json:"donorEmail"`
	DonorAddress  string    `json:"donorAddress"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId"`
	Notes         string    `json:"notes,omitempty"`
}

func ToRecordDonationInput(req RecordDonationRequest, idempotencyKey string) ports.RecordDonationInput {
	return ports.RecordDonationInput{
		UserID:         req.UserID,
		Amount:         string(req.Amount),
		PaymentMethod:  req.PaymentMethod,
		Status:         req.Status,
		PetID:          req.PetID,
		Notes:          req.Notes,
		IdempotencyKey: idempotencyKey,
	}
}

func FromDonation(d *domain.Donation) Donation {
	if d == nil {
		return Donation{}
	}
	return Donation{
		ID:            d.ID,
		Amount:        json.Number(d.Amount.String()),
		DonationDate:  d.DonationDate,
		PaymentMethod: d.PaymentMethod,
		Status:        string(d.Status),
		UserID:        d.UserID,
		PetID:         d.PetID,
	}
}

func FromDonations(donations []*domain.Donation) []Donation {
	out := make([]Donation, 0, len(donations))
	for _, d := range donations {
		out = append(out, FromDonation(d))
	}
	return out
}

func FromDonationDetails(details []ports.DonationDetails) []DonationWithRelations {
	out := make([]DonationWithRelations, 0, len(details))
	for _, item := range details {
		row := DonationWithRelations{Donation: FromDonation(item.Donation)}
		if item.Donor != nil {
			row.Donor = &DonorSummary{ID: item.Donor.ID, Name: item.Donor.Name, Email: item.Donor.Email}
		}
		if item.Pet != nil {
			row.Pet = &PetSummary{ID: item.Pet.ID, Name: item.Pet.Name, Species: item.Pet.Species}
		}
		out = append(out, row)
	}
	return out
}

func FromHistory(entries []*domain.HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntry{ID: e.ID, DonationID: e.DonationID, Action: e.Action, ActionDate: e.ActionDate})
	}
	return out
}

func FromReceipt(r *domain.Receipt) Receipt {
	if r == nil {
		return Receipt{}
	}
	return Receipt{
		ID:            r.ID,
		DonationID:    r.DonationID,
		ReceiptNumber: r.ReceiptNumber,
		ReceiptDate:   r.ReceiptDate,
		DonorName:     r.DonorName,
		DonorEmail:    r.DonorEmail,
		DonorAddress:  r.DonorAddress,
		PaymentMethod: r.PaymentMethod,
		Status:        string(r.Status),
		TransactionID: r.TransactionID,
		Notes:         r.Notes,
	}
}
