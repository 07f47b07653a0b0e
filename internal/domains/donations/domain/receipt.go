package domain

import (
	"errors"
	"fmt"
	"time"
)

// receiptTimestampLayout renders yyyyMMddHHmmss.
const receiptTimestampLayout = "20060102150405"

var ErrUnsavedDonation = errors.New("receipt requires a saved donation")

// Donor is the donor identity frozen onto a receipt at issuance.
type Donor struct {
	Name    string
	Email   string
	Address string
}

// Receipt is the immutable acknowledgement issued with a donation.
type Receipt struct {
	ID            int64
	DonationID    int64
	ReceiptNumber string
	ReceiptDate   time.Time
	DonorName     string
	DonorEmail    string
	DonorAddress  string
	PaymentMethod string
	Status        Status
	TransactionID string
	Notes         string
}

// ReceiptNumber formats REC-<donationId>-<yyyyMMddHHmmss> in UTC.
func ReceiptNumber(donationID int64, issuedAt time.Time) string {
	return fmt.Sprintf("REC-%d-%s", donationID, issuedAt.UTC().Format(receiptTimestampLayout))
}

// IssueReceipt snapshots donor and payment details for a saved donation.
// The transaction id equals the receipt number.
func IssueReceipt(d *Donation, donor Donor, notes string, issuedAt time.Time) (*Receipt, error) {
	if d == nil || d.ID <= 0 {
		return nil, ErrUnsavedDonation
	}
	number := ReceiptNumber(d.ID, issuedAt)
	return &Receipt{
		DonationID:    d.ID,
		ReceiptNumber: number,
		ReceiptDate:   issuedAt,
		DonorName:     donor.Name,
		DonorEmail:    donor.Email,
		DonorAddress:  donor.Address,
		PaymentMethod: d.PaymentMethod,
		Status:        d.Status,
		TransactionID: number,
		Notes:         notes,
	}, nil
}
