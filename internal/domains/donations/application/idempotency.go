package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
)

type normalizedRecordDonationInput struct {
	UserID        *int64 `json:"userId"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status"`
	PetID         *int64 `json:"petId"`
	Notes         string `json:"notes"`
}

// FingerprintRecordDonation builds a deterministic hash of the record-donation
// payload, excluding the idempotency key. Equivalent spellings of the same
// amount, status or payment method hash identically.
func FingerprintRecordDonation(input ports.RecordDonationInput) (string, error) {
	payload, err := json.Marshal(normalizeRecordDonationInput(input))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizeRecordDonationInput(input ports.RecordDonationInput) normalizedRecordDonationInput {
	normalized := normalizedRecordDonationInput{
		UserID:        input.UserID,
		Amount:        strings.TrimSpace(input.Amount),
		PaymentMethod: strings.TrimSpace(input.PaymentMethod),
		Status:        strings.TrimSpace(input.Status),
		PetID:         input.PetID,
		Notes:         input.Notes,
	}
	if amount, err := domain.ParseAmount(input.Amount); err == nil {
		normalized.Amount = amount.String()
	}
	if normalized.PaymentMethod == "" {
		normalized.PaymentMethod = domain.DefaultPaymentMethod
	}
	if normalized.Status == "" {
		normalized.Status = string(domain.StatusPending)
	} else if status, err := domain.ParseStatus(normalized.Status); err == nil {
		normalized.Status = string(status)
	}
	return normalized
}
