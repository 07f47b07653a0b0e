package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Status enumerates donation payment states. No transition rules are enforced.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// DefaultPaymentMethod is recorded when the caller does not name one.
const DefaultPaymentMethod = "Unknown"

const (
	// MaxPaymentMethodLength matches the payment_method column width.
	MaxPaymentMethodLength = 64
	maxAmountIntegerDigits = 18
	maxAmountScale         = 18
)

var (
	ErrMissingDonor         = errors.New("donor user is required")
	ErrInvalidAmount        = errors.New("amount must be a number")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrAmountOutOfRange     = errors.New("amount allows at most 18 integer digits and 18 decimal places")
	ErrInvalidStatus        = errors.New("donation status must be Pending, Completed or Failed")
	ErrPaymentMethodTooLong = errors.New("payment method must be at most 64 characters")
)

// Donation is a monetary gift from a user, optionally directed at a pet.
type Donation struct {
	ID            int64
	Amount        decimal.Decimal
	DonationDate  time.Time
	PaymentMethod string
	Status        Status
	UserID        int64
	PetID         *int64
}

// ParseAmount reads a decimal amount. Empty input is zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// checkAmount rejects values outside the digit bounds of the numeric column.
func checkAmount(amount decimal.Decimal) error {
	exp := int64(amount.Exponent())
	if exp < -maxAmountScale || int64(amount.NumDigits())+exp > maxAmountIntegerDigits {
		return ErrAmountOutOfRange
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// ParseStatus accepts a status case-insensitively and returns its canonical form.
func ParseStatus(raw string) (Status, error) {
	for _, s := range []Status{StatusPending, StatusCompleted, StatusFailed} {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// NewDonation builds an unsaved donation. Empty status and payment method take their defaults.
func NewDonation(userID int64, amount decimal.Decimal, paymentMethod string, status Status, petID *int64, donatedAt time.Time) (*Donation, error) {
	if userID <= 0 {
		return nil, ErrMissingDonor
	}
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	if status == "" {
		status = StatusPending
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}
	if utf8.RuneCountInString(paymentMethod) > MaxPaymentMethodLength {
		return nil, ErrPaymentMethodTooLong
	}
	d := &Donation{
		Amount:        amount,
		DonationDate:  donatedAt,
		PaymentMethod: paymentMethod,
		Status:        status,
		UserID:        userID,
	}
	d.DirectTo(petID)
	return d, nil
}

// DirectTo associates the donation with a pet, or clears the association for nil.
func (d *Donation) DirectTo(petID *int64) {
	if petID == nil {
		d.PetID = nil
		return
	}
	id := *petID
	d.PetID = &id
}

// Clone returns a deep copy.
func (d *Donation) Clone() *Donation {
	clone := *d
	clone.DirectTo(d.PetID)
	return &clone
}
