package domain

import (
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		err  error
	}{
		{"", "0", nil},
		{"50.0", "50", nil},
		{" 12.345 ", "12.345", nil},
		{"0", "0", nil},
		{"-1", "", ErrNegativeAmount},
		{"fifty", "", ErrInvalidAmount},
		{"1e400x", "", ErrInvalidAmount},
		{"1234567.89", "1234567.89", nil},
		{"1e17", "100000000000000000", nil},
		{"1e200000000", "", ErrAmountOutOfRange},
		{"1e-200000000", "", ErrAmountOutOfRange},
		{"1234567890123456789", "", ErrAmountOutOfRange},
		{"0.0000000000000000001", "", ErrAmountOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseAmount(tc.raw)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	_, err = ParseStatus("Refunded")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewDonation_Defaults(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	d, err := NewDonation(5, decimal.NewFromInt(50), "  ", "", nil, at)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, d.Status)
	assert.Equal(t, DefaultPaymentMethod, d.PaymentMethod)
	assert.Nil(t, d.PetID)
	assert.Equal(t, at, d.DonationDate)

	_, err = NewDonation(0, decimal.Zero, "Card", "", nil, at)
	require.ErrorIs(t, err, ErrMissingDonor)
}

func TestNewDonation_PaymentMethodLength(t *testing.T) {
	at := time.Now()
	d, err := NewDonation(5, decimal.NewFromInt(1), strings.Repeat("é", MaxPaymentMethodLength), "", nil, at)
	require.NoError(t, err)
	assert.Equal(t, MaxPaymentMethodLength, utf8.RuneCountInString(d.PaymentMethod))

	_, err = NewDonation(5, decimal.NewFromInt(1), strings.Repeat("x", MaxPaymentMethodLength+1), "", nil, at)
	require.ErrorIs(t, err, ErrPaymentMethodTooLong)
}

func TestNewDonation_RejectsUnboundedAmount(t *testing.T) {
	_, err := NewDonation(5, decimal.New(1, 1_000_000_000), "Card", "", nil, time.Now())
	require.ErrorIs(t, err, ErrAmountOutOfRange)
}

func TestDonation_CloneCopiesPetReference(t *testing.T) {
	pet := int64(101)
	d, err := NewDonation(5, decimal.NewFromInt(1), "Card", StatusCompleted, &pet, time.Now())
	require.NoError(t, err)

	clone := d.Clone()
	*clone.PetID = 7
	assert.Equal(t, int64(101), *d.PetID)
}

func TestIssueReceipt(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 5, 0, time.FixedZone("CEST", 2*3600))
	d := &Donation{ID: 42, PaymentMethod: "Card", Status: StatusPending, UserID: 5}

	receipt, err := IssueReceipt(d, Donor{Name: "Uma", Email: "uma@example.com"}, "thanks", at)
	require.NoError(t, err)
	assert.Equal(t, "REC-42-20240501073005", receipt.ReceiptNumber)
	assert.Regexp(t, regexp.MustCompile(`^REC-42-\d{14}$`), receipt.ReceiptNumber)
	assert.Equal(t, receipt.ReceiptNumber, receipt.TransactionID)
	assert.Equal(t, "", receipt.DonorAddress)
	assert.Equal(t, "Card", receipt.PaymentMethod)
	assert.Equal(t, StatusPending, receipt.Status)
	assert.Equal(t, "thanks", receipt.Notes)

	_, err = IssueReceipt(&Donation{}, Donor{}, "", at)
	require.ErrorIs(t, err, ErrUnsavedDonation)
}
