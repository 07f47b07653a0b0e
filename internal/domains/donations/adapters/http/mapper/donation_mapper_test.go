package mapper

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
)

func TestAmount_AcceptsNumberOrString(t *testing.T) {
	cases := map[string]string{
		`{"amount": 50.10}`:   "50.10",
		`{"amount": "12.5"}`:  "12.5",
		`{"amount": null}`:    "",
		`{}`:                  "",
		`{"amount": "abc"}`:   "abc",
		`{"amount": true}`:    "true",
	}
	for body, want := range cases {
		var req RecordDonationRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, string(req.Amount), body)
	}
}

func TestFromDonation_RendersAmountAsNumber(t *testing.T) {
	out, err := json.Marshal(FromDonation(&domain.Donation{ID: 1, Amount: decimal.RequireFromString("50.00"), Status: domain.StatusPending}))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"amount":50`)
	assert.NotContains(t, string(out), `"petId"`)
}
