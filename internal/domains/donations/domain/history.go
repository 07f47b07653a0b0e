package domain

import "time"

// ActionCreated is the history action written when a donation is recorded.
const ActionCreated = "Created"

// HistoryEntry is one append-only audit line of a donation.
type HistoryEntry struct {
	ID         int64
	DonationID int64
	Action     string
	ActionDate time.Time
}

func NewHistoryEntry(donationID int64, action string, at time.Time) *HistoryEntry {
	return &HistoryEntry{DonationID: donationID, Action: action, ActionDate: at}
}
