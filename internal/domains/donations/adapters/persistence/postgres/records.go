package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/donations/ports"
)

type donationRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric;not null"`
	DonationDate  time.Time       `gorm:"column:donation_date"`
	PaymentMethod string          `gorm:"column:payment_method;size:64"`
	Status        string          `gorm:"column:status;type:varchar(16);index"`
	UserID        int64           `gorm:"column:user_id;index;not null"`
	PetID         *int64          `gorm:"column:pet_id;index"`
}

func (donationRecord) TableName() string { return "donations" }

type historyRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	DonationID int64     `gorm:"column:donation_id;index;not null"`
	Action     string    `gorm:"column:action;size:64;not null"`
	ActionDate time.Time `gorm:"column:action_date"`
}

func (historyRecord) TableName() string { return "donation_history" }

type receiptRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	DonationID    int64     `gorm:"column:donation_id;uniqueIndex;not null"`
	ReceiptNumber string    `gorm:"column:receipt_number;size:64;uniqueIndex;not null"`
	ReceiptDate   time.Time `gorm:"column:receipt_date"`
	DonorName     string    `gorm:"column:donor_name"`
	DonorEmail    string    `gorm:"column:donor_email"`
	DonorAddress  string    `gorm:"column:donor_address"`
	PaymentMethod string    `gorm:"column:payment_method;size:64"`
	Status        string    `gorm:"column:status;type:varchar(16)"`
	TransactionID string    `gorm:"column:transaction_id;size:64"`
	Notes         string    `gorm:"column:notes"`
}

func (receiptRecord) TableName() string { return "donation_receipts" }

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	DonationID  int64     `gorm:"column:donation_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (idempotencyRecord) TableName() string { return "donation_idempotency_keys" }

// Models lists the donation tables for schema migration.
func Models() []any {
	return []any{&donationRecord{}, &historyRecord{}, &receiptRecord{}, &idempotencyRecord{}}
}

func toDonationRecord(d *domain.Donation) donationRecord {
	return donationRecord{
		ID:            d.ID,
		Amount:        d.Amount,
		DonationDate:  d.DonationDate,
		PaymentMethod: d.PaymentMethod,
		Status:        string(d.Status),
		UserID:        d.UserID,
		PetID:         d.PetID,
	}
}

func (r donationRecord) toDomain() *domain.Donation {
	d := &domain.Donation{
		ID:            r.ID,
		Amount:        r.Amount,
		DonationDate:  r.DonationDate,
		PaymentMethod: r.PaymentMethod,
		Status:        domain.Status(r.Status),
		UserID:        r.UserID,
	}
	d.DirectTo(r.PetID)
	return d
}

func (r historyRecord) toDomain() *domain.HistoryEntry {
	return &domain.HistoryEntry{ID: r.ID, DonationID: r.DonationID, Action: r.Action, ActionDate: r.ActionDate}
}

func toReceiptRecord(rc *domain.Receipt) receiptRecord {
	return receiptRecord{
		ID:            rc.ID,
		DonationID:    rc.DonationID,
		ReceiptNumber: rc.ReceiptNumber,
		ReceiptDate:   rc.ReceiptDate,
		DonorName:     rc.DonorName,
		DonorEmail:    rc.DonorEmail,
		DonorAddress:  rc.DonorAddress,
		PaymentMethod: rc.PaymentMethod,
		Status:        string(rc.Status),
		TransactionID: rc.TransactionID,
		Notes:         rc.Notes,
	}
}

func (r receiptRecord) toDomain() *domain.Receipt {
	return &domain.Receipt{
		ID:            r.ID,
		DonationID:    r.DonationID,
		ReceiptNumber: r.ReceiptNumber,
		ReceiptDate:   r.ReceiptDate,
		DonorName:     r.DonorName,
		DonorEmail:    r.DonorEmail,
		DonorAddress:  r.DonorAddress,
		PaymentMethod: r.PaymentMethod,
		Status:        domain.Status(r.Status),
		TransactionID: r.TransactionID,
		Notes:         r.Notes,
	}
}

func toPortRecord(r *idempotencyRecord) *ports.IdempotencyRecord {
	return &ports.IdempotencyRecord{
		Key:         r.Key,
		RequestHash: r.RequestHash,
		DonationID:  r.DonationID,
		CreatedAt:   r.CreatedAt,
	}
}
