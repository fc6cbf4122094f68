package model

import (
	"time"

	"order-backoffice/internal/payment"
)

// OrderStatus is the fulfilment lifecycle, orthogonal to the payment status.
// A payment confirmation never changes it directly.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderFailed     OrderStatus = "FAILED"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderDeleted    OrderStatus = "DELETED"
)

type Order struct {
	ID         string `gorm:"primaryKey;size:64;not null"`
	CustomerID string `gorm:"size:64;index"`
	// product price + shipping, minor units
	TotalPrice int64 `gorm:"not null"`
	// cached aggregates; ComputeStatus over the record list is authoritative
	TotalPaid     int64          `gorm:"not null"`
	Remaining     int64          `gorm:"not null"`
	PaymentStatus payment.Status `gorm:"index;not null"`
	OrderStatus   OrderStatus    `gorm:"size:32;index;not null"`
	PaymentMethod string         `gorm:"size:64"`
	// optimistic lock, bumped on every snapshot save
	Version   int `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentRecord is one confirmation attempt against an Order. Created
// PENDING on submission; an admin review flips it to APPROVED or REJECTED.
type PaymentRecord struct {
	ID             string                `gorm:"primaryKey;size:64;not null"`
	OrderID        string                `gorm:"size:64;index;not null"`
	Amount         int64                 `gorm:"not null"`
	Method         string                `gorm:"size:64"`
	ProofOfPayment string                `gorm:"size:255"`
	ApprovalState  payment.ApprovalState `gorm:"size:16;index;not null"`
	SubmittedAt    time.Time             `gorm:"index;not null"`
	CreatedAt      time.Time
}

// EngineRecord maps a stored row into the engine's input shape.
func (r *PaymentRecord) EngineRecord() payment.Record {
	return payment.Record{
		ID:            r.ID,
		Amount:        r.Amount,
		ApprovalState: r.ApprovalState,
		SubmittedAt:   r.SubmittedAt,
	}
}

func EngineRecords(records []*PaymentRecord) []payment.Record {
	out := make([]payment.Record, len(records))
	for i, r := range records {
		out[i] = r.EngineRecord()
	}
	return out
}

type Product struct {
	ID          string `gorm:"primaryKey;size:64;not null"` // product sku
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"size:512"`
	Price       int64  `gorm:"not null"`
	Stock       int    `gorm:"not null"`
	ImageURL    string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CustomerStage string

const (
	StageLead     CustomerStage = "LEAD"
	StageCustomer CustomerStage = "CUSTOMER"
)

type Customer struct {
	ID              string        `gorm:"primaryKey;size:64;not null"`
	Name            string        `gorm:"size:128;not null"`
	Phone           string        `gorm:"size:32;index"`
	Email           string        `gorm:"size:128;index"`
	Stage           CustomerStage `gorm:"size:16;index;not null"`
	LastContactedAt *time.Time
	FollowUpNote    string `gorm:"size:512"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
