package events

import (
	"encoding/json"
	"time"
)

const (
	EventPaymentSubmitted   = "PaymentSubmitted"
	EventPaymentReviewed    = "PaymentReviewed"
	EventBroadcastRequested = "BroadcastRequested"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // usually order_id
	Payload       json.RawMessage `json:"payload"`
}

type PaymentSubmittedPayload struct {
	OrderID       string `json:"order_id"`
	RecordID      string `json:"record_id"`
	Amount        int64  `json:"amount"`
	Method        string `json:"method"`
	PaymentStatus string `json:"payment_status"`
	Remaining     int64  `json:"remaining"`
}

type PaymentReviewedPayload struct {
	OrderID       string `json:"order_id"`
	RecordID      string `json:"record_id"`
	Approved      bool   `json:"approved"`
	PaymentStatus string `json:"payment_status"`
	TotalPaid     int64  `json:"total_paid"`
	Remaining     int64  `json:"remaining"`
}

type BroadcastRequestedPayload struct {
	Message    string   `json:"message"`
	Stage      string   `json:"stage,omitempty"` // LEAD or CUSTOMER; empty = everyone
	Recipients []string `json:"recipients"`      // customer ids
}
