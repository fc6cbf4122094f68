package dto

import (
	"io"
	"time"
)

// PaymentSubmission is one proof-of-payment confirmation from the storefront
// or the sales back office.
type PaymentSubmission struct {
	Amount        int64
	Method        string
	Proof         io.Reader
	ProofFilename string
	SubmittedAt   time.Time
}

type PaymentRecordView struct {
	ID             string    `json:"id"`
	Amount         int64     `json:"amount"`
	Method         string    `json:"method"`
	ProofOfPayment string    `json:"proof_of_payment"`
	ApprovalState  string    `json:"approval_state"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type PaymentState struct {
	OrderID           string              `json:"order_id"`
	PaymentStatus     int                 `json:"payment_status"`
	PaymentStatusName string              `json:"payment_status_name"`
	OrderStatus       string              `json:"order_status"`
	TotalPrice        int64               `json:"total_price"`
	TotalPaid         int64               `json:"total_paid"`
	Remaining         int64               `json:"remaining"`
	Records           []PaymentRecordView `json:"records"`
}

type CreateOrderRequest struct {
	CustomerID    string `json:"customer_id"`
	TotalPrice    int64  `json:"total_price"`
	PaymentMethod string `json:"payment_method"`
	// nullable wire code from the legacy backend; null means unpaid
	PaymentStatusCode *int `json:"payment_status_code"`
}

type ReviewPaymentRequest struct {
	Approve bool `json:"approve"`
}

type ProductRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
}

type CustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Stage string `json:"stage"`
}

type FollowUpRequest struct {
	Note string `json:"note"`
}

type BroadcastRequest struct {
	Message string `json:"message"`
	Stage   string `json:"stage"`
}

type BroadcastResponse struct {
	Recipients int `json:"recipients"`
}
