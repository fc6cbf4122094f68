package payment

// Status is the order-level payment status. The numeric codes are the wire
// codes the existing backend uses; keep them stable.
type Status int

const (
	StatusUnpaid          Status = 0
	StatusWaitingApproval Status = 1
	StatusPaid            Status = 2
	StatusRejected        Status = 3
	StatusPartial         Status = 4 // down payment in progress
)

func (s Status) String() string {
	switch s {
	case StatusUnpaid:
		return "UNPAID"
	case StatusWaitingApproval:
		return "WAITING_APPROVAL"
	case StatusPaid:
		return "PAID"
	case StatusRejected:
		return "REJECTED"
	case StatusPartial:
		return "PARTIAL"
	}
	return "UNKNOWN"
}

// StatusFromCode maps a nullable wire code to a Status. The backend sends
// null for orders that never saw a payment; that is UNPAID, explicitly.
func StatusFromCode(code *int) Status {
	if code == nil {
		return StatusUnpaid
	}
	s := Status(*code)
	switch s {
	case StatusUnpaid, StatusWaitingApproval, StatusPaid, StatusRejected, StatusPartial:
		return s
	}
	return StatusUnpaid
}

// ApprovalState is the per-record mini status, independent of the order
// level Status.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "PENDING"
	ApprovalApproved ApprovalState = "APPROVED"
	ApprovalRejected ApprovalState = "REJECTED"
)
