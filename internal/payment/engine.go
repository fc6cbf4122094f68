package payment

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyPaid   = errors.New("order is already fully paid")
	ErrInvalidAmount = errors.New("payment amount must be positive")
)

// ExceedsRemainingError is returned when a down-payment instalment would
// overshoot the open balance.
type ExceedsRemainingError struct {
	Proposed  int64
	Remaining int64
}

func (e *ExceedsRemainingError) Error() string {
	return fmt.Sprintf("payment of %d exceeds remaining balance of %d", e.Proposed, e.Remaining)
}

// Record is the engine's view of one payment attempt. Callers map their
// storage rows into this; the engine never touches the database.
type Record struct {
	ID            string
	Amount        int64
	ApprovalState ApprovalState
	SubmittedAt   time.Time
}

// Totals is the derived payment state of an order.
type Totals struct {
	Status    Status
	TotalPaid int64
	Remaining int64
}

// ComputeStatus derives the authoritative payment state of an order from its
// full record list. Only APPROVED records credit toward TotalPaid; PENDING
// and REJECTED records contribute nothing.
//
// Precedence: a fully covered order is PAID even if stale pending or
// rejected records still exist. REJECTED applies only when the most recent
// record was rejected and nothing is credited or pending.
func ComputeStatus(totalPrice int64, records []Record) Totals {
	var totalPaid int64
	hasPending := false
	for _, r := range records {
		switch r.ApprovalState {
		case ApprovalApproved:
			totalPaid += r.Amount
		case ApprovalPending:
			hasPending = true
		}
	}

	remaining := totalPrice - totalPaid
	if remaining < 0 {
		remaining = 0
	}

	status := StatusUnpaid
	switch {
	case totalPrice > 0 && totalPaid >= totalPrice:
		status = StatusPaid
	case totalPaid > 0:
		status = StatusPartial
	case hasPending:
		status = StatusWaitingApproval
	default:
		if last, ok := mostRecent(records); ok && last.ApprovalState == ApprovalRejected {
			status = StatusRejected
		}
	}

	return Totals{Status: status, TotalPaid: totalPaid, Remaining: remaining}
}

// mostRecent picks the latest record by SubmittedAt, record ID as tie-break
// so the result is deterministic regardless of input order.
func mostRecent(records []Record) (Record, bool) {
	if len(records) == 0 {
		return Record{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.SubmittedAt.After(best.SubmittedAt) {
			best = r
			continue
		}
		if r.SubmittedAt.Equal(best.SubmittedAt) && r.ID > best.ID {
			best = r
		}
	}
	return best, true
}

// ValidateNewPayment checks a proposed confirmation amount against the
// order's current state. An instalment on a PARTIAL order must not overshoot
// the remaining balance; a first or retried payment (UNPAID/REJECTED) is not
// capped and the resulting status falls out of ComputeStatus afterwards.
func ValidateNewPayment(status Status, totalPrice, totalPaid, proposed int64) error {
	if status == StatusPaid {
		return ErrAlreadyPaid
	}
	if proposed <= 0 {
		return ErrInvalidAmount
	}
	if status == StatusPartial {
		remaining := totalPrice - totalPaid
		if proposed > remaining {
			return &ExceedsRemainingError{Proposed: proposed, Remaining: remaining}
		}
	}
	return nil
}
