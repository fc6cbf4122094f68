package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string, amount int64, state ApprovalState, at time.Time) Record {
	return Record{ID: id, Amount: amount, ApprovalState: state, SubmittedAt: at}
}

func TestComputeStatusNoRecords(t *testing.T) {
	got := ComputeStatus(500000, nil)
	assert.Equal(t, Totals{Status: StatusUnpaid, TotalPaid: 0, Remaining: 500000}, got)
}

func TestComputeStatusDownPaymentFlow(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	records := []Record{rec("p1", 200000, ApprovalApproved, base)}
	got := ComputeStatus(500000, records)
	assert.Equal(t, Totals{Status: StatusPartial, TotalPaid: 200000, Remaining: 300000}, got)

	records = append(records, rec("p2", 300000, ApprovalApproved, base.Add(time.Hour)))
	got = ComputeStatus(500000, records)
	assert.Equal(t, Totals{Status: StatusPaid, TotalPaid: 500000, Remaining: 0}, got)

	err := ValidateNewPayment(got.Status, 500000, got.TotalPaid, 10000)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestComputeStatusPendingOnly(t *testing.T) {
	records := []Record{rec("p1", 150000, ApprovalPending, time.Now())}
	got := ComputeStatus(300000, records)
	assert.Equal(t, StatusWaitingApproval, got.Status)
	assert.Zero(t, got.TotalPaid)
	assert.Equal(t, int64(300000), got.Remaining)
}

func TestComputeStatusRejectedMostRecent(t *testing.T) {
	records := []Record{rec("p1", 150000, ApprovalRejected, time.Now())}
	got := ComputeStatus(300000, records)
	assert.Equal(t, Totals{Status: StatusRejected, TotalPaid: 0, Remaining: 300000}, got)
}

func TestComputeStatusPaidBeatsPending(t *testing.T) {
	// A fully paid order must never display as waiting approval because a
	// stale pending record still exists.
	base := time.Now()
	records := []Record{
		rec("p1", 500000, ApprovalApproved, base),
		rec("p2", 100000, ApprovalPending, base.Add(time.Minute)),
		rec("p3", 50000, ApprovalRejected, base.Add(2*time.Minute)),
	}
	got := ComputeStatus(500000, records)
	assert.Equal(t, StatusPaid, got.Status)
	assert.Equal(t, int64(500000), got.TotalPaid)
	assert.Zero(t, got.Remaining)
}

func TestComputeStatusPartialBeatsPendingAndRejected(t *testing.T) {
	base := time.Now()
	records := []Record{
		rec("p1", 100000, ApprovalApproved, base),
		rec("p2", 100000, ApprovalPending, base.Add(time.Minute)),
		rec("p3", 100000, ApprovalRejected, base.Add(2*time.Minute)),
	}
	got := ComputeStatus(500000, records)
	assert.Equal(t, StatusPartial, got.Status)
	assert.Equal(t, int64(100000), got.TotalPaid)
	assert.Equal(t, int64(400000), got.Remaining)
}

func TestComputeStatusRejectedNotMostRecent(t *testing.T) {
	// A rejected record followed by a newer pending one means the order is
	// waiting on the newer attempt, not rejected.
	base := time.Now()
	records := []Record{
		rec("p1", 100000, ApprovalRejected, base),
		rec("p2", 100000, ApprovalPending, base.Add(time.Minute)),
	}
	got := ComputeStatus(300000, records)
	assert.Equal(t, StatusWaitingApproval, got.Status)
}

func TestComputeStatusOrderIndependent(t *testing.T) {
	base := time.Now()
	records := []Record{
		rec("p1", 100000, ApprovalApproved, base),
		rec("p2", 200000, ApprovalApproved, base.Add(time.Minute)),
		rec("p3", 50000, ApprovalRejected, base.Add(2*time.Minute)),
	}
	want := ComputeStatus(500000, records)

	reversed := []Record{records[2], records[1], records[0]}
	assert.Equal(t, want, ComputeStatus(500000, reversed))
}

func TestComputeStatusIdempotent(t *testing.T) {
	records := []Record{
		rec("p1", 100000, ApprovalApproved, time.Now()),
		rec("p2", 100000, ApprovalPending, time.Now()),
	}
	first := ComputeStatus(400000, records)
	second := ComputeStatus(400000, records)
	assert.Equal(t, first, second)
}

func TestComputeStatusRemainingNeverNegative(t *testing.T) {
	// Overpayment on a first confirmation is allowed pre-PARTIAL; remaining
	// clamps to zero.
	records := []Record{rec("p1", 700000, ApprovalApproved, time.Now())}
	got := ComputeStatus(500000, records)
	assert.Equal(t, StatusPaid, got.Status)
	assert.Equal(t, int64(700000), got.TotalPaid)
	assert.Zero(t, got.Remaining)
}

func TestComputeStatusZeroPriceNeverPaid(t *testing.T) {
	records := []Record{rec("p1", 100, ApprovalApproved, time.Now())}
	got := ComputeStatus(0, records)
	// totalPrice must be positive for PAID; a zero-price order with credits
	// still reads as partial rather than terminal.
	assert.Equal(t, StatusPartial, got.Status)
	assert.Zero(t, got.Remaining)
}

func TestMostRecentTieBreak(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []Record{
		rec("a", 100, ApprovalRejected, at),
		rec("b", 100, ApprovalRejected, at),
	}
	got, ok := mostRecent(records)
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)

	// Same result regardless of input order.
	got, ok = mostRecent([]Record{records[1], records[0]})
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)
}

func TestValidateNewPayment(t *testing.T) {
	tests := []struct {
		name       string
		status     Status
		totalPrice int64
		totalPaid  int64
		proposed   int64
		wantErr    error
	}{
		{"zero amount", StatusUnpaid, 100000, 0, 0, ErrInvalidAmount},
		{"negative amount", StatusPartial, 100000, 50000, -1, ErrInvalidAmount},
		{"zero amount while waiting", StatusWaitingApproval, 100000, 0, 0, ErrInvalidAmount},
		{"already paid", StatusPaid, 100000, 100000, 1000, ErrAlreadyPaid},
		{"already paid ignores amount sign", StatusPaid, 100000, 100000, -5, ErrAlreadyPaid},
		{"partial exact remaining ok", StatusPartial, 100000, 60000, 40000, nil},
		{"partial below remaining ok", StatusPartial, 100000, 60000, 10000, nil},
		{"unpaid full amount ok", StatusUnpaid, 100000, 0, 100000, nil},
		{"unpaid overshoot not capped", StatusUnpaid, 100000, 0, 150000, nil},
		{"rejected retry not capped", StatusRejected, 100000, 0, 120000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewPayment(tt.status, tt.totalPrice, tt.totalPaid, tt.proposed)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateNewPaymentOvershootPartial(t *testing.T) {
	err := ValidateNewPayment(StatusPartial, 100000, 60000, 50000)
	require.Error(t, err)

	var exceeds *ExceedsRemainingError
	require.True(t, errors.As(err, &exceeds))
	assert.Equal(t, int64(50000), exceeds.Proposed)
	assert.Equal(t, int64(40000), exceeds.Remaining)
}

func TestStatusFromCode(t *testing.T) {
	code := func(n int) *int { return &n }

	assert.Equal(t, StatusUnpaid, StatusFromCode(nil))
	assert.Equal(t, StatusUnpaid, StatusFromCode(code(0)))
	assert.Equal(t, StatusWaitingApproval, StatusFromCode(code(1)))
	assert.Equal(t, StatusPaid, StatusFromCode(code(2)))
	assert.Equal(t, StatusRejected, StatusFromCode(code(3)))
	assert.Equal(t, StatusPartial, StatusFromCode(code(4)))
	assert.Equal(t, StatusUnpaid, StatusFromCode(code(99)))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "PARTIAL", StatusPartial.String())
	assert.Equal(t, "UNKNOWN", Status(42).String())
}
