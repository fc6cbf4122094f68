package cache

import "time"

const (
	// Payment-state snapshot per order: payment_state:{order_id} ->
	// {"payment_status":...,"total_paid":...,"remaining":...}
	KeyPaymentState = "payment_state:%s"
)

var (
	// DB stays authoritative; the cache only absorbs read bursts from the
	// back-office list views.
	TTLPaymentState = 5 * time.Minute
)
