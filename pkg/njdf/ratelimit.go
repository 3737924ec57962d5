package njdf

import (
	"time"
)

// RateLimitRecord is the forever-window rating ledger for one device on one
// route. Count only reflects accepted ratings inside the current window.
type RateLimitRecord struct {
	RouteRef          string
	DeviceFingerprint string
	UserRef           string

	Count       int
	LastRatedAt time.Time
}
