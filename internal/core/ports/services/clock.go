package services

import "time"

// Clock is the single injectable time source. Kiosk punches always use it,
// which keeps server time authoritative and tests deterministic.
type Clock interface {
	Now() time.Time
}
