package utils

import "time"

// DeltaTimer measures the time between successive calls to Next
type DeltaTimer struct {
	last time.Time
	// Now defaults to time.Now
	Now func() time.Time
}

func (d *DeltaTimer) Next() time.Duration {
	// acquire timestamp exactly once to ensure we're not accumulating error
	var now time.Time
	if d.Now != nil {
		now = d.Now()
	} else {
		now = time.Now()
	}

	defer func() { d.last = now }()
	if d.last.IsZero() {
		return 0
	}
	return now.Sub(d.last)
}
