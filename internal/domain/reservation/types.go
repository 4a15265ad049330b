package reservation

import "time"

// Status is derived from the window at read time and never stored.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusExpired:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.IsValid()
}

// Classify uses an inclusive end: a reservation is still active at exactly w.End().
func Classify(w Window, now time.Time) Status {
	switch {
	case now.Before(w.Start()):
		return StatusPending
	case now.After(w.End()):
		return StatusExpired
	default:
		return StatusActive
	}
}
