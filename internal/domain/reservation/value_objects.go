package reservation

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

var (
	ErrInvalidWindow    = errors.New("window start must be before window end")
	ErrWindowInPast     = errors.New("window start cannot be in the past")
	ErrNoSeats          = errors.New("at least one seat is required")
	ErrInvalidSeatLabel = errors.New("invalid seat label")
)

// Window is the half-open interval [start, end).
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start.UTC(), end: end.UTC()}, nil
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

// Overlaps treats touching endpoints as disjoint: [9,10) and [10,11) do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && w.end.After(other.start)
}

var seatLabelPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{0,15}$`)

func NormalizeSeatLabel(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func IsValidSeatLabel(s string) bool {
	return seatLabelPattern.MatchString(NormalizeSeatLabel(s))
}

// SeatSet is a sorted, duplicate-free set of normalized seat labels.
type SeatSet struct {
	labels []string
}

func NewSeatSet(labels []string) (SeatSet, error) {
	if len(labels) == 0 {
		return SeatSet{}, ErrNoSeats
	}
	normalized := make([]string, 0, len(labels))
	for _, l := range labels {
		n := NormalizeSeatLabel(l)
		if !seatLabelPattern.MatchString(n) {
			return SeatSet{}, fmt.Errorf("%w: %q", ErrInvalidSeatLabel, l)
		}
		normalized = append(normalized, n)
	}
	return seatSetOf(normalized), nil
}

// SeatSetOf builds a set from labels already stored by the system; no validation.
func SeatSetOf(labels ...string) SeatSet {
	normalized := make([]string, 0, len(labels))
	for _, l := range labels {
		normalized = append(normalized, NormalizeSeatLabel(l))
	}
	return seatSetOf(normalized)
}

func seatSetOf(labels []string) SeatSet {
	slices.Sort(labels)
	return SeatSet{labels: slices.Compact(labels)}
}

func (s SeatSet) Labels() []string {
	return slices.Clone(s.labels)
}

func (s SeatSet) Len() int {
	return len(s.labels)
}

func (s SeatSet) IsEmpty() bool {
	return len(s.labels) == 0
}



// Intersect walks both sorted slices once.
func (s SeatSet) Intersect(other SeatSet) SeatSet {
	out := make([]string, 0)
	i, j := 0, 0
	for i < len(s.labels) && j < len(other.labels) {
		switch strings.Compare(s.labels[i], other.labels[j]) {
		case 0:
			out = append(out, s.labels[i])
			i++
			j++
		case -1:
			i++
		default:
			j++
		}
	}
	return SeatSet{labels: out}
}

func (s SeatSet) Union(other SeatSet) SeatSet {
	merged := make([]string, 0, len(s.labels)+len(other.labels))
	merged = append(merged, s.labels...)
	merged = append(merged, other.labels...)
	return seatSetOf(merged)
}

func (s SeatSet) String() string {
	return strings.Join(s.labels, ",")
}
