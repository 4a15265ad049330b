//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"lab-seat-reservation/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	w := mustWindow(t, 1, 3)

	cases := []struct {
		name     string
		now      time.Time
		expected reservation.Status
	}{
		{name: "開始前はPending", now: w.Start().Add(-time.Millisecond), expected: reservation.StatusPending},
		{name: "開始時刻ちょうどはActive", now: w.Start(), expected: reservation.StatusActive},
		{name: "期間中はActive", now: w.Start().Add(time.Hour), expected: reservation.StatusActive},
		{name: "終了時刻ちょうどはActive", now: w.End(), expected: reservation.StatusActive},
		{name: "終了1ms後はExpired", now: w.End().Add(time.Millisecond), expected: reservation.StatusExpired},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, reservation.Classify(w, c.now))
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, ok := reservation.ParseStatus("active")
	assert.True(t, ok)
	assert.Equal(t, reservation.StatusActive, st)

	_, ok = reservation.ParseStatus("canceled")
	assert.False(t, ok)
}
