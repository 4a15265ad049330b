//go:build unit

package reservation_test

import (
	"fmt"
	"testing"
	"time"

	"lab-seat-reservation/internal/domain/reservation"
	"lab-seat-reservation/internal/domain/venue"
	"lab-seat-reservation/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newVenue lays out rows A-H of five seats each when no labels are given.
func newVenue(t *testing.T, labels ...string) *venue.Venue {
	t.Helper()
	if len(labels) == 0 {
		for _, row := range "ABCDEFGH" {
			for col := 1; col <= 5; col++ {
				labels = append(labels, fmt.Sprintf("%c%d", row, col))
			}
		}
	}
	v, err := venue.NewVenue(uuid.New(), "Gokongwei Lab 302", "Gokongwei Hall", labels, "")
	require.NoError(t, err)
	return v
}

func newReservation(t *testing.T, now time.Time, startHour, endHour int, seats ...string) *reservation.Reservation {
	t.Helper()
	f := reservation.NewFactory(clock.NewMockClock(now), 0)
	r, err := f.CreateReservation(newVenue(t), uuid.New(), mustWindow(t, startHour, endHour), reservation.SeatSetOf(seats...), false)
	require.NoError(t, err)
	return r
}

func TestFactoryCreateReservation(t *testing.T) {
	now := base
	owner := uuid.New()

	t.Run("基本成功ケース", func(t *testing.T) {
		f := reservation.NewFactory(clock.NewMockClock(now), 0)
		v := newVenue(t)
		r, err := f.CreateReservation(v, owner, mustWindow(t, 1, 2), reservation.SeatSetOf("A1"), true)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, v.ID(), r.VenueID())
		require.NotNil(t, r.UserID())
		assert.Equal(t, owner, *r.UserID())
		assert.True(t, r.Anonymous())
		assert.False(t, r.IsRemoved())
		assert.Equal(t, now, r.CreatedAt())
		assert.Equal(t, reservation.StatusPending, reservation.Classify(r.Window(), now))
	})

	t.Run("過去の開始時刻NG", func(t *testing.T) {
		f := reservation.NewFactory(clock.NewMockClock(base.Add(90*time.Minute)), 0)
		_, err := f.CreateReservation(newVenue(t), owner, mustWindow(t, 1, 2), reservation.SeatSetOf("A1"), false)
		assert.ErrorIs(t, err, reservation.ErrWindowInPast)
	})

	t.Run("座席なしNG", func(t *testing.T) {
		f := reservation.NewFactory(clock.NewMockClock(now), 0)
		_, err := f.CreateReservation(newVenue(t), owner, mustWindow(t, 1, 2), reservation.SeatSet{}, false)
		assert.ErrorIs(t, err, reservation.ErrNoSeats)
	})

	t.Run("会場にない座席NG", func(t *testing.T) {
		f := reservation.NewFactory(clock.NewMockClock(now), 0)
		v := newVenue(t, "A1", "A2")

		_, err := f.CreateReservation(v, owner, mustWindow(t, 1, 2), reservation.SeatSetOf("Z98", "Z99"), false)
		assert.ErrorIs(t, err, venue.ErrUnknownSeat)

		_, err = f.CreateReservation(v, owner, mustWindow(t, 1, 2), reservation.SeatSetOf("A1", "A2", "A3"), false)
		assert.ErrorIs(t, err, venue.ErrUnknownSeat)
	})

	t.Run("1予約あたりの座席上限超過NG", func(t *testing.T) {
		f := reservation.NewFactory(clock.NewMockClock(now), 2)
		_, err := f.CreateReservation(newVenue(t), owner, mustWindow(t, 1, 2), reservation.SeatSetOf("A1", "A2", "A3"), false)
		assert.ErrorIs(t, err, reservation.ErrTooManySeats)
	})
}

func TestFactoryCheckModification(t *testing.T) {
	v := newVenue(t, "A1", "A2", "A3")

	t.Run("会場の座席への変更OK", func(t *testing.T) {
		f := reservation.NewFactory(clock.NewMockClock(base), 0)
		assert.NoError(t, f.CheckModification(v, reservation.SeatSetOf("A2", "A3")))
	})

	t.Run("会場にない座席への変更NG", func(t *testing.T) {
		f := reservation.NewFactory(clock.NewMockClock(base), 0)
		assert.ErrorIs(t, f.CheckModification(v, reservation.SeatSetOf("A3", "B1")), venue.ErrUnknownSeat)
	})

	t.Run("座席上限超過NG", func(t *testing.T) {
		f := reservation.NewFactory(clock.NewMockClock(base), 2)
		assert.ErrorIs(t, f.CheckModification(v, reservation.SeatSetOf("A1", "A2", "A3")), reservation.ErrTooManySeats)
	})
}

func TestReservationModify(t *testing.T) {
	t.Run("開始前の変更OK", func(t *testing.T) {
		r := newReservation(t, base, 2, 3, "A1")
		now := base.Add(time.Hour)
		require.NoError(t, r.Modify(mustWindow(t, 4, 5), reservation.SeatSetOf("B1", "B2"), true, now))
		assert.Equal(t, []string{"B1", "B2"}, r.Seats().Labels())
		assert.Equal(t, mustWindow(t, 4, 5), r.Window())
		assert.True(t, r.Anonymous())
		assert.Equal(t, now, r.UpdatedAt())
	})

	t.Run("利用中に開始を据え置いて延長OK", func(t *testing.T) {
		r := newReservation(t, base, 1, 2, "A1")
		require.NoError(t, r.Modify(mustWindow(t, 1, 3), reservation.SeatSetOf("A1"), false, base.Add(90*time.Minute)))
	})

	t.Run("開始を過去に移動NG", func(t *testing.T) {
		r := newReservation(t, base, 2, 3, "A1")
		err := r.Modify(mustWindow(t, 0, 3), reservation.SeatSetOf("A1"), false, base.Add(time.Hour))
		assert.ErrorIs(t, err, reservation.ErrWindowInPast)
	})

	t.Run("終了済みは変更NG", func(t *testing.T) {
		r := newReservation(t, base, 1, 2, "A1")
		err := r.Modify(mustWindow(t, 5, 6), reservation.SeatSetOf("A1"), false, base.Add(3*time.Hour))
		assert.ErrorIs(t, err, reservation.ErrReservationExpired)
	})

	t.Run("削除済みは変更NG", func(t *testing.T) {
		r := newReservation(t, base, 1, 2, "A1")
		require.NoError(t, r.Cancel(uuid.New(), base))
		err := r.Modify(mustWindow(t, 5, 6), reservation.SeatSetOf("A1"), false, base)
		assert.ErrorIs(t, err, reservation.ErrReservationRemoved)
	})
}

func TestReservationCancel(t *testing.T) {
	t.Run("取消で論理削除", func(t *testing.T) {
		r := newReservation(t, base, 1, 2, "A1")
		by := *r.UserID()
		require.NoError(t, r.Cancel(by, base))
		assert.True(t, r.IsRemoved())
		require.NotNil(t, r.RemovedBy())
		assert.Equal(t, by, *r.RemovedBy())
		require.NotNil(t, r.RemovedAt())
		assert.Equal(t, base, *r.RemovedAt())
	})

	t.Run("二重取消NG", func(t *testing.T) {
		r := newReservation(t, base, 1, 2, "A1")
		require.NoError(t, r.Cancel(uuid.New(), base))
		assert.ErrorIs(t, r.Cancel(uuid.New(), base), reservation.ErrReservationRemoved)
	})
}

func TestReservationMarkNoShow(t *testing.T) {
	grace := 10 * time.Minute
	tech := uuid.New()

	cases := []struct {
		name  string
		now   time.Time
		errIs error
	}{
		{name: "猶予期間内NG", now: base.Add(time.Hour + 9*time.Minute), errIs: reservation.ErrNoShowTooEarly},
		{name: "猶予期間経過ちょうどOK", now: base.Add(time.Hour + 10*time.Minute)},
		{name: "終了時刻以降NG", now: base.Add(2 * time.Hour), errIs: reservation.ErrReservationExpired},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newReservation(t, base, 1, 2, "A1")
			err := r.MarkNoShow(tech, c.now, grace)
			if c.errIs != nil {
				assert.ErrorIs(t, err, c.errIs)
				assert.False(t, r.IsRemoved())
				return
			}
			require.NoError(t, err)
			assert.True(t, r.IsRemoved())
			assert.Equal(t, tech, *r.RemovedBy())
		})
	}
}
