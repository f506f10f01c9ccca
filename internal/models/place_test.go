package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlaceCapacityHelpers(t *testing.T) {
	capacity := 30

	t.Run("WithLimit", func(t *testing.T) {
		p := &Place{Capacity: &capacity}
		assert.True(t, p.HasCapacityLimit())
	})

	t.Run("Unlimited", func(t *testing.T) {
		p := &Place{}
		assert.False(t, p.HasCapacityLimit())
	})

	t.Run("OnlyAvailableIsBookable", func(t *testing.T) {
		assert.True(t, (&Place{Status: PlaceStatusAvailable}).IsBookable())
		assert.False(t, (&Place{Status: PlaceStatusMaintenance}).IsBookable())
		assert.False(t, (&Place{Status: PlaceStatusInactive}).IsBookable())
	})
}

func TestRemainingDisplay(t *testing.T) {
	assert.Equal(t, 5, Remaining{Seats: 5}.Display())
	assert.Equal(t, 0, Remaining{Seats: -3}.Display())
}

func TestNewReservationReminder(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("FutureStart", func(t *testing.T) {
		r := &Reservation{
			ID:              "res-1",
			ReservationCode: "RES202609011234",
			ClientName:      "Ana Rojas",
			StartDate:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		}

		alert := NewReservationReminder(r, now)
		assert.NotNil(t, alert)
		assert.Equal(t, AlertTypeReservationReminder, alert.Type)
		assert.Equal(t, r.StartDate.Add(-ReminderLeadTime), alert.AlertDate)
		assert.False(t, alert.IsSent)
	})

	t.Run("StartTooSoon", func(t *testing.T) {
		r := &Reservation{
			StartDate: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		}

		assert.Nil(t, NewReservationReminder(r, now))
	})

	// The reminder date for a stay starting in exactly three days falls
	// on today's midnight. Once that instant has passed no alert is
	// created; the cutoff is the instant itself, not the calendar day.
	t.Run("ExactLeadTimeBoundary", func(t *testing.T) {
		r := &Reservation{
			StartDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		}

		tests := []struct {
			name     string
			now      time.Time
			reminder bool
		}{
			{"JustBeforeMidnight", time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC), true},
			{"AtMidnight", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), false},
			{"MidMorning", time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				alert := NewReservationReminder(r, tt.now)
				if tt.reminder {
					assert.NotNil(t, alert)
				} else {
					assert.Nil(t, alert)
				}
			})
		}
	})
}
