package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{"PendingToConfirmed", ReservationStatusPending, ReservationStatusConfirmed, true},
		{"PendingToCancelled", ReservationStatusPending, ReservationStatusCancelled, true},
		{"PendingToCheckedIn", ReservationStatusPending, ReservationStatusCheckedIn, false},
		{"ConfirmedToCheckedIn", ReservationStatusConfirmed, ReservationStatusCheckedIn, true},
		{"ConfirmedToCancelled", ReservationStatusConfirmed, ReservationStatusCancelled, true},
		{"ConfirmedToCompleted", ReservationStatusConfirmed, ReservationStatusCompleted, false},
		{"CheckedInToCheckedOut", ReservationStatusCheckedIn, ReservationStatusCheckedOut, true},
		{"CheckedInToCancelled", ReservationStatusCheckedIn, ReservationStatusCancelled, false},
		{"CheckedOutToCompleted", ReservationStatusCheckedOut, ReservationStatusCompleted, true},
		{"CheckedOutToCheckedIn", ReservationStatusCheckedOut, ReservationStatusCheckedIn, false},
		{"CompletedIsTerminal", ReservationStatusCompleted, ReservationStatusPending, false},
		{"CancelledIsTerminal", ReservationStatusCancelled, ReservationStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestOccupiesDate(t *testing.T) {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	t.Run("SingleDayStay", func(t *testing.T) {
		r := &Reservation{StartDate: start}

		assert.True(t, r.OccupiesDate(start))
		assert.False(t, r.OccupiesDate(start.Add(24*time.Hour)))
		assert.False(t, r.OccupiesDate(start.Add(-24*time.Hour)))
	})

	t.Run("MultiDayStay", func(t *testing.T) {
		r := &Reservation{StartDate: start, EndDate: &end}

		assert.True(t, r.OccupiesDate(start))
		assert.True(t, r.OccupiesDate(start.Add(24*time.Hour)))
		assert.True(t, r.OccupiesDate(end))
		assert.False(t, r.OccupiesDate(end.Add(24*time.Hour)))
	})

	t.Run("IgnoresTimeOfDay", func(t *testing.T) {
		r := &Reservation{StartDate: start}

		assert.True(t, r.OccupiesDate(start.Add(15*time.Hour)))
	})
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Reservation{Status: ReservationStatusPending}).CanBeCancelled())
	assert.True(t, (&Reservation{Status: ReservationStatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: ReservationStatusCheckedIn}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: ReservationStatusCheckedOut}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: ReservationStatusCompleted}).CanBeCancelled())
	assert.False(t, (&Reservation{Status: ReservationStatusCancelled}).CanBeCancelled())
}

func TestAppendCancellationNote(t *testing.T) {
	t.Run("WithoutReason", func(t *testing.T) {
		r := &Reservation{}
		r.AppendCancellationNote(nil)

		assert.Equal(t, "Cancelled", *r.Notes)
	})

	t.Run("WithReason", func(t *testing.T) {
		reason := "client requested"
		r := &Reservation{}
		r.AppendCancellationNote(&reason)

		assert.Equal(t, "Cancelled: client requested", *r.Notes)
	})

	t.Run("PreservesExistingNotes", func(t *testing.T) {
		existing := "VIP guest"
		reason := "weather"
		r := &Reservation{Notes: &existing}
		r.AppendCancellationNote(&reason)

		assert.Equal(t, "VIP guest\nCancelled: weather", *r.Notes)
	})
}

func TestCreateReservationRequestValidate(t *testing.T) {
	valid := func() CreateReservationRequest {
		return CreateReservationRequest{
			PlaceID:     "a2e8b8f0-1111-2222-3333-444455556666",
			ClientName:  "Ana Rojas",
			ClientEmail: "ana@example.com",
			StartDate:   "2026-09-10",
			PartySize:   4,
		}
	}

	t.Run("Valid", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("PartySizeTooLarge", func(t *testing.T) {
		req := valid()
		req.PartySize = MaxPartySize + 1
		assert.Error(t, req.Validate())
	})

	t.Run("BadStartDate", func(t *testing.T) {
		req := valid()
		req.StartDate = "10/09/2026"
		assert.Error(t, req.Validate())
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		req := valid()
		end := "2026-09-09"
		req.EndDate = &end
		assert.Error(t, req.Validate())
	})

	t.Run("BadTime", func(t *testing.T) {
		req := valid()
		startTime := "9am"
		req.StartTime = &startTime
		assert.Error(t, req.Validate())
	})
}
