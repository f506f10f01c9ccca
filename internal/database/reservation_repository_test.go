package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maarriet/costa-rica-tourism-system/internal/models"
)

func TestReservationCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	reservation := func() *models.Reservation {
		return &models.Reservation{
			ReservationCode: "RES202608281234",
			PlaceID:         "place-1",
			ClientName:      "Ana Rojas",
			ClientEmail:     "ana@example.com",
			StartDate:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			PartySize:       4,
			TotalAmount:     200,
			Status:          models.ReservationStatusPending,
		}
	}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO reservations`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		r := reservation()
		err := repo.Create(nil, r)
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO reservations`).
			WillReturnError(&pqUniqueViolationForTest)

		err := repo.Create(nil, reservation())
		assert.ErrorIs(t, err, models.ErrDuplicateCode)
	})
}

func TestSumPartySize(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	onDate := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(party_size\), 0\)`).
		WithArgs("place-1", pq.Array([]string{"confirmed", "checked_in"}), onDate).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(17))

	total, err := repo.SumPartySize(nil, "place-1", onDate, models.AdmissionStatuses)
	require.NoError(t, err)
	assert.Equal(t, 17, total)
}

func TestTransitionGuards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	t.Run("ConfirmSucceeds", func(t *testing.T) {
		mock.ExpectExec(`UPDATE reservations SET status = 'confirmed'`).
			WithArgs("res-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Confirm("res-1"))
	})

	t.Run("ConfirmFromWrongState", func(t *testing.T) {
		mock.ExpectExec(`UPDATE reservations SET status = 'confirmed'`).
			WithArgs("res-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Confirm("res-1"), models.ErrInvalidTransition)
	})

	t.Run("CheckOutStampsOnce", func(t *testing.T) {
		mock.ExpectExec(`UPDATE reservations SET status = 'checked_out'`).
			WithArgs("res-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE reservations SET status = 'checked_out'`).
			WithArgs("res-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.CheckOut("res-1"))
		assert.ErrorIs(t, repo.CheckOut("res-1"), models.ErrInvalidTransition)
	})
}

func TestCompleteCheckedOutBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	cutoff := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE reservations SET status = 'completed'`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.CompleteCheckedOutBefore(cutoff)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGetReservationByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReservationRepository(db)

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM reservations WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID("ghost")
		assert.ErrorIs(t, err, models.ErrReservationNotFound)
	})
}
