package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() models.Booking {
	checkIn := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return models.Booking{
		ID:             uuid.New(),
		RoomID:         uuid.New(),
		RoomNumber:     "101",
		CheckInDate:    checkIn,
		CheckOutDate:   checkIn.AddDate(0, 0, 2),
		NumberOfGuests: 2,
		Status:         models.BookingStatusBooked,
		CreatedBy:      "frontdesk",
		CreatedAt:      time.Now(),
	}
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewBookingRepository(db)
	b := sampleBooking()

	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(b.ID, b.RoomID, "101", b.CheckInDate, b.CheckOutDate, 2,
			models.BookingStatusBooked, "frontdesk", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CreateInTransaction(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	ctx := context.Background()
	b := sampleBooking()
	guest := models.Guest{
		ID:         uuid.New(),
		BookingID:  b.ID,
		GuestName:  "Asha Rao",
		Age:        31,
		Gender:     "F",
		GuestPhone: "9876543210",
		IsPrimary:  true,
		CreatedBy:  "frontdesk",
		CreatedAt:  time.Now(),
	}

	t.Run("Commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO guests`).
			WithArgs(guest.ID, b.ID, "Asha Rao", 31, "F", "9876543210", nil, true, "frontdesk", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := RunInTx(ctx, &PostgresDB{DB: db}, func(tx *sqlx.Tx) error {
			repo := NewBookingRepository(db).WithTx(tx)
			if err := repo.Create(ctx, &b); err != nil {
				return err
			}
			return repo.CreateGuest(ctx, &guest)
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback On Guest Failure", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO guests`).WillReturnError(fmt.Errorf("constraint violation"))
		mock.ExpectRollback()

		err := RunInTx(ctx, &PostgresDB{DB: db}, func(tx *sqlx.Tx) error {
			repo := NewBookingRepository(db).WithTx(tx)
			if err := repo.Create(ctx, &b); err != nil {
				return err
			}
			return repo.CreateGuest(ctx, &guest)
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert guest")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		b := sampleBooking()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
			WithArgs(b.ID).
			WillReturnRows(testutil.BookingRows(b))

		got, err := repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, b.RoomID, got.RoomID)
		assert.Equal(t, models.BookingStatusBooked, got.Status)
		assert.Nil(t, got.ActualCheckInTime)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_GetLatestByRoom(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewBookingRepository(db)
	b := sampleBooking()

	mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE room_id = \$1 AND room_number = \$2 ORDER BY created_at DESC LIMIT 1`).
		WithArgs(b.RoomID, "101").
		WillReturnRows(testutil.BookingRows(b))

	got, err := repo.GetLatestByRoom(context.Background(), b.RoomID, "101")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_MarkCheckedOut(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewBookingRepository(db)
	id := uuid.New()
	at := time.Now()

	mock.ExpectExec(`UPDATE bookings SET booking_status = \$2, actual_check_out_time = \$3`).
		WithArgs(id, models.BookingStatusCheckedOut, at, "frontdesk").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkCheckedOut(context.Background(), id, at, "frontdesk"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListGuests(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("No Bookings Skips Query", func(t *testing.T) {
		guests, err := repo.ListGuests(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, guests)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success", func(t *testing.T) {
		bookingID := uuid.New()
		guest := models.Guest{
			ID:         uuid.New(),
			BookingID:  bookingID,
			GuestName:  "Asha Rao",
			GuestPhone: "9876543210",
			IsPrimary:  true,
			CreatedBy:  "frontdesk",
			CreatedAt:  time.Now(),
		}

		mock.ExpectQuery(`SELECT (.+) FROM guests WHERE booking_id = ANY`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(testutil.GuestRows(guest))

		guests, err := repo.ListGuests(ctx, []uuid.UUID{bookingID})
		require.NoError(t, err)
		require.Len(t, guests, 1)
		assert.Equal(t, "Asha Rao", guests[0].GuestName)
		assert.True(t, guests[0].IsPrimary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_Delete(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Existing", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
