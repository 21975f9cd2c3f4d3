package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stretchr/testify/require"
)

const testActor = "frontdesk"

// SQL patterns shared by the service tests
const (
	roomForUpdateSQL    = `SELECT (.+) FROM rooms WHERE id = \$1 FOR UPDATE`
	roomByIDSQL         = `SELECT (.+) FROM rooms WHERE id = \$1`
	bookingForUpdateSQL = `SELECT (.+) FROM bookings WHERE id = \$1 FOR UPDATE`
	bookingByIDSQL      = `SELECT (.+) FROM bookings WHERE id = \$1`
	roomStatusSQL       = `UPDATE rooms SET room_status = \$2`
	openTasksSQL        = `SELECT COUNT\(\*\) FROM housekeeping_tasks WHERE booking_id = \$1 AND task_status <> \$2`
)

func sampleRoom(status models.RoomStatus) models.Room {
	return models.Room{
		ID:           uuid.New(),
		RoomNumber:   "101",
		Price:        1500,
		MaxOccupancy: 2,
		Floor:        "1",
		NumberOfBeds: "2",
		ACType:       "AC",
		BathroomType: "Attached",
		RoomType:     models.RoomTypeDouble,
		Status:       status,
		IsActive:     true,
		CreatedBy:    "admin",
		CreatedAt:    time.Now(),
	}
}

func sampleBooking(roomID uuid.UUID, status models.BookingStatus) models.Booking {
	checkIn := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return models.Booking{
		ID:             uuid.New(),
		RoomID:         roomID,
		RoomNumber:     "101",
		CheckInDate:    checkIn,
		CheckOutDate:   checkIn.AddDate(0, 0, 2),
		NumberOfGuests: 1,
		Status:         status,
		CreatedBy:      testActor,
		CreatedAt:      time.Now(),
	}
}

func sampleCatalogService() models.Service {
	return models.Service{
		ID:              uuid.New(),
		ServiceCategory: "Food",
		SubCategory:     "Breakfast",
		ServiceName:     "Continental Breakfast",
		Price:           250,
		Unit:            "plate",
		IsActive:        true,
		CreatedBy:       "admin",
		CreatedAt:       time.Now(),
	}
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperr.Is(err, kind), "expected %s, got %v", kind, err)
}
