package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusBooked, BookingStatusCheckedIn, true},
		{BookingStatusBooked, BookingStatusCancelled, true},
		{BookingStatusBooked, BookingStatusCheckedOut, false},
		{BookingStatusCheckedIn, BookingStatusCheckedOut, true},
		{BookingStatusCheckedIn, BookingStatusCheckedIn, false},
		{BookingStatusCheckedIn, BookingStatusCancelled, false},
		{BookingStatusCheckedOut, BookingStatusCheckedIn, false},
		{BookingStatusCancelled, BookingStatusBooked, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestBookingStatusIsActive(t *testing.T) {
	assert.True(t, BookingStatusBooked.IsActive())
	assert.True(t, BookingStatusCheckedIn.IsActive())
	assert.False(t, BookingStatusCheckedOut.IsActive())
	assert.False(t, BookingStatusCancelled.IsActive())
	assert.False(t, BookingStatus("Hold").Valid())
}

func TestRoomStatusTransitions(t *testing.T) {
	assert.True(t, RoomStatusAvailable.CanTransitionTo(RoomStatusOccupied))
	assert.True(t, RoomStatusOccupied.CanTransitionTo(RoomStatusMaintenance))
	assert.True(t, RoomStatusMaintenance.CanTransitionTo(RoomStatusAvailable))
	assert.False(t, RoomStatusMaintenance.CanTransitionTo(RoomStatusOccupied))
	assert.False(t, RoomStatusBlocked.CanTransitionTo(RoomStatusOccupied))
	assert.False(t, RoomStatusOccupied.CanTransitionTo(RoomStatusBlocked))

	assert.True(t, RoomStatusBlocked.ManuallySettable())
	assert.False(t, RoomStatusOccupied.ManuallySettable())
}

func TestTaskStatusTransitions(t *testing.T) {
	assert.True(t, TaskStatusPending.CanTransitionTo(TaskStatusAssigned))
	assert.True(t, TaskStatusAssigned.CanTransitionTo(TaskStatusInProgress))
	assert.True(t, TaskStatusInProgress.CanTransitionTo(TaskStatusCompleted))
	assert.True(t, TaskStatusPending.CanTransitionTo(TaskStatusCompleted))
	assert.True(t, TaskStatusCompleted.CanTransitionTo(TaskStatusCompleted))
	assert.False(t, TaskStatusCompleted.CanTransitionTo(TaskStatusPending))
	assert.False(t, TaskStatusInProgress.CanTransitionTo(TaskStatusPending))
}

func TestNights(t *testing.T) {
	day := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, Nights(day, day.AddDate(0, 0, 2)))
	assert.Equal(t, 1, Nights(day, day.Add(3*time.Hour)))
	assert.Equal(t, 1, Nights(day, day))
}

func TestBookingServiceLineTotal(t *testing.T) {
	line := BookingService{Price: 250, Quantity: 3}
	assert.Equal(t, 750.0, line.LineTotal())
}

func TestUpdateRoomRequestApply(t *testing.T) {
	room := &Room{RoomNumber: "101", Price: 1500, Status: RoomStatusAvailable}
	price := 1800.0
	status := RoomStatusBlocked

	req := UpdateRoomRequest{Price: &price, Status: &status}
	req.Apply(room)

	assert.Equal(t, "101", room.RoomNumber)
	assert.Equal(t, 1800.0, room.Price)
	assert.Equal(t, RoomStatusBlocked, room.Status)
}
