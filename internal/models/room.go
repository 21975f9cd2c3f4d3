package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RoomStatus represents the occupancy state of a room
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "Available"
	RoomStatusOccupied    RoomStatus = "Occupied"
	RoomStatusMaintenance RoomStatus = "Maintenance"
	RoomStatusBlocked     RoomStatus = "Blocked"
)

// RoomType represents the category of a room
type RoomType string

const (
	RoomTypeSingle RoomType = "Single"
	RoomTypeDouble RoomType = "Double"
	RoomTypeDeluxe RoomType = "Deluxe"
)

// Valid reports whether s is a known room status
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusBlocked:
		return true
	}
	return false
}

// Valid reports whether t is a known room type
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeDeluxe:
		return true
	}
	return false
}

// roomTransitions lists every status change a room may make.
// Occupied is entered by a booking and left by checkout, cancellation or
// deletion of that booking; Maintenance is left when housekeeping completes.
var roomTransitions = map[RoomStatus][]RoomStatus{
	RoomStatusAvailable:   {RoomStatusOccupied, RoomStatusMaintenance, RoomStatusBlocked},
	RoomStatusOccupied:    {RoomStatusAvailable, RoomStatusMaintenance},
	RoomStatusMaintenance: {RoomStatusAvailable, RoomStatusBlocked},
	RoomStatusBlocked:     {RoomStatusAvailable, RoomStatusMaintenance},
}

// CanTransitionTo reports whether a room may move from s to next
func (s RoomStatus) CanTransitionTo(next RoomStatus) bool {
	for _, allowed := range roomTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ManuallySettable reports whether staff may set the status through room
// maintenance. Occupied is owned by the booking lifecycle.
func (s RoomStatus) ManuallySettable() bool {
	return s == RoomStatusAvailable || s == RoomStatusMaintenance || s == RoomStatusBlocked
}

// Room represents a bookable hotel room
type Room struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	RoomNumber   string     `json:"room_number" db:"room_number"`
	Price        float64    `json:"price" db:"price"`
	MaxOccupancy int        `json:"max_occupancy" db:"max_occupancy"`
	Floor        string     `json:"floor" db:"floor"`
	NumberOfBeds string     `json:"number_of_beds" db:"number_of_beds"`
	ACType       string     `json:"ac_type" db:"ac_type"`
	BathroomType string     `json:"bathroom_type" db:"bathroom_type"`
	RoomType     RoomType   `json:"room_type" db:"room_type"`
	Status       RoomStatus `json:"room_status" db:"room_status"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	IsTV         bool       `json:"is_tv" db:"is_tv"`
	Description  *string    `json:"description,omitempty" db:"description"`
	CreatedBy    string     `json:"created_by" db:"created_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	ModifiedBy   *string    `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt   *time.Time `json:"modified_at,omitempty" db:"modified_at"`

	Documents []Document `json:"documents" db:"-"`
}

// RoomFilter narrows a room listing. Empty fields are ignored.
type RoomFilter struct {
	Status     RoomStatus
	RoomType   RoomType
	RoomNumber string
	ActiveOnly bool
}

// CreateRoomRequest represents the request body for creating a room
type CreateRoomRequest struct {
	RoomNumber   string     `json:"room_number" binding:"required"`
	Price        float64    `json:"price" binding:"required,gt=0"`
	MaxOccupancy int        `json:"max_occupancy" binding:"required,min=1"`
	Floor        string     `json:"floor"`
	NumberOfBeds string     `json:"number_of_beds" binding:"required,oneof=1 2 3"`
	ACType       string     `json:"ac_type" binding:"required,oneof=AC Non-AC"`
	BathroomType string     `json:"bathroom_type" binding:"required,oneof=Attached Separate"`
	RoomType     RoomType   `json:"room_type" binding:"required,room_type"`
	Status       RoomStatus `json:"room_status" binding:"omitempty,room_status"`
	IsTV         bool       `json:"is_tv"`
	Description  *string    `json:"description"`
}

// Validate checks rules that binding tags cannot express
func (r *CreateRoomRequest) Validate() error {
	if r.Status != "" && !r.Status.ManuallySettable() {
		return fmt.Errorf("room status %s cannot be set manually", r.Status)
	}
	return nil
}

// UpdateRoomRequest represents a partial room update
type UpdateRoomRequest struct {
	RoomNumber   *string     `json:"room_number"`
	Price        *float64    `json:"price" binding:"omitempty,gt=0"`
	MaxOccupancy *int        `json:"max_occupancy" binding:"omitempty,min=1"`
	Floor        *string     `json:"floor"`
	NumberOfBeds *string     `json:"number_of_beds" binding:"omitempty,oneof=1 2 3"`
	ACType       *string     `json:"ac_type" binding:"omitempty,oneof=AC Non-AC"`
	BathroomType *string     `json:"bathroom_type" binding:"omitempty,oneof=Attached Separate"`
	RoomType     *RoomType   `json:"room_type" binding:"omitempty,room_type"`
	Status       *RoomStatus `json:"room_status" binding:"omitempty,room_status"`
	IsActive     *bool       `json:"is_active"`
	IsTV         *bool       `json:"is_tv"`
	Description  *string     `json:"description"`
}

// Apply copies the set fields of the request onto room
func (r *UpdateRoomRequest) Apply(room *Room) {
	if r.RoomNumber != nil {
		room.RoomNumber = *r.RoomNumber
	}
	if r.Price != nil {
		room.Price = *r.Price
	}
	if r.MaxOccupancy != nil {
		room.MaxOccupancy = *r.MaxOccupancy
	}
	if r.Floor != nil {
		room.Floor = *r.Floor
	}
	if r.NumberOfBeds != nil {
		room.NumberOfBeds = *r.NumberOfBeds
	}
	if r.ACType != nil {
		room.ACType = *r.ACType
	}
	if r.BathroomType != nil {
		room.BathroomType = *r.BathroomType
	}
	if r.RoomType != nil {
		room.RoomType = *r.RoomType
	}
	if r.Status != nil {
		room.Status = *r.Status
	}
	if r.IsActive != nil {
		room.IsActive = *r.IsActive
	}
	if r.IsTV != nil {
		room.IsTV = *r.IsTV
	}
	if r.Description != nil {
		room.Description = r.Description
	}
}
