package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusBooked     BookingStatus = "Booked"
	BookingStatusCheckedIn  BookingStatus = "CheckedIn"
	BookingStatusCheckedOut BookingStatus = "CheckedOut"
	BookingStatusCancelled  BookingStatus = "Cancelled"
)

// Valid reports whether s is a known booking status
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusBooked, BookingStatusCheckedIn, BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusBooked:    {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn: {BookingStatusCheckedOut},
}

// CanTransitionTo reports whether a booking may move from s to next.
// CheckedOut and Cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsActive reports whether a booking in this status holds its room
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusBooked || s == BookingStatusCheckedIn
}

// Booking represents a reservation of one room for a date range
type Booking struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	RoomID            uuid.UUID     `json:"room_id" db:"room_id"`
	RoomNumber        string        `json:"room_number" db:"room_number"`
	CheckInDate       time.Time     `json:"check_in_date" db:"check_in_date"`
	CheckOutDate      time.Time     `json:"check_out_date" db:"check_out_date"`
	ActualCheckInTime *time.Time    `json:"actual_check_in_time,omitempty" db:"actual_check_in_time"`
	ActualCheckOut    *time.Time    `json:"actual_check_out_time,omitempty" db:"actual_check_out_time"`
	NumberOfGuests    int           `json:"number_of_guests" db:"number_of_guests"`
	Status            BookingStatus `json:"booking_status" db:"booking_status"`
	CreatedBy         string        `json:"created_by" db:"created_by"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	ModifiedBy        *string       `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt        *time.Time    `json:"modified_at,omitempty" db:"modified_at"`

	Guests   []Guest          `json:"guests" db:"-"`
	Services []BookingService `json:"services" db:"-"`
}

// Guest is a person staying under a booking
type Guest struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	BookingID  uuid.UUID  `json:"booking_id" db:"booking_id"`
	GuestName  string     `json:"guest_name" db:"guest_name"`
	Age        int        `json:"age" db:"age"`
	Gender     string     `json:"gender" db:"gender"`
	GuestPhone string     `json:"guest_phone" db:"guest_phone"`
	GuestEmail *string    `json:"guest_email,omitempty" db:"guest_email"`
	IsPrimary  bool       `json:"is_primary" db:"is_primary"`
	CreatedBy  string     `json:"created_by" db:"created_by"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	ModifiedBy *string    `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt *time.Time `json:"modified_at,omitempty" db:"modified_at"`

	Documents []Document `json:"documents" db:"-"`
}

// BookingServiceStatus is the fulfilment state of a service line
type BookingServiceStatus string

const (
	BookingServiceRequested BookingServiceStatus = "Requested"
	BookingServiceDelivered BookingServiceStatus = "Delivered"
	BookingServiceCancelled BookingServiceStatus = "Cancelled"
)

// BookingService is a catalogue service attached to a booking.
// Name, category, price and unit are copied from the catalogue when the line is added.
type BookingService struct {
	ID              uuid.UUID            `json:"id" db:"id"`
	BookingID       uuid.UUID            `json:"booking_id" db:"booking_id"`
	ServiceID       uuid.UUID            `json:"service_id" db:"service_id"`
	ServiceCategory string               `json:"service_category" db:"service_category"`
	SubCategory     string               `json:"sub_category" db:"sub_category"`
	ServiceName     string               `json:"service_name" db:"service_name"`
	Price           float64              `json:"price" db:"price"`
	Unit            string               `json:"unit" db:"unit"`
	IsComplementary bool                 `json:"is_complementary" db:"is_complementary"`
	Quantity        int                  `json:"quantity" db:"quantity"`
	ServiceDate     time.Time            `json:"service_date" db:"service_date"`
	Status          BookingServiceStatus `json:"service_status" db:"service_status"`
	CreatedBy       string               `json:"created_by" db:"created_by"`
	CreatedAt       time.Time            `json:"created_at" db:"created_at"`
}

// LineTotal is the billable amount of the line
func (s BookingService) LineTotal() float64 {
	return s.Price * float64(s.Quantity)
}

// BookingDetails summarises a booking with its charges
type BookingDetails struct {
	Booking     *Booking         `json:"booking"`
	RoomNumber  string           `json:"room_number"`
	RoomPrice   float64          `json:"room_price"`
	Nights      int              `json:"nights"`
	RoomTotal   float64          `json:"room_total"`
	Services    []BookingService `json:"services"`
	ServiceCost float64          `json:"service_total"`
	TotalAmount float64          `json:"total_amount"`
}

// Nights returns the number of billable nights between two dates, at least one
func Nights(checkIn, checkOut time.Time) int {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

// GuestRequest describes a guest in a create booking request
type GuestRequest struct {
	GuestName  string            `json:"guest_name" binding:"required"`
	Age        int               `json:"age" binding:"omitempty,min=0,max=130"`
	Gender     string            `json:"gender"`
	GuestPhone string            `json:"guest_phone"`
	GuestEmail *string           `json:"guest_email" binding:"omitempty,email"`
	IsPrimary  bool              `json:"is_primary"`
	Documents  []DocumentRequest `json:"documents"`
}

// BookingServiceRequest attaches a catalogue service to a booking
type BookingServiceRequest struct {
	BookingID   uuid.UUID  `json:"booking_id"`
	ServiceID   uuid.UUID  `json:"service_id" binding:"required"`
	Quantity    int        `json:"quantity" binding:"omitempty,min=1"`
	Price       *float64   `json:"price" binding:"omitempty,min=0"`
	ServiceDate *time.Time `json:"service_date"`
}

// CreateBookingRequest represents the request body for creating a booking
type CreateBookingRequest struct {
	RoomID         uuid.UUID               `json:"room_id" binding:"required"`
	CheckInDate    time.Time               `json:"check_in_date" binding:"required"`
	CheckOutDate   time.Time               `json:"check_out_date" binding:"required"`
	NumberOfGuests int                     `json:"number_of_guests" binding:"omitempty,min=1"`
	Guests         []GuestRequest          `json:"guests" binding:"dive"`
	Services       []BookingServiceRequest `json:"services" binding:"dive"`
}

// UpdateBookingRequest overwrites the editable fields of a booking
type UpdateBookingRequest struct {
	RoomID         uuid.UUID      `json:"room_id" binding:"required"`
	CheckInDate    time.Time      `json:"check_in_date" binding:"required"`
	CheckOutDate   time.Time      `json:"check_out_date" binding:"required"`
	NumberOfGuests int            `json:"number_of_guests" binding:"omitempty,min=1"`
	Status         *BookingStatus `json:"booking_status" binding:"omitempty,booking_status"`
}
