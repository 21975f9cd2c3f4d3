package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stayvelle/hotel-backend/internal/models"
)

const bookingColumns = `id, room_id, room_number, check_in_date, check_out_date,
	actual_check_in_time, actual_check_out_time, number_of_guests, booking_status,
	created_by, created_at, modified_by, modified_at`

const guestColumns = `id, booking_id, guest_name, age, gender, guest_phone, guest_email,
	is_primary, created_by, created_at, modified_by, modified_at`

const bookingServiceColumns = `id, booking_id, service_id, service_category, sub_category,
	service_name, price, unit, is_complementary, quantity, service_date, service_status,
	created_by, created_at`

// BookingRepository handles bookings and the guests and service lines they own
type BookingRepository struct {
	db Querier
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db Querier) *BookingRepository {
	return &BookingRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *BookingRepository) WithTx(tx *sqlx.Tx) *BookingRepository {
	return &BookingRepository{db: tx}
}

// ============================================================================
// BOOKINGS
// ============================================================================

// Create inserts the booking row only
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, room_id, room_number, check_in_date, check_out_date,
			number_of_guests, booking_status, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.RoomID, b.RoomNumber, b.CheckInDate, b.CheckOutDate,
		b.NumberOfGuests, b.Status, b.CreatedBy, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// GetByID returns a booking without children, or nil if it does not exist
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.getOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// GetByIDForUpdate is GetByID with a row lock held until the transaction ends
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.getOne(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

// GetByGuestID returns the booking a guest belongs to
func (r *BookingRepository) GetByGuestID(ctx context.Context, guestID uuid.UUID) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE id = (SELECT booking_id FROM guests WHERE id = $1)
	`
	return r.getOne(ctx, query, guestID)
}

// GetLatestByRoom returns the newest booking for a room, matched on both id and number
func (r *BookingRepository) GetLatestByRoom(ctx context.Context, roomID uuid.UUID, roomNumber string) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE room_id = $1 AND room_number = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, roomID, roomNumber)
}

func (r *BookingRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Booking, error) {
	var b models.Booking
	err := r.db.GetContext(ctx, &b, query, args...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

// List returns all bookings, newest first
func (r *BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// ListByGuestPhone returns bookings with a guest using the given phone number, newest first
func (r *BookingRepository) ListByGuestPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE id IN (SELECT booking_id FROM guests WHERE guest_phone = $1)
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &bookings, query, phone); err != nil {
		return nil, fmt.Errorf("failed to list bookings by phone: %w", err)
	}
	return bookings, nil
}

// Update overwrites the editable fields of a booking
func (r *BookingRepository) Update(ctx context.Context, b *models.Booking) error {
	query := `
		UPDATE bookings SET
			room_id = $2, room_number = $3, check_in_date = $4, check_out_date = $5,
			number_of_guests = $6, booking_status = $7, actual_check_in_time = $8,
			actual_check_out_time = $9, modified_by = $10, modified_at = $11
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		b.ID, b.RoomID, b.RoomNumber, b.CheckInDate, b.CheckOutDate,
		b.NumberOfGuests, b.Status, b.ActualCheckInTime, b.ActualCheckOut,
		b.ModifiedBy, b.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return expectOneRow(result, "booking")
}

// MarkCheckedIn sets the actual check-in time and the CheckedIn status
func (r *BookingRepository) MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time, actor string) error {
	query := `
		UPDATE bookings
		SET booking_status = $2, actual_check_in_time = $3, modified_by = $4, modified_at = $3
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, models.BookingStatusCheckedIn, at, actor)
	if err != nil {
		return fmt.Errorf("failed to check in booking: %w", err)
	}
	return expectOneRow(result, "booking")
}

// MarkCheckedOut sets the actual check-out time and the CheckedOut status
func (r *BookingRepository) MarkCheckedOut(ctx context.Context, id uuid.UUID, at time.Time, actor string) error {
	query := `
		UPDATE bookings
		SET booking_status = $2, actual_check_out_time = $3, modified_by = $4, modified_at = $3
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, models.BookingStatusCheckedOut, at, actor)
	if err != nil {
		return fmt.Errorf("failed to check out booking: %w", err)
	}
	return expectOneRow(result, "booking")
}

// UpdateStatus sets the booking status
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus, actor string) error {
	query := `UPDATE bookings SET booking_status = $2, modified_by = $3, modified_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, actor, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return expectOneRow(result, "booking")
}

// Delete removes the booking row. Returns false if it does not exist.
func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete booking: %w", err)
	}
	return affected(result)
}

// ============================================================================
// GUESTS
// ============================================================================

// CreateGuest inserts a guest of a booking
func (r *BookingRepository) CreateGuest(ctx context.Context, g *models.Guest) error {
	query := `
		INSERT INTO guests (
			id, booking_id, guest_name, age, gender, guest_phone, guest_email,
			is_primary, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		g.ID, g.BookingID, g.GuestName, g.Age, g.Gender, g.GuestPhone, g.GuestEmail,
		g.IsPrimary, g.CreatedBy, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert guest: %w", err)
	}
	return nil
}

// ListGuests returns the guests of the given bookings, primary guests first
func (r *BookingRepository) ListGuests(ctx context.Context, bookingIDs []uuid.UUID) ([]models.Guest, error) {
	guests := []models.Guest{}
	if len(bookingIDs) == 0 {
		return guests, nil
	}
	query := `
		SELECT ` + guestColumns + ` FROM guests
		WHERE booking_id = ANY($1::uuid[])
		ORDER BY is_primary DESC, created_at ASC
	`
	if err := r.db.SelectContext(ctx, &guests, query, pq.Array(uuidStrings(bookingIDs))); err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

// DeleteGuests removes every guest of a booking and returns their ids
func (r *BookingRepository) DeleteGuests(ctx context.Context, bookingID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.SelectContext(ctx, &ids, `DELETE FROM guests WHERE booking_id = $1 RETURNING id`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete guests: %w", err)
	}
	return ids, nil
}

// ============================================================================
// SERVICE LINES
// ============================================================================

// CreateService inserts a service line of a booking
func (r *BookingRepository) CreateService(ctx context.Context, s *models.BookingService) error {
	query := `
		INSERT INTO booking_services (
			id, booking_id, service_id, service_category, sub_category, service_name,
			price, unit, is_complementary, quantity, service_date, service_status,
			created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.BookingID, s.ServiceID, s.ServiceCategory, s.SubCategory, s.ServiceName,
		s.Price, s.Unit, s.IsComplementary, s.Quantity, s.ServiceDate, s.Status,
		s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking service: %w", err)
	}
	return nil
}

// ListServices returns the service lines of the given bookings in service date order
func (r *BookingRepository) ListServices(ctx context.Context, bookingIDs []uuid.UUID) ([]models.BookingService, error) {
	lines := []models.BookingService{}
	if len(bookingIDs) == 0 {
		return lines, nil
	}
	query := `
		SELECT ` + bookingServiceColumns + ` FROM booking_services
		WHERE booking_id = ANY($1::uuid[])
		ORDER BY service_date ASC, created_at ASC
	`
	if err := r.db.SelectContext(ctx, &lines, query, pq.Array(uuidStrings(bookingIDs))); err != nil {
		return nil, fmt.Errorf("failed to list booking services: %w", err)
	}
	return lines, nil
}

// DeleteServices removes every service line of a booking
func (r *BookingRepository) DeleteServices(ctx context.Context, bookingID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM booking_services WHERE booking_id = $1`, bookingID); err != nil {
		return fmt.Errorf("failed to delete booking services: %w", err)
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
