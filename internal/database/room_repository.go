package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stayvelle/hotel-backend/internal/models"
)

const roomColumns = `id, room_number, price, max_occupancy, floor, number_of_beds, ac_type,
	bathroom_type, room_type, room_status, is_active, is_tv, description,
	created_by, created_at, modified_by, modified_at`

// RoomRepository handles room database operations
type RoomRepository struct {
	db Querier
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db Querier) *RoomRepository {
	return &RoomRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *RoomRepository) WithTx(tx *sqlx.Tx) *RoomRepository {
	return &RoomRepository{db: tx}
}

// Create inserts a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (
			id, room_number, price, max_occupancy, floor, number_of_beds, ac_type,
			bathroom_type, room_type, room_status, is_active, is_tv, description,
			created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		room.ID, room.RoomNumber, room.Price, room.MaxOccupancy, room.Floor,
		room.NumberOfBeds, room.ACType, room.BathroomType, room.RoomType,
		room.Status, room.IsActive, room.IsTV, room.Description,
		room.CreatedBy, room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// GetByID returns a room by ID, or nil if it does not exist
func (r *RoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return r.getOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
}

// GetByIDForUpdate returns a room by ID and locks its row until the
// surrounding transaction ends. Only meaningful on a repository from WithTx.
func (r *RoomRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return r.getOne(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id)
}

func (r *RoomRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Room, error) {
	var room models.Room
	err := r.db.GetContext(ctx, &room, query, args...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

// List returns rooms matching the filter ordered by room number
func (r *RoomRepository) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	conditions := []string{}
	args := []interface{}{}
	argCount := 1

	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("room_status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.RoomType != "" {
		conditions = append(conditions, fmt.Sprintf("room_type = $%d", argCount))
		args = append(args, filter.RoomType)
		argCount++
	}
	if filter.RoomNumber != "" {
		conditions = append(conditions, fmt.Sprintf("room_number = $%d", argCount))
		args = append(args, filter.RoomNumber)
		argCount++
	}

	query := `SELECT ` + roomColumns + ` FROM rooms`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY room_number ASC"

	rooms := []models.Room{}
	if err := r.db.SelectContext(ctx, &rooms, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// RoomNumberTaken reports whether an active room other than excludeID uses roomNumber
func (r *RoomRepository) RoomNumberTaken(ctx context.Context, roomNumber string, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM rooms WHERE room_number = $1 AND is_active = TRUE`
	args := []interface{}{roomNumber}
	if excludeID != nil {
		query += ` AND id <> $2`
		args = append(args, *excludeID)
	}
	query += `)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("failed to check room number: %w", err)
	}
	return exists, nil
}

// Update overwrites the editable fields of a room
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	query := `
		UPDATE rooms SET
			room_number = $2, price = $3, max_occupancy = $4, floor = $5,
			number_of_beds = $6, ac_type = $7, bathroom_type = $8, room_type = $9,
			room_status = $10, is_active = $11, is_tv = $12, description = $13,
			modified_by = $14, modified_at = $15
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		room.ID, room.RoomNumber, room.Price, room.MaxOccupancy, room.Floor,
		room.NumberOfBeds, room.ACType, room.BathroomType, room.RoomType,
		room.Status, room.IsActive, room.IsTV, room.Description,
		room.ModifiedBy, room.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	return expectOneRow(result, "room")
}

// UpdateStatus sets the status of a room
func (r *RoomRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus, actor string) error {
	query := `UPDATE rooms SET room_status = $2, modified_by = $3, modified_at = $4 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, actor, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}
	return expectOneRow(result, "room")
}

// Deactivate soft-deletes a room. Returns false if the room does not exist.
func (r *RoomRepository) Deactivate(ctx context.Context, id uuid.UUID, actor string) (bool, error) {
	query := `UPDATE rooms SET is_active = FALSE, modified_by = $2, modified_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, actor, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to deactivate room: %w", err)
	}
	return affected(result)
}

// Delete removes a room. Returns false if the room does not exist.
func (r *RoomRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete room: %w", err)
	}
	return affected(result)
}

// HasBookings reports whether any booking references the room
func (r *RoomRepository) HasBookings(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM bookings WHERE room_id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check room bookings: %w", err)
	}
	return exists, nil
}

// StatusDrift describes a room whose status disagrees with its bookings
type StatusDrift struct {
	RoomID         uuid.UUID         `db:"id"`
	RoomNumber     string            `db:"room_number"`
	Status         models.RoomStatus `db:"room_status"`
	ActiveBookings int               `db:"active_bookings"`
}

// FindStatusDrift returns active rooms that are Occupied without an active
// booking, or hold an active booking without being Occupied.
func (r *RoomRepository) FindStatusDrift(ctx context.Context) ([]StatusDrift, error) {
	query := `
		SELECT r.id, r.room_number, r.room_status, COUNT(b.id) AS active_bookings
		FROM rooms r
		LEFT JOIN bookings b
			ON b.room_id = r.id AND b.booking_status IN ('Booked', 'CheckedIn')
		WHERE r.is_active = TRUE
		GROUP BY r.id, r.room_number, r.room_status
		HAVING (r.room_status = 'Occupied' AND COUNT(b.id) = 0)
			OR (r.room_status <> 'Occupied' AND COUNT(b.id) > 0)
		ORDER BY r.room_number
	`
	drift := []StatusDrift{}
	if err := r.db.SelectContext(ctx, &drift, query); err != nil {
		return nil, fmt.Errorf("failed to find room status drift: %w", err)
	}
	return drift, nil
}

// expectOneRow returns sql.ErrNoRows when an update touched nothing
func expectOneRow(result sql.Result, entity string) error {
	ok, err := affected(result)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s not found: %w", entity, sql.ErrNoRows)
	}
	return nil
}

func affected(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows > 0, nil
}
