package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stayvelle/hotel-backend/internal/models"
)

const taskColumns = `id, room_id, booking_id, task_type, task_status, room_image,
	assigned_to_user_id, created_by, created_at, modified_by, modified_at`

// HousekeepingRepository handles housekeeping task database operations
type HousekeepingRepository struct {
	db Querier
}

// NewHousekeepingRepository creates a new housekeeping repository
func NewHousekeepingRepository(db Querier) *HousekeepingRepository {
	return &HousekeepingRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *HousekeepingRepository) WithTx(tx *sqlx.Tx) *HousekeepingRepository {
	return &HousekeepingRepository{db: tx}
}

// Create inserts a new task
func (r *HousekeepingRepository) Create(ctx context.Context, t *models.HousekeepingTask) error {
	query := `
		INSERT INTO housekeeping_tasks (
			id, room_id, booking_id, task_type, task_status, room_image,
			assigned_to_user_id, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.RoomID, t.BookingID, t.TaskType, t.Status, t.RoomImage,
		t.AssignedToUserID, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create housekeeping task: %w", err)
	}
	return nil
}

// GetByID returns a task, or nil if it does not exist
func (r *HousekeepingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.HousekeepingTask, error) {
	var t models.HousekeepingTask
	err := r.db.GetContext(ctx, &t, `SELECT `+taskColumns+` FROM housekeeping_tasks WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get housekeeping task: %w", err)
	}
	return &t, nil
}

// List returns all tasks, newest first
func (r *HousekeepingRepository) List(ctx context.Context) ([]models.HousekeepingTask, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM housekeeping_tasks ORDER BY created_at DESC`)
}

// ListByRoom returns the tasks of a room, newest first
func (r *HousekeepingRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]models.HousekeepingTask, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM housekeeping_tasks WHERE room_id = $1 ORDER BY created_at DESC`, roomID)
}

// ListByAssignee returns the tasks assigned to a user, newest first
func (r *HousekeepingRepository) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]models.HousekeepingTask, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM housekeeping_tasks WHERE assigned_to_user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *HousekeepingRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.HousekeepingTask, error) {
	tasks := []models.HousekeepingTask{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list housekeeping tasks: %w", err)
	}
	return tasks, nil
}

// CountOpenByBooking returns how many tasks of a booking are not completed
func (r *HousekeepingRepository) CountOpenByBooking(ctx context.Context, bookingID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM housekeeping_tasks WHERE booking_id = $1 AND task_status <> $2`
	if err := r.db.GetContext(ctx, &count, query, bookingID, models.TaskStatusCompleted); err != nil {
		return 0, fmt.Errorf("failed to count open housekeeping tasks: %w", err)
	}
	return count, nil
}

// Update overwrites the editable fields of a task
func (r *HousekeepingRepository) Update(ctx context.Context, t *models.HousekeepingTask) error {
	query := `
		UPDATE housekeeping_tasks SET
			task_type = $2, task_status = $3, room_image = $4, assigned_to_user_id = $5,
			modified_by = $6, modified_at = $7
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		t.ID, t.TaskType, t.Status, t.RoomImage, t.AssignedToUserID,
		t.ModifiedBy, t.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update housekeeping task: %w", err)
	}
	return expectOneRow(result, "housekeeping task")
}
