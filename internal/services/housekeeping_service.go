package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/models"
)

// HousekeepingService tracks room turnover tasks
type HousekeepingService struct {
	db       database.DB
	tasks    *database.HousekeepingRepository
	rooms    *database.RoomRepository
	bookings *database.BookingRepository
	users    *database.UserRepository
	logger   *logrus.Logger
}

// NewHousekeepingService creates a new housekeeping service
func NewHousekeepingService(db database.DB, logger *logrus.Logger) *HousekeepingService {
	return &HousekeepingService{
		db:       db,
		tasks:    database.NewHousekeepingRepository(db),
		rooms:    database.NewRoomRepository(db),
		bookings: database.NewBookingRepository(db),
		users:    database.NewUserRepository(db),
		logger:   logger,
	}
}

// CreateTask records a task for a room and the booking that caused it
func (s *HousekeepingService) CreateTask(ctx context.Context, req *models.CreateTaskRequest, actor string) (*models.HousekeepingTask, error) {
	status := req.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	if !status.Valid() {
		return nil, apperr.Validation("Unknown task status %q", status)
	}
	taskType := req.TaskType
	if taskType == "" {
		taskType = models.DefaultTaskType
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, appError(err, "Failed to create housekeeping task")
	}
	if room == nil {
		return nil, apperr.NotFound("Room %s not found", req.RoomID)
	}
	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, appError(err, "Failed to create housekeeping task")
	}
	if booking == nil {
		return nil, apperr.NotFound("Booking %s not found", req.BookingID)
	}
	if err := s.checkAssignee(ctx, req.AssignedToUserID); err != nil {
		return nil, err
	}

	task := &models.HousekeepingTask{
		ID:               uuid.New(),
		RoomID:           room.ID,
		BookingID:        booking.ID,
		TaskType:         taskType,
		Status:           status,
		RoomImage:        req.RoomImage,
		AssignedToUserID: req.AssignedToUserID,
		CreatedBy:        actor,
		CreatedAt:        time.Now(),
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, appError(err, "Failed to create housekeeping task")
	}
	return task, nil
}

// UpdateTask applies the non-empty fields of req. Moving a task to Completed
// while its room is under maintenance makes the room available.
func (s *HousekeepingService) UpdateTask(ctx context.Context, id uuid.UUID, req *models.UpdateTaskRequest, actor string) (*models.HousekeepingTask, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, apperr.Validation("Unknown task status %q", req.Status)
	}
	if err := s.checkAssignee(ctx, req.AssignedToUserID); err != nil {
		return nil, err
	}

	var updated *models.HousekeepingTask
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		tasks := s.tasks.WithTx(tx)
		rooms := s.rooms.WithTx(tx)

		task, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if task == nil {
			return apperr.NotFound("Housekeeping task %s not found", id)
		}

		if req.Status != "" {
			if !task.Status.CanTransitionTo(req.Status) {
				return apperr.InvalidState("Task cannot move from %s to %s", task.Status, req.Status)
			}
			task.Status = req.Status
		}
		if req.TaskType != "" {
			task.TaskType = req.TaskType
		}
		if req.RoomImage != nil {
			task.RoomImage = req.RoomImage
		}
		if req.AssignedToUserID != nil {
			task.AssignedToUserID = req.AssignedToUserID
		}
		now := time.Now()
		task.ModifiedBy = &actor
		task.ModifiedAt = &now

		if err := tasks.Update(ctx, task); err != nil {
			return err
		}

		if req.Status == models.TaskStatusCompleted {
			room, err := rooms.GetByIDForUpdate(ctx, task.RoomID)
			if err != nil {
				return err
			}
			if room != nil && room.Status == models.RoomStatusMaintenance {
				if err := rooms.UpdateStatus(ctx, room.ID, models.RoomStatusAvailable, actor); err != nil {
					return err
				}
			}
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, appError(err, "Failed to update housekeeping task")
	}
	return updated, nil
}

// CompleteTask marks a task completed and makes its room available.
// A room that is Occupied again keeps its status.
func (s *HousekeepingService) CompleteTask(ctx context.Context, id uuid.UUID, actor string) (*models.HousekeepingTask, error) {
	var completed *models.HousekeepingTask
	err := database.RunInTx(ctx, s.db, func(tx *sqlx.Tx) error {
		tasks := s.tasks.WithTx(tx)

		task, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if task == nil {
			return apperr.NotFound("Housekeeping task %s not found", id)
		}

		now := time.Now()
		task.Status = models.TaskStatusCompleted
		task.ModifiedBy = &actor
		task.ModifiedAt = &now
		if err := tasks.Update(ctx, task); err != nil {
			return err
		}
		rooms := s.rooms.WithTx(tx)
		room, err := rooms.GetByIDForUpdate(ctx, task.RoomID)
		if err != nil {
			return err
		}
		if room != nil && room.Status == models.RoomStatusOccupied {
			// a newer booking holds the room
			s.logger.WithFields(logrus.Fields{
				"task_id":    task.ID,
				"booking_id": task.BookingID,
				"room_id":    room.ID,
				"actor":      actor,
			}).Warn("Completed housekeeping task for an occupied room, room status left unchanged")
		} else if err := rooms.UpdateStatus(ctx, task.RoomID, models.RoomStatusAvailable, actor); err != nil {
			return err
		}

		completed = task
		return nil
	})
	if err != nil {
		return nil, appError(err, "Failed to complete housekeeping task")
	}

	s.logger.WithFields(logrus.Fields{
		"task_id": completed.ID,
		"room_id": completed.RoomID,
		"actor":   actor,
	}).Info("Housekeeping task completed")

	return completed, nil
}

// GetAllTasks returns every task, newest first
func (s *HousekeepingService) GetAllTasks(ctx context.Context) ([]models.HousekeepingTask, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, appError(err, "Failed to retrieve housekeeping tasks")
	}
	return tasks, nil
}

// GetTaskByID returns one task
func (s *HousekeepingService) GetTaskByID(ctx context.Context, id uuid.UUID) (*models.HousekeepingTask, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, appError(err, "Failed to retrieve housekeeping task")
	}
	if task == nil {
		return nil, apperr.NotFound("Housekeeping task %s not found", id)
	}
	return task, nil
}

// GetTasksByRoom returns the tasks of a room
func (s *HousekeepingService) GetTasksByRoom(ctx context.Context, roomID uuid.UUID) ([]models.HousekeepingTask, error) {
	tasks, err := s.tasks.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, appError(err, "Failed to retrieve housekeeping tasks")
	}
	return tasks, nil
}

// GetTasksByUser returns the tasks assigned to a user
func (s *HousekeepingService) GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]models.HousekeepingTask, error) {
	tasks, err := s.tasks.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, appError(err, "Failed to retrieve housekeeping tasks")
	}
	return tasks, nil
}

func (s *HousekeepingService) checkAssignee(ctx context.Context, userID *uuid.UUID) error {
	if userID == nil {
		return nil
	}
	user, err := s.users.GetUserByID(ctx, *userID)
	if err != nil {
		return appError(err, "Failed to verify assignee")
	}
	if user == nil {
		return apperr.NotFound("User %s not found", *userID)
	}
	return nil
}
