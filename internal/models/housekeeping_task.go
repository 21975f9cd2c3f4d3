package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the progress of a housekeeping task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusAssigned   TaskStatus = "Assigned"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// DefaultTaskType is used when a task is created without a type
const DefaultTaskType = "Cleaning"

// Valid reports whether s is a known task status
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending:    {TaskStatusAssigned, TaskStatusInProgress, TaskStatusCompleted},
	TaskStatusAssigned:   {TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted},
	TaskStatusInProgress: {TaskStatusCompleted},
}

// CanTransitionTo reports whether a task may move from s to next.
// Completed is terminal. Setting the current status again is always allowed.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range taskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HousekeepingTask is a unit of room turnover work
type HousekeepingTask struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	RoomID           uuid.UUID  `json:"room_id" db:"room_id"`
	BookingID        uuid.UUID  `json:"booking_id" db:"booking_id"`
	TaskType         string     `json:"task_type" db:"task_type"`
	Status           TaskStatus `json:"task_status" db:"task_status"`
	RoomImage        *string    `json:"room_image,omitempty" db:"room_image"`
	AssignedToUserID *uuid.UUID `json:"assigned_to_user_id,omitempty" db:"assigned_to_user_id"`
	CreatedBy        string     `json:"created_by" db:"created_by"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	ModifiedBy       *string    `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt       *time.Time `json:"modified_at,omitempty" db:"modified_at"`
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	RoomID           uuid.UUID  `json:"room_id" binding:"required"`
	BookingID        uuid.UUID  `json:"booking_id" binding:"required"`
	TaskType         string     `json:"task_type"`
	Status           TaskStatus `json:"task_status" binding:"omitempty,task_status"`
	RoomImage        *string    `json:"room_image"`
	AssignedToUserID *uuid.UUID `json:"assigned_to_user_id"`
}

// UpdateTaskRequest is a partial task update; empty fields are left unchanged
type UpdateTaskRequest struct {
	TaskType         string     `json:"task_type"`
	Status           TaskStatus `json:"task_status" binding:"omitempty,task_status"`
	RoomImage        *string    `json:"room_image"`
	AssignedToUserID *uuid.UUID `json:"assigned_to_user_id"`
}
