package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/middleware"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/internal/services"
)

// HousekeepingHandler handles housekeeping task HTTP requests
type HousekeepingHandler struct {
	baseHandler
	tasks *services.HousekeepingService
}

// NewHousekeepingHandler creates a new housekeeping handler
func NewHousekeepingHandler(tasks *services.HousekeepingService, audit *services.AuditService, logger *logrus.Logger) *HousekeepingHandler {
	return &HousekeepingHandler{
		baseHandler: baseHandler{audit: audit, logger: logger},
		tasks:       tasks,
	}
}

// GetTasks handles GET /api/HousekeepingTask
func (h *HousekeepingHandler) GetTasks(c *gin.Context) {
	tasks, err := h.tasks.GetAllTasks(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Tasks retrieved successfully", tasks)
}

// GetTask handles GET /api/HousekeepingTask/:id
func (h *HousekeepingHandler) GetTask(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	task, err := h.tasks.GetTaskByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Task retrieved successfully", task)
}

// GetTasksByRoom handles GET /api/HousekeepingTask/room/:roomId
func (h *HousekeepingHandler) GetTasksByRoom(c *gin.Context) {
	roomID, ok := h.paramUUID(c, "roomId")
	if !ok {
		return
	}
	tasks, err := h.tasks.GetTasksByRoom(c.Request.Context(), roomID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Tasks retrieved successfully", tasks)
}

// GetTasksByUser handles GET /api/HousekeepingTask/user/:userId
func (h *HousekeepingHandler) GetTasksByUser(c *gin.Context) {
	userID, ok := h.paramUUID(c, "userId")
	if !ok {
		return
	}
	tasks, err := h.tasks.GetTasksByUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Tasks retrieved successfully", tasks)
}

// CreateTask handles POST /api/HousekeepingTask
func (h *HousekeepingHandler) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionCreate, "housekeeping_task", &task.ID, map[string]interface{}{
		"room_id":   task.RoomID,
		"task_type": task.TaskType,
	})
	h.respond(c, http.StatusCreated, "Task created successfully", task)
}

// UpdateTask handles PUT /api/HousekeepingTask/:id
func (h *HousekeepingHandler) UpdateTask(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), id, &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionUpdate, "housekeeping_task", &task.ID, map[string]interface{}{
		"task_status": task.Status,
	})
	h.respond(c, http.StatusOK, "Task updated successfully", task)
}

// CompleteTask handles POST /api/HousekeepingTask/:id/complete
func (h *HousekeepingHandler) CompleteTask(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.CompleteTask(c.Request.Context(), id, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionComplete, "housekeeping_task", &task.ID, map[string]interface{}{
		"room_id": task.RoomID,
	})
	h.respond(c, http.StatusOK, "Task completed successfully", task)
}
