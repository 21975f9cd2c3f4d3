package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/middleware"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/internal/services"
)

// RoomHandler handles room HTTP requests
type RoomHandler struct {
	baseHandler
	rooms *services.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms *services.RoomService, audit *services.AuditService, logger *logrus.Logger) *RoomHandler {
	return &RoomHandler{
		baseHandler: baseHandler{audit: audit, logger: logger},
		rooms:       rooms,
	}
}

// GetRooms handles GET /api/Room
// Optional query filters: status, room_type, room_number, active=true
func (h *RoomHandler) GetRooms(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))
	filter := models.RoomFilter{
		Status:     models.RoomStatus(c.Query("status")),
		RoomType:   models.RoomType(c.Query("room_type")),
		RoomNumber: c.Query("room_number"),
		ActiveOnly: activeOnly,
	}
	h.listRooms(c, filter)
}

// GetRoomsByStatus handles GET /api/Room/status/:status
func (h *RoomHandler) GetRoomsByStatus(c *gin.Context) {
	h.listRooms(c, models.RoomFilter{Status: models.RoomStatus(c.Param("status"))})
}

// GetRoomsByType handles GET /api/Room/type/:roomType
func (h *RoomHandler) GetRoomsByType(c *gin.Context) {
	h.listRooms(c, models.RoomFilter{RoomType: models.RoomType(c.Param("roomType"))})
}

func (h *RoomHandler) listRooms(c *gin.Context, filter models.RoomFilter) {
	rooms, err := h.rooms.GetRooms(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Rooms retrieved successfully", rooms)
}

// GetRoom handles GET /api/Room/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	room, err := h.rooms.GetRoomByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Room retrieved successfully", room)
}

// GetRoomByNumber handles GET /api/Room/roomnumber/:roomNumber
func (h *RoomHandler) GetRoomByNumber(c *gin.Context) {
	room, err := h.rooms.GetRoomByNumber(c.Request.Context(), c.Param("roomNumber"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Room retrieved successfully", room)
}

// CreateRoom handles POST /api/Room
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req models.CreateRoomRequest
	if !h.bindJSON(c, &req) {
		return
	}

	room, err := h.rooms.CreateRoom(c.Request.Context(), &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionCreate, "room", &room.ID, map[string]interface{}{
		"room_number": room.RoomNumber,
	})
	h.respond(c, http.StatusCreated, "Room created successfully", room)
}

// UpdateRoom handles PUT /api/Room/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateRoomRequest
	if !h.bindJSON(c, &req) {
		return
	}

	room, err := h.rooms.UpdateRoom(c.Request.Context(), id, &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionUpdate, "room", &room.ID, map[string]interface{}{
		"room_number": room.RoomNumber,
		"room_status": room.Status,
	})
	h.respond(c, http.StatusOK, "Room updated successfully", room)
}

// DeleteRoom handles DELETE /api/Room/:id
// Rooms are deactivated unless ?hard=true is given.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	hard, _ := strconv.ParseBool(c.Query("hard"))

	deleted, err := h.rooms.DeleteRoom(c.Request.Context(), id, hard, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		h.respondError(c, apperr.NotFound("Room %s not found", id))
		return
	}

	h.safeLogAudit(c, services.AuditActionDelete, "room", &id, map[string]interface{}{"hard": hard})
	h.respond(c, http.StatusOK, "Room deleted successfully", nil)
}
