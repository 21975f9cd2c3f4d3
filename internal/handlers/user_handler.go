package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/middleware"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/internal/services"
)

// UserHandler handles staff account HTTP requests
type UserHandler struct {
	baseHandler
	users *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService, audit *services.AuditService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: baseHandler{audit: audit, logger: logger},
		users:       users,
	}
}

// GetUsers handles GET /api/Users
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.users.GetUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Users retrieved successfully", users)
}

// GetUser handles GET /api/Users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "User retrieved successfully", user)
}

// CreateUser handles POST /api/Users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionCreate, "user", &user.ID, map[string]interface{}{
		"username": user.Username,
		"roles":    user.Roles,
	})
	h.respond(c, http.StatusCreated, "User created successfully", user)
}

// UpdateUser handles PUT /api/Users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	// never log the password itself
	h.safeLogAudit(c, services.AuditActionUpdate, "user", &user.ID, map[string]interface{}{
		"password_changed": req.Password != nil,
	})
	h.respond(c, http.StatusOK, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/Users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.users.DeleteUser(c.Request.Context(), id, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		h.respondError(c, apperr.NotFound("User %s not found", id))
		return
	}

	h.safeLogAudit(c, services.AuditActionDelete, "user", &id, nil)
	h.respond(c, http.StatusOK, "User deleted successfully", nil)
}
