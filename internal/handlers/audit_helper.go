package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/middleware"
	"github.com/stayvelle/hotel-backend/internal/services"
	"github.com/stayvelle/hotel-backend/internal/utils"
)

// safeLogAudit records a change made by the caller. A failed write is logged
// and never fails the request.
func (h *baseHandler) safeLogAudit(c *gin.Context, action, entityType string, entityID *uuid.UUID, details map[string]interface{}) {
	event := services.AuditEvent{
		Actor:      middleware.ActorFrom(c),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  utils.GetRealIP(c),
		UserAgent:  utils.GetUserAgent(c),
		Details:    details,
	}
	if err := h.audit.Log(c.Request.Context(), event); err != nil {
		logAuditError(h.logger, action, entityType, err)
	}
}

func logAuditError(logger *logrus.Logger, action, entityType string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"action":      action,
		"entity_type": entityType,
	}).Warn("Failed to write audit log")
}
