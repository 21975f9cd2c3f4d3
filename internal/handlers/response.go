package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/middleware"
	"github.com/stayvelle/hotel-backend/internal/services"
)

// Response is the envelope of every API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Code    apperr.Kind `json:"code,omitempty"`
}

// statusFor is the only mapping from error kind to HTTP status
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict, apperr.KindInvalidState:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// baseHandler carries what every resource handler needs to respond and audit
type baseHandler struct {
	audit  *services.AuditService
	logger *logrus.Logger
}

func (h *baseHandler) respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError writes err as a failure envelope. Internal errors are logged
// with their cause and reach the client as the generic message only.
func (h *baseHandler) respondError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	status := statusFor(appErr.Kind)

	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"actor":  middleware.ActorFrom(c),
		}).Error(appErr.Message)
		_ = c.Error(err)
	}

	c.JSON(status, Response{
		Success: false,
		Message: appErr.Message,
		Data:    nil,
		Code:    appErr.Kind,
	})
}

// bindJSON binds the request body, responding with a validation error on failure
func (h *baseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		h.respondError(c, apperr.Validation("Invalid request body: %s", err.Error()))
		return false
	}
	return true
}

// paramUUID parses a path parameter as a UUID, responding with a validation
// error when it is malformed
func (h *baseHandler) paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.respondError(c, apperr.Validation("Invalid %s format", name))
		return uuid.Nil, false
	}
	return id, true
}
