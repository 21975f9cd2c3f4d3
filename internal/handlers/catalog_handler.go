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

// CatalogHandler handles the service catalogue
type CatalogHandler struct {
	baseHandler
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new catalogue handler
func NewCatalogHandler(catalog *services.CatalogService, audit *services.AuditService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		baseHandler: baseHandler{audit: audit, logger: logger},
		catalog:     catalog,
	}
}

// GetServices handles GET /api/Service
func (h *CatalogHandler) GetServices(c *gin.Context) {
	list, err := h.catalog.GetServices(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Services retrieved successfully", list)
}

// GetService handles GET /api/Service/:id
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	svc, err := h.catalog.GetServiceByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Service retrieved successfully", svc)
}

// CreateService handles POST /api/Service
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req models.CreateServiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	svc, err := h.catalog.CreateService(c.Request.Context(), &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionCreate, "service", &svc.ID, map[string]interface{}{
		"service_name": svc.ServiceName,
		"price":        svc.Price,
	})
	h.respond(c, http.StatusCreated, "Service created successfully", svc)
}

// UpdateService handles PUT /api/Service/:id
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateServiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	svc, err := h.catalog.UpdateService(c.Request.Context(), id, &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionUpdate, "service", &svc.ID, nil)
	h.respond(c, http.StatusOK, "Service updated successfully", svc)
}

// DeleteService handles DELETE /api/Service/:id
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.catalog.DeleteService(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		h.respondError(c, apperr.NotFound("Service %s not found", id))
		return
	}

	h.safeLogAudit(c, services.AuditActionDelete, "service", &id, nil)
	h.respond(c, http.StatusOK, "Service deleted successfully", nil)
}
