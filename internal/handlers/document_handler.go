package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/middleware"
	"github.com/stayvelle/hotel-backend/internal/models"
	"github.com/stayvelle/hotel-backend/internal/services"
)

// DocumentHandler handles document records. Only metadata is stored here.
type DocumentHandler struct {
	baseHandler
	documents *services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *services.DocumentService, audit *services.AuditService, logger *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{
		baseHandler: baseHandler{audit: audit, logger: logger},
		documents:   documents,
	}
}

// GetDocuments handles GET /api/Document/:entityType/:entityId
func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	entityID, ok := h.paramUUID(c, "entityId")
	if !ok {
		return
	}
	entityType := models.EntityType(strings.ToUpper(c.Param("entityType")))

	docs, err := h.documents.GetDocuments(c.Request.Context(), entityType, entityID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, "Documents retrieved successfully", docs)
}

// CreateDocument handles POST /api/Document
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req models.DocumentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.EntityType = models.EntityType(strings.ToUpper(string(req.EntityType)))

	doc, err := h.documents.CreateDocument(c.Request.Context(), &req, middleware.ActorFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.safeLogAudit(c, services.AuditActionCreate, "document", &doc.ID, map[string]interface{}{
		"entity_type":   doc.EntityType,
		"entity_id":     doc.EntityID,
		"document_type": doc.DocumentType,
	})
	h.respond(c, http.StatusCreated, "Document registered successfully", doc)
}

// DeleteDocument handles DELETE /api/Document/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := h.paramUUID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.documents.DeleteDocument(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		h.respondError(c, apperr.NotFound("Document %s not found", id))
		return
	}

	h.safeLogAudit(c, services.AuditActionDelete, "document", &id, nil)
	h.respond(c, http.StatusOK, "Document deleted successfully", nil)
}
