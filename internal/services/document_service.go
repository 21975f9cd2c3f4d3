package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/models"
)

// DocumentService manages document metadata for rooms, guests, users and services.
// Files themselves live wherever file_path points.
type DocumentService struct {
	documents *database.DocumentRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(db database.DB) *DocumentService {
	return &DocumentService{documents: database.NewDocumentRepository(db)}
}

// GetDocuments lists the documents attached to an entity
func (s *DocumentService) GetDocuments(ctx context.Context, entityType models.EntityType, entityID uuid.UUID) ([]models.Document, error) {
	if !entityType.Valid() {
		return nil, apperr.Validation("Unknown entity type %q", entityType)
	}
	docs, err := s.documents.ListByEntities(ctx, entityType, []uuid.UUID{entityID})
	if err != nil {
		return nil, appError(err, "Failed to retrieve documents")
	}
	return docs, nil
}

// CreateDocument registers a document record
func (s *DocumentService) CreateDocument(ctx context.Context, req *models.DocumentRequest, actor string) (*models.Document, error) {
	if !req.EntityType.Valid() {
		return nil, apperr.Validation("Unknown entity type %q", req.EntityType)
	}
	if req.EntityID == uuid.Nil {
		return nil, apperr.Validation("entity_id is required")
	}

	doc := newDocument(*req, req.EntityType, req.EntityID, actor, time.Now())
	if err := s.documents.Create(ctx, &doc); err != nil {
		return nil, appError(err, "Failed to create document")
	}
	return &doc, nil
}

// DeleteDocument removes a document record. Returns false if it does not exist.
func (s *DocumentService) DeleteDocument(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.documents.Delete(ctx, id)
	if err != nil {
		return false, appError(err, "Failed to delete document")
	}
	return deleted, nil
}

func newDocument(req models.DocumentRequest, entityType models.EntityType, entityID uuid.UUID, actor string, at time.Time) models.Document {
	return models.Document{
		ID:           uuid.New(),
		EntityType:   entityType,
		EntityID:     entityID,
		DocumentType: req.DocumentType,
		FileName:     req.FileName,
		Description:  req.Description,
		FilePath:     req.FilePath,
		IsPrimary:    req.IsPrimary,
		CreatedBy:    actor,
		CreatedAt:    at,
	}
}

func groupDocuments(docs []models.Document) map[uuid.UUID][]models.Document {
	grouped := make(map[uuid.UUID][]models.Document)
	for _, d := range docs {
		grouped[d.EntityID] = append(grouped[d.EntityID], d)
	}
	return grouped
}
