package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stayvelle/hotel-backend/internal/models"
)

const documentColumns = `id, entity_type, entity_id, document_type, file_name, description,
	file_path, is_primary, created_by, created_at`

// DocumentRepository handles document metadata
type DocumentRepository struct {
	db Querier
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db Querier) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *DocumentRepository) WithTx(tx *sqlx.Tx) *DocumentRepository {
	return &DocumentRepository{db: tx}
}

// Create inserts document metadata
func (r *DocumentRepository) Create(ctx context.Context, d *models.Document) error {
	query := `
		INSERT INTO documents (
			id, entity_type, entity_id, document_type, file_name, description,
			file_path, is_primary, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.EntityType, d.EntityID, d.DocumentType, d.FileName, d.Description,
		d.FilePath, d.IsPrimary, d.CreatedBy, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// ListByEntities returns the documents attached to any of the given entities
func (r *DocumentRepository) ListByEntities(ctx context.Context, entityType models.EntityType, entityIDs []uuid.UUID) ([]models.Document, error) {
	docs := []models.Document{}
	if len(entityIDs) == 0 {
		return docs, nil
	}
	query := `
		SELECT ` + documentColumns + ` FROM documents
		WHERE entity_type = $1 AND entity_id = ANY($2::uuid[])
		ORDER BY is_primary DESC, created_at ASC
	`
	if err := r.db.SelectContext(ctx, &docs, query, entityType, pq.Array(uuidStrings(entityIDs))); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document. Returns false if it does not exist.
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return affected(result)
}

// DeleteByEntities removes the documents of the given entities
func (r *DocumentRepository) DeleteByEntities(ctx context.Context, entityType models.EntityType, entityIDs []uuid.UUID) error {
	if len(entityIDs) == 0 {
		return nil
	}
	query := `DELETE FROM documents WHERE entity_type = $1 AND entity_id = ANY($2::uuid[])`
	if _, err := r.db.ExecContext(ctx, query, entityType, pq.Array(uuidStrings(entityIDs))); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}
