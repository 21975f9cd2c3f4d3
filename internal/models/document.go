package models

import (
	"time"

	"github.com/google/uuid"
)

// EntityType tags the kind of record a document belongs to
type EntityType string

const (
	EntityRoom    EntityType = "ROOM"
	EntityGuest   EntityType = "GUEST"
	EntityUser    EntityType = "USER"
	EntityService EntityType = "SERVICE"
)

// Valid reports whether t is a known entity type
func (t EntityType) Valid() bool {
	switch t {
	case EntityRoom, EntityGuest, EntityUser, EntityService:
		return true
	}
	return false
}

// Document is metadata for a file attached to a room, guest, user or service.
// The association is a tag, not a foreign key.
type Document struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	EntityType   EntityType `json:"entity_type" db:"entity_type"`
	EntityID     uuid.UUID  `json:"entity_id" db:"entity_id"`
	DocumentType string     `json:"document_type" db:"document_type"`
	FileName     string     `json:"file_name" db:"file_name"`
	Description  *string    `json:"description,omitempty" db:"description"`
	FilePath     string     `json:"file_path" db:"file_path"`
	IsPrimary    bool       `json:"is_primary" db:"is_primary"`
	CreatedBy    string     `json:"created_by" db:"created_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// DocumentRequest registers document metadata
type DocumentRequest struct {
	EntityType   EntityType `json:"entity_type"`
	EntityID     uuid.UUID  `json:"entity_id"`
	DocumentType string     `json:"document_type" binding:"required"`
	FileName     string     `json:"file_name" binding:"required"`
	Description  *string    `json:"description"`
	FilePath     string     `json:"file_path"`
	IsPrimary    bool       `json:"is_primary"`
}
