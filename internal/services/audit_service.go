package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/utils"
)

// Audit actions written by the API
const (
	AuditActionCreate   = "create"
	AuditActionUpdate   = "update"
	AuditActionDelete   = "delete"
	AuditActionCheckIn  = "check_in"
	AuditActionCheckOut = "check_out"
	AuditActionCancel   = "cancel"
	AuditActionComplete = "complete"
)

// AuditService records who changed what
type AuditService struct {
	db      database.Querier
	enabled bool
}

// NewAuditService creates a new audit service. A disabled service accepts
// events and drops them.
func NewAuditService(db database.Querier, enabled bool) *AuditService {
	return &AuditService{
		db:      db,
		enabled: enabled,
	}
}

// AuditEvent represents a change to be logged
type AuditEvent struct {
	Actor      string                 // principal name, "anonymous" when auth is off
	Action     string                 // e.g. "create", "check_out"
	EntityType string                 // e.g. "booking", "room"
	EntityID   *uuid.UUID             // nil for bulk actions
	IPAddress  string                 // client IP address
	UserAgent  string                 // client user agent
	Details    map[string]interface{} // stored as JSONB
}

// Log writes an event to the audit_logs table. The parsed device of the
// user agent is added to the details.
func (s *AuditService) Log(ctx context.Context, event AuditEvent) error {
	if !s.enabled {
		return nil
	}

	details := make(map[string]interface{}, len(event.Details)+1)
	for k, v := range event.Details {
		details[k] = v
	}
	details["device_info"] = utils.ParseUserAgent(event.UserAgent)

	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}

	query := `
		INSERT INTO audit_logs (id, actor, action, entity_type, entity_id, ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.New(),
		event.Actor,
		event.Action,
		event.EntityType,
		event.EntityID,
		event.IPAddress,
		event.UserAgent,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to log audit event: %w", err)
	}
	return nil
}
