package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stayvelle/hotel-backend/internal/models"
)

const serviceColumns = `id, service_category, sub_category, service_name, price, unit,
	is_complementary, is_active, created_by, created_at, modified_by, modified_at`

// ServiceRepository handles the add-on service catalogue
type ServiceRepository struct {
	db Querier
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db Querier) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *ServiceRepository) WithTx(tx *sqlx.Tx) *ServiceRepository {
	return &ServiceRepository{db: tx}
}

// Create inserts a catalogue entry
func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	query := `
		INSERT INTO services (
			id, service_category, sub_category, service_name, price, unit,
			is_complementary, is_active, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ServiceCategory, s.SubCategory, s.ServiceName, s.Price, s.Unit,
		s.IsComplementary, s.IsActive, s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// GetByID returns a catalogue entry, or nil if it does not exist
func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var s models.Service
	err := r.db.GetContext(ctx, &s, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &s, nil
}

// List returns the catalogue, active entries first
func (r *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	query := `
		SELECT ` + serviceColumns + ` FROM services
		ORDER BY is_active DESC, service_category ASC, service_name ASC
	`
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// Update overwrites a catalogue entry
func (r *ServiceRepository) Update(ctx context.Context, s *models.Service) error {
	query := `
		UPDATE services SET
			service_category = $2, sub_category = $3, service_name = $4, price = $5,
			unit = $6, is_complementary = $7, is_active = $8, modified_by = $9, modified_at = $10
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		s.ID, s.ServiceCategory, s.SubCategory, s.ServiceName, s.Price,
		s.Unit, s.IsComplementary, s.IsActive, s.ModifiedBy, s.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return expectOneRow(result, "service")
}

// Delete removes a catalogue entry. Returns false if it does not exist.
func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete service: %w", err)
	}
	return affected(result)
}
