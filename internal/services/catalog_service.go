package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stayvelle/hotel-backend/internal/apperr"
	"github.com/stayvelle/hotel-backend/internal/database"
	"github.com/stayvelle/hotel-backend/internal/models"
)

// CatalogService manages the add-on services guests can order
type CatalogService struct {
	services *database.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db database.DB) *CatalogService {
	return &CatalogService{services: database.NewServiceRepository(db)}
}

// GetServices lists the catalogue, active entries first
func (s *CatalogService) GetServices(ctx context.Context) ([]models.Service, error) {
	list, err := s.services.List(ctx)
	if err != nil {
		return nil, appError(err, "Failed to retrieve services")
	}
	return list, nil
}

// GetServiceByID returns one catalogue entry
func (s *CatalogService) GetServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, appError(err, "Failed to retrieve service")
	}
	if svc == nil {
		return nil, apperr.NotFound("Service %s not found", id)
	}
	return svc, nil
}

// CreateService adds a catalogue entry. New entries are active unless stated otherwise.
func (s *CatalogService) CreateService(ctx context.Context, req *models.CreateServiceRequest, actor string) (*models.Service, error) {
	if req.Price < 0 {
		return nil, apperr.Validation("Price cannot be negative")
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	svc := &models.Service{
		ID:              uuid.New(),
		ServiceCategory: req.ServiceCategory,
		SubCategory:     req.SubCategory,
		ServiceName:     req.ServiceName,
		Price:           req.Price,
		Unit:            req.Unit,
		IsComplementary: req.IsComplementary,
		IsActive:        active,
		CreatedBy:       actor,
		CreatedAt:       time.Now(),
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, appError(err, "Failed to create service")
	}
	return svc, nil
}

// UpdateService applies a partial update
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, req *models.UpdateServiceRequest, actor string) (*models.Service, error) {
	svc, err := s.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, apperr.Validation("Price cannot be negative")
	}

	req.Apply(svc)
	now := time.Now()
	svc.ModifiedBy = &actor
	svc.ModifiedAt = &now
	if err := s.services.Update(ctx, svc); err != nil {
		if database.IsNotFound(err) {
			return nil, apperr.NotFound("Service %s not found", id)
		}
		return nil, appError(err, "Failed to update service")
	}
	return svc, nil
}

// DeleteService removes a catalogue entry. Entries already used by bookings
// are referenced by their lines and yield a conflict.
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.services.Delete(ctx, id)
	if err != nil {
		return false, appError(err, "Failed to delete service")
	}
	return deleted, nil
}
