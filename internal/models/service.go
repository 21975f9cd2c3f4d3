package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is an add-on offered to guests, such as laundry or breakfast
type Service struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	ServiceCategory string     `json:"service_category" db:"service_category"`
	SubCategory     string     `json:"sub_category" db:"sub_category"`
	ServiceName     string     `json:"service_name" db:"service_name"`
	Price           float64    `json:"price" db:"price"`
	Unit            string     `json:"unit" db:"unit"`
	IsComplementary bool       `json:"is_complementary" db:"is_complementary"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	CreatedBy       string     `json:"created_by" db:"created_by"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	ModifiedBy      *string    `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedAt      *time.Time `json:"modified_at,omitempty" db:"modified_at"`
}

// CreateServiceRequest represents the request body for creating a service
type CreateServiceRequest struct {
	ServiceCategory string  `json:"service_category" binding:"required"`
	SubCategory     string  `json:"sub_category"`
	ServiceName     string  `json:"service_name" binding:"required"`
	Price           float64 `json:"price" binding:"min=0"`
	Unit            string  `json:"unit"`
	IsComplementary bool    `json:"is_complementary"`
	IsActive        *bool   `json:"is_active"`
}

// UpdateServiceRequest is a partial service update
type UpdateServiceRequest struct {
	ServiceCategory *string  `json:"service_category"`
	SubCategory     *string  `json:"sub_category"`
	ServiceName     *string  `json:"service_name"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	Unit            *string  `json:"unit"`
	IsComplementary *bool    `json:"is_complementary"`
	IsActive        *bool    `json:"is_active"`
}

// Apply copies the set fields of the request onto s
func (r *UpdateServiceRequest) Apply(s *Service) {
	if r.ServiceCategory != nil {
		s.ServiceCategory = *r.ServiceCategory
	}
	if r.SubCategory != nil {
		s.SubCategory = *r.SubCategory
	}
	if r.ServiceName != nil {
		s.ServiceName = *r.ServiceName
	}
	if r.Price != nil {
		s.Price = *r.Price
	}
	if r.Unit != nil {
		s.Unit = *r.Unit
	}
	if r.IsComplementary != nil {
		s.IsComplementary = *r.IsComplementary
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}
