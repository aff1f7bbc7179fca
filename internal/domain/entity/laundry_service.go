package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LaundryService is a priced service from the laundry catalog
type LaundryService struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Description  *string        `gorm:"type:text" json:"description,omitempty"`
	PricePerUnit int64          `gorm:"not null;default:0" json:"-"` // Stored in cents
	UnitType     string         `gorm:"size:50;not null;default:'item'" json:"unit_type"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s LaundryService) MarshalJSON() ([]byte, error) {
	type Alias LaundryService
	return json.Marshal(&struct {
		Alias
		PricePerUnit float64 `json:"price_per_unit"`
	}{
		Alias:        Alias(s),
		PricePerUnit: float64(s.PricePerUnit) / 100,
	})
}

func (s *LaundryService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (LaundryService) TableName() string {
	return "laundry_services"
}
