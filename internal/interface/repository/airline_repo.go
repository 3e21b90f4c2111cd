package repository

import (
	"context"
	"time"

	"tripvoice-service/internal/domain/entity"
	"tripvoice-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirlineRepository implements the AirlineRepository interface
type GormAirlineRepository struct {
	db *gorm.DB
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(db *gorm.DB) repository.AirlineRepository {
	return &GormAirlineRepository{
		db: db,
	}
}

// Airlines GORM model for database mapping
type Airlines struct {
	gorm.Model
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;unique"`
	Name      string         `gorm:"column:name;unique"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airlines) TableName() string {
	return "m_airlines"
}

// GetByCode finds an airline by code
func (r *GormAirlineRepository) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	var airline Airlines
	result := r.db.WithContext(ctx).Unscoped().Where("code = ?", code).First(&airline)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirlineEntity(&airline), nil
}

// GetByName finds an airline by display name
func (r *GormAirlineRepository) GetByName(ctx context.Context, name string) (*entity.Airline, error) {
	var airline Airlines
	result := r.db.WithContext(ctx).Unscoped().Where("name = ?", name).First(&airline)

	if result.Error != nil {
		return nil, result.Error
	}

	return toAirlineEntity(&airline), nil
}

// toAirlineEntity converts the GORM model to a domain entity
func toAirlineEntity(airline *Airlines) *entity.Airline {
	return &entity.Airline{
		ID:        airline.ID,
		Code:      airline.Code,
		Name:      airline.Name,
		CreatedAt: airline.CreatedAt,
		UpdatedAt: airline.UpdatedAt,
		DeletedAt: airline.DeletedAt,
	}
}
