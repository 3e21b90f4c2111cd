package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents airport reference data
type Airport struct {
	ID          uint
	AirportCode string
	AirportName string
	CityCode    string
	CityName    string
	Country     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
