package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Property is a rentable unit owned by exactly one landlord.
type Property struct {
	ID          uint            `gorm:"primaryKey"`
	LandlordID  uint            `gorm:"index;not null"`
	Title       string          `gorm:"not null"`
	Description string          `gorm:"size:1000"`
	Address     string          `gorm:"not null"`
	City        string          `gorm:"not null"`
	State       string          `gorm:"not null"`
	ZipCode     string          `gorm:"not null"`
	Rent        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Deposit     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Bedrooms    int             `gorm:"not null"`
	Bathrooms   int             `gorm:"not null"`
	SquareFeet  *int
	Amenities   datatypes.JSONSlice[string]
	Status      PropertyStatus `gorm:"type:varchar(20);index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PropertyImage records one stored image of a property.
type PropertyImage struct {
	ID         uint   `gorm:"primaryKey"`
	PropertyID uint   `gorm:"index;not null"`
	ImageURL   string `gorm:"not null"`
	CreatedAt  time.Time
}
