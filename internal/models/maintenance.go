package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceRequest is a ticket filed against a property.
type MaintenanceRequest struct {
	ID            uint                `gorm:"primaryKey"`
	PropertyID    uint                `gorm:"index;not null"`
	TenantID      uint                `gorm:"index;not null"`
	Title         string              `gorm:"not null"`
	Description   string              `gorm:"type:text"`
	Category      MaintenanceCategory `gorm:"type:varchar(20);not null"`
	Priority      MaintenancePriority `gorm:"type:varchar(20);not null"`
	Status        MaintenanceStatus   `gorm:"type:varchar(20);index;not null"`
	AssignedTo    *string
	EstimatedCost *decimal.Decimal `gorm:"type:decimal(10,2)"`
	ActualCost    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Notification is a read-tracked message to one user.
type Notification struct {
	ID          uint             `gorm:"primaryKey"`
	RecipientID uint             `gorm:"index;not null"`
	Title       string           `gorm:"not null"`
	Message     string           `gorm:"type:text;not null"`
	Type        NotificationType `gorm:"type:varchar(20);not null"`
	IsRead      bool             `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

// All lists every model in dependency order, for schema creation.
func All() []any {
	return []any{
		&User{},
		&Property{},
		&PropertyImage{},
		&Lease{},
		&Payment{},
		&MaintenanceRequest{},
		&Notification{},
	}
}
