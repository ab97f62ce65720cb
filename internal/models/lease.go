package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lease binds one property to one tenant for a date range.
type Lease struct {
	ID              uint            `gorm:"primaryKey"`
	PropertyID      uint            `gorm:"index;not null"`
	TenantID        uint            `gorm:"index;not null"`
	StartDate       time.Time       `gorm:"not null"`
	EndDate         time.Time       `gorm:"index;not null"`
	RentAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SecurityDeposit decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status          LeaseStatus     `gorm:"type:varchar(20);index;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Payment is a single rent installment against a lease.
type Payment struct {
	ID            uint            `gorm:"primaryKey"`
	LeaseID       uint            `gorm:"index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DueDate       time.Time       `gorm:"index;not null"`
	PaidDate      *time.Time
	Status        PaymentStatus `gorm:"type:varchar(20);index;not null"`
	PaymentMethod string
	Notes         string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Overdue is the derived view: still pending and due before today.
func (p Payment) Overdue(today time.Time) bool {
	return p.Status == PaymentPending && p.DueDate.Before(Day(today))
}

// Day normalizes t to midnight UTC of its calendar date, the form every
// date column is stored in.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
