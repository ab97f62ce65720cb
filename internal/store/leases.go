package store

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/beesaferoot/tenancy/internal/models"
)

func (s *Store) CreateLease(l *models.Lease) error {
	return writeErr("lease", "create", s.db.Create(l).Error)
}

func (s *Store) SaveLease(l *models.Lease) error {
	return writeErr("lease", "save", s.db.Save(l).Error)
}

func (s *Store) FindLease(id uint) (*models.Lease, error) {
	return first[models.Lease](s, "lease", id)
}

// LockLease reads the lease row with FOR UPDATE, like LockProperty.
func (s *Store) LockLease(id uint) (*models.Lease, error) {
	var l models.Lease
	if err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&l, id).Error; err != nil {
		return nil, wrap("lease", id, err)
	}
	return &l, nil
}

// DeleteLease removes the lease together with its payments.
func (s *Store) DeleteLease(id uint) error {
	if err := s.db.Where("lease_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
		return writeErr("lease", "delete payments", err)
	}
	return writeErr("lease", "delete", s.db.Delete(&models.Lease{}, id).Error)
}

func (s *Store) ListLeases() ([]models.Lease, error) {
	var out []models.Lease
	err := s.db.Order("id").Find(&out).Error
	return out, writeErr("lease", "list", err)
}

func (s *Store) LeasesByLandlord(landlordID uint) ([]models.Lease, error) {
	var out []models.Lease
	err := s.db.Where("property_id IN (?)", s.propertyIDsOf(landlordID)).Order("id").Find(&out).Error
	return out, writeErr("lease", "list by landlord", err)
}

func (s *Store) LeasesByTenant(tenantID uint) ([]models.Lease, error) {
	var out []models.Lease
	err := s.db.Where("tenant_id = ?", tenantID).Order("id").Find(&out).Error
	return out, writeErr("lease", "list by tenant", err)
}

func (s *Store) ActiveLeasesForProperty(propertyID uint) ([]models.Lease, error) {
	var out []models.Lease
	err := s.db.Where("property_id = ? AND status = ?", propertyID, models.LeaseActive).Order("id").Find(&out).Error
	return out, writeErr("lease", "list active", err)
}

// LeasesExpiringBetween returns ACTIVE leases whose end date lies in
// [from, to], both inclusive.
func (s *Store) LeasesExpiringBetween(from, to time.Time) ([]models.Lease, error) {
	var out []models.Lease
	err := s.db.
		Where("status = ? AND end_date >= ? AND end_date <= ?", models.LeaseActive, models.Day(from), models.Day(to)).
		Order("end_date").Order("id").
		Find(&out).Error
	return out, writeErr("lease", "list expiring", err)
}

func (s *Store) propertyIDsOf(landlordID uint) *gorm.DB {
	return s.db.Model(&models.Property{}).Select("id").Where("landlord_id = ?", landlordID)
}
