package store

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"

	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
)

func (s *Store) CreateProperty(p *models.Property) error {
	return writeErr("property", "create", s.db.Create(p).Error)
}

// propertyDetails are the columns owners may edit. Status and landlord are
// left to the lease lifecycle.
var propertyDetails = []string{
	"title", "description", "address", "city", "state", "zip_code",
	"rent", "deposit", "bedrooms", "bathrooms", "square_feet", "amenities",
}

// UpdatePropertyDetails writes the editable columns of p. Whatever p.Status
// holds, the stored status is kept.
func (s *Store) UpdatePropertyDetails(p *models.Property) error {
	res := s.db.Model(p).Select(propertyDetails).Updates(p)
	if res.Error != nil {
		return writeErr("property", "update", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("property", p.ID)
	}
	return nil
}

func (s *Store) FindProperty(id uint) (*models.Property, error) {
	return first[models.Property](s, "property", id)
}

// LockProperty reads the property row with FOR UPDATE where the dialect
// supports it. sqlite drops the clause; its single writer gives the same
// guarantee.
func (s *Store) LockProperty(id uint) (*models.Property, error) {
	var p models.Property
	if err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
		return nil, wrap("property", id, err)
	}
	return &p, nil
}

// SwapPropertyStatus moves the property from one status to another only if
// it still holds from. It reports whether the row changed.
func (s *Store) SwapPropertyStatus(id uint, from, to models.PropertyStatus) (bool, error) {
	res := s.db.Model(&models.Property{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, writeErr("property", "update status", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) ListProperties() ([]models.Property, error) {
	var out []models.Property
	err := s.db.Order("id").Find(&out).Error
	return out, writeErr("property", "list", err)
}

func (s *Store) PropertiesByLandlord(landlordID uint) ([]models.Property, error) {
	var out []models.Property
	err := s.db.Where("landlord_id = ?", landlordID).Order("id").Find(&out).Error
	return out, writeErr("property", "list by landlord", err)
}

func (s *Store) PropertiesByStatus(status models.PropertyStatus) ([]models.Property, error) {
	var out []models.Property
	err := s.db.Where("status = ?", status).Order("id").Find(&out).Error
	return out, writeErr("property", "list by status", err)
}

// PropertiesByCity matches city without regard to case. An empty status
// matches every status.
func (s *Store) PropertiesByCity(city string, status models.PropertyStatus) ([]models.Property, error) {
	q := s.db.Where("LOWER(city) = LOWER(?)", strings.TrimSpace(city))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.Property
	err := q.Order("id").Find(&out).Error
	return out, writeErr("property", "list by city", err)
}

// PropertiesByRentRange returns properties with min <= rent <= max, cheapest
// first.
func (s *Store) PropertiesByRentRange(min, max decimal.Decimal) ([]models.Property, error) {
	var out []models.Property
	err := s.db.Where("rent >= ? AND rent <= ?", min, max).Order("rent").Order("id").Find(&out).Error
	return out, writeErr("property", "list by rent", err)
}

// DeletePropertyCascade removes the property and every dependent row:
// payments of its leases, its leases, its maintenance requests and its image
// records. Callers run it inside a transaction.
func (s *Store) DeletePropertyCascade(id uint) error {
	leaseIDs := s.db.Model(&models.Lease{}).Select("id").Where("property_id = ?", id)

	steps := []struct {
		op  string
		run func() error
	}{
		{"delete payments", func() error {
			return s.db.Where("lease_id IN (?)", leaseIDs).Delete(&models.Payment{}).Error
		}},
		{"delete leases", func() error {
			return s.db.Where("property_id = ?", id).Delete(&models.Lease{}).Error
		}},
		{"delete maintenance requests", func() error {
			return s.db.Where("property_id = ?", id).Delete(&models.MaintenanceRequest{}).Error
		}},
		{"delete images", func() error {
			return s.db.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return writeErr("property", step.op, err)
		}
	}

	res := s.db.Delete(&models.Property{}, id)
	if res.Error != nil {
		return writeErr("property", "delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("property", id)
	}
	return nil
}

func (s *Store) CreatePropertyImage(img *models.PropertyImage) error {
	return writeErr("property image", "create", s.db.Create(img).Error)
}

func (s *Store) PropertyImages(propertyID uint) ([]models.PropertyImage, error) {
	var out []models.PropertyImage
	err := s.db.Where("property_id = ?", propertyID).Order("id").Find(&out).Error
	return out, writeErr("property image", "list", err)
}
