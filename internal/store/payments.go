package store

import (
	"time"

	"github.com/beesaferoot/tenancy/internal/models"
)

func (s *Store) CreatePayment(p *models.Payment) error {
	return writeErr("payment", "create", s.db.Create(p).Error)
}

// SettlePayment marks the payment PAID on paidDate only if it is still
// PENDING. An empty method keeps the recorded one. It reports whether the
// row changed.
func (s *Store) SettlePayment(id uint, paidDate time.Time, method string) (bool, error) {
	updates := map[string]any{
		"status":    models.PaymentPaid,
		"paid_date": models.Day(paidDate),
	}
	if method != "" {
		updates["payment_method"] = method
	}
	res := s.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentPending).
		Updates(updates)
	if res.Error != nil {
		return false, writeErr("payment", "settle", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) FindPayment(id uint) (*models.Payment, error) {
	return first[models.Payment](s, "payment", id)
}

func (s *Store) DeletePayment(id uint) error {
	return writeErr("payment", "delete", s.db.Delete(&models.Payment{}, id).Error)
}

func (s *Store) ListPayments() ([]models.Payment, error) {
	var out []models.Payment
	err := s.db.Order("id").Find(&out).Error
	return out, writeErr("payment", "list", err)
}

func (s *Store) PaymentsByLease(leaseID uint) ([]models.Payment, error) {
	var out []models.Payment
	err := s.db.Where("lease_id = ?", leaseID).Order("due_date").Order("id").Find(&out).Error
	return out, writeErr("payment", "list by lease", err)
}

func (s *Store) PaymentsByLandlord(landlordID uint) ([]models.Payment, error) {
	leases := s.db.Model(&models.Lease{}).Select("id").Where("property_id IN (?)", s.propertyIDsOf(landlordID))
	var out []models.Payment
	err := s.db.Where("lease_id IN (?)", leases).Order("id").Find(&out).Error
	return out, writeErr("payment", "list by landlord", err)
}

func (s *Store) PaymentsByTenant(tenantID uint) ([]models.Payment, error) {
	leases := s.db.Model(&models.Lease{}).Select("id").Where("tenant_id = ?", tenantID)
	var out []models.Payment
	err := s.db.Where("lease_id IN (?)", leases).Order("id").Find(&out).Error
	return out, writeErr("payment", "list by tenant", err)
}

// OverduePayments returns PENDING payments due strictly before today.
func (s *Store) OverduePayments(today time.Time) ([]models.Payment, error) {
	var out []models.Payment
	err := s.db.Where("status = ? AND due_date < ?", models.PaymentPending, models.Day(today)).
		Order("due_date").Order("id").
		Find(&out).Error
	return out, writeErr("payment", "list overdue", err)
}
