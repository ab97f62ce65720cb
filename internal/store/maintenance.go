package store

import (
	"github.com/beesaferoot/tenancy/internal/models"
)

func (s *Store) CreateMaintenanceRequest(r *models.MaintenanceRequest) error {
	return writeErr("maintenance request", "create", s.db.Create(r).Error)
}

func (s *Store) SaveMaintenanceRequest(r *models.MaintenanceRequest) error {
	return writeErr("maintenance request", "save", s.db.Save(r).Error)
}

func (s *Store) FindMaintenanceRequest(id uint) (*models.MaintenanceRequest, error) {
	return first[models.MaintenanceRequest](s, "maintenance request", id)
}

func (s *Store) DeleteMaintenanceRequest(id uint) error {
	return writeErr("maintenance request", "delete", s.db.Delete(&models.MaintenanceRequest{}, id).Error)
}

func (s *Store) ListMaintenanceRequests() ([]models.MaintenanceRequest, error) {
	var out []models.MaintenanceRequest
	err := s.db.Order("id").Find(&out).Error
	return out, writeErr("maintenance request", "list", err)
}

func (s *Store) MaintenanceRequestsByLandlord(landlordID uint) ([]models.MaintenanceRequest, error) {
	var out []models.MaintenanceRequest
	err := s.db.Where("property_id IN (?)", s.propertyIDsOf(landlordID)).Order("id").Find(&out).Error
	return out, writeErr("maintenance request", "list by landlord", err)
}

func (s *Store) MaintenanceRequestsByTenant(tenantID uint) ([]models.MaintenanceRequest, error) {
	var out []models.MaintenanceRequest
	err := s.db.Where("tenant_id = ?", tenantID).Order("id").Find(&out).Error
	return out, writeErr("maintenance request", "list by tenant", err)
}

func (s *Store) UrgentPendingRequests() ([]models.MaintenanceRequest, error) {
	var out []models.MaintenanceRequest
	err := s.db.Where("status = ? AND priority = ?", models.MaintenancePending, models.PriorityUrgent).
		Order("id").Find(&out).Error
	return out, writeErr("maintenance request", "list urgent", err)
}

func (s *Store) UnassignedRequests() ([]models.MaintenanceRequest, error) {
	var out []models.MaintenanceRequest
	err := s.db.Where("status = ? AND (assigned_to IS NULL OR assigned_to = '')", models.MaintenancePending).
		Order("id").Find(&out).Error
	return out, writeErr("maintenance request", "list unassigned", err)
}
