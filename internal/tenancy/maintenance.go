package tenancy

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/beesaferoot/tenancy/internal/access"
	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/store"
)

// Maintenance handles requests filed by tenants against properties.
type Maintenance struct {
	*core
}

// MaintenanceInput files a new request. Empty Category and Priority
// default to OTHER and MEDIUM.
type MaintenanceInput struct {
	PropertyID    uint
	Title         string `validate:"notblank"`
	Description   string
	Category      string
	Priority      string
	EstimatedCost *decimal.Decimal `validate:"omitnil,gte=0"`
}

type MaintenanceUpdate struct {
	Title         *string `validate:"omitnil,notblank"`
	Description   *string
	Category      *string
	Priority      *string
	Status        *string
	AssignedTo    *string
	EstimatedCost *decimal.Decimal `validate:"omitnil,gte=0"`
	ActualCost    *decimal.Decimal `validate:"omitnil,gte=0"`
}

// Create files a PENDING request on behalf of the actor and notifies the
// property's landlord.
func (s *Maintenance) Create(ctx context.Context, actor models.Actor, in MaintenanceInput) (*models.MaintenanceRequest, error) {
	var created *models.MaintenanceRequest
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		p, err := tx.FindProperty(in.PropertyID)
		if err != nil {
			return err
		}
		if _, err := tx.FindUser(actor.ID); err != nil {
			return err
		}
		if err := validateInput("maintenance request", in); err != nil {
			return err
		}

		category, priority := models.CategoryOther, models.PriorityMedium
		if in.Category != "" {
			if category, err = models.ParseMaintenanceCategory(in.Category); err != nil {
				return err
			}
		}
		if in.Priority != "" {
			if priority, err = models.ParseMaintenancePriority(in.Priority); err != nil {
				return err
			}
		}

		r := &models.MaintenanceRequest{
			PropertyID:    p.ID,
			TenantID:      actor.ID,
			Title:         in.Title,
			Description:   in.Description,
			Category:      category,
			Priority:      priority,
			Status:        models.MaintenancePending,
			EstimatedCost: in.EstimatedCost,
		}
		if err := tx.CreateMaintenanceRequest(r); err != nil {
			return err
		}
		created = r

		return s.notify.dispatch(tx, p.LandlordID, "New Maintenance Request",
			"New maintenance request for "+p.Title+": "+in.Title, models.NotificationInfo)
	})
	if err := s.finish("maintenance", "create", err, "actor", actor.ID, "property_id", in.PropertyID); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies the set fields of u. Status only moves forward (see
// MaintenanceStatus.CanMoveTo); reaching COMPLETED stamps the completion
// time. COMPLETED and CANCELLED are final.
func (s *Maintenance) Update(ctx context.Context, actor models.Actor, id uint, u MaintenanceUpdate) (*models.MaintenanceRequest, error) {
	var updated *models.MaintenanceRequest
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		r, err := s.authorize(tx, actor, id)
		if err != nil {
			return err
		}

		if err := validateInput("maintenance request", u); err != nil {
			return err
		}

		next := *r
		if u.Title != nil {
			next.Title = *u.Title
		}
		if u.Description != nil {
			next.Description = *u.Description
		}
		if u.Category != nil {
			if next.Category, err = models.ParseMaintenanceCategory(*u.Category); err != nil {
				return err
			}
		}
		if u.Priority != nil {
			if next.Priority, err = models.ParseMaintenancePriority(*u.Priority); err != nil {
				return err
			}
		}
		if u.AssignedTo != nil {
			next.AssignedTo = u.AssignedTo
		}
		if u.EstimatedCost != nil {
			next.EstimatedCost = u.EstimatedCost
		}
		if u.ActualCost != nil {
			next.ActualCost = u.ActualCost
		}

		if u.Status != nil {
			status, err := models.ParseMaintenanceStatus(*u.Status)
			if err != nil {
				return err
			}
			if status != r.Status {
				if r.Status.Terminal() {
					return apperr.Conflict("maintenance request", "request %d is already %s", id, r.Status)
				}
				if !r.Status.CanMoveTo(status) {
					return apperr.Conflict("maintenance request", "request %d cannot move from %s to %s", id, r.Status, status)
				}
				next.Status = status
				if status == models.MaintenanceCompleted {
					now := s.now().UTC()
					next.CompletedAt = &now
				}
			}
		}

		if err := tx.SaveMaintenanceRequest(&next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err := s.finish("maintenance", "update", err, "actor", actor.ID, "request_id", id); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Maintenance) Delete(ctx context.Context, actor models.Actor, id uint) error {
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := s.authorize(tx, actor, id); err != nil {
			return err
		}
		return tx.DeleteMaintenanceRequest(id)
	})
	return s.finish("maintenance", "delete", err, "actor", actor.ID, "request_id", id)
}

// authorize loads the request and admits its tenant, the property's
// landlord, or an ADMIN.
func (s *Maintenance) authorize(tx *store.Store, actor models.Actor, id uint) (*models.MaintenanceRequest, error) {
	r, err := tx.FindMaintenanceRequest(id)
	if err != nil {
		return nil, err
	}
	p, err := tx.FindProperty(r.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(actor, "maintenance request", r.TenantID, p.LandlordID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Maintenance) List(ctx context.Context) ([]models.MaintenanceRequest, error) {
	return s.store.WithContext(ctx).ListMaintenanceRequests()
}

func (s *Maintenance) Get(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	return s.store.WithContext(ctx).FindMaintenanceRequest(id)
}

func (s *Maintenance) ByLandlord(ctx context.Context, landlordID uint) ([]models.MaintenanceRequest, error) {
	return s.store.WithContext(ctx).MaintenanceRequestsByLandlord(landlordID)
}

func (s *Maintenance) ByTenant(ctx context.Context, tenantID uint) ([]models.MaintenanceRequest, error) {
	return s.store.WithContext(ctx).MaintenanceRequestsByTenant(tenantID)
}

// UrgentPending lists PENDING requests of URGENT priority.
func (s *Maintenance) UrgentPending(ctx context.Context) ([]models.MaintenanceRequest, error) {
	return s.store.WithContext(ctx).UrgentPendingRequests()
}

// Unassigned lists open requests nobody has been assigned to.
func (s *Maintenance) Unassigned(ctx context.Context) ([]models.MaintenanceRequest, error) {
	return s.store.WithContext(ctx).UnassignedRequests()
}
