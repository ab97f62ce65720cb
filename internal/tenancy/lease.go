package tenancy

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beesaferoot/tenancy/internal/access"
	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/store"
)

// Leases binds properties to tenants and keeps the property status in step:
// a property is RENTED exactly while it has an ACTIVE lease.
type Leases struct {
	*core
	properties *Properties
}

type LeaseInput struct {
	PropertyID      uint
	TenantID        uint
	StartDate       time.Time       `validate:"required"`
	EndDate         time.Time       `validate:"required,gtefield=StartDate"`
	RentAmount      decimal.Decimal `validate:"gt=0"`
	SecurityDeposit decimal.Decimal `validate:"gte=0"`
}

// LeaseUpdate holds the optional changes of Update. Nil fields are left
// untouched. Status is the external token, parsed case-insensitively.
type LeaseUpdate struct {
	StartDate       *time.Time
	EndDate         *time.Time
	RentAmount      *decimal.Decimal
	SecurityDeposit *decimal.Decimal
	Status          *string
}

// Create opens an ACTIVE lease on an AVAILABLE property and marks the
// property RENTED. The tenant is notified in the same transaction.
func (s *Leases) Create(ctx context.Context, actor models.Actor, in LeaseInput) (*models.Lease, error) {
	var created *models.Lease
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		p, err := tx.LockProperty(in.PropertyID)
		if err != nil {
			return err
		}
		if _, err := tx.FindUser(in.TenantID); err != nil {
			return err
		}
		if err := access.Authorize(actor, "lease", p.LandlordID); err != nil {
			return err
		}
		if err := validateInput("lease", in); err != nil {
			return err
		}
		if p.Status != models.PropertyAvailable {
			return apperr.Conflict("lease", "property %d is %s, not available", p.ID, p.Status)
		}

		if err := s.properties.setStatus(tx, p.ID, models.PropertyAvailable, models.PropertyRented); err != nil {
			return err
		}
		l := &models.Lease{
			PropertyID:      p.ID,
			TenantID:        in.TenantID,
			StartDate:       models.Day(in.StartDate),
			EndDate:         models.Day(in.EndDate),
			RentAmount:      in.RentAmount,
			SecurityDeposit: in.SecurityDeposit,
			Status:          models.LeaseActive,
		}
		if err := tx.CreateLease(l); err != nil {
			return err
		}
		created = l

		return s.notify.dispatch(tx, in.TenantID, "New Lease Agreement",
			"New lease agreement for "+p.Title, models.NotificationInfo)
	})
	if err := s.finish("lease", "create", err, "actor", actor.ID, "property_id", in.PropertyID); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies the set fields of u. A status change that enters or
// leaves ACTIVE moves the property between RENTED and AVAILABLE.
func (s *Leases) Update(ctx context.Context, actor models.Actor, id uint, u LeaseUpdate) (*models.Lease, error) {
	var updated *models.Lease
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		l, err := tx.LockLease(id)
		if err != nil {
			return err
		}
		p, err := tx.LockProperty(l.PropertyID)
		if err != nil {
			return err
		}
		if err := access.Authorize(actor, "lease", p.LandlordID); err != nil {
			return err
		}

		next := *l
		if u.StartDate != nil {
			next.StartDate = models.Day(*u.StartDate)
		}
		if u.EndDate != nil {
			next.EndDate = models.Day(*u.EndDate)
		}
		if u.RentAmount != nil {
			next.RentAmount = *u.RentAmount
		}
		if u.SecurityDeposit != nil {
			next.SecurityDeposit = *u.SecurityDeposit
		}
		if u.Status != nil {
			status, err := models.ParseLeaseStatus(*u.Status)
			if err != nil {
				return err
			}
			next.Status = status
		}
		terms := LeaseInput{
			PropertyID:      next.PropertyID,
			TenantID:        next.TenantID,
			StartDate:       next.StartDate,
			EndDate:         next.EndDate,
			RentAmount:      next.RentAmount,
			SecurityDeposit: next.SecurityDeposit,
		}
		if err := validateInput("lease", terms); err != nil {
			return err
		}

		wasActive, isActive := l.Status == models.LeaseActive, next.Status == models.LeaseActive
		switch {
		case wasActive && !isActive:
			if p.Status == models.PropertyRented {
				if err := s.properties.setStatus(tx, p.ID, models.PropertyRented, models.PropertyAvailable); err != nil {
					return err
				}
			}
		case !wasActive && isActive:
			if p.Status != models.PropertyAvailable {
				return apperr.Conflict("lease", "property %d is %s, cannot reactivate lease", p.ID, p.Status)
			}
			if err := s.properties.setStatus(tx, p.ID, models.PropertyAvailable, models.PropertyRented); err != nil {
				return err
			}
		}

		if err := tx.SaveLease(&next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err := s.finish("lease", "update", err, "actor", actor.ID, "lease_id", id); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the lease with its payments. Deleting an ACTIVE lease
// frees the property.
func (s *Leases) Delete(ctx context.Context, actor models.Actor, id uint) error {
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		l, err := tx.LockLease(id)
		if err != nil {
			return err
		}
		p, err := tx.LockProperty(l.PropertyID)
		if err != nil {
			return err
		}
		if err := access.Authorize(actor, "lease", p.LandlordID); err != nil {
			return err
		}

		if err := tx.DeleteLease(l.ID); err != nil {
			return err
		}
		if l.Status == models.LeaseActive && p.Status == models.PropertyRented {
			return s.properties.setStatus(tx, p.ID, models.PropertyRented, models.PropertyAvailable)
		}
		return nil
	})
	return s.finish("lease", "delete", err, "actor", actor.ID, "lease_id", id)
}

func (s *Leases) List(ctx context.Context) ([]models.Lease, error) {
	return s.store.WithContext(ctx).ListLeases()
}

func (s *Leases) Get(ctx context.Context, id uint) (*models.Lease, error) {
	return s.store.WithContext(ctx).FindLease(id)
}

func (s *Leases) ByLandlord(ctx context.Context, landlordID uint) ([]models.Lease, error) {
	return s.store.WithContext(ctx).LeasesByLandlord(landlordID)
}

func (s *Leases) ByTenant(ctx context.Context, tenantID uint) ([]models.Lease, error) {
	return s.store.WithContext(ctx).LeasesByTenant(tenantID)
}

// ExpiringWithin lists ACTIVE leases ending between today and today+days,
// both inclusive.
func (s *Leases) ExpiringWithin(ctx context.Context, days int) ([]models.Lease, error) {
	if days < 0 {
		return nil, apperr.Validation("lease", "days cannot be negative")
	}
	today := s.today()
	return s.store.WithContext(ctx).LeasesExpiringBetween(today, today.AddDate(0, 0, days))
}
