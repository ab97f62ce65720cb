package tenancy

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/store"
)

// Payments tracks rent installments. Payment operations carry no ownership
// check; callers are trusted to have scoped them.
type Payments struct {
	*core
}

type PaymentInput struct {
	LeaseID uint
	Amount  decimal.Decimal `validate:"gt=0"`
	DueDate time.Time       `validate:"required"`
	Method  string
	Notes   string
}

// Create records a PENDING installment and warns the tenant.
func (s *Payments) Create(ctx context.Context, in PaymentInput) (*models.Payment, error) {
	var created *models.Payment
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		l, err := tx.FindLease(in.LeaseID)
		if err != nil {
			return err
		}
		if err := validateInput("payment", in); err != nil {
			return err
		}

		p := &models.Payment{
			LeaseID:       l.ID,
			Amount:        in.Amount,
			DueDate:       models.Day(in.DueDate),
			Status:        models.PaymentPending,
			PaymentMethod: in.Method,
			Notes:         in.Notes,
		}
		if err := tx.CreatePayment(p); err != nil {
			return err
		}
		created = p

		msg := fmt.Sprintf("Payment of %s is due on %s", in.Amount.StringFixed(2), p.DueDate.Format(time.DateOnly))
		return s.notify.dispatch(tx, l.TenantID, "Payment Due", msg, models.NotificationWarning)
	})
	if err := s.finish("payment", "create", err, "lease_id", in.LeaseID); err != nil {
		return nil, err
	}
	return created, nil
}

// MarkAsPaid settles a PENDING payment today and tells the landlord. Of two
// concurrent calls for the same payment only one settles it; the other gets
// a conflict.
func (s *Payments) MarkAsPaid(ctx context.Context, id uint, method string) (*models.Payment, error) {
	var paid *models.Payment
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		p, err := tx.FindPayment(id)
		if err != nil {
			return err
		}
		if p.Status == models.PaymentPaid {
			return apperr.Conflict("payment", "payment %d is already paid", id)
		}
		l, err := tx.FindLease(p.LeaseID)
		if err != nil {
			return err
		}
		prop, err := tx.FindProperty(l.PropertyID)
		if err != nil {
			return err
		}
		tenant, err := tx.FindUser(l.TenantID)
		if err != nil {
			return err
		}

		ok, err := tx.SettlePayment(id, s.today(), method)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("payment", "payment %d is no longer pending", id)
		}
		if paid, err = tx.FindPayment(id); err != nil {
			return err
		}

		msg := fmt.Sprintf("Payment Received of %s from %s", paid.Amount.StringFixed(2), tenant.Name)
		return s.notify.dispatch(tx, prop.LandlordID, "Payment Received", msg, models.NotificationSuccess)
	})
	if err := s.finish("payment", "mark_paid", err, "payment_id", id); err != nil {
		return nil, err
	}
	return paid, nil
}

func (s *Payments) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if _, err := tx.FindPayment(id); err != nil {
			return err
		}
		return tx.DeletePayment(id)
	})
	return s.finish("payment", "delete", err, "payment_id", id)
}

func (s *Payments) List(ctx context.Context) ([]models.Payment, error) {
	return s.store.WithContext(ctx).ListPayments()
}

func (s *Payments) Get(ctx context.Context, id uint) (*models.Payment, error) {
	return s.store.WithContext(ctx).FindPayment(id)
}

func (s *Payments) ByLease(ctx context.Context, leaseID uint) ([]models.Payment, error) {
	return s.store.WithContext(ctx).PaymentsByLease(leaseID)
}

func (s *Payments) ByLandlord(ctx context.Context, landlordID uint) ([]models.Payment, error) {
	return s.store.WithContext(ctx).PaymentsByLandlord(landlordID)
}

func (s *Payments) ByTenant(ctx context.Context, tenantID uint) ([]models.Payment, error) {
	return s.store.WithContext(ctx).PaymentsByTenant(tenantID)
}

// Overdue lists PENDING payments due before today. Nothing is stored as
// overdue; the view is computed on every call.
func (s *Payments) Overdue(ctx context.Context) ([]models.Payment, error) {
	return s.store.WithContext(ctx).OverduePayments(s.today())
}
