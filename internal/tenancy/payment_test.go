package tenancy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
)

func TestPaymentOverdueAndMarkAsPaid(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	tenant := f.user("tenant@example.com", "TENANT")
	l := f.lease(landlord, f.property(landlord).ID, tenant.ID)

	p, err := f.svc.Payments.Create(f.ctx, PaymentInput{LeaseID: l.ID, Amount: dec(1000), DueDate: date(2024, 2, 1)})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, p.Status)

	notes := f.notifications(tenant)
	require.Len(t, notes, 2)
	assert.Equal(t, "Payment Due", notes[0].Title)
	assert.Equal(t, models.NotificationWarning, notes[0].Type)

	f.now = date(2024, 2, 1)
	overdue, err := f.svc.Payments.Overdue(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue, "due today is not overdue yet")

	f.now = date(2024, 2, 2)
	overdue, err = f.svc.Payments.Overdue(f.ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, p.ID, overdue[0].ID)

	paid, err := f.svc.Payments.MarkAsPaid(f.ctx, p.ID, "CARD")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.Status)
	assert.Equal(t, "CARD", paid.PaymentMethod)
	require.NotNil(t, paid.PaidDate)
	assert.True(t, date(2024, 2, 2).Equal(*paid.PaidDate))

	overdue, err = f.svc.Payments.Overdue(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	landlordNotes := f.notifications(landlord)
	require.Len(t, landlordNotes, 1)
	assert.Equal(t, "Payment Received", landlordNotes[0].Title)
	assert.Contains(t, landlordNotes[0].Message, "tenant@example.com")
	assert.Equal(t, models.NotificationSuccess, landlordNotes[0].Type)
}

func TestMarkAsPaidTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	tenant := f.user("tenant@example.com", "TENANT")
	l := f.lease(landlord, f.property(landlord).ID, tenant.ID)
	p, err := f.svc.Payments.Create(f.ctx, PaymentInput{LeaseID: l.ID, Amount: dec(1000), DueDate: date(2024, 2, 1)})
	require.NoError(t, err)

	_, err = f.svc.Payments.MarkAsPaid(f.ctx, p.ID, "CASH")
	require.NoError(t, err)

	f.now = date(2024, 3, 1)
	_, err = f.svc.Payments.MarkAsPaid(f.ctx, p.ID, "CARD")
	assert.True(t, apperr.IsConflict(err), "got %v", err)

	got, err := f.svc.Payments.Get(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "CASH", got.PaymentMethod)
	assert.True(t, date(2024, 1, 15).Equal(*got.PaidDate))
	assert.Len(t, f.notifications(landlord), 1)
}

func TestConcurrentMarkAsPaidSettlesOnce(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	tenant := f.user("tenant@example.com", "TENANT")
	l := f.lease(landlord, f.property(landlord).ID, tenant.ID)
	p, err := f.svc.Payments.Create(f.ctx, PaymentInput{LeaseID: l.ID, Amount: dec(1000), DueDate: date(2024, 2, 1)})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, method := range []string{"CASH", "CARD"} {
		wg.Add(1)
		go func(i int, method string) {
			defer wg.Done()
			_, errs[i] = f.svc.Payments.MarkAsPaid(f.ctx, p.ID, method)
		}(i, method)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, f.notifications(landlord), 1, "only the settling call notifies")
}

func TestCreatePaymentValidation(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	tenant := f.user("tenant@example.com", "TENANT")
	l := f.lease(landlord, f.property(landlord).ID, tenant.ID)

	_, err := f.svc.Payments.Create(f.ctx, PaymentInput{LeaseID: 999, Amount: dec(10), DueDate: date(2024, 2, 1)})
	assert.True(t, apperr.IsNotFound(err), "got %v", err)

	_, err = f.svc.Payments.Create(f.ctx, PaymentInput{LeaseID: l.ID, Amount: dec(0), DueDate: date(2024, 2, 1)})
	assert.True(t, apperr.IsValidation(err), "got %v", err)

	_, err = f.svc.Payments.Create(f.ctx, PaymentInput{LeaseID: l.ID, Amount: dec(10)})
	assert.True(t, apperr.IsValidation(err), "got %v", err)

	_, err = f.svc.Payments.MarkAsPaid(f.ctx, 999, "CARD")
	assert.True(t, apperr.IsNotFound(err), "got %v", err)

	assert.Len(t, f.notifications(tenant), 1)
}

func TestPaymentReadsAndDelete(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	other := f.user("other@example.com", "LANDLORD")
	tenant := f.user("tenant@example.com", "TENANT")
	l := f.lease(landlord, f.property(landlord).ID, tenant.ID)
	p, err := f.svc.Payments.Create(f.ctx, PaymentInput{LeaseID: l.ID, Amount: dec(1000), DueDate: date(2024, 2, 1)})
	require.NoError(t, err)

	byLandlord, err := f.svc.Payments.ByLandlord(f.ctx, landlord.ID)
	require.NoError(t, err)
	assert.Len(t, byLandlord, 1)

	byOther, err := f.svc.Payments.ByLandlord(f.ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, byOther)

	byTenant, err := f.svc.Payments.ByTenant(f.ctx, tenant.ID)
	require.NoError(t, err)
	assert.Len(t, byTenant, 1)

	require.NoError(t, f.svc.Payments.Delete(f.ctx, p.ID))
	assert.True(t, apperr.IsNotFound(f.svc.Payments.Delete(f.ctx, p.ID)))
}
