package tenancy

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beesaferoot/tenancy/internal/config"
	"github.com/beesaferoot/tenancy/internal/images"
	"github.com/beesaferoot/tenancy/internal/logging"
	"github.com/beesaferoot/tenancy/internal/metrics"
	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/store"
)

type fixture struct {
	t       *testing.T
	ctx     context.Context
	svc     *Service
	store   *store.Store
	fs      billy.Filesystem
	metrics *metrics.Recorder
	logs    *bytes.Buffer
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(config.DatabaseConfig{URL: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, st.Migrate())
	t.Cleanup(func() { _ = st.Close() })

	f := &fixture{
		t:       t,
		ctx:     context.Background(),
		store:   st,
		fs:      memfs.New(),
		metrics: metrics.New(prometheus.NewRegistry()),
		logs:    &bytes.Buffer{},
		now:     date(2024, 1, 15),
	}
	f.svc = New(st,
		WithClock(func() time.Time { return f.now }),
		WithLogger(logging.NewWithWriter(f.logs, config.LoggingConfig{Level: "debug"})),
		WithMetrics(f.metrics),
		WithImages(images.New(f.fs, "/uploads")),
	)
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr[T any](v T) *T { return &v }

func (f *fixture) user(email string, roles ...string) models.Actor {
	f.t.Helper()
	u, err := f.svc.Accounts.Register(f.ctx, UserInput{Name: email, Email: email, Roles: roles})
	require.NoError(f.t, err)
	return u.Actor()
}

func (f *fixture) property(landlord models.Actor) *models.Property {
	f.t.Helper()
	p, err := f.svc.Properties.Create(f.ctx, landlord, PropertyInput{
		Title:   "Garden Flat",
		Address: "1 Main St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62701",
		Rent:    dec(1000),
		Deposit: dec(500),
	})
	require.NoError(f.t, err)
	return p
}

func (f *fixture) lease(landlord models.Actor, propertyID, tenantID uint) *models.Lease {
	f.t.Helper()
	l, err := f.svc.Leases.Create(f.ctx, landlord, leaseInput(propertyID, tenantID))
	require.NoError(f.t, err)
	return l
}

func leaseInput(propertyID, tenantID uint) LeaseInput {
	return LeaseInput{
		PropertyID:      propertyID,
		TenantID:        tenantID,
		StartDate:       date(2024, 1, 1),
		EndDate:         date(2024, 12, 31),
		RentAmount:      dec(1000),
		SecurityDeposit: dec(500),
	}
}

func (f *fixture) propertyStatus(id uint) models.PropertyStatus {
	f.t.Helper()
	p, err := f.svc.Properties.Get(f.ctx, id)
	require.NoError(f.t, err)
	return p.Status
}

// assertRentedMatchesLeases checks that every property is RENTED exactly
// when it has one ACTIVE lease, and never more than one.
func (f *fixture) assertRentedMatchesLeases() {
	f.t.Helper()
	props, err := f.store.ListProperties()
	require.NoError(f.t, err)
	for _, p := range props {
		active, err := f.store.ActiveLeasesForProperty(p.ID)
		require.NoError(f.t, err)
		assert.LessOrEqual(f.t, len(active), 1, "property %d", p.ID)
		assert.Equal(f.t, len(active) == 1, p.Status == models.PropertyRented,
			"property %d is %s with %d active leases", p.ID, p.Status, len(active))
	}
}

func (f *fixture) notifications(recipient models.Actor) []models.Notification {
	f.t.Helper()
	out, err := f.svc.Notifications.ForRecipient(f.ctx, recipient)
	require.NoError(f.t, err)
	return out
}
