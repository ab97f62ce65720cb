// Package tenancy implements the lifecycle rules for properties, leases,
// payments and maintenance requests, together with the notifications those
// transitions produce.
//
// Every mutating operation runs as one store transaction: input is
// validated, the access guard is consulted before the first write, and any
// notification is inserted in the same transaction as the change that
// triggered it.
package tenancy

import (
	"io"
	"log/slog"
	"time"

	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/logging"
	"github.com/beesaferoot/tenancy/internal/metrics"
	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/store"
)

// ImageStore persists image files for properties.
type ImageStore interface {
	Save(propertyID uint, name string, r io.Reader) (string, error)
	Remove(url string) error
}

// Service groups the lifecycle components over one store.
type Service struct {
	Accounts      *Accounts
	Properties    *Properties
	Leases        *Leases
	Payments      *Payments
	Maintenance   *Maintenance
	Notifications *Notifications
}

type Option func(*core)

// WithClock overrides the time source used for "today" and timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *core) { c.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *core) { c.log = logger }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(c *core) { c.metrics = r }
}

// WithImages enables property image uploads.
func WithImages(images ImageStore) Option {
	return func(c *core) { c.images = images }
}

// New wires the lifecycle components.
func New(st *store.Store, opts ...Option) *Service {
	c := &core{
		store: st,
		log:   logging.Discard(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.notify = &Notifications{core: c}
	properties := &Properties{core: c}

	return &Service{
		Accounts:      &Accounts{core: c},
		Properties:    properties,
		Leases:        &Leases{core: c, properties: properties},
		Payments:      &Payments{core: c},
		Maintenance:   &Maintenance{core: c},
		Notifications: c.notify,
	}
}

type core struct {
	store   *store.Store
	images  ImageStore
	log     *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
	notify  *Notifications
}

func (c *core) today() time.Time {
	return models.Day(c.now())
}

// finish records the outcome of a mutating operation.
func (c *core) finish(entity, operation string, err error, attrs ...any) error {
	if err != nil {
		if apperr.IsPermissionDenied(err) {
			c.metrics.Denied(entity, operation)
			c.log.Warn("operation denied",
				append([]any{"entity", entity, "operation", operation, "error", err}, attrs...)...)
		}
		return err
	}
	c.metrics.Transition(entity, operation)
	c.log.Info(entity+" "+operation, attrs...)
	return nil
}
