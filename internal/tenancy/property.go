package tenancy

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/beesaferoot/tenancy/internal/access"
	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
	"github.com/beesaferoot/tenancy/internal/store"
)

// Properties owns property records and their AVAILABLE/RENTED status.
type Properties struct {
	*core
}

// PropertyInput carries the mutable fields of a property.
type PropertyInput struct {
	Title       string          `validate:"notblank"`
	Description string
	Address     string          `validate:"notblank"`
	City        string          `validate:"notblank"`
	State       string          `validate:"notblank"`
	ZipCode     string          `validate:"notblank"`
	Rent        decimal.Decimal `validate:"gt=0"`
	Deposit     decimal.Decimal `validate:"gte=0"`
	Bedrooms    int             `validate:"gte=0"`
	Bathrooms   int             `validate:"gte=0"`
	SquareFeet  *int            `validate:"omitnil,gte=0"`
	Amenities   []string
}

func (in PropertyInput) apply(p *models.Property) {
	p.Title = in.Title
	p.Description = in.Description
	p.Address = in.Address
	p.City = in.City
	p.State = in.State
	p.ZipCode = in.ZipCode
	p.Rent = in.Rent
	p.Deposit = in.Deposit
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.SquareFeet = in.SquareFeet
	p.Amenities = append([]string(nil), in.Amenities...)
}

// ImageUpload is one file of an image batch.
type ImageUpload struct {
	Name string `validate:"notblank"`
	Body io.Reader
}

// Create lists a new AVAILABLE property owned by the acting landlord.
func (s *Properties) Create(ctx context.Context, actor models.Actor, in PropertyInput) (*models.Property, error) {
	var created *models.Property
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := access.RequireRole(actor, "property", models.RoleLandlord); err != nil {
			return err
		}
		if err := validateInput("property", in); err != nil {
			return err
		}
		if _, err := tx.FindUser(actor.ID); err != nil {
			return err
		}

		p := &models.Property{LandlordID: actor.ID, Status: models.PropertyAvailable}
		in.apply(p)
		if err := tx.CreateProperty(p); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err := s.finish("property", "create", err, "actor", actor.ID); err != nil {
		return nil, err
	}
	return created, nil
}

// Update overwrites the mutable fields. Status and owner are never written
// here; they belong to the lease lifecycle.
func (s *Properties) Update(ctx context.Context, actor models.Actor, id uint, in PropertyInput) (*models.Property, error) {
	var updated *models.Property
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		p, err := tx.LockProperty(id)
		if err != nil {
			return err
		}
		if err := access.Authorize(actor, "property", p.LandlordID); err != nil {
			return err
		}
		if err := validateInput("property", in); err != nil {
			return err
		}

		in.apply(p)
		if err := tx.UpdatePropertyDetails(p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err := s.finish("property", "update", err, "actor", actor.ID, "property_id", id); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the property with its leases, their payments, its
// maintenance requests and its images. Image files are removed after the
// rows are gone; a file that cannot be removed is logged and left behind.
func (s *Properties) Delete(ctx context.Context, actor models.Actor, id uint) error {
	var images []models.PropertyImage
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		p, err := tx.FindProperty(id)
		if err != nil {
			return err
		}
		if err := access.Authorize(actor, "property", p.LandlordID); err != nil {
			return err
		}

		images, err = tx.PropertyImages(id)
		if err != nil {
			return err
		}
		return tx.DeletePropertyCascade(id)
	})
	if err := s.finish("property", "delete", err, "actor", actor.ID, "property_id", id); err != nil {
		return err
	}

	s.removeFiles(images)
	return nil
}

// SetMaintenance moves an unleased property into or out of the MAINTENANCE
// override.
func (s *Properties) SetMaintenance(ctx context.Context, actor models.Actor, id uint, enabled bool) (*models.Property, error) {
	from, to := models.PropertyAvailable, models.PropertyMaintenance
	if !enabled {
		from, to = to, from
	}

	var updated *models.Property
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		p, err := tx.LockProperty(id)
		if err != nil {
			return err
		}
		if err := access.Authorize(actor, "property", p.LandlordID); err != nil {
			return err
		}
		if p.Status != from {
			return apperr.Conflict("property", "property %d is %s, expected %s", id, p.Status, from)
		}
		if err := s.setStatus(tx, id, from, to); err != nil {
			return err
		}
		p.Status = to
		updated = p
		return nil
	})
	if err := s.finish("property", "maintenance", err, "actor", actor.ID, "property_id", id, "enabled", enabled); err != nil {
		return nil, err
	}
	return updated, nil
}

// UploadImages stores a batch of image files for the property. Either every
// file and row is kept or none is.
func (s *Properties) UploadImages(ctx context.Context, actor models.Actor, id uint, uploads []ImageUpload) ([]string, error) {
	if s.images == nil {
		return nil, apperr.Internal("property image", nil, "image storage is not configured")
	}
	if len(uploads) == 0 {
		return nil, apperr.Validation("property image", "at least one file is required")
	}

	var written []string
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		p, err := tx.FindProperty(id)
		if err != nil {
			return err
		}
		if err := access.Authorize(actor, "property", p.LandlordID); err != nil {
			return err
		}

		for _, up := range uploads {
			if err := validateInput("property image", up); err != nil {
				return err
			}
			url, err := s.images.Save(p.ID, up.Name, up.Body)
			if err != nil {
				return apperr.Internal("property image", err, "store %s", up.Name)
			}
			written = append(written, url)

			if err := tx.CreatePropertyImage(&models.PropertyImage{PropertyID: p.ID, ImageURL: url}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, url := range written {
			if rmErr := s.images.Remove(url); rmErr != nil {
				s.log.Error("failed to remove image after aborted upload", "url", url, "error", rmErr)
			}
		}
		return nil, s.finish("property", "upload_images", err, "actor", actor.ID, "property_id", id)
	}

	_ = s.finish("property", "upload_images", nil, "actor", actor.ID, "property_id", id, "count", len(written))
	return written, nil
}

// setStatus moves the property from one status to another inside tx. It is
// the serialization point for lease creation: of two transactions racing
// for the same AVAILABLE property only one can swap it.
func (s *Properties) setStatus(tx *store.Store, id uint, from, to models.PropertyStatus) error {
	ok, err := tx.SwapPropertyStatus(id, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Conflict("property", "property %d is no longer %s", id, from)
	}
	return nil
}

func (s *Properties) removeFiles(images []models.PropertyImage) {
	if s.images == nil {
		return
	}
	for _, img := range images {
		if err := s.images.Remove(img.ImageURL); err != nil {
			s.log.Error("failed to remove property image file", "url", img.ImageURL, "error", err)
		}
	}
}

func (s *Properties) List(ctx context.Context) ([]models.Property, error) {
	return s.store.WithContext(ctx).ListProperties()
}

func (s *Properties) Get(ctx context.Context, id uint) (*models.Property, error) {
	return s.store.WithContext(ctx).FindProperty(id)
}

func (s *Properties) ByLandlord(ctx context.Context, landlordID uint) ([]models.Property, error) {
	return s.store.WithContext(ctx).PropertiesByLandlord(landlordID)
}

// Available lists properties open for a new lease.
func (s *Properties) Available(ctx context.Context) ([]models.Property, error) {
	return s.store.WithContext(ctx).PropertiesByStatus(models.PropertyAvailable)
}

// ByCity lists the properties in city, matched without regard to case. A
// non-empty status narrows the result to that status.
func (s *Properties) ByCity(ctx context.Context, city, status string) ([]models.Property, error) {
	if err := validateValue("property", "city", city, "notblank"); err != nil {
		return nil, err
	}
	var st models.PropertyStatus
	if status != "" {
		var err error
		if st, err = models.ParsePropertyStatus(status); err != nil {
			return nil, err
		}
	}
	return s.store.WithContext(ctx).PropertiesByCity(city, st)
}

// ByRentRange lists properties whose rent lies in [min, max].
func (s *Properties) ByRentRange(ctx context.Context, min, max decimal.Decimal) ([]models.Property, error) {
	if min.IsNegative() {
		return nil, apperr.Validation("property", "minimum rent cannot be negative")
	}
	if max.LessThan(min) {
		return nil, apperr.Validation("property", "maximum rent %s is below minimum %s", max.StringFixed(2), min.StringFixed(2))
	}
	return s.store.WithContext(ctx).PropertiesByRentRange(min, max)
}

func (s *Properties) Images(ctx context.Context, id uint) ([]models.PropertyImage, error) {
	st := s.store.WithContext(ctx)
	if _, err := st.FindProperty(id); err != nil {
		return nil, err
	}
	return st.PropertyImages(id)
}
