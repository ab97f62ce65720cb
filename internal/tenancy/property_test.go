package tenancy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func (f *fixture) imageFiles(propertyID uint) []string {
	f.t.Helper()
	infos, err := f.fs.ReadDir(fmt.Sprintf("properties/%d", propertyID))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(f.t, err)
	var names []string
	for _, fi := range infos {
		names = append(names, fi.Name())
	}
	return names
}

func TestCreateProperty(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")

	p, err := f.svc.Properties.Create(f.ctx, landlord, PropertyInput{
		Title:     "Loft",
		Address:   "2 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
		Rent:      dec(1500),
		Bedrooms:  2,
		Bathrooms: 1,
		Amenities: []string{"parking", "laundry"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyAvailable, p.Status)
	assert.Equal(t, landlord.ID, p.LandlordID)

	got, err := f.svc.Properties.Get(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"parking", "laundry"}, []string(got.Amenities))
	assert.True(t, dec(1500).Equal(got.Rent))

	available, err := f.svc.Properties.Available(f.ctx)
	require.NoError(t, err)
	assert.Len(t, available, 1)
}

func TestCreatePropertyRequiresLandlord(t *testing.T) {
	f := newFixture(t)
	tenant := f.user("tenant@example.com", "TENANT")

	_, err := f.svc.Properties.Create(f.ctx, tenant, PropertyInput{Title: "x"})
	assert.True(t, apperr.IsPermissionDenied(err), "got %v", err)

	props, err := f.svc.Properties.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestCreatePropertyValidation(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	valid := PropertyInput{
		Title:   "Loft",
		Address: "2 Main St",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62701",
		Rent:    dec(1500),
	}

	tests := map[string]func(*PropertyInput){
		"blank title":       func(in *PropertyInput) { in.Title = "  " },
		"missing zip":       func(in *PropertyInput) { in.ZipCode = "" },
		"zero rent":         func(in *PropertyInput) { in.Rent = dec(0) },
		"negative deposit":  func(in *PropertyInput) { in.Deposit = dec(-5) },
		"negative bedrooms": func(in *PropertyInput) { in.Bedrooms = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			_, err := f.svc.Properties.Create(f.ctx, landlord, in)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}
}

func TestUpdatePropertyKeepsStatus(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	tenant := f.user("tenant@example.com", "TENANT")
	p := f.property(landlord)
	f.lease(landlord, p.ID, tenant.ID)

	var updates []string
	require.NoError(t, f.store.DB().Callback().Update().After("gorm:update").Register("test:capture_property_updates", func(db *gorm.DB) {
		if db.Statement.Table == "properties" {
			updates = append(updates, db.Statement.SQL.String())
		}
	}))

	in := PropertyInput{
		Title:   "Renovated Flat",
		Address: p.Address,
		City:    p.City,
		State:   p.State,
		ZipCode: p.ZipCode,
		Rent:    dec(1100),
		Deposit: p.Deposit,
	}
	got, err := f.svc.Properties.Update(f.ctx, landlord, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Renovated Flat", got.Title)
	assert.Equal(t, models.PropertyRented, got.Status)
	assert.Equal(t, models.PropertyRented, f.propertyStatus(p.ID))
	require.Len(t, updates, 1)
	assert.NotContains(t, updates[0], "status", "detail updates must not write the status column")

	_, err = f.svc.Properties.Update(f.ctx, tenant, p.ID, in)
	assert.True(t, apperr.IsPermissionDenied(err), "got %v", err)

	_, err = f.svc.Properties.Update(f.ctx, landlord, 999, in)
	assert.True(t, apperr.IsNotFound(err), "got %v", err)
}

func TestSetMaintenance(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	tenant := f.user("tenant@example.com", "TENANT")
	p := f.property(landlord)

	got, err := f.svc.Properties.SetMaintenance(f.ctx, landlord, p.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyMaintenance, got.Status)

	_, err = f.svc.Leases.Create(f.ctx, landlord, leaseInput(p.ID, tenant.ID))
	assert.True(t, apperr.IsConflict(err), "got %v", err)

	_, err = f.svc.Properties.SetMaintenance(f.ctx, landlord, p.ID, true)
	assert.True(t, apperr.IsConflict(err), "got %v", err)

	got, err = f.svc.Properties.SetMaintenance(f.ctx, landlord, p.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.PropertyAvailable, got.Status)

	f.lease(landlord, p.ID, tenant.ID)
	_, err = f.svc.Properties.SetMaintenance(f.ctx, landlord, p.ID, true)
	assert.True(t, apperr.IsConflict(err), "got %v", err)
	assert.Equal(t, models.PropertyRented, f.propertyStatus(p.ID))
	f.assertRentedMatchesLeases()
}

func TestUploadImages(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	p := f.property(landlord)

	urls, err := f.svc.Properties.UploadImages(f.ctx, landlord, p.ID, []ImageUpload{
		{Name: "front.jpg", Body: strings.NewReader("front")},
		{Name: "kitchen.PNG", Body: strings.NewReader("kitchen")},
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, url := range urls {
		assert.True(t, strings.HasPrefix(url, fmt.Sprintf("/uploads/properties/%d/", p.ID)), url)
	}

	imgs, err := f.svc.Properties.Images(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, imgs, 2)
	assert.Len(t, f.imageFiles(p.ID), 2)
}

func TestUploadImagesIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	p := f.property(landlord)

	_, err := f.svc.Properties.UploadImages(f.ctx, landlord, p.ID, []ImageUpload{
		{Name: "front.jpg", Body: strings.NewReader("front")},
		{Name: "back.jpg", Body: io.MultiReader(strings.NewReader("ba"), failingReader{})},
	})
	require.Error(t, err)

	imgs, err := f.svc.Properties.Images(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, imgs)
	assert.Empty(t, f.imageFiles(p.ID))
}

func TestUploadImagesRequiresOwner(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	other := f.user("other@example.com", "LANDLORD")
	p := f.property(landlord)

	_, err := f.svc.Properties.UploadImages(f.ctx, other, p.ID, []ImageUpload{
		{Name: "front.jpg", Body: strings.NewReader("front")},
	})
	assert.True(t, apperr.IsPermissionDenied(err), "got %v", err)
	assert.Empty(t, f.imageFiles(p.ID))

	_, err = f.svc.Properties.UploadImages(f.ctx, landlord, p.ID, nil)
	assert.True(t, apperr.IsValidation(err), "got %v", err)
}

func TestDeletePropertyCascades(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	tenant := f.user("tenant@example.com", "TENANT")
	p := f.property(landlord)
	keep := f.property(landlord)

	l := f.lease(landlord, p.ID, tenant.ID)
	_, err := f.svc.Payments.Create(f.ctx, PaymentInput{LeaseID: l.ID, Amount: dec(1000), DueDate: date(2024, 2, 1)})
	require.NoError(t, err)
	_, err = f.svc.Maintenance.Create(f.ctx, tenant, MaintenanceInput{PropertyID: p.ID, Title: "Leak"})
	require.NoError(t, err)
	_, err = f.svc.Properties.UploadImages(f.ctx, landlord, p.ID, []ImageUpload{
		{Name: "front.jpg", Body: strings.NewReader("front")},
	})
	require.NoError(t, err)

	err = f.svc.Properties.Delete(f.ctx, tenant, p.ID)
	assert.True(t, apperr.IsPermissionDenied(err), "got %v", err)

	require.NoError(t, f.svc.Properties.Delete(f.ctx, landlord, p.ID))

	_, err = f.svc.Properties.Get(f.ctx, p.ID)
	assert.True(t, apperr.IsNotFound(err))
	leases, err := f.svc.Leases.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, leases)
	payments, err := f.svc.Payments.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
	requests, err := f.svc.Maintenance.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, requests)
	assert.Empty(t, f.imageFiles(p.ID))

	_, err = f.svc.Properties.Get(f.ctx, keep.ID)
	assert.NoError(t, err)
	assert.True(t, apperr.IsNotFound(f.svc.Properties.Delete(f.ctx, landlord, p.ID)))
}

func TestPropertySearches(t *testing.T) {
	f := newFixture(t)
	landlord := f.user("landlord@example.com", "LANDLORD")
	tenant := f.user("tenant@example.com", "TENANT")
	rented := f.property(landlord)
	f.lease(landlord, rented.ID, tenant.ID)
	open := f.property(landlord)

	all, err := f.svc.Properties.ByCity(f.ctx, "springfield", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	avail, err := f.svc.Properties.ByCity(f.ctx, "Springfield", "available")
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, open.ID, avail[0].ID)

	_, err = f.svc.Properties.ByCity(f.ctx, " ", "")
	assert.True(t, apperr.IsValidation(err), "got %v", err)
	_, err = f.svc.Properties.ByCity(f.ctx, "Springfield", "vacant")
	assert.True(t, apperr.IsValidation(err), "got %v", err)

	inRange, err := f.svc.Properties.ByRentRange(f.ctx, dec(900), dec(1000))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	none, err := f.svc.Properties.ByRentRange(f.ctx, dec(1001), dec(2000))
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.Properties.ByRentRange(f.ctx, dec(1000), dec(900))
	assert.True(t, apperr.IsValidation(err), "got %v", err)
	_, err = f.svc.Properties.ByRentRange(f.ctx, dec(-1), dec(900))
	assert.True(t, apperr.IsValidation(err), "got %v", err)
}
