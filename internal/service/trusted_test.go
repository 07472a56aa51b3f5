package service

import (
	"context"
	"testing"

	"approvals/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditActions(st *store) []string {
	out := make([]string, 0, len(st.audits))
	for _, a := range st.audits {
		out = append(out, a.Action)
	}
	return out
}

func TestTrustedOps_EnsureProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actor := f.actor(uuid.New())

	first, err := f.trusted.EnsureProduct(ctx, actor, "  Label Printer ", "", dec(120))
	require.NoError(t, err)
	assert.Equal(t, "Label Printer", first.Name)
	assert.Equal(t, model.DefaultUoM, first.UoM)
	assert.True(t, first.PurchaseOK)
	assert.True(t, first.IsStorable)

	again, err := f.trusted.EnsureProduct(ctx, actor, "label printer", "Box", dec(99))
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	assert.Len(t, f.st.products, 1)
	assert.Equal(t, []string{model.ActionCreateProduct}, auditActions(f.st))
	assert.Equal(t, &actor.UserID, f.st.audits[0].UserID)

	_, err = f.trusted.EnsureProduct(ctx, actor, "  ", "", dec(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTrustedOps_EnsureVendor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actor := f.actor(uuid.New())

	vendor, err := f.trusted.EnsureVendor(ctx, actor, VendorInput{Name: "Acme Supplies", Email: " sales@acme.test "})
	require.NoError(t, err)
	assert.True(t, vendor.IsCompany)
	assert.True(t, vendor.IsVendor())
	assert.Equal(t, "sales@acme.test", vendor.Email)

	same, err := f.trusted.EnsureVendor(ctx, actor, VendorInput{Name: "ACME SUPPLIES"})
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, same.ID)

	// an individual contact with the same name is not a vendor match
	person := model.Partner{ID: uuid.New(), Name: "Jordan Smith", Type: model.PartnerTypeCustomer}
	f.st.partners[person.ID] = person
	company, err := f.trusted.EnsureVendor(ctx, actor, VendorInput{Name: "Jordan Smith"})
	require.NoError(t, err)
	assert.NotEqual(t, person.ID, company.ID)

	assert.Equal(t, []string{model.ActionCreateVendor, model.ActionCreateVendor}, auditActions(f.st))
}

func TestTrustedOps_EnsureSupplierInfo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actor := f.actor(uuid.New())
	vendor := f.addVendor("Acme")
	product := f.addProduct("Toner", 80)

	info, err := f.trusted.EnsureSupplierInfo(ctx, actor, vendor.ID, product.ID, dec(75))
	require.NoError(t, err)
	assert.True(t, info.MinQty.Equal(dec(1)))
	assert.True(t, info.Price.Equal(dec(75)))

	again, err := f.trusted.EnsureSupplierInfo(ctx, actor, vendor.ID, product.ID, dec(60))
	require.NoError(t, err)
	assert.Equal(t, info.ID, again.ID)
	assert.Len(t, f.st.supplierInfos, 1)
}

func TestTrustedOps_EnsureWorkstation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actor := f.actor(uuid.New())

	ws, err := f.trusted.EnsureWorkstation(ctx, actor, "Dana Lee")
	require.NoError(t, err)
	assert.Equal(t, "WH/Stock/Dana Lee", ws.CompleteName)
	assert.Equal(t, model.LocationUsageInternal, ws.Usage)
	require.NotNil(t, ws.ParentID)
	assert.Equal(t, f.mainStock.ID, *ws.ParentID)

	again, err := f.trusted.EnsureWorkstation(ctx, actor, "dana lee")
	require.NoError(t, err)
	assert.Equal(t, ws.ID, again.ID)
	assert.Equal(t, []string{model.ActionCreateWorkstation}, auditActions(f.st))
}

func TestTrustedOps_EnsureWorkstationWithoutMainStock(t *testing.T) {
	f := newFixture()
	f.st.locations = nil

	_, err := f.trusted.EnsureWorkstation(context.Background(), f.actor(uuid.New()), "Dana Lee")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_FindOrCreateVendorRollsBackOnError(t *testing.T) {
	f := newFixture()
	catalog := NewCatalogService(&fakeProducts{st: f.st}, &fakePartners{st: f.st}, &fakeLocations{st: f.st}, &fakeStock{st: f.st}, f.trusted, &fakeTx{st: f.st})

	vendor, err := catalog.FindOrCreateVendor(context.Background(), f.actor(uuid.New()), VendorInput{Name: "Globex"})
	require.NoError(t, err)
	assert.Equal(t, "Globex", vendor.Name)

	_, err = catalog.FindOrCreateVendor(context.Background(), f.actor(uuid.New()), VendorInput{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, f.st.partners, 1)
}

func TestCatalogService_ProductAvailability(t *testing.T) {
	f := newFixture()
	catalog := NewCatalogService(&fakeProducts{st: f.st}, &fakePartners{st: f.st}, &fakeLocations{st: f.st}, &fakeStock{st: f.st}, f.trusted, &fakeTx{st: f.st})
	toner := f.addProduct("Toner", 80)
	shelf := f.addLocation("WH/Stock/Shelf 1")
	f.addLocation("WH/Stock/Shelf 2")
	f.addQuant(toner.ID, f.mainStock.ID, 4)
	f.addQuant(toner.ID, shelf.ID, 6)

	resp, err := catalog.ProductAvailability(context.Background(), toner.ID.String(), nil)
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec(10)))
	require.Len(t, resp.Locations, 2)
	assert.Equal(t, "WH/Stock", resp.Locations[0].LocationName)
	assert.Equal(t, "WH/Stock/Shelf 1", resp.Locations[1].LocationName)

	_, err = catalog.ProductAvailability(context.Background(), uuid.NewString(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}
