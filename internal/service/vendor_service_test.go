package service

import (
	"context"
	"testing"

	"prs-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVendorRequest() CreateVendorRequest {
	return CreateVendorRequest{
		Code:    "ACME",
		Name:    "Acme Corp",
		Address: "1 Main St",
		City:    "Springfield",
		State:   "IL",
		Zip:     "62701",
	}
}

func TestCreateVendor(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a vendor", func(t *testing.T) {
		svc := NewVendorService(newFakeVendorRepo())
		vendor, err := svc.CreateVendor(ctx, validVendorRequest())
		require.NoError(t, err)
		assert.Equal(t, "ACME", vendor.Code)
		assert.NotEqual(t, uuid.Nil, vendor.ID)
	})

	t.Run("whitespace-only required field is rejected", func(t *testing.T) {
		svc := NewVendorService(newFakeVendorRepo())
		req := validVendorRequest()
		req.City = "   "
		_, err := svc.CreateVendor(ctx, req)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate code", func(t *testing.T) {
		svc := NewVendorService(newFakeVendorRepo())
		_, err := svc.CreateVendor(ctx, validVendorRequest())
		require.NoError(t, err)

		_, err = svc.CreateVendor(ctx, validVendorRequest())
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateVendor(t *testing.T) {
	ctx := context.Background()

	t.Run("id mismatch", func(t *testing.T) {
		svc := NewVendorService(newFakeVendorRepo())
		err := svc.UpdateVendor(ctx, uuid.NewString(), UpdateVendorRequest{ID: uuid.NewString()})
		assert.ErrorIs(t, err, ErrIDMismatch)
	})

	t.Run("keeping the same code is allowed", func(t *testing.T) {
		repo := newFakeVendorRepo()
		svc := NewVendorService(repo)
		vendor, err := svc.CreateVendor(ctx, validVendorRequest())
		require.NoError(t, err)

		err = svc.UpdateVendor(ctx, vendor.ID.String(), UpdateVendorRequest{
			ID:      vendor.ID.String(),
			Code:    vendor.Code,
			Name:    "Acme Corporation",
			Address: vendor.Address,
			City:    vendor.City,
			State:   vendor.State,
			Zip:     vendor.Zip,
		})
		require.NoError(t, err)

		stored, err := repo.FindByID(ctx, vendor.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Corporation", stored.Name)
	})

	t.Run("changing to a taken code is rejected", func(t *testing.T) {
		repo := newFakeVendorRepo()
		svc := NewVendorService(repo)
		first, err := svc.CreateVendor(ctx, validVendorRequest())
		require.NoError(t, err)

		second := validVendorRequest()
		second.Code = "OTHER"
		other, err := svc.CreateVendor(ctx, second)
		require.NoError(t, err)

		err = svc.UpdateVendor(ctx, other.ID.String(), UpdateVendorRequest{
			ID:      other.ID.String(),
			Code:    first.Code,
			Name:    other.Name,
			Address: other.Address,
			City:    other.City,
			State:   other.State,
			Zip:     other.Zip,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDeleteVendor(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVendorRepo()
	svc := NewVendorService(repo)

	vendor, err := svc.CreateVendor(ctx, validVendorRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVendor(ctx, vendor.ID.String()))
	err = svc.DeleteVendor(ctx, vendor.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetVendorByID(t *testing.T) {
	svc := NewVendorService(newFakeVendorRepo())

	_, err := svc.GetVendorByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetVendorByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListVendors(t *testing.T) {
	ctx := context.Background()
	repo := newFakeVendorRepo()
	svc := NewVendorService(repo)

	vendors, err := svc.ListVendors(ctx)
	require.NoError(t, err)
	assert.Empty(t, vendors)

	require.NoError(t, repo.Create(ctx, &model.Vendor{Code: "A1", Name: "A", Address: "x", City: "y", State: "ZZ", Zip: "1"}))
	vendors, err = svc.ListVendors(ctx)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)
}
