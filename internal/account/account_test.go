package account

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-backend/internal/config"
	"pantry-backend/internal/errs"
	"pantry-backend/internal/model"
	"pantry-backend/internal/record"
)

func testLimits() config.Limits {
	return config.Limits{
		MaxStores:            30,
		MaxSellers:           30,
		MaxStockPerProduct:   30,
		MaxProductsPerSeller: 30,
	}
}

func TestRegisterStore(t *testing.T) {
	records := record.NewMemory()
	gate := NewGate(records, testLimits())
	ctx := context.Background()

	st, err := gate.RegisterStore(ctx, StoreInput{
		StoreName: "Sarah's Sweet Treats",
		OwnerName: "Sarah Johnson",
		Email:     "sarah@example.com",
		Password:  "secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, st.ID)
	assert.Empty(t, st.Password, "password hash must not be returned")
	assert.NotNil(t, st.Products)
	assert.NotNil(t, st.Transactions)

	// Registration sets the active session to the new store.
	current, err := record.Current(ctx, records, record.CurrentStore)
	require.NoError(t, err)
	assert.Equal(t, st.ID, current)

	// The persisted record keeps the hash, and it is not the plaintext.
	stores, err := record.Load[model.Store](ctx, records, record.Stores)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.NotEmpty(t, stores[0].Password)
	assert.NotEqual(t, "secret", stores[0].Password)
}

func TestRegisterStoreMissingFields(t *testing.T) {
	gate := NewGate(record.NewMemory(), testLimits())
	_, err := gate.RegisterStore(context.Background(), StoreInput{StoreName: "No Email"})
	assert.True(t, errs.IsValidation(err))
}

func TestRegisterStoreCapacity(t *testing.T) {
	records := record.NewMemory()
	gate := NewGate(records, testLimits())
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		_, err := gate.RegisterStore(ctx, StoreInput{
			StoreName: fmt.Sprintf("Store %d", i),
			OwnerName: "Owner",
			Email:     fmt.Sprintf("owner%d@example.com", i),
			Password:  "pw",
		})
		require.NoError(t, err)
	}

	_, err := gate.RegisterStore(ctx, StoreInput{
		StoreName: "One Too Many",
		OwnerName: "Owner",
		Email:     "late@example.com",
		Password:  "pw",
	})
	assert.True(t, errs.IsCapacity(err))
}

func TestRegisterStoreDuplicateEmail(t *testing.T) {
	gate := NewGate(record.NewMemory(), testLimits())
	ctx := context.Background()

	_, err := gate.RegisterStore(ctx, StoreInput{
		StoreName: "First", OwnerName: "A", Email: "same@example.com", Password: "pw",
	})
	require.NoError(t, err)

	_, err = gate.RegisterStore(ctx, StoreInput{
		StoreName: "Second", OwnerName: "B", Email: "Same@Example.com", Password: "pw",
	})
	assert.ErrorIs(t, err, errs.ErrDuplicateEmail)
}

func TestLoginStore(t *testing.T) {
	records := record.NewMemory()
	gate := NewGate(records, testLimits())
	ctx := context.Background()

	st, err := gate.RegisterStore(ctx, StoreInput{
		StoreName: "Login Test", OwnerName: "A", Email: "login@example.com", Password: "right",
	})
	require.NoError(t, err)
	require.NoError(t, gate.Logout(ctx, record.CurrentStore))

	got, err := gate.LoginStore(ctx, "login@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)
	assert.Empty(t, got.Password)

	current, err := record.Current(ctx, records, record.CurrentStore)
	require.NoError(t, err)
	assert.Equal(t, st.ID, current)

	_, err = gate.LoginStore(ctx, "login@example.com", "wrong")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = gate.LoginStore(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestRegisterSellerZeroedAggregates(t *testing.T) {
	gate := NewGate(record.NewMemory(), testLimits())

	sl, err := gate.RegisterSeller(context.Background(), SellerInput{
		Name: "Maria", Email: "maria@example.com", Password: "pw",
	})
	require.NoError(t, err)
	assert.Zero(t, sl.Rating)
	assert.Zero(t, sl.ReviewCount)
}

func TestUpdateSellerProfileCascadesName(t *testing.T) {
	records := record.NewMemory()
	gate := NewGate(records, testLimits())
	ctx := context.Background()

	sl, err := gate.RegisterSeller(ctx, SellerInput{
		Name: "Old Name", Email: "cascade@example.com", Password: "pw",
	})
	require.NoError(t, err)

	// Two listings owned by the seller, one by someone else.
	products := []model.Product{
		{ID: "p1", SellerID: sl.ID, SellerName: "Old Name", Name: "Jam"},
		{ID: "p2", SellerID: sl.ID, SellerName: "Old Name", Name: "Bread"},
		{ID: "p3", SellerID: "other", SellerName: "Someone Else", Name: "Tea"},
	}
	require.NoError(t, record.Save(ctx, records, record.Products, products))

	updated, err := gate.UpdateSellerProfile(ctx, sl.ID, ProfileInput{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	got, err := record.Load[model.Product](ctx, records, record.Products)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got[0].SellerName)
	assert.Equal(t, "New Name", got[1].SellerName)
	assert.Equal(t, "Someone Else", got[2].SellerName)
}

func TestUpdateSellerProfileUnknownSeller(t *testing.T) {
	gate := NewGate(record.NewMemory(), testLimits())
	_, err := gate.UpdateSellerProfile(context.Background(), "ghost", ProfileInput{Name: "X"})
	assert.True(t, errs.IsNotFound(err))
}
