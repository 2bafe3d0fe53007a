package checkout

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-backend/internal/errs"
	"pantry-backend/internal/model"
	"pantry-backend/internal/record"
)

func sampleProduct(id string, price float64, stock int) model.Product {
	return model.Product{ID: id, Name: "Product " + id, Price: price, Stock: stock}
}

func seedStore(t *testing.T, records record.Store, products ...model.Product) model.Store {
	t.Helper()
	st := model.Store{
		ID:           "s1",
		StoreName:    "Test Store",
		OwnerName:    "Owner",
		Products:     products,
		Transactions: []model.Transaction{},
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, record.Save(context.Background(), records, record.Stores, []model.Store{st}))
	return st
}

func TestCartAddBoundedByStock(t *testing.T) {
	cart := &Cart{}
	p := sampleProduct("p1", 10, 2)

	cart.Add(p)
	cart.Add(p)
	cart.Add(p) // over the ceiling, silent no-op
	assert.Equal(t, 2, cart.Quantity("p1"))
	require.Len(t, cart.Lines, 1)
	assert.LessOrEqual(t, cart.Lines[0].Quantity, cart.Lines[0].Stock)
}

func TestCartAddOutOfStockProduct(t *testing.T) {
	cart := &Cart{}
	cart.Add(sampleProduct("p1", 10, 0))
	assert.True(t, cart.Empty())
}

func TestCartRemove(t *testing.T) {
	cart := &Cart{}
	p := sampleProduct("p1", 10, 5)
	cart.Add(p)
	cart.Add(p)

	cart.Remove("p1")
	assert.Equal(t, 1, cart.Quantity("p1"))

	cart.Remove("p1")
	assert.True(t, cart.Empty())

	// Removing from an empty cart is a no-op.
	cart.Remove("p1")
	assert.True(t, cart.Empty())
}

func TestCartTotal(t *testing.T) {
	cart := &Cart{}
	assert.Equal(t, 0.0, cart.Total())

	rng := rand.New(rand.NewSource(42))
	want := 0.0
	for i := 0; i < 50; i++ {
		price := float64(rng.Intn(500)) + 0.5
		qty := rng.Intn(5) + 1
		cart.Lines = append(cart.Lines, model.CartLine{
			ProductID: string(rune('a' + i)),
			Price:     price,
			Stock:     qty,
			Quantity:  qty,
		})
		want += price * float64(qty)
	}
	assert.InDelta(t, want, cart.Total(), 1e-9)
}

func TestPurchaseValidation(t *testing.T) {
	records := record.NewMemory()
	eng := NewEngine(records)
	ctx := context.Background()
	seedStore(t, records, sampleProduct("p1", 100, 10))

	cart := &Cart{}
	cart.Add(sampleProduct("p1", 100, 10))

	_, err := eng.Purchase(ctx, "s1", cart, "   ", model.PaymentGCash)
	assert.True(t, errs.IsValidation(err))

	_, err = eng.Purchase(ctx, "s1", cart, "Alex", "")
	assert.True(t, errs.IsValidation(err))

	_, err = eng.Purchase(ctx, "s1", &Cart{}, "Alex", model.PaymentGCash)
	assert.True(t, errs.IsValidation(err))

	// Failed purchases leave the cart intact.
	assert.Equal(t, 1, cart.Quantity("p1"))
}

func TestPurchaseDecrementsStockAndAppendsTransaction(t *testing.T) {
	records := record.NewMemory()
	eng := NewEngine(records)
	ctx := context.Background()
	seedStore(t, records, sampleProduct("p1", 100, 10), sampleProduct("p2", 50, 4))

	cart := &Cart{}
	p1 := sampleProduct("p1", 100, 10)
	p2 := sampleProduct("p2", 50, 4)
	cart.Add(p1)
	cart.Add(p1)
	cart.Add(p1)
	cart.Add(p2)
	wantTotal := cart.Total()

	tx, err := eng.Purchase(ctx, "s1", cart, "Alex", model.PaymentCashBox)
	require.NoError(t, err)
	assert.Equal(t, "Alex", tx.BuyerName)
	assert.Equal(t, wantTotal, tx.Total)
	assert.Equal(t, model.PaymentCashBox, tx.PaymentMethod)
	assert.Len(t, tx.Items, 2)
	assert.True(t, cart.Empty(), "cart is cleared after purchase")

	stores, err := record.Load[model.Store](ctx, records, record.Stores)
	require.NoError(t, err)
	st := stores[0]
	assert.Equal(t, 7, st.Products[0].Stock)
	assert.Equal(t, 3, st.Products[1].Stock)
	require.Len(t, st.Transactions, 1)
	assert.Equal(t, tx.ID, st.Transactions[0].ID)
	assert.Equal(t, wantTotal, st.Transactions[0].Total)
}

func TestPurchaseUnknownStore(t *testing.T) {
	eng := NewEngine(record.NewMemory())
	cart := &Cart{}
	cart.Add(sampleProduct("p1", 10, 5))
	_, err := eng.Purchase(context.Background(), "ghost", cart, "Alex", model.PaymentGCash)
	assert.True(t, errs.IsNotFound(err))
}

func TestDemoStorePurchaseHasNoSideEffects(t *testing.T) {
	records := record.NewMemory()
	eng := NewEngine(records)
	ctx := context.Background()

	demo, err := eng.LookupStore(ctx, DemoStoreID)
	require.NoError(t, err)
	assert.Equal(t, "Sarah's Sweet Treats", demo.StoreName)
	require.Len(t, demo.Products, 3)

	cart := &Cart{}
	cart.Add(demo.Products[0])
	cart.Add(demo.Products[0])

	tx, err := eng.Purchase(ctx, DemoStoreID, cart, "Visitor", model.PaymentGCash)
	require.NoError(t, err)
	assert.Equal(t, 300.0, tx.Total)
	assert.True(t, cart.Empty())

	// Nothing was written anywhere.
	raw, err := records.Get(ctx, record.Stores)
	require.NoError(t, err)
	assert.Nil(t, raw)

	// And the fixture itself is untouched.
	again, err := eng.LookupStore(ctx, DemoStoreID)
	require.NoError(t, err)
	assert.Equal(t, 25, again.Products[0].Stock)
}

func TestEndToEndScenario(t *testing.T) {
	// Register store "Sarah's Sweet Treats", add Cookies at 150 with
	// stock 25, buyer adds 3 to cart, purchase as "Alex" paying cash:
	// stock drops to 22 and exactly one transaction of 450 is recorded.
	records := record.NewMemory()
	eng := NewEngine(records)
	ctx := context.Background()

	cookies := model.Product{ID: "cookies", Name: "Cookies", Price: 150, Stock: 25}
	seedStore(t, records, cookies)

	cart := &Cart{}
	for i := 0; i < 3; i++ {
		cart.Add(cookies)
	}
	assert.Equal(t, 450.0, cart.Total())

	tx, err := eng.Purchase(ctx, "s1", cart, "Alex", model.PaymentCashBox)
	require.NoError(t, err)
	assert.Equal(t, 450.0, tx.Total)

	stores, err := record.Load[model.Store](ctx, records, record.Stores)
	require.NoError(t, err)
	assert.Equal(t, 22, stores[0].Products[0].Stock)
	require.Len(t, stores[0].Transactions, 1)
	assert.Equal(t, 450.0, stores[0].Transactions[0].Total)
}

func TestStockStaysInBoundsAfterPurchases(t *testing.T) {
	records := record.NewMemory()
	eng := NewEngine(records)
	ctx := context.Background()

	p := sampleProduct("p1", 10, 5)
	seedStore(t, records, p)

	// Buy everything one unit at a time.
	for i := 0; i < 5; i++ {
		cart := &Cart{}
		stores, err := record.Load[model.Store](ctx, records, record.Stores)
		require.NoError(t, err)
		cart.Add(stores[0].Products[0])
		_, err = eng.Purchase(ctx, "s1", cart, "Buyer", model.PaymentGCash)
		require.NoError(t, err)
	}

	stores, err := record.Load[model.Store](ctx, records, record.Stores)
	require.NoError(t, err)
	assert.Equal(t, 0, stores[0].Products[0].Stock)

	// Sold out: add-to-cart refuses, so no purchase can underflow.
	cart := &Cart{}
	cart.Add(stores[0].Products[0])
	assert.True(t, cart.Empty())
}
