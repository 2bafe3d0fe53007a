// Package checkout owns the cart and the purchase transaction: stock was
// bounded at add-to-cart time, so a purchase decrements stock without
// re-checking and appends exactly one immutable transaction to the store.
package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantry-backend/internal/errs"
	"pantry-backend/internal/model"
	"pantry-backend/internal/record"
)

type Engine struct {
	records record.Store
}

func NewEngine(records record.Store) *Engine {
	return &Engine{records: records}
}

// LookupStore resolves a store for browsing, serving the demo fixture for
// the sandbox id and the master collection otherwise.
func (e *Engine) LookupStore(ctx context.Context, storeID string) (model.Store, error) {
	if storeID == DemoStoreID {
		return DemoStore(), nil
	}
	stores, err := record.Load[model.Store](ctx, e.records, record.Stores)
	if err != nil {
		return model.Store{}, err
	}
	for _, st := range stores {
		if st.ID == storeID {
			st.Password = ""
			return st, nil
		}
	}
	return model.Store{}, errs.NotFoundf("store %s", storeID)
}

// Purchase completes the checkout: it validates the buyer input, builds a
// transaction snapshotting the cart, decrements the stock of every
// purchased product and appends the transaction to the store, persisting
// both in one write of the store collection. The cart is cleared on
// success. A purchase against the demo store simulates success without
// persisting anything.
func (e *Engine) Purchase(ctx context.Context, storeID string, cart *Cart, buyerName, paymentMethod string) (model.Transaction, error) {
	buyerName = strings.TrimSpace(buyerName)
	if buyerName == "" {
		return model.Transaction{}, errs.Validationf("please enter your name")
	}
	if paymentMethod != model.PaymentGCash && paymentMethod != model.PaymentCashBox {
		return model.Transaction{}, errs.Validationf("please select a payment method")
	}
	if cart.Empty() {
		return model.Transaction{}, errs.Validationf("your cart is empty")
	}

	items := make([]model.CartLine, len(cart.Lines))
	copy(items, cart.Lines)
	tx := model.Transaction{
		ID:            uuid.NewString(),
		BuyerName:     buyerName,
		Items:         items,
		Total:         cart.Total(),
		PaymentMethod: paymentMethod,
		Timestamp:     time.Now().UTC(),
	}

	if storeID == DemoStoreID {
		cart.Clear()
		return tx, nil
	}

	stores, err := record.Load[model.Store](ctx, e.records, record.Stores)
	if err != nil {
		return model.Transaction{}, err
	}
	idx := -1
	for i := range stores {
		if stores[i].ID == storeID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Transaction{}, errs.NotFoundf("store %s", storeID)
	}

	for _, line := range tx.Items {
		for i := range stores[idx].Products {
			if stores[idx].Products[i].ID == line.ProductID {
				stores[idx].Products[i].Stock -= line.Quantity
				break
			}
		}
	}
	stores[idx].Transactions = append(stores[idx].Transactions, tx)

	if err := record.Save(ctx, e.records, record.Stores, stores); err != nil {
		return model.Transaction{}, err
	}
	cart.Clear()
	return tx, nil
}
