// Package catalog owns store and listing inventory: product CRUD scoped
// to the owning account, the per-product stock ceiling and the per-seller
// product count ceiling.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantry-backend/internal/config"
	"pantry-backend/internal/errs"
	"pantry-backend/internal/model"
	"pantry-backend/internal/record"
)

type Service struct {
	records record.Store
	limits  config.Limits
}

func New(records record.Store, limits config.Limits) *Service {
	return &Service{records: records, limits: limits}
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
}

type ListingInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Available   bool
}

// Stores returns the public store directory with credentials blanked.
func (s *Service) Stores(ctx context.Context) ([]model.Store, error) {
	stores, err := record.Load[model.Store](ctx, s.records, record.Stores)
	if err != nil {
		return nil, err
	}
	for i := range stores {
		stores[i].Password = ""
	}
	return stores, nil
}

// GetStore looks up one store by id.
func (s *Service) GetStore(ctx context.Context, storeID string) (model.Store, error) {
	stores, err := record.Load[model.Store](ctx, s.records, record.Stores)
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

// AddProduct appends a new product to the store. Stock is capped by the
// per-product ceiling and the store is capped by the per-seller product
// count.
func (s *Service) AddProduct(ctx context.Context, storeID string, in ProductInput) (model.Product, error) {
	if err := validateProduct(in.Name, in.Description, in.Category, in.Price); err != nil {
		return model.Product{}, err
	}
	if in.Stock < 0 {
		return model.Product{}, errs.Validationf("stock must not be negative")
	}
	if in.Stock > s.limits.MaxStockPerProduct {
		return model.Product{}, errs.Capacityf("maximum stock per product is %d items", s.limits.MaxStockPerProduct)
	}
	stores, err := record.Load[model.Store](ctx, s.records, record.Stores)
	if err != nil {
		return model.Product{}, err
	}
	idx := storeIndex(stores, storeID)
	if idx == -1 {
		return model.Product{}, errs.NotFoundf("store %s", storeID)
	}
	if len(stores[idx].Products) >= s.limits.MaxProductsPerSeller {
		return model.Product{}, errs.Capacityf("maximum of %d products per store", s.limits.MaxProductsPerSeller)
	}
	p := model.Product{
		ID:          uuid.NewString(),
		StoreID:     storeID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		CreatedAt:   time.Now().UTC(),
	}
	stores[idx].Products = append(stores[idx].Products, p)
	if err := record.Save(ctx, s.records, record.Stores, stores); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// EditProduct replaces the editable fields of an owned product. Stock is
// not edited here, only checkout mutates it.
func (s *Service) EditProduct(ctx context.Context, storeID, productID string, in ProductInput) (model.Product, error) {
	if err := validateProduct(in.Name, in.Description, in.Category, in.Price); err != nil {
		return model.Product{}, err
	}
	stores, err := record.Load[model.Store](ctx, s.records, record.Stores)
	if err != nil {
		return model.Product{}, err
	}
	idx := storeIndex(stores, storeID)
	if idx == -1 {
		return model.Product{}, errs.NotFoundf("store %s", storeID)
	}
	for i := range stores[idx].Products {
		p := &stores[idx].Products[i]
		if p.ID != productID {
			continue
		}
		p.Name = in.Name
		p.Description = in.Description
		p.Price = in.Price
		p.Category = in.Category
		p.UpdatedAt = time.Now().UTC()
		if err := record.Save(ctx, s.records, record.Stores, stores); err != nil {
			return model.Product{}, err
		}
		return *p, nil
	}
	return model.Product{}, errs.NotFoundf("product %s", productID)
}

// DeleteProduct removes a product from the store. Deleting an id that is
// not there is a silent no-op.
func (s *Service) DeleteProduct(ctx context.Context, storeID, productID string) error {
	stores, err := record.Load[model.Store](ctx, s.records, record.Stores)
	if err != nil {
		return err
	}
	idx := storeIndex(stores, storeID)
	if idx == -1 {
		return errs.NotFoundf("store %s", storeID)
	}
	kept := stores[idx].Products[:0]
	for _, p := range stores[idx].Products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	stores[idx].Products = kept
	return record.Save(ctx, s.records, record.Stores, stores)
}

// AddListing creates a marketplace listing for the seller, denormalizing
// the seller's display name onto it.
func (s *Service) AddListing(ctx context.Context, sellerID string, in ListingInput) (model.Product, error) {
	if err := validateProduct(in.Name, in.Description, in.Category, in.Price); err != nil {
		return model.Product{}, err
	}
	sellers, err := record.Load[model.Seller](ctx, s.records, record.Sellers)
	if err != nil {
		return model.Product{}, err
	}
	sellerName := ""
	for _, sl := range sellers {
		if sl.ID == sellerID {
			sellerName = sl.Name
			break
		}
	}
	if sellerName == "" {
		return model.Product{}, errs.NotFoundf("seller %s", sellerID)
	}
	products, err := record.Load[model.Product](ctx, s.records, record.Products)
	if err != nil {
		return model.Product{}, err
	}
	owned := 0
	for _, p := range products {
		if p.SellerID == sellerID {
			owned++
		}
	}
	if owned >= s.limits.MaxProductsPerSeller {
		return model.Product{}, errs.Capacityf("maximum of %d listings per seller", s.limits.MaxProductsPerSeller)
	}
	p := model.Product{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		SellerName:  sellerName,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Available:   in.Available,
		Reviews:     []model.Review{},
		CreatedAt:   time.Now().UTC(),
	}
	products = append(products, p)
	if err := record.Save(ctx, s.records, record.Products, products); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// EditListing replaces the editable fields of a listing the seller owns.
func (s *Service) EditListing(ctx context.Context, sellerID, productID string, in ListingInput) (model.Product, error) {
	if err := validateProduct(in.Name, in.Description, in.Category, in.Price); err != nil {
		return model.Product{}, err
	}
	products, err := record.Load[model.Product](ctx, s.records, record.Products)
	if err != nil {
		return model.Product{}, err
	}
	for i := range products {
		p := &products[i]
		if p.ID != productID {
			continue
		}
		if p.SellerID != sellerID {
			return model.Product{}, errs.NotFoundf("product %s", productID)
		}
		p.Name = in.Name
		p.Description = in.Description
		p.Price = in.Price
		p.Category = in.Category
		p.Available = in.Available
		p.UpdatedAt = time.Now().UTC()
		if err := record.Save(ctx, s.records, record.Products, products); err != nil {
			return model.Product{}, err
		}
		return *p, nil
	}
	return model.Product{}, errs.NotFoundf("product %s", productID)
}

// DeleteListing removes an owned listing; a missing id is a silent no-op.
func (s *Service) DeleteListing(ctx context.Context, sellerID, productID string) error {
	products, err := record.Load[model.Product](ctx, s.records, record.Products)
	if err != nil {
		return err
	}
	kept := products[:0]
	for _, p := range products {
		if p.ID == productID && p.SellerID == sellerID {
			continue
		}
		kept = append(kept, p)
	}
	return record.Save(ctx, s.records, record.Products, kept)
}

// GetListing returns one listing together with its seller's public info.
func (s *Service) GetListing(ctx context.Context, productID string) (model.Product, model.Seller, error) {
	products, err := record.Load[model.Product](ctx, s.records, record.Products)
	if err != nil {
		return model.Product{}, model.Seller{}, err
	}
	for _, p := range products {
		if p.ID != productID {
			continue
		}
		sellers, err := record.Load[model.Seller](ctx, s.records, record.Sellers)
		if err != nil {
			return model.Product{}, model.Seller{}, err
		}
		for _, sl := range sellers {
			if sl.ID == p.SellerID {
				sl.Password = ""
				return p, sl, nil
			}
		}
		return p, model.Seller{}, nil
	}
	return model.Product{}, model.Seller{}, errs.NotFoundf("product %s", productID)
}

// SearchListings returns available listings matching the query and
// category. The query is a case-insensitive substring over name,
// description and seller name; an empty or "All Categories" category
// matches everything.
func (s *Service) SearchListings(ctx context.Context, query, category string) ([]model.Product, error) {
	products, err := record.Load[model.Product](ctx, s.records, record.Products)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := []model.Product{}
	for _, p := range products {
		if !p.Available {
			continue
		}
		if category != "" && category != "All Categories" && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.SellerName), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func validateProduct(name, description, category string, price float64) error {
	if name == "" || description == "" || category == "" {
		return errs.Validationf("name, description and category are required")
	}
	if price < 0 {
		return errs.Validationf("price must not be negative")
	}
	return nil
}

func storeIndex(stores []model.Store, id string) int {
	for i := range stores {
		if stores[i].ID == id {
			return i
		}
	}
	return -1
}
