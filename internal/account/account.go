// Package account is the registration gate: store and seller signup
// against the platform capacity ceilings, login, and profile updates
// including the sellerName cascade onto marketplace listings.
package account

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pantry-backend/internal/config"
	"pantry-backend/internal/errs"
	"pantry-backend/internal/model"
	"pantry-backend/internal/record"
)

type Gate struct {
	records record.Store
	limits  config.Limits
}

func NewGate(records record.Store, limits config.Limits) *Gate {
	return &Gate{records: records, limits: limits}
}

type StoreInput struct {
	StoreName   string
	OwnerName   string
	Email       string
	Password    string
	Phone       string
	GcashNumber string
	GcashName   string
	Description string
}

type SellerInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	Address     string
	Bio         string
	GcashNumber string
}

type ProfileInput struct {
	Name        string
	Phone       string
	Address     string
	Bio         string
	GcashNumber string
}

// RegisterStore creates a store account, enforcing the platform store
// ceiling and email uniqueness, and makes it the active store session.
// The returned store has its password hash blanked.
func (g *Gate) RegisterStore(ctx context.Context, in StoreInput) (model.Store, error) {
	if in.StoreName == "" || in.OwnerName == "" || in.Email == "" || in.Password == "" {
		return model.Store{}, errs.Validationf("store name, owner name, email and password are required")
	}
	stores, err := record.Load[model.Store](ctx, g.records, record.Stores)
	if err != nil {
		return model.Store{}, err
	}
	if len(stores) >= g.limits.MaxStores {
		return model.Store{}, errs.Capacityf("registration is closed, the %d store limit was reached", g.limits.MaxStores)
	}
	for _, s := range stores {
		if strings.EqualFold(s.Email, in.Email) {
			return model.Store{}, errs.ErrDuplicateEmail
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Store{}, err
	}
	st := model.Store{
		ID:           uuid.NewString(),
		StoreName:    in.StoreName,
		OwnerName:    in.OwnerName,
		Email:        in.Email,
		Password:     string(hash),
		Phone:        in.Phone,
		GcashNumber:  in.GcashNumber,
		GcashName:    in.GcashName,
		Description:  in.Description,
		Products:     []model.Product{},
		Transactions: []model.Transaction{},
		CreatedAt:    time.Now().UTC(),
	}
	stores = append(stores, st)
	if err := record.Save(ctx, g.records, record.Stores, stores); err != nil {
		return model.Store{}, err
	}
	if err := record.SetCurrent(ctx, g.records, record.CurrentStore, st.ID); err != nil {
		return model.Store{}, err
	}
	st.Password = ""
	return st, nil
}

// RegisterSeller creates a marketplace seller account with zeroed rating
// aggregates and makes it the active seller session.
func (g *Gate) RegisterSeller(ctx context.Context, in SellerInput) (model.Seller, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return model.Seller{}, errs.Validationf("name, email and password are required")
	}
	sellers, err := record.Load[model.Seller](ctx, g.records, record.Sellers)
	if err != nil {
		return model.Seller{}, err
	}
	if len(sellers) >= g.limits.MaxSellers {
		return model.Seller{}, errs.Capacityf("registration is closed, the %d seller limit was reached", g.limits.MaxSellers)
	}
	for _, s := range sellers {
		if strings.EqualFold(s.Email, in.Email) {
			return model.Seller{}, errs.ErrDuplicateEmail
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Seller{}, err
	}
	sl := model.Seller{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Password:    string(hash),
		Phone:       in.Phone,
		Address:     in.Address,
		Bio:         in.Bio,
		GcashNumber: in.GcashNumber,
		Rating:      0,
		ReviewCount: 0,
		CreatedAt:   time.Now().UTC(),
	}
	sellers = append(sellers, sl)
	if err := record.Save(ctx, g.records, record.Sellers, sellers); err != nil {
		return model.Seller{}, err
	}
	if err := record.SetCurrent(ctx, g.records, record.CurrentSeller, sl.ID); err != nil {
		return model.Seller{}, err
	}
	sl.Password = ""
	return sl, nil
}

// LoginStore authenticates a store account by email and password and sets
// the active store session.
func (g *Gate) LoginStore(ctx context.Context, email, password string) (model.Store, error) {
	stores, err := record.Load[model.Store](ctx, g.records, record.Stores)
	if err != nil {
		return model.Store{}, err
	}
	for _, s := range stores {
		if strings.EqualFold(s.Email, email) {
			if bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(password)) != nil {
				return model.Store{}, errs.ErrInvalidCredentials
			}
			if err := record.SetCurrent(ctx, g.records, record.CurrentStore, s.ID); err != nil {
				return model.Store{}, err
			}
			s.Password = ""
			return s, nil
		}
	}
	return model.Store{}, errs.ErrInvalidCredentials
}

// LoginSeller authenticates a seller account and sets the active seller
// session.
func (g *Gate) LoginSeller(ctx context.Context, email, password string) (model.Seller, error) {
	sellers, err := record.Load[model.Seller](ctx, g.records, record.Sellers)
	if err != nil {
		return model.Seller{}, err
	}
	for _, s := range sellers {
		if strings.EqualFold(s.Email, email) {
			if bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(password)) != nil {
				return model.Seller{}, errs.ErrInvalidCredentials
			}
			if err := record.SetCurrent(ctx, g.records, record.CurrentSeller, s.ID); err != nil {
				return model.Seller{}, err
			}
			s.Password = ""
			return s, nil
		}
	}
	return model.Seller{}, errs.ErrInvalidCredentials
}

// UpdateSellerProfile replaces the seller's profile fields. A name change
// cascades to the denormalized sellerName on every listing the seller
// owns.
func (g *Gate) UpdateSellerProfile(ctx context.Context, sellerID string, in ProfileInput) (model.Seller, error) {
	if in.Name == "" {
		return model.Seller{}, errs.Validationf("name is required")
	}
	sellers, err := record.Load[model.Seller](ctx, g.records, record.Sellers)
	if err != nil {
		return model.Seller{}, err
	}
	idx := -1
	for i := range sellers {
		if sellers[i].ID == sellerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return model.Seller{}, errs.NotFoundf("seller %s", sellerID)
	}
	renamed := sellers[idx].Name != in.Name
	sellers[idx].Name = in.Name
	sellers[idx].Phone = in.Phone
	sellers[idx].Address = in.Address
	sellers[idx].Bio = in.Bio
	sellers[idx].GcashNumber = in.GcashNumber
	if err := record.Save(ctx, g.records, record.Sellers, sellers); err != nil {
		return model.Seller{}, err
	}
	if renamed {
		products, err := record.Load[model.Product](ctx, g.records, record.Products)
		if err != nil {
			return model.Seller{}, err
		}
		for i := range products {
			if products[i].SellerID == sellerID {
				products[i].SellerName = in.Name
			}
		}
		if err := record.Save(ctx, g.records, record.Products, products); err != nil {
			return model.Seller{}, err
		}
	}
	out := sellers[idx]
	out.Password = ""
	return out, nil
}

// Logout clears the given session pointer.
func (g *Gate) Logout(ctx context.Context, sessionCollection string) error {
	return record.SetCurrent(ctx, g.records, sessionCollection, "")
}
