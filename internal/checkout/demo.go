package checkout

import "pantry-backend/internal/model"

// DemoStoreID addresses the read-only sandbox store. Browsing and buying
// against it never touches persistence.
const DemoStoreID = "demo-store"

// DemoStore returns a fresh copy of the sandbox store fixture.
func DemoStore() model.Store {
	return model.Store{
		ID:          DemoStoreID,
		StoreName:   "Sarah's Sweet Treats",
		OwnerName:   "Sarah Johnson",
		Description: "Homemade sweets and treats made with love",
		GcashNumber: "09123456789",
		GcashName:   "Sarah Johnson",
		Products: []model.Product{
			{
				ID:          "1",
				Name:        "Chocolate Chip Cookies",
				Description: "Freshly baked cookies with premium chocolate chips",
				Price:       150,
				Category:    model.CategorySweet,
				Stock:       25,
			},
			{
				ID:          "2",
				Name:        "Chicken Adobo",
				Description: "Traditional Filipino chicken adobo with rice",
				Price:       120,
				Category:    model.CategoryViand,
				Stock:       15,
			},
			{
				ID:          "3",
				Name:        "Fresh Fruit Salad",
				Description: "Mixed seasonal fruits with cream",
				Price:       80,
				Category:    model.CategoryOthers,
				Stock:       10,
			},
		},
		Transactions: []model.Transaction{},
	}
}
