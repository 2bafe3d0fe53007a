package model

import "time"

// Store categories for the pantry pickup flow.
const (
	CategorySweet  = "Sweet"
	CategoryViand  = "Viand"
	CategoryOthers = "Others"
)

// FoodCategories are the richer marketplace listing categories.
var FoodCategories = []string{
	"Baked Goods",
	"Fresh Produce",
	"Dairy Products",
	"Meat & Poultry",
	"Seafood",
	"Beverages",
	"Snacks",
	"Condiments & Sauces",
	"Prepared Meals",
	"Desserts",
}

// Payment methods are informational labels, no processing happens.
const (
	PaymentGCash   = "gcash"
	PaymentCashBox = "cash"
)

type Store struct {
	ID           string        `json:"id"`
	StoreName    string        `json:"storeName"`
	OwnerName    string        `json:"ownerName"`
	Email        string        `json:"email"`
	Password     string        `json:"password,omitempty"`
	Phone        string        `json:"phone"`
	GcashNumber  string        `json:"gcashNumber"`
	GcashName    string        `json:"gcashName"`
	Description  string        `json:"description"`
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Product is used both embedded in a Store (pantry variant, stock-bearing)
// and as a standalone marketplace listing (sellus variant, review-bearing).
type Product struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"storeId,omitempty"`
	SellerID    string    `json:"sellerId,omitempty"`
	SellerName  string    `json:"sellerName,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Available   bool      `json:"available"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	Reviews     []Review  `json:"reviews,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// CartLine snapshots a product at add-to-cart time. Stock is the ceiling
// observed then; quantity never exceeds it.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

type Transaction struct {
	ID            string     `json:"id"`
	BuyerName     string     `json:"buyerName"`
	Items         []CartLine `json:"items"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	Timestamp     time.Time  `json:"timestamp"`
}

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Seller is a marketplace account. Rating and ReviewCount are derived
// aggregates over the seller's listings, never set directly.
type Seller struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password,omitempty"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Bio         string    `json:"bio"`
	GcashNumber string    `json:"gcashNumber"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
