package httpapi

import (
	"github.com/gin-gonic/gin"

	"pantry-backend/internal/account"
	"pantry-backend/internal/catalog"
	"pantry-backend/internal/checkout"
	"pantry-backend/internal/model"
	"pantry-backend/internal/qr"
	"pantry-backend/internal/record"
)

// ----- Auth -----

func (s *Server) registerStore(c *gin.Context) {
	var req struct {
		StoreName   string `json:"storeName" binding:"required"`
		OwnerName   string `json:"ownerName" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		Phone       string `json:"phone"`
		GcashNumber string `json:"gcashNumber"`
		GcashName   string `json:"gcashName"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	st, err := s.gate.RegisterStore(c.Request.Context(), account.StoreInput{
		StoreName:   req.StoreName,
		OwnerName:   req.OwnerName,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		GcashNumber: req.GcashNumber,
		GcashName:   req.GcashName,
		Description: req.Description,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	tokenStr, err := s.token(st.ID, kindStore)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"store": st, "token": tokenStr})
}

func (s *Server) registerSeller(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		Phone       string `json:"phone"`
		Address     string `json:"address"`
		Bio         string `json:"bio"`
		GcashNumber string `json:"gcashNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	sl, err := s.gate.RegisterSeller(c.Request.Context(), account.SellerInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		Address:     req.Address,
		Bio:         req.Bio,
		GcashNumber: req.GcashNumber,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	tokenStr, err := s.token(sl.ID, kindSeller)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"seller": sl, "token": tokenStr})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) loginStore(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	st, err := s.gate.LoginStore(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpError(c, err)
		return
	}
	tokenStr, err := s.token(st.ID, kindStore)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"store": st, "token": tokenStr})
}

func (s *Server) loginSeller(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	sl, err := s.gate.LoginSeller(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpError(c, err)
		return
	}
	tokenStr, err := s.token(sl.ID, kindSeller)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"seller": sl, "token": tokenStr})
}

func (s *Server) logout(c *gin.Context) {
	collection := record.CurrentStore
	if c.GetString("accountKind") == kindSeller {
		collection = record.CurrentSeller
	}
	if err := s.gate.Logout(c.Request.Context(), collection); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"status": "logged out"})
}

// ----- Stores -----

func (s *Server) listStores(c *gin.Context) {
	stores, err := s.catalog.Stores(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, stores)
}

func (s *Server) getStore(c *gin.Context) {
	st, err := s.engine.LookupStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, st)
}

func (s *Server) dashboard(c *gin.Context) {
	if c.GetString("accountKind") != kindStore {
		c.JSON(403, gin.H{"error": "store account required"})
		return
	}
	st, err := s.catalog.GetStore(c.Request.Context(), c.GetString("accountId"))
	if err != nil {
		httpError(c, err)
		return
	}
	totalStock := 0
	for _, p := range st.Products {
		totalStock += p.Stock
	}
	revenue := 0.0
	for _, t := range st.Transactions {
		revenue += t.Total
	}
	c.JSON(200, gin.H{
		"store":      st,
		"totalStock": totalStock,
		"revenue":    revenue,
		"sales":      len(st.Transactions),
	})
}

// ----- Store inventory -----

type productRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Stock       *int     `json:"stock" binding:"required"`
}

func (s *Server) addProduct(c *gin.Context) {
	if c.GetString("accountKind") != kindStore {
		c.JSON(403, gin.H{"error": "store account required"})
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	p, err := s.catalog.AddProduct(c.Request.Context(), c.GetString("accountId"), catalog.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Stock:       *req.Stock,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, p)
}

func (s *Server) editProduct(c *gin.Context) {
	if c.GetString("accountKind") != kindStore {
		c.JSON(403, gin.H{"error": "store account required"})
		return
	}
	var req struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Price       *float64 `json:"price" binding:"required"`
		Category    string   `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	p, err := s.catalog.EditProduct(c.Request.Context(), c.GetString("accountId"), c.Param("id"), catalog.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if c.GetString("accountKind") != kindStore {
		c.JSON(403, gin.H{"error": "store account required"})
		return
	}
	if err := s.catalog.DeleteProduct(c.Request.Context(), c.GetString("accountId"), c.Param("id")); err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "deleted"})
}

// ----- Checkout -----

func (s *Server) storeCheckout(c *gin.Context) {
	var req struct {
		BuyerName     string `json:"buyerName"`
		PaymentMethod string `json:"paymentMethod"`
		Items         []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	st, err := s.engine.LookupStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpError(c, err)
		return
	}

	// Rebuild the cart server-side so quantities stay bounded by stock.
	cart := &checkout.Cart{}
	for _, item := range req.Items {
		for _, p := range st.Products {
			if p.ID == item.ProductID {
				for i := 0; i < item.Quantity; i++ {
					cart.Add(p)
				}
				break
			}
		}
	}

	tx, err := s.engine.Purchase(c.Request.Context(), st.ID, cart, req.BuyerName, req.PaymentMethod)
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "transaction": tx})
}

// ----- Marketplace -----

func (s *Server) marketplace(c *gin.Context) {
	products, err := s.catalog.SearchListings(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"products": products, "categories": model.FoodCategories})
}

func (s *Server) getListing(c *gin.Context) {
	p, seller, err := s.catalog.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, gin.H{"product": p, "seller": seller})
}

type listingRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Available   bool     `json:"available"`
}

func (s *Server) addListing(c *gin.Context) {
	if c.GetString("accountKind") != kindSeller {
		c.JSON(403, gin.H{"error": "seller account required"})
		return
	}
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	p, err := s.catalog.AddListing(c.Request.Context(), c.GetString("accountId"), catalog.ListingInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Available:   req.Available,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, p)
}

func (s *Server) editListing(c *gin.Context) {
	if c.GetString("accountKind") != kindSeller {
		c.JSON(403, gin.H{"error": "seller account required"})
		return
	}
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	p, err := s.catalog.EditListing(c.Request.Context(), c.GetString("accountId"), c.Param("id"), catalog.ListingInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		Available:   req.Available,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, p)
}

func (s *Server) deleteListing(c *gin.Context) {
	if c.GetString("accountKind") != kindSeller {
		c.JSON(403, gin.H{"error": "seller account required"})
		return
	}
	if err := s.catalog.DeleteListing(c.Request.Context(), c.GetString("accountId"), c.Param("id")); err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "deleted"})
}

func (s *Server) updateProfile(c *gin.Context) {
	if c.GetString("accountKind") != kindSeller {
		c.JSON(403, gin.H{"error": "seller account required"})
		return
	}
	var req struct {
		Name        string `json:"name" binding:"required"`
		Phone       string `json:"phone"`
		Address     string `json:"address"`
		Bio         string `json:"bio"`
		GcashNumber string `json:"gcashNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	sl, err := s.gate.UpdateSellerProfile(c.Request.Context(), c.GetString("accountId"), account.ProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		Bio:         req.Bio,
		GcashNumber: req.GcashNumber,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, sl)
}

// ----- Reviews -----

func (s *Server) submitReview(c *gin.Context) {
	var req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	reviewerID := c.GetString("accountId")
	reviewerName := s.accountName(c)
	p, err := s.reviews.Submit(c.Request.Context(), c.Param("id"), reviewerID, reviewerName, req.Rating, req.Comment)
	if err != nil {
		httpError(c, err)
		return
	}
	c.JSON(200, p)
}

// accountName resolves the display name of the authenticated account for
// denormalized fields like review author names.
func (s *Server) accountName(c *gin.Context) string {
	id := c.GetString("accountId")
	ctx := c.Request.Context()
	if c.GetString("accountKind") == kindStore {
		stores, err := record.Load[model.Store](ctx, s.records, record.Stores)
		if err == nil {
			for _, st := range stores {
				if st.ID == id {
					return st.OwnerName
				}
			}
		}
		return ""
	}
	sellers, err := record.Load[model.Seller](ctx, s.records, record.Sellers)
	if err == nil {
		for _, sl := range sellers {
			if sl.ID == id {
				return sl.Name
			}
		}
	}
	return ""
}

// ----- QR -----

func (s *Server) storeQR(c *gin.Context) {
	st, err := s.engine.LookupStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpError(c, err)
		return
	}
	img, err := s.qr.Fetch(c.Request.Context(), qr.StoreURL(s.origin, st.ID), 400)
	if err != nil {
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}
	c.Data(200, "image/png", img)
}

func (s *Server) listingQR(c *gin.Context) {
	p, _, err := s.catalog.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpError(c, err)
		return
	}
	img, err := s.qr.Fetch(c.Request.Context(), qr.ProductURL(s.origin, p.ID), 300)
	if err != nil {
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}
	c.Data(200, "image/png", img)
}

// scan resolves a scanned or typed reference (a bare id or a full browse
// URL) to the store's canonical URL.
func (s *Server) scan(c *gin.Context) {
	ref := c.Query("ref")
	id := qr.ParseStoreRef(ref)
	if id == "" {
		c.JSON(400, gin.H{"error": "empty reference"})
		return
	}
	c.JSON(200, gin.H{"storeId": id, "url": qr.StoreURL(s.origin, id)})
}
