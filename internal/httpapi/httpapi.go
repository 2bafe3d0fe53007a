// Package httpapi maps the marketplace services onto a gin route table.
package httpapi

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"pantry-backend/internal/account"
	"pantry-backend/internal/catalog"
	"pantry-backend/internal/checkout"
	"pantry-backend/internal/errs"
	"pantry-backend/internal/qr"
	"pantry-backend/internal/record"
	"pantry-backend/internal/review"
)

const (
	kindStore  = "store"
	kindSeller = "seller"
)

type Server struct {
	gate      *account.Gate
	catalog   *catalog.Service
	engine    *checkout.Engine
	reviews   *review.Aggregator
	qr        *qr.Renderer
	records   record.Store
	jwtSecret []byte
	origin    string
}

func New(gate *account.Gate, cat *catalog.Service, eng *checkout.Engine, agg *review.Aggregator, renderer *qr.Renderer, records record.Store, jwtSecret, origin string) *Server {
	return &Server{
		gate:      gate,
		catalog:   cat,
		engine:    eng,
		reviews:   agg,
		qr:        renderer,
		records:   records,
		jwtSecret: []byte(jwtSecret),
		origin:    origin,
	}
}

// Register wires every route onto the engine.
func (s *Server) Register(r *gin.Engine) {
	// Auth
	r.POST("/api/stores/register", s.registerStore)
	r.POST("/api/sellers/register", s.registerSeller)
	r.POST("/api/stores/login", s.loginStore)
	r.POST("/api/sellers/login", s.loginSeller)

	// Public browsing
	r.GET("/api/stores", s.listStores)
	r.GET("/api/stores/:id", s.getStore)
	r.GET("/api/stores/:id/qr", s.storeQR)
	r.POST("/api/stores/:id/checkout", s.storeCheckout)
	r.GET("/api/marketplace", s.marketplace)
	r.GET("/api/products/:id", s.getListing)
	r.GET("/api/products/:id/qr", s.listingQR)
	r.GET("/api/scan", s.scan)

	auth := r.Group("/api", s.AuthMiddleware)
	{
		auth.POST("/logout", s.logout)

		// Store inventory
		auth.GET("/dashboard", s.dashboard)
		auth.POST("/products", s.addProduct)
		auth.PUT("/products/:id", s.editProduct)
		auth.DELETE("/products/:id", s.deleteProduct)

		// Marketplace listings
		auth.POST("/listings", s.addListing)
		auth.PUT("/listings/:id", s.editListing)
		auth.DELETE("/listings/:id", s.deleteListing)
		auth.PUT("/profile", s.updateProfile)
		auth.POST("/products/:id/reviews", s.submitReview)
	}
}

type jwtClaims struct {
	AccountID string `json:"accountId"`
	Kind      string `json:"kind"`
	jwt.StandardClaims
}

func (s *Server) token(accountID, kind string) (string, error) {
	claims := jwtClaims{
		AccountID: accountID,
		Kind:      kind,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *Server) AuthMiddleware(c *gin.Context) {
	tokenStr := c.GetHeader("Authorization")
	if len(tokenStr) < 8 {
		c.AbortWithStatusJSON(401, gin.H{"error": "missing token"})
		return
	}
	tokenStr = tokenStr[7:] // strip "Bearer "
	token, err := jwt.ParseWithClaims(tokenStr, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
		return
	}
	if claims, ok := token.Claims.(*jwtClaims); ok && token.Valid {
		c.Set("accountId", claims.AccountID)
		c.Set("accountKind", claims.Kind)
		c.Next()
	} else {
		c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
	}
}

// httpError translates the core error kinds to status codes. Everything
// recoverable stays a 4xx; only storage failures become 500s.
func httpError(c *gin.Context, err error) {
	switch {
	case errs.IsValidation(err):
		c.JSON(400, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrInvalidCredentials):
		c.JSON(401, gin.H{"error": err.Error()})
	case errs.IsForbidden(err):
		c.JSON(403, gin.H{"error": err.Error()})
	case errs.IsNotFound(err):
		c.JSON(404, gin.H{"error": err.Error()})
	case errs.IsCapacity(err), errors.Is(err, errs.ErrDuplicateEmail):
		c.JSON(409, gin.H{"error": err.Error()})
	default:
		c.JSON(500, gin.H{"error": err.Error()})
	}
}
