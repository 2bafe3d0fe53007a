package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pantry-backend/internal/account"
	"pantry-backend/internal/catalog"
	"pantry-backend/internal/checkout"
	"pantry-backend/internal/config"
	"pantry-backend/internal/httpapi"
	"pantry-backend/internal/qr"
	"pantry-backend/internal/record"
	"pantry-backend/internal/review"
)

func main() {
	cfg, err := config.Load(os.Getenv("PANTRY_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	var records record.Store
	switch cfg.Storage.Backend {
	case "redis":
		r, err := record.NewRedis(cfg.Storage.RedisURL, cfg.Storage.Namespace)
		if err != nil {
			log.Fatal(err)
		}
		defer r.Close()
		records = r
		log.Println("using redis record store")
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		m, err := record.NewMongo(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDatabase)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		defer m.Close(context.Background())
		records = m
		log.Println("using mongo record store")
	default:
		records = record.NewMemory()
		log.Println("using in-memory record store, data is lost on restart")
	}

	gate := account.NewGate(records, cfg.Limits)
	cat := catalog.New(records, cfg.Limits)
	eng := checkout.NewEngine(records)
	agg := review.NewAggregator(records)
	renderer := qr.NewRenderer(cfg.QREndpoint)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := httpapi.New(gate, cat, eng, agg, renderer, records, cfg.JWTSecret, cfg.PublicOrigin)
	api.Register(r)

	log.Println("listening on", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
