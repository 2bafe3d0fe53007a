// Package config loads server configuration from an optional YAML file
// with environment overrides. Every capacity ceiling is a named limit;
// the platform historically reused the constant 30 for all of them, so
// they default to 30 but are tunable independently.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Limits struct {
	MaxStores            int `yaml:"max_stores"`
	MaxSellers           int `yaml:"max_sellers"`
	MaxStockPerProduct   int `yaml:"max_stock_per_product"`
	MaxProductsPerSeller int `yaml:"max_products_per_seller"`
}

type Storage struct {
	// Backend selects the record store: "memory", "redis" or "mongo".
	Backend       string `yaml:"backend"`
	RedisURL      string `yaml:"redis_url"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	// Namespace prefixes every collection key so multiple deployments can
	// share one Redis instance.
	Namespace string `yaml:"namespace"`
}

type Config struct {
	Addr         string   `yaml:"addr"`
	PublicOrigin string   `yaml:"public_origin"`
	AllowOrigins []string `yaml:"allow_origins"`
	JWTSecret    string   `yaml:"jwt_secret"`
	QREndpoint   string   `yaml:"qr_endpoint"`
	Storage      Storage  `yaml:"storage"`
	Limits       Limits   `yaml:"limits"`
}

func Default() Config {
	return Config{
		Addr:         ":8080",
		PublicOrigin: "http://localhost:8080",
		AllowOrigins: []string{"http://localhost:3000"},
		JWTSecret:    "SECRET",
		QREndpoint:   "https://api.qrserver.com/v1/create-qr-code/",
		Storage: Storage{
			Backend:       "memory",
			MongoDatabase: "pantry",
			Namespace:     "pantry",
		},
		Limits: Limits{
			MaxStores:            30,
			MaxSellers:           30,
			MaxStockPerProduct:   30,
			MaxProductsPerSeller: 30,
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty or the
// file does not exist) and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PANTRY_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("PANTRY_PUBLIC_ORIGIN"); v != "" {
		c.PublicOrigin = v
	}
	if v := os.Getenv("PANTRY_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("PANTRY_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	// Same precedence the original deployment used for Mongo.
	if v := os.Getenv("MONGO_PUBLIC_URL"); v != "" {
		c.Storage.MongoURI = v
	} else if v := os.Getenv("MONGO_URL"); v != "" {
		c.Storage.MongoURI = v
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "memory", "redis", "mongo":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Limits.MaxStores <= 0 || c.Limits.MaxSellers <= 0 ||
		c.Limits.MaxStockPerProduct <= 0 || c.Limits.MaxProductsPerSeller <= 0 {
		return fmt.Errorf("limits must be positive: %+v", c.Limits)
	}
	return nil
}
