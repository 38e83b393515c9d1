package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every startup setting. Loaded once in main and never mutated
// afterwards.
type Config struct {
	Addr        string
	MongoURI    string
	MongoDB     string
	StoreDriver string // "mongo" or "memory"
	JWTSecret   []byte
	TokenTTL    time.Duration
	FrontendURL string
}

// LoadConfig reads the environment (optionally seeded from a .env file) and
// fails fast on anything the server cannot run without.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := Config{
		Addr:        getenv("ADDR", ":3001"),
		MongoURI:    os.Getenv("MONGODB_URI"),
		MongoDB:     getenv("MONGO_DB", "tracker"),
		StoreDriver: getenv("STORE_DRIVER", "mongo"),
		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:    72 * time.Hour,
		FrontendURL: os.Getenv("FRONTEND_URL"),
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Fatalf("Invalid TOKEN_TTL %q: %v", ttl, err)
		}
		cfg.TokenTTL = d
	}
	if len(cfg.JWTSecret) == 0 {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	if cfg.StoreDriver == "mongo" && cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
