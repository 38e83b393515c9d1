package main

import (
	"context"
	"log"
	"net/http"
	"time"
)

func main() {
	cfg := LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var store Store
	switch cfg.StoreDriver {
	case "memory":
		store = NewMemStore()
		log.Println("Using in-memory store")
	default:
		var err error
		store, err = NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
	}

	srv := NewServer(cfg, store)
	log.Printf("Server is running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.RegisterRoutes()); err != nil {
		log.Fatal(err)
	}
}
