package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
)

// Indirections for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

const productCacheTTL = 5 * time.Minute

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	var cache *product.Cache
	if cfg.RedisAddr != "" {
		cache = product.NewCache(product.NewRedisKV(cfg.RedisAddr), productCacheTTL)
	}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, cache)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cache)

	return httpapi.NewRouter(productSvc, orderSvc)
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, router)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
