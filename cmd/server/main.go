package main

import (
	"context"
	"log"
	"time"

	"backorder-service/internal/config"
	"backorder-service/internal/controllers/http"
	"backorder-service/internal/infra"
	mmysql "backorder-service/internal/infra/mysql"
	"backorder-service/internal/infra/rabbitmq"
	mysqlrepo "backorder-service/internal/repository/mysql"
	"backorder-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	store := mysqlrepo.NewRecordStore(db)

	catalogClient := infra.NewCatalogClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)

	publisher, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.NotifyExchange)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	ledger := services.NewLedgerService(store, catalogClient, publisher)
	ledger.SetAutoDisableOnExceed(cfg.AutoDisableOnExceed)
	ledger.SetCacheTTLs(cfg.ProgressCacheTTL, cfg.OrderDedupeTTL)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DB:           cfg.RedisDB,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	ledger.SetRedisClient(redisClient)

	ctx := context.Background()
	go func() {
		time.Sleep(5 * time.Second)
		records, err := store.List()
		if err != nil {
			log.Printf("Failed to warm up progress cache: %v", err)
			return
		}
		ids := make([]uint64, 0, len(records))
		for _, rec := range records {
			ids = append(ids, rec.ItemID)
		}
		if err := ledger.WarmupProgressCache(ctx, ids); err != nil {
			log.Printf("Failed to warm up progress cache: %v", err)
		} else {
			log.Printf("Progress cache warmed up for %d items", len(ids))
		}
	}()

	stockSync := services.NewStockSyncService(store, catalogClient)

	handler := http.NewHandler(ledger, stockSync, cfg.AdminToken)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	log.Printf("Starting backorder service on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
