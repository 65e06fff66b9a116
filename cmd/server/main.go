package main

import (
	"context"
	"log"
	"ticket-registry/config"
	"ticket-registry/internal/authority"
	"ticket-registry/internal/cache"
	"ticket-registry/internal/database"
	"ticket-registry/internal/handler"
	"ticket-registry/internal/queue"
	"ticket-registry/internal/repository"
	"ticket-registry/internal/service"
	"ticket-registry/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 存放層與快取
	registryRepo := repository.NewRegistryRepository(pool)
	stateCache := cache.NewRedisTicketStateCache(rdb)

	// journal queue + 稽核 worker
	eventQueue, err := queue.NewRedisStreamEventQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize event queue: %v", err)
	}

	auditWorker := worker.NewAuditWorker(registryRepo, eventQueue)
	if err := auditWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start audit worker: %v", err)
	}

	// 管理員在此固定，之後不可變更
	adminAuthority := authority.NewAdminAuthority(cfg.Registry.AdminID)

	issuanceService := service.NewIssuanceService(adminAuthority, registryRepo, eventQueue, cfg.Registry)
	transferService := service.NewTransferService(registryRepo, stateCache, eventQueue)
	cancellationService := service.NewCancellationService(adminAuthority, registryRepo, stateCache, eventQueue)
	queryService := service.NewQueryService(adminAuthority, registryRepo, stateCache)
	priceService := service.NewPriceService(cfg.Registry.MinPrice)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	ticketHandler := handler.NewTicketHandler(issuanceService, transferService, cancellationService, queryService)
	ticketHandler.RegisterRoutes(router)

	registryHandler := handler.NewRegistryHandler(queryService, priceService)
	registryHandler.RegisterRoutes(router)

	router.Run()
}
