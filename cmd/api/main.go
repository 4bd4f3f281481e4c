package main

import (
	"context"
	"log"
	"net/http"

	"github.com/SereniteSpa01/spa-scheduler/internal/config"
	dbpkg "github.com/SereniteSpa01/spa-scheduler/internal/db"
	"github.com/SereniteSpa01/spa-scheduler/internal/events"
	"github.com/SereniteSpa01/spa-scheduler/internal/lock"
	"github.com/SereniteSpa01/spa-scheduler/internal/middleware"
	"github.com/SereniteSpa01/spa-scheduler/internal/routes"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	broker, err := events.NewBroker(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("failed to connect redis broker: %v", err)
	}
	defer broker.Close()

	hub := events.NewHub(broker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker, broker, hub)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
