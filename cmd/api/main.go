package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/health-first/health-first-server/internal/config"
	dbpkg "github.com/health-first/health-first-server/internal/db"
	"github.com/health-first/health-first-server/internal/ratelimit"
	"github.com/health-first/health-first-server/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	limiter := newLimiter(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, limiter)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newLimiter prefers Redis when configured so limits hold across
// instances; otherwise an in-process sliding window is enough.
func newLimiter(cfg *config.Config) ratelimit.Limiter {
	if cfg.RedisURL != "" {
		client, err := ratelimit.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		return ratelimit.NewRedisLimiter(client, "rl", cfg.LoginRateLimit, cfg.LoginRateWindow)
	}

	sw := ratelimit.NewSlidingWindow(cfg.LoginRateLimit, cfg.LoginRateWindow)
	sw.StartJanitor(context.Background(), 5*time.Minute)
	return sw
}
