package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"venue-status-backend/config"
	"venue-status-backend/internal/auth"
	"venue-status-backend/internal/mw"
	"venue-status-backend/internal/projector"
	"venue-status-backend/internal/store"
	"venue-status-backend/internal/venue"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(
	cfg *config.ServerConfig,
	s store.Store,
	venues *venue.Service,
	gate *auth.Gate,
	proj *projector.Service,
	webpushOptions *webpush.Options,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, venues, gate, proj, webpushOptions, logger)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 10*time.Minute)
	caching := mw.Cache(cacheStore, cacheTTL)

	// POST /login
	r.POST("/login", handler.Login)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// GET /api/venues
		api.GET("/venues", caching, handler.ListVenues)

		// GET /api/venues/status
		api.GET("/venues/status", handler.GetStatus)

		// PUT /api/venues/{id}
		api.PUT("/venues/:id", handler.RequireToken, handler.UpdateVenue)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
