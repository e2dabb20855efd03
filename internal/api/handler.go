package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"venue-status-backend/internal/auth"
	"venue-status-backend/internal/projector"
	"venue-status-backend/internal/store"
	"venue-status-backend/internal/venue"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	venues    *venue.Service
	gate      *auth.Gate
	projector *projector.Service
	webpush   *webpush.Options
	logger    *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, venues *venue.Service, gate *auth.Gate, proj *projector.Service, webpushOptions *webpush.Options, logger *zap.Logger) *Handler {
	return &Handler{
		store:     s,
		venues:    venues,
		gate:      gate,
		projector: proj,
		webpush:   webpushOptions,
		logger:    logger,
	}
}
