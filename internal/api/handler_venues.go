package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"venue-status-backend/internal/venue"
)

// ListVenues handles GET /api/venues. No auth required.
func (h *Handler) ListVenues(c *gin.Context) {
	views, err := h.venues.ListAll(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve venues"})
		return
	}
	c.JSON(http.StatusOK, views)
}

type updateVenueRequest struct {
	Hours venue.Hours `json:"hours"`
}

// UpdateVenue handles PUT /api/venues/:id. The route is guarded by
// RequireToken; by the time this runs the caller is authenticated.
func (h *Handler) UpdateVenue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid venue id"})
		return
	}

	var req updateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.venues.Update(c.Request.Context(), id, req.Hours)
	if err != nil {
		switch {
		case errors.Is(err, venue.ErrValidation):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, venue.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "venue not found"})
		default:
			h.logger.Error("venue update failed", zap.Int64("venue_id", id), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to update venue"})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetStatus handles GET /api/venues/status, serving the projector's latest
// open/closed partition.
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.projector.Latest())
}
