package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/EnzoLavieri/QualABoa-backend/internal/models"
	"github.com/EnzoLavieri/QualABoa-backend/internal/places"
	"github.com/EnzoLavieri/QualABoa-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MapHandler handles map pin and place lookup requests
type MapHandler struct {
	service MapService
}

// Service interface for dependency injection
type MapService interface {
	PinsNearby(ctx context.Context, lat, lng float64, radiusMeters int, keyword string) ([]models.Pin, error)
	PlaceDetails(ctx context.Context, placeID string) (*places.DetailsResponse, error)
	PlaceReviews(ctx context.Context, placeID string) (*places.ReviewsResponse, error)
	SearchPlaces(ctx context.Context, query string, lat, lng float64, radiusMeters int) ([]models.Pin, error)
}

// NewMapHandler creates a new map handler
func NewMapHandler(svc MapService) *MapHandler {
	return &MapHandler{service: svc}
}

// PinsNearby handles GET /map/pins/nearby requests
func (h *MapHandler) PinsNearby(c *gin.Context) {
	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}

	radius, err := strconv.Atoi(c.DefaultQuery("radius", "1000"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius format"})
		return
	}
	keyword := c.Query("keyword")

	pins, err := h.service.PinsNearby(c.Request.Context(), lat, lng, radius, keyword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pins)
}

// PlaceDetails handles GET /map/places/:placeId requests
func (h *MapHandler) PlaceDetails(c *gin.Context) {
	details, err := h.service.PlaceDetails(c.Request.Context(), c.Param("placeId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// PlaceReviews handles GET /map/places/:placeId/reviews requests
func (h *MapHandler) PlaceReviews(c *gin.Context) {
	reviews, err := h.service.PlaceReviews(c.Request.Context(), c.Param("placeId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// SearchPlaces handles GET /map/search requests
func (h *MapHandler) SearchPlaces(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}

	radius, err := strconv.Atoi(c.DefaultQuery("radius", "1000"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius format"})
		return
	}

	pins, err := h.service.SearchPlaces(c.Request.Context(), query, lat, lng, radius)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pins)
}

func parseCoordinates(c *gin.Context) (lat, lng float64, ok bool) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")

	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lng'"})
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return 0, 0, false
	}

	lng, err = strconv.ParseFloat(lngStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return 0, 0, false
	}

	return lat, lng, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
