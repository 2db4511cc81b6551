package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"adresse-geocoder/internal/models"

	"github.com/gin-gonic/gin"
)

// ReverseGeocodeHandler handles reverse geocoding requests
type ReverseGeocodeHandler struct {
	service ReverseGeoCodeService
}

// ReverseGeoCodeService interface for dependency injection
type ReverseGeoCodeService interface {
	ResolveReverse(context.Context, models.Coordinates, int) *models.LookupResult
}

// NewReverseGeocodeHandler creates a new reverse geocode handler
func NewReverseGeocodeHandler(svc ReverseGeoCodeService) *ReverseGeocodeHandler {
	return &ReverseGeocodeHandler{service: svc}
}

// ReverseGeocode godoc
// @Summary Reverse geocode a point
// @Description Find the address closest to a longitude/latitude pair.
// @Tags geocoding
// @Produce json
// @Param lon query number true "Longitude in decimal degrees" example(2.331289)
// @Param lat query number true "Latitude in decimal degrees" example(48.869156)
// @Success 200 {object} models.LookupResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reverse-geocode [get]
func (h *ReverseGeocodeHandler) ReverseGeocode(c *gin.Context) {
	lonStr := c.Query("lon")
	latStr := c.Query("lat")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	result := h.service.ResolveReverse(c.Request.Context(), models.Coordinates{Longitude: lon, Latitude: lat}, 1)
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no address found near the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, result)
}
