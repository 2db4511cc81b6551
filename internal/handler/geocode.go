package handler

import (
	"context"
	"net/http"
	"strconv"

	"adresse-geocoder/internal/models"

	"github.com/gin-gonic/gin"
)

// GeoCodeHandler handles geocoding requests
type GeoCodeHandler struct {
	service GeoCodeService
}

// GeoCodeService interface for dependency injection
type GeoCodeService interface {
	ResolveForward(context.Context, models.LookupRequest) models.LookupResult
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc}
}

// GeoCode godoc
// @Summary Geocode an address
// @Description Resolve a free-text French address to GPS coordinates. Unresolvable addresses return found=false.
// @Tags geocoding
// @Produce json
// @Param q query string true "Free-text address" example(2 rue de la paix 75002 Paris)
// @Param citycode query string false "INSEE code of the municipality" example(75102)
// @Param limit query int false "Number of candidates requested from the provider" default(1)
// @Success 200 {object} models.LookupResult
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /geocode [get]
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	req := models.LookupRequest{Query: query, CityCode: c.Query("citycode")}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit format"})
			return
		}
		req.Limit = limit
	}

	result := h.service.ResolveForward(c.Request.Context(), req)
	if result.Status == models.StatusFailed {
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, result)
}
