package handler

import (
	"context"
	"fmt"
	"net/http"

	"adresse-geocoder/internal/models"
	"adresse-geocoder/internal/service"

	"github.com/gin-gonic/gin"
)

// BatchGeoCodeHandler handles batch geocoding requests
type BatchGeoCodeHandler struct {
	service  BatchGeoCodeService
	maxItems int
}

// BatchGeoCodeService interface for dependency injection
type BatchGeoCodeService interface {
	ResolveBatch(context.Context, []string) []models.LookupResult
	ResolveBatchWithCityCodes(context.Context, []service.AddressCityCode) []models.LookupResult
}

// BatchRequest carries either plain addresses or address/citycode pairs.
type BatchRequest struct {
	Addresses []string                  `json:"addresses"`
	Items     []service.AddressCityCode `json:"items"`
}

// NewBatchGeoCodeHandler creates a new batch geocode handler accepting at most
// maxItems addresses per request.
func NewBatchGeoCodeHandler(svc BatchGeoCodeService, maxItems int) *BatchGeoCodeHandler {
	return &BatchGeoCodeHandler{service: svc, maxItems: maxItems}
}

// BatchGeoCode godoc
// @Summary Geocode a list of addresses
// @Description Resolve many addresses at once. Exactly one of addresses or items must be set. The response has one record per input, in input order.
// @Tags geocoding
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Addresses to resolve"
// @Success 200 {array} models.LookupResult
// @Failure 400 {object} map[string]string
// @Router /geocode/batch [post]
func (h *BatchGeoCodeHandler) BatchGeoCode(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	hasAddresses, hasItems := len(req.Addresses) > 0, len(req.Items) > 0
	if hasAddresses == hasItems {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of 'addresses' or 'items' must be provided"})
		return
	}

	if n := len(req.Addresses) + len(req.Items); h.maxItems > 0 && n > h.maxItems {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("batch too large: %d items, maximum is %d", n, h.maxItems)})
		return
	}

	var results []models.LookupResult
	if hasAddresses {
		results = h.service.ResolveBatch(c.Request.Context(), req.Addresses)
	} else {
		results = h.service.ResolveBatchWithCityCodes(c.Request.Context(), req.Items)
	}

	c.JSON(http.StatusOK, results)
}
