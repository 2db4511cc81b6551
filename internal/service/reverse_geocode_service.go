package service

import (
	"context"
	"errors"

	"adresse-geocoder/internal/models"
	"adresse-geocoder/internal/provider/adresse"
)

// ResolveReverse finds the address closest to the given point. It returns nil
// when a coordinate is missing, when the provider has no candidate or when
// the request fails.
func (s *GeocodingService) ResolveReverse(ctx context.Context, coords models.Coordinates, limit int) *models.LookupResult {
	if !coords.Complete() {
		return nil
	}
	if limit < 1 {
		limit = models.DefaultLimit
	}

	fc, err := s.provider.Reverse(ctx, coords.Longitude, coords.Latitude, limit)
	s.pause(ctx)

	if err != nil {
		if !errors.Is(err, adresse.ErrUpstreamTimeout) {
			s.logError(err).Stringer("coordinates", coords).Msg("reverse geocoding lookup failed")
		}
		return nil
	}

	f, ok := fc.First()
	if !ok {
		return nil
	}

	res := toResult(coords.String(), f)
	return &res
}
