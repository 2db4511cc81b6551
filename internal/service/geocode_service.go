package service

import (
	"context"
	"errors"
	"time"

	"adresse-geocoder/internal/models"
	"adresse-geocoder/internal/provider/adresse"

	"github.com/rs/zerolog"
)

const (
	// DefaultCourtesyDelay is the pause taken after every provider call and
	// between batch chunks. It keeps the request rate polite towards the
	// public API; it is not a rate limiter.
	DefaultCourtesyDelay = 100 * time.Millisecond
	// DefaultChunkSize bounds how many lookups of a batch are in flight.
	DefaultChunkSize = 5
)

// Provider is the geocoding backend used by GeocodingService.
type Provider interface {
	Search(ctx context.Context, query, citycode string, limit int) (*adresse.FeatureCollection, error)
	Reverse(ctx context.Context, lon, lat float64, limit int) (*adresse.FeatureCollection, error)
}

// GeocodingService resolves addresses and coordinates against a Provider.
// Lookups never return an error: failures are reported through the Status
// of the result and logged.
type GeocodingService struct {
	provider      Provider
	logger        zerolog.Logger
	courtesyDelay time.Duration
	chunkSize     int
}

type Option func(*GeocodingService)

// WithCourtesyDelay overrides DefaultCourtesyDelay. Zero disables the pause.
func WithCourtesyDelay(d time.Duration) Option {
	return func(s *GeocodingService) {
		if d >= 0 {
			s.courtesyDelay = d
		}
	}
}

// WithChunkSize overrides DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(s *GeocodingService) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// NewGeocodingService creates a new geocoding service
func NewGeocodingService(provider Provider, logger zerolog.Logger, opts ...Option) *GeocodingService {
	s := &GeocodingService{
		provider:      provider,
		logger:        logger.With().Str("component", "geocoding-service").Logger(),
		courtesyDelay: DefaultCourtesyDelay,
		chunkSize:     DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveForward geocodes a single address. Queries are truncated to
// models.MaxQueryLength characters; queries shorter than
// models.MinQueryLength are reported as not found without calling the
// provider.
func (s *GeocodingService) ResolveForward(ctx context.Context, req models.LookupRequest) models.LookupResult {
	req = req.Normalized()
	if !req.Resolvable() {
		s.logger.Debug().Str("query", req.Query).Msg("query too short, lookup skipped")
		return models.NotFound(req.Query)
	}

	fc, err := s.provider.Search(ctx, req.Query, req.CityCode, req.Limit)
	s.pause(ctx)

	if err != nil {
		return s.failure(req.Query, err)
	}

	f, ok := fc.First()
	if !ok {
		return models.NotFound(req.Query)
	}
	return toResult(req.Query, f)
}

// failure maps a provider error to a result. Upstream timeouts are treated
// as a missing candidate; everything else is logged and marked failed.
func (s *GeocodingService) failure(query string, err error) models.LookupResult {
	if errors.Is(err, adresse.ErrUpstreamTimeout) {
		res := models.NotFound(query)
		res.Err = err
		return res
	}

	s.logError(err).Str("query", query).Msg("geocoding lookup failed")
	return models.Failed(query, err)
}

func (s *GeocodingService) logError(err error) *zerolog.Event {
	ev := s.logger.Error().Err(err)
	var se *adresse.StatusError
	if errors.As(err, &se) {
		ev = ev.Int("status", se.StatusCode).Str("body", se.Body)
	}
	return ev
}

// pause waits for the courtesy delay or until ctx is done.
func (s *GeocodingService) pause(ctx context.Context) {
	if s.courtesyDelay <= 0 {
		return
	}
	t := time.NewTimer(s.courtesyDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func toResult(query string, f *adresse.Feature) models.LookupResult {
	lon, lat := f.Longitude(), f.Latitude()
	return models.LookupResult{
		Found:      true,
		Status:     models.StatusFound,
		Query:      query,
		Longitude:  &lon,
		Latitude:   &lat,
		PostalCode: f.Properties.Postcode,
		CityCode:   f.Properties.CityCode,
		City:       f.Properties.City,
		Label:      f.Properties.Label,
	}
}
