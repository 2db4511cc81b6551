package service

import (
	"context"

	"adresse-geocoder/internal/models"

	"golang.org/x/sync/errgroup"
)

// AddressCityCode pairs an address with the INSEE code of its municipality.
type AddressCityCode struct {
	Address  string `json:"address"`
	CityCode string `json:"citycode"`
}

// ResolveBatch geocodes a list of addresses. The result has one record per
// address, in the same order.
func (s *GeocodingService) ResolveBatch(ctx context.Context, addresses []string) []models.LookupResult {
	reqs := make([]models.LookupRequest, len(addresses))
	for i, a := range addresses {
		reqs[i] = models.LookupRequest{Query: a}
	}
	return s.resolveAll(ctx, reqs)
}

// ResolveBatchWithCityCodes is ResolveBatch for addresses narrowed to a
// municipality.
func (s *GeocodingService) ResolveBatchWithCityCodes(ctx context.Context, items []AddressCityCode) []models.LookupResult {
	reqs := make([]models.LookupRequest, len(items))
	for i, it := range items {
		reqs[i] = models.LookupRequest{Query: it.Address, CityCode: it.CityCode}
	}
	return s.resolveAll(ctx, reqs)
}

// resolveAll runs the lookups chunk by chunk: every lookup of a chunk runs
// concurrently and the next chunk starts once the whole chunk is done.
func (s *GeocodingService) resolveAll(ctx context.Context, reqs []models.LookupRequest) []models.LookupResult {
	results := make([]models.LookupResult, 0, len(reqs))
	chunks := Chunk(reqs, s.chunkSize)

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			s.logger.Warn().Err(err).Int("remaining", len(reqs)-len(results)).Msg("batch interrupted")
			for _, req := range reqs[len(results):] {
				results = append(results, models.Failed(req.Normalized().Query, err))
			}
			break
		}

		out := make([]models.LookupResult, len(chunk))
		var g errgroup.Group
		for j, req := range chunk {
			j, req := j, req
			g.Go(func() error {
				out[j] = s.ResolveForward(ctx, req)
				return nil
			})
		}
		_ = g.Wait()
		results = append(results, out...)

		s.logger.Debug().
			Int("chunk", i+1).
			Int("chunks", len(chunks)).
			Int("size", len(chunk)).
			Msg("batch chunk resolved")

		if i < len(chunks)-1 {
			s.pause(ctx)
		}
	}

	return results
}

// Chunk splits items into consecutive windows of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
