package models

import (
	"math"
	"strconv"
	"unicode/utf8"
)

const (
	// MaxQueryLength is the number of characters of a query sent to the provider.
	MaxQueryLength = 200
	// MinQueryLength is the shortest query the provider can resolve.
	MinQueryLength = 4
	// DefaultLimit is the number of candidates requested when none is given.
	DefaultLimit = 1
)

// LookupRequest describes a single forward geocoding lookup.
type LookupRequest struct {
	Query    string `json:"query"`
	CityCode string `json:"citycode,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Normalized returns a copy of the request with the query truncated to
// MaxQueryLength characters and a usable limit.
func (r LookupRequest) Normalized() LookupRequest {
	r.Query = Truncate(r.Query, MaxQueryLength)
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	return r
}

// Resolvable reports whether the query is long enough to be sent.
func (r LookupRequest) Resolvable() bool {
	return utf8.RuneCountInString(r.Query) >= MinQueryLength
}

// Truncate cuts s to at most n characters without splitting a rune.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Status tags the outcome of a lookup.
type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusFailed   Status = "failed"
)

// LookupResult is the flat record returned for every lookup. Only Found,
// Status and Query are set when no candidate was matched.
type LookupResult struct {
	Found      bool     `json:"found"`
	Status     Status   `json:"status"`
	Query      string   `json:"query"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	PostalCode string   `json:"postcode,omitempty"`
	CityCode   string   `json:"citycode,omitempty"`
	City       string   `json:"city,omitempty"`
	Label      string   `json:"label,omitempty"`

	// Err holds the reason of a failed lookup.
	Err error `json:"-"`
}

// NotFound builds the record of a lookup without candidate.
func NotFound(query string) LookupResult {
	return LookupResult{Status: StatusNotFound, Query: query}
}

// Failed builds the record of a lookup whose request failed.
func Failed(query string, err error) LookupResult {
	return LookupResult{Status: StatusFailed, Query: query, Err: err}
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Longitude float64 `json:"lon"`
	Latitude  float64 `json:"lat"`
}

// CoordinatesFromPair builds Coordinates from a [longitude, latitude] pair.
func CoordinatesFromPair(pair [2]float64) Coordinates {
	return Coordinates{Longitude: pair[0], Latitude: pair[1]}
}

// Pair returns the point as a [longitude, latitude] pair.
func (c Coordinates) Pair() [2]float64 {
	return [2]float64{c.Longitude, c.Latitude}
}

// Complete reports whether both members are set. A zero or NaN member counts
// as missing.
func (c Coordinates) Complete() bool {
	return present(c.Longitude) && present(c.Latitude)
}

func present(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', -1, 64)
}
