package adresse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// API Docs: https://adresse.data.gouv.fr/outils/api-doc/adresse
// Sample request: https://api-adresse.data.gouv.fr/search/?q=8+bd+du+port&limit=1
const (
	DefaultBaseURL = "https://api-adresse.data.gouv.fr"

	searchPath  = "/search/"
	reversePath = "/reverse/"

	// maxErrorBody bounds how much of an error payload is kept for diagnostics.
	maxErrorBody = 4 << 10
)

var (
	// ErrUpstreamTimeout is returned when the provider answers with a
	// gateway-timeout class status.
	ErrUpstreamTimeout = errors.New("adresse: upstream timeout")
	// ErrDecode is returned when a 200 response is not valid JSON.
	ErrDecode = errors.New("adresse: failed to decode response")
)

// StatusError is returned for any other non-200 response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("adresse: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient Doer
	baseURL    string
	userAgent  string
}

type Option func(*Client)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithBaseURL points the client to another deployment of the API.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		userAgent:  "adresse-geocoder/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchURL builds the forward geocoding URL. citycode is omitted when empty.
func (c *Client) SearchURL(query, citycode string, limit int) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	if citycode != "" {
		params.Set("citycode", citycode)
	}
	return c.baseURL + searchPath + "?" + params.Encode()
}

// ReverseURL builds the reverse geocoding URL.
func (c *Client) ReverseURL(lon, lat float64, limit int) string {
	params := url.Values{}
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	if limit > 1 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return c.baseURL + reversePath + "?" + params.Encode()
}

// Search runs a forward lookup.
func (c *Client) Search(ctx context.Context, query, citycode string, limit int) (*FeatureCollection, error) {
	return c.get(ctx, c.SearchURL(query, citycode, limit))
}

// Reverse runs a reverse lookup.
func (c *Client) Reverse(ctx context.Context, lon, lat float64, limit int) (*FeatureCollection, error) {
	return c.get(ctx, c.ReverseURL(lon, lat, limit))
}

func (c *Client) get(ctx context.Context, reqURL string) (*FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("adresse: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adresse: http request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return nil, ErrUpstreamTimeout
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var fc FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			// an empty body carries no candidate
			return &fc, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return &fc, nil
}
