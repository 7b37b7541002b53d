// Package catalog implements the client for the external movie-metadata provider (TMDB).
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"reelist/internal/middleware"
)

// ErrNotFound is returned when the provider cannot find the requested movie.
var ErrNotFound = errors.New("catalog: not found")

// ErrUnavailable is returned when the provider cannot be reached or fails.
var ErrUnavailable = errors.New("catalog: unavailable")

// SearchResult is one candidate record from a title search.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}

// Details holds the metadata needed to persist a movie.
type Details struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}

// Year extracts the year component of the release date.
func (d Details) Year() string {
	if i := strings.IndexByte(d.ReleaseDate, '-'); i > 0 {
		return d.ReleaseDate[:i]
	}
	return d.ReleaseDate
}

// Client defines the contract for querying the movie-metadata provider.
type Client interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
	Details(ctx context.Context, id int64) (*Details, error)
	PosterURL(posterPath string) string
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL   *url.URL
	imageBase string
	apiKey    string
	client    *http.Client
	logger    *slog.Logger
}

// NewHTTPClient constructs a new HTTP-backed catalog client.
func NewHTTPClient(baseURL, imageBase, apiKey string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = middleware.Logger
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	return &HTTPClient{
		baseURL:   parsed,
		imageBase: strings.TrimRight(imageBase, "/"),
		apiKey:    apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// PosterURL builds the full poster image URL from a provider poster path.
// Returns an empty string when the provider has no poster.
func (c *HTTPClient) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBase + posterPath
}

// Search queries the provider's title search endpoint.
func (c *HTTPClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	endpoint := c.endpoint("/search/movie", url.Values{"query": {query}})

	var payload struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.get(ctx, "search", endpoint, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// Details fetches full metadata for one movie by provider id.
func (c *HTTPClient) Details(ctx context.Context, id int64) (*Details, error) {
	endpoint := c.endpoint("/movie/"+strconv.FormatInt(id, 10), url.Values{"language": {"en-US"}})

	var payload Details
	if err := c.get(ctx, "details", endpoint, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	rel := &url.URL{Path: path}
	query.Set("api_key", c.apiKey)
	rel.RawQuery = query.Encode()
	return c.baseURL.String() + rel.String()
}

func (c *HTTPClient) get(ctx context.Context, operation, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		middleware.CatalogRequests.WithLabelValues(operation, "transport_error").Inc()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			middleware.CatalogRequests.WithLabelValues(operation, "decode_error").Inc()
			return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
		middleware.CatalogRequests.WithLabelValues(operation, "ok").Inc()
		return nil
	case resp.StatusCode == http.StatusNotFound:
		middleware.CatalogRequests.WithLabelValues(operation, "not_found").Inc()
		return ErrNotFound
	default:
		middleware.CatalogRequests.WithLabelValues(operation, "upstream_error").Inc()
		c.logger.WarnContext(ctx, "catalog upstream returned unexpected status",
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: upstream returned %d", ErrUnavailable, resp.StatusCode)
	}
}
