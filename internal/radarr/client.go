// Package radarr is a client for the Radarr v3 HTTP API, covering the calls
// a bulk list import needs: preflight, library listing, lookup, destination
// options, and adds.
package radarr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxBodyExcerpt = 200

// Client is a Radarr API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the client logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With("component", "radarr")
		}
	}
}

// NewClient creates a new Radarr client.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SystemStatus performs the preflight connectivity check.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.get(ctx, "/api/v3/system/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ExistingTMDBIDs returns the TMDB IDs of every movie already in the
// library, for duplicate detection.
func (c *Client) ExistingTMDBIDs(ctx context.Context) (map[int64]struct{}, error) {
	var movies []libraryMovie
	if err := c.get(ctx, "/api/v3/movie", nil, &movies); err != nil {
		return nil, err
	}
	ids := make(map[int64]struct{}, len(movies))
	for _, m := range movies {
		if m.TMDBID != 0 {
			ids[m.TMDBID] = struct{}{}
		}
	}
	return ids, nil
}

// Lookup performs a fuzzy search. Results come back in the service's own
// relevance order, which callers treat as authoritative.
func (c *Client) Lookup(ctx context.Context, term string) ([]Movie, error) {
	query := url.Values{}
	query.Set("term", term)

	var results []Movie
	if err := c.get(ctx, "/api/v3/movie/lookup", query, &results); err != nil {
		return nil, err
	}
	if c.log != nil {
		c.log.Debug("lookup", "term", term, "results", len(results))
	}
	return results, nil
}

// RootFolders returns the configured library destinations.
func (c *Client) RootFolders(ctx context.Context) ([]RootFolder, error) {
	var folders []RootFolder
	if err := c.get(ctx, "/api/v3/rootfolder", nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// QualityProfiles returns the configured quality profiles.
func (c *Client) QualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	var profiles []QualityProfile
	if err := c.get(ctx, "/api/v3/qualityprofile", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Add creates a library entry from a lookup result.
func (c *Client) Add(ctx context.Context, movie Movie, opts AddOptions) error {
	body, err := json.Marshal(movie.addPayload(opts))
	if err != nil {
		return fmt.Errorf("marshal add request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v3/movie", nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("add request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if c.log != nil {
		c.log.Debug("added movie", "title", movie.Title, "year", movie.Year, "tmdb_id", movie.TMDBID)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	return req, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyExcerpt))
	return &StatusError{Code: resp.StatusCode, Body: string(excerpt)}
}
