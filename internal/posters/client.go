package posters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when upstream has no artwork for the requested movie.
var ErrNotFound = errors.New("posters: not found")

// Client defines the contract for querying the upstream poster API.
type Client interface {
	Fetch(ctx context.Context, title string, year int) (string, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  *log.Logger
}

// NewHTTPClient constructs a new HTTP-backed poster client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *log.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse posters url: %w", err)
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
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

// Fetch retrieves a poster URL by title and release year.
func (c *HTTPClient) Fetch(ctx context.Context, title string, year int) (string, error) {
	rel := &url.URL{Path: "/posters"}
	q := rel.Query()
	q.Set("title", title)
	q.Set("year", strconv.Itoa(year))
	rel.RawQuery = q.Encode()
	endpoint := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload apiResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return "", fmt.Errorf("decode posters response: %w", err)
		}
		poster := posterFromResponse(payload)
		if poster == "" {
			return "", ErrNotFound
		}
		return poster, nil
	case http.StatusNotFound:
		return "", ErrNotFound
	default:
		c.logger.Printf("posters: unexpected status %d for title %q", resp.StatusCode, title)
		return "", fmt.Errorf("posters: upstream returned %d", resp.StatusCode)
	}
}

type apiResponse struct {
	Title  string  `json:"title"`
	Year   *int    `json:"year"`
	Poster *string `json:"poster"`
}

func posterFromResponse(payload apiResponse) string {
	if payload.Poster == nil {
		return ""
	}
	poster := strings.TrimSpace(*payload.Poster)
	if poster == "" {
		return ""
	}
	if _, err := url.ParseRequestURI(poster); err != nil {
		return ""
	}
	return poster
}
