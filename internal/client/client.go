package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/staggeredsix/catbreak/internal/news"
)

// The two failure classes the popup and watcher distinguish. Everything the
// transport or server does wrong is ErrNetwork; a 2xx body that is not JSON
// is ErrParse.
var (
	ErrNetwork = errors.New("news fetch failed")
	ErrParse   = errors.New("news payload unreadable")
)

const (
	defaultPort      = "8000"
	maxResponseBytes = 4 << 20
)

// Client fetches news payloads from a configured backend.
type Client struct {
	httpClient *http.Client
}

func New() *Client {
	return &Client{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// NewWithHTTPClient is used by tests that need a shorter timeout than New's.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// BaseURL normalizes a configured address into a full base URL. A bare host
// gets the backend's default port 8000; an address that already carries a
// scheme or port is kept as given.
func BaseURL(address string) string {
	address = strings.TrimSpace(address)
	if strings.Contains(address, "://") {
		return strings.TrimRight(address, "/")
	}
	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(strings.Trim(address, "[]"), defaultPort)
	}
	return "http://" + address
}

// Fetch issues GET /news against the given address and decodes the body.
// It returns the decoded payload together with the raw body so callers can
// write the exact bytes through to the cache.
func (c *Client) Fetch(ctx context.Context, address string) (*news.Payload, []byte, error) {
	url := BaseURL(address) + "/news"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: building request for %s: %v", ErrNetwork, url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GET %s: %v", ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("%w: GET %s: status %d", ErrNetwork, url, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading %s: %v", ErrNetwork, url, err)
	}

	payload, err := news.Decode(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return payload, raw, nil
}

// Healthy probes the backend's /health endpoint. Any failure reads as "not
// healthy"; this is a status display, never an error path.
func (c *Client) Healthy(ctx context.Context, address string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BaseURL(address)+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}
	return body.Status == "ok"
}
