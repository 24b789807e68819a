// Package prodbx talks to the ProDBX hosting service where original
// contracts and addendum pages live, and interprets the pages it serves.
// URL validation is a pure format check and never touches the network, so
// callers can report "malformed link" and "link unreachable" as distinct
// states.
package prodbx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AquaBuilt/aqua-built-backend/config"
	"github.com/AquaBuilt/aqua-built-backend/errors"
	"github.com/AquaBuilt/aqua-built-backend/logger"
)

// maxPageBytes caps how much of a hosted page is read. Contract pages are a
// few hundred KB at most.
const maxPageBytes = 8 << 20

const viewPath = "/go/view/"

// ClientInterface defines the ProDBX operations consumed by the ingest
// service; it exists so tests can substitute a fake.
type ClientInterface interface {
	Host() string
	ValidateURL(raw string) bool
	FetchHTML(ctx context.Context, raw string) (string, error)
}

type Client struct {
	host       string
	httpClient *http.Client
}

// NewClient builds a client with the mandatory fixed fetch timeout from
// configuration. A fetch must fail distinguishably instead of hanging.
func NewClient(cfg config.ProdbxConfig) *Client {
	host := cfg.Host
	timeout := time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		host:       host,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Host returns the hosting domain this client accepts links for.
func (c *Client) Host() string {
	return c.host
}

// ValidateURL reports whether raw matches the fixed hosting scheme, domain
// and path shape (https://<host>/go/view/?<opaque-query>). It performs no
// network access.
func (c *Client) ValidateURL(raw string) bool {
	return ValidateURL(raw, c.host)
}

// ValidateURL is the pure format check behind Client.ValidateURL.
func ValidateURL(raw, host string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "https" {
		return false
	}
	if !strings.EqualFold(u.Host, host) {
		return false
	}
	if u.Path != viewPath && u.Path != strings.TrimSuffix(viewPath, "/") {
		return false
	}
	return u.RawQuery != ""
}

// FetchHTML retrieves a hosted page. Transport failures and non-2xx
// responses come back as an Unreachable AppError with the underlying message
// preserved; the caller decides retry policy.
func (c *Client) FetchHTML(ctx context.Context, raw string) (string, error) {
	log := logger.GetLogger()
	log.Debugw("Fetching ProDBX page", "url", raw)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return "", errors.Unreachable(raw, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warnw("ProDBX fetch failed", "url", raw, "error", err)
		return "", errors.Unreachable(raw, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnw("ProDBX returned non-success status", "url", raw, "status", resp.StatusCode)
		return "", errors.Unreachable(raw, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", errors.Unreachable(raw, err)
	}

	log.Debugw("ProDBX page fetched", "url", raw, "bytes", len(body))
	return string(body), nil
}
