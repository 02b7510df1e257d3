// Package gateway is the authenticated JSON client shared by the CRM and
// invoice service adapters. Every call goes through the API gateway with a
// client-credentials bearer token.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"sotcredit/pkg/platform/circuit"
	"sotcredit/pkg/platform/sentinel"
)

// maxResponseBytes bounds upstream bodies.
const maxResponseBytes = 32 << 20

// Config configures a Client.
type Config struct {
	// Name labels logs and the circuit breaker ("crm", "ces").
	Name string
	// BaseURL is the gateway root; the token endpoint is BaseURL + "/token".
	BaseURL      string
	ClientID     string
	ClientSecret string
	// Timeout bounds each request, token fetch included. Default 30s.
	Timeout time.Duration
	// HTTPClient is an optional base client (for testing).
	HTTPClient *http.Client
}

// Getter is the read operation the upstream adapters depend on.
type Getter interface {
	GetJSON(ctx context.Context, path string, params url.Values, dst any) error
}

// Client performs authenticated GETs against the gateway.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// New creates a Client. Tokens are fetched lazily and reused until expiry.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("gateway base URL is required")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("gateway client credentials are required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid gateway base URL %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	baseClient := cfg.HTTPClient
	if baseClient == nil {
		baseClient = &http.Client{Timeout: timeout}
	}
	root := strings.TrimRight(cfg.BaseURL, "/")

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     root + "/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, baseClient)
	httpClient := cc.Client(tokenCtx)
	httpClient.Timeout = timeout

	c := &Client{
		name:    cfg.Name,
		baseURL: root,
		http:    httpClient,
		breaker: circuit.New(cfg.Name),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ Getter = (*Client)(nil)

// GetJSON fetches path (relative to the base URL) with query params and
// decodes a 200 response into dst.
//
// Errors:
//   - sentinel.ErrNotFound (wrapped) for 404
//   - sentinel.ErrUnavailable (wrapped) for transport faults, token failures,
//     5xx and 429, undecodable bodies, or an open circuit
//   - context errors unchanged when ctx is done
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, dst any) error {
	if !c.breaker.Allow() {
		return fmt.Errorf("%s circuit open: %w", c.name, sentinel.ErrUnavailable)
	}

	err := c.get(ctx, path, params, dst)
	switch {
	case err == nil, errors.Is(err, sentinel.ErrNotFound):
		c.recordSuccess(ctx)
	case ctx.Err() != nil:
		// Caller gave up; says nothing about upstream health.
		return ctx.Err()
	case errors.Is(err, sentinel.ErrUnavailable):
		c.recordFailure(ctx, err)
	}
	return err
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %v: %w", c.name, err, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: %w", c.name, path, sentinel.ErrNotFound)
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s returned status %d: %w", c.name, resp.StatusCode, sentinel.ErrUnavailable)
	default:
		// Other client errors mean the gateway rejected the lookup, which
		// callers treat like an empty answer.
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s returned status %d: %w", c.name, resp.StatusCode, sentinel.ErrNotFound)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decode %s response: %v: %w", c.name, err, sentinel.ErrUnavailable)
	}
	return nil
}

func (c *Client) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "upstream circuit closed", "upstream", c.name)
	}
}

func (c *Client) recordFailure(ctx context.Context, err error) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "upstream circuit opened",
			"upstream", c.name,
			"error", err,
		)
	}
}
