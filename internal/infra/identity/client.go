// Package identity resolves the numeric user ID behind a bearer credential by
// calling the external identity authority. User IDs are never taken from
// client-supplied request bodies; this lookup is the only source.
package identity

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/karouieya6/enrollmentservice/internal/domain/enrollments"
)

const defaultTimeout = 5 * time.Second

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ResolveUserID forwards the bearer credential to the identity authority and
// returns the numeric identity it reports. The call is bounded by the client
// timeout; a denied credential maps to ErrUnauthorized, every other upstream
// failure to ErrUpstreamUnavailable.
func (c *Client) ResolveUserID(ctx context.Context, bearerToken string) (int64, error) {
	if c == nil || c.BaseURL == "" {
		return 0, fmt.Errorf("identity client not configured: %w", enrollments.ErrUpstreamUnavailable)
	}
	if strings.TrimSpace(bearerToken) == "" {
		return 0, enrollments.ErrUnauthorized
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build identity request: %w", enrollments.ErrUpstreamUnavailable)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("identity request failed: %w", enrollments.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return 0, enrollments.ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return 0, fmt.Errorf("identity service returned %d: %w", resp.StatusCode, enrollments.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return 0, fmt.Errorf("read identity response: %w", enrollments.ErrUpstreamUnavailable)
	}
	userID, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("malformed identity response: %w", enrollments.ErrUpstreamUnavailable)
	}
	return userID, nil
}
