package httpclient

import (
	"context"
	"net/http"
	"time"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// BrowserClient uses browser-like headers to avoid 406 (Not Acceptable) errors
	// Used for sites that require browser-like User-Agent and headers
	BrowserClient ClientType = "browser"

	// CloudflareClient uses simple headers (like curl) to avoid 403 (Forbidden) errors
	// Used for Cloudflare-protected sites that block browser-like User-Agents
	CloudflareClient ClientType = "cloudflare"

	// DefaultClient sends Go's default User-Agent and no extra headers
	DefaultClient ClientType = "default"
)

const (
	browserUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	cloudflareUserAgent = "curl/8.7.1"
	maxRedirects        = 10
)

// HTTPClient wraps an http.Client with configuration
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
	userAgent  string
}

// Option customizes an HTTPClient
type Option func(*HTTPClient)

// WithTimeout sets the overall request timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.client.Timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent of the client profile
func WithUserAgent(userAgent string) Option {
	return func(c *HTTPClient) {
		c.userAgent = userAgent
	}
}

// WithTransport replaces the underlying round tripper (used by tests)
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		c.client.Transport = rt
	}
}

// NewClient creates a new HTTP client with the specified type
func NewClient(clientType ClientType, opts ...Option) *HTTPClient {
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	c := &HTTPClient{
		client:     client,
		clientType: clientType,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes an HTTP request with the appropriate headers for the client type
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		// Browser-like headers to avoid 406 (Not Acceptable) errors
		req.Header.Set("User-Agent", browserUserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Connection", "keep-alive")
		req.Header.Set("Upgrade-Insecure-Requests", "1")

	case CloudflareClient:
		// Cloudflare allows simple tools like curl but blocks browser-like User-Agents
		req.Header.Set("User-Agent", cloudflareUserAgent)

	default:
		// Default: use Go's default User-Agent
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// UserAgent returns the User-Agent this client sends, or "" for Go's default
func (c *HTTPClient) UserAgent() string {
	if c.userAgent != "" {
		return c.userAgent
	}
	switch c.clientType {
	case BrowserClient:
		return browserUserAgent
	case CloudflareClient:
		return cloudflareUserAgent
	default:
		return ""
	}
}
