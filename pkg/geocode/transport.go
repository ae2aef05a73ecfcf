package geocode

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Transport performs the upstream HTTP GET for a provider.
type Transport interface {
	// Get fetches url and returns the response body. An empty body is not an error.
	Get(ctx context.Context, url string) (string, error)
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithHTTPClient sets a custom HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		if hc != nil {
			t.client = hc
		}
	}
}

// WithTimeout sets the request timeout on a copy of the current HTTP client.
func WithTimeout(d time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		if d > 0 {
			if t.client == nil {
				t.client = &http.Client{}
			}
			c := *t.client
			c.Timeout = d
			t.client = &c
		}
	}
}

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) TransportOption {
	return func(t *HTTPTransport) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

// HTTPTransport implements Transport using net/http.
type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport creates an HTTPTransport with the given options.
func NewHTTPTransport(opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: "dstk-geocoder/1.0",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Get implements Transport.
func (t *HTTPTransport) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", eris.Wrap(err, "geocode: build request")
	}
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", eris.Errorf("geocode: upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "geocode: read body")
	}

	zap.L().Debug("geocode: upstream response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)
	return string(body), nil
}
