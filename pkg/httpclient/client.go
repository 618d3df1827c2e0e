package httpclient

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultTimeout = 10 * time.Second

type Option func(*http.Client)

// WithTimeout sets the overall request timeout. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *http.Client) {
		client.Timeout = timeout
	}
}

// WithTransport sets a custom transport for the HTTP client. The transport is used as-is, without tracing instrumentation.
func WithTransport(transport http.RoundTripper) Option {
	return func(client *http.Client) {
		client.Transport = transport
	}
}

// Generates an HTTP client for API requests: a fresh (non-shared, non-pooled)
// transport from go-cleanhttp, wrapped with OpenTelemetry tracing, and a bounded
// overall timeout. There is no retry logic; a failed request is reported once.
func NewClient(options ...Option) *http.Client {
	client := &http.Client{
		Transport: otelhttp.NewTransport(cleanhttp.DefaultTransport()),
		Timeout:   DefaultTimeout,
	}
	for _, option := range options {
		option(client)
	}
	return client
}
