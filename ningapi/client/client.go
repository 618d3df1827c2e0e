package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ningdev/ningapi/pkg/httpclient"

	"github.com/carlmjohnson/versioninfo"
)

const (
	// Default API hostname. Can be changed with [WithAPIHost].
	DefaultAPIHost = "external.ningapis.com"
	APIVersion     = "1.0"

	// Bound on each HTTP round trip, including reading the response body.
	DefaultTimeout = 10 * time.Second

	secureScheme   = "https"
	insecureScheme = "http"
	restPrefix     = "xn/rest"
)

// Signed client for a single Ning network. See package documentation.
type Client struct {
	// Resource handles; each forwards to [Client.Call] under a fixed path prefix.
	ActivityItem     *Resource
	BlogPost         *Resource
	BroadcastMessage *Resource
	Comment          *Resource
	Network          *Resource
	Photo            *Resource
	User             *Resource
	Video            *Resource

	cfg        Config
	signer     *signer
	httpClient *http.Client
	timeout    time.Duration
	apiHost    string
	userAgent  string
	logger     *slog.Logger

	// protects tokens
	lk     sync.RWMutex
	tokens TokenPair
}

type Option func(*Client)

// Use a custom HTTP client (for example one with its own instrumentation). The request timeout is still applied unless [WithTimeout] is zero.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// Overrides [DefaultTimeout]. A zero duration keeps whatever timeout the HTTP client has.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// Replaces the API hostname (and optional port) in every request URL.
func WithAPIHost(host string) Option {
	return func(cl *Client) {
		cl.apiHost = host
	}
}

func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

func newClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:       cfg,
		signer:    newSigner(cfg.ConsumerKey, cfg.ConsumerSecret),
		timeout:   DefaultTimeout,
		apiHost:   DefaultAPIHost,
		userAgent: "ningapi-go/" + versioninfo.Short(),
		logger:    slog.Default().With("system", "ningapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = httpclient.NewClient(httpclient.WithTimeout(c.timeout))
	} else if c.timeout > 0 {
		// shallow copy so that the caller's client is not modified
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	c.logger = c.logger.With("subdomain", cfg.Subdomain)

	c.ActivityItem = c.resource("ActivityItem")
	c.BlogPost = c.resource("BlogPost")
	c.BroadcastMessage = c.resource("BroadcastMessage")
	c.Comment = c.resource("Comment")
	c.Network = c.resource("Network")
	c.Photo = c.resource("Photo")
	c.User = c.resource("User")
	c.Video = c.resource("Video")
	return c
}

// Validates the configuration, then logs in with the configured email and password.
//
// Fails with [*ConfigError] before any network I/O if configuration is missing, and with [*AuthError] if login fails. There is no way to get an unauthenticated client from this function.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := newClient(cfg, opts...)
	if err := c.Login(ctx, cfg.Email, cfg.Password); err != nil {
		return nil, err
	}
	return c, nil
}

// Creates a client from a previously issued token pair, without logging in again. The password field of the configuration is not required.
func Restore(cfg Config, tokens TokenPair, opts ...Option) (*Client, error) {
	if err := cfg.validate(false); err != nil {
		return nil, err
	}
	if tokens.IsZero() {
		return nil, &AuthError{Err: ErrMissingTokens}
	}
	c := newClient(cfg, opts...)
	c.setTokens(tokens)
	return c, nil
}

// Network subdomain this client is bound to.
func (c *Client) Subdomain() string {
	return c.cfg.Subdomain
}

// Email of the account the client is logged in as.
func (c *Client) Email() string {
	return c.cfg.Email
}

// Returns a copy of the active token pair.
func (c *Client) Tokens() TokenPair {
	c.lk.RLock()
	defer c.lk.RUnlock()
	return c.tokens
}

func (c *Client) setTokens(tp TokenPair) {
	c.lk.Lock()
	defer c.lk.Unlock()
	c.tokens = tp
}

// Creates a full API URL: {http|https}://{host}/xn/rest/{subdomain}/1.0/{path}
func (c *Client) BuildURL(path string, secure bool) string {
	scheme := insecureScheme
	if secure {
		scheme = secureScheme
	}
	return fmt.Sprintf("%s://%s/%s/%s/%s/%s", scheme, c.apiHost, restPrefix, c.cfg.Subdomain, APIVersion, strings.TrimPrefix(path, "/"))
}
