package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/garyburd/go-oauth/oauth"
)

type requestConfig struct {
	secure bool
	header http.Header
}

// Per-request option for [Client.Call] and the method helpers.
type RequestOption func(*requestConfig)

// Send the request over https.
func Secure() RequestOption {
	return func(rc *requestConfig) {
		rc.secure = true
	}
}

// Sets a single HTTP header on the request.
func Header(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.header.Set(key, value)
	}
}

// Sets HTTP headers on the request; only the first value of each key is used.
func Headers(hdr http.Header) RequestOption {
	return func(rc *requestConfig) {
		for k := range hdr {
			rc.header.Set(k, hdr.Get(k))
		}
	}
}

// Performs a signed API request against `path` (relative to the network's versioned REST root), and decodes the response envelope.
//
// See package documentation for how `body` is encoded and signed.
func (c *Client) Call(ctx context.Context, method, path string, body Params, opts ...RequestOption) (*Result, error) {
	tokens := c.Tokens()
	return c.do(ctx, method, path, body, tokenCredentials(tokens), opts...)
}

func (c *Client) Get(ctx context.Context, path string, body Params, opts ...RequestOption) (*Result, error) {
	return c.Call(ctx, http.MethodGet, path, body, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body Params, opts ...RequestOption) (*Result, error) {
	return c.Call(ctx, http.MethodPost, path, body, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body Params, opts ...RequestOption) (*Result, error) {
	return c.Call(ctx, http.MethodPut, path, body, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, body Params, opts ...RequestOption) (*Result, error) {
	return c.Call(ctx, http.MethodDelete, path, body, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body Params, token *oauth.Credentials, opts ...RequestOption) (*Result, error) {
	rc := requestConfig{header: make(http.Header)}
	for _, opt := range opts {
		opt(&rc)
	}

	sr, err := c.signer.sign(method, c.BuildURL(path, rc.secure), body, token)
	if err != nil {
		return nil, err
	}

	httpReq, err := sr.httpRequest(ctx, c.userAgent, rc.header)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With("method", method, "path", path)
	logger.Debug("ning API request", "multipart", sr.multipart, "secure", rc.secure)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observeRequest(method, outcomeTransportError, start)
		logger.Warn("ning API transport failure", "err", err)
		return nil, &TransportError{Method: method, URL: redactURL(httpReq), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		observeRequest(method, outcomeTransportError, start)
		logger.Warn("ning API transport failure", "err", err)
		return nil, &TransportError{Method: method, URL: redactURL(httpReq), Err: fmt.Errorf("reading response body: %w", err)}
	}

	result, err := decodeResult(resp.StatusCode, respBody)
	if err != nil {
		observeRequest(method, outcomeAPIError, start)
		logger.Warn("ning API request failed", "status", resp.StatusCode, "err", err)
		return nil, err
	}
	observeRequest(method, outcomeOK, start)
	return result, nil
}

func (sr *signedRequest) httpRequest(ctx context.Context, userAgent string, hdr http.Header) (*http.Request, error) {
	var body io.Reader
	if sr.body != nil {
		body = bytes.NewReader(sr.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, sr.method, sr.url, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	if userAgent != "" {
		httpReq.Header.Set("User-Agent", userAgent)
	}
	// caller headers, then signature headers take priority
	for k := range hdr {
		httpReq.Header.Set(k, hdr.Get(k))
	}
	for k := range sr.header {
		httpReq.Header.Set(k, sr.header.Get(k))
	}
	if sr.contentType != "" {
		httpReq.Header.Set("Content-Type", sr.contentType)
	}
	return httpReq, nil
}

// URL without query string, so that OAuth parameters do not end up in error messages or logs.
func redactURL(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}
