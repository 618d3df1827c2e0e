package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	ErrMissingConfig = errors.New("missing required client configuration")
	ErrMissingTokens = errors.New("login response did not include an oauth token pair")
)

// Returned when one or more required [Config] fields are empty.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingConfig, strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// Returned when login did not produce a usable token pair. The cause is usually a [*TransportError], an [*APIError], or [ErrMissingTokens].
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "ning login failed"
	}
	return fmt.Sprintf("ning login failed: %s", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Returned when the HTTP round trip itself failed: DNS, connection, TLS, timeout, or reading the response body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ning API transport error (%s %s): %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Reports whether the underlying failure was a timeout (including the client request timeout).
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// Returned when the server responded, but the envelope indicated failure or could not be decoded.
type APIError struct {
	// HTTP response status code
	StatusCode int

	// Fields of the failure envelope, when present
	Status  int
	Code    int
	Subcode int
	Reason  string
	Trace   string

	// Raw response body
	Body []byte

	// Set if the response body was not a JSON envelope
	Err error
}

func (ae *APIError) Error() string {
	if ae.Err != nil {
		return fmt.Sprintf("API request failed (HTTP %d): undecodable response: %s", ae.StatusCode, ae.Err)
	}
	msg := fmt.Sprintf("API request failed (HTTP %d)", ae.StatusCode)
	if ae.Code != 0 || ae.Subcode != 0 {
		msg = fmt.Sprintf("%s [%d-%d]", msg, ae.Code, ae.Subcode)
	}
	if ae.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, ae.Reason)
	}
	return msg
}

func (ae *APIError) Unwrap() error {
	return ae.Err
}
