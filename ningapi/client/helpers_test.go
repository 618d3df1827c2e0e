package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSubdomain      = "apiexample"
	testEmail          = "a@b.com"
	testPassword       = "pw"
	testConsumerKey    = "consumer-key"
	testConsumerSecret = "consumer-secret"
	testToken          = "T"
	testTokenSecret    = "S"
)

func testConfig() Config {
	return Config{
		Subdomain:      testSubdomain,
		Email:          testEmail,
		Password:       testPassword,
		ConsumerKey:    testConsumerKey,
		ConsumerSecret: testConsumerSecret,
	}
}

// Serves requests in-process with an http.Handler, recording each request. Request URLs are left untouched, so handlers see the real API URLs.
type handlerTransport struct {
	handler http.Handler

	lk       sync.Mutex
	requests []*http.Request
}

func (ht *handlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ht.lk.Lock()
	ht.requests = append(ht.requests, req)
	ht.lk.Unlock()

	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	rec := httptest.NewRecorder()
	ht.handler.ServeHTTP(rec, req)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

func (ht *handlerTransport) count() int {
	ht.lk.Lock()
	defer ht.lk.Unlock()
	return len(ht.requests)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func tokenEnvelope(token, secret string) map[string]any {
	return map[string]any{
		"success": true,
		"entry": map[string]string{
			"oauthToken":       token,
			"oauthTokenSecret": secret,
		},
	}
}

// Answers the Token resource with the test token pair, and passes everything else to next.
func withLogin(t *testing.T, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/1.0/Token") {
			email, password, ok := r.BasicAuth()
			if !ok || email != testEmail || password != testPassword {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "reason": "bad credentials", "status": 401})
				return
			}
			verifySignature(t, r)
			writeJSON(w, http.StatusOK, tokenEnvelope(testToken, testTokenSecret))
			return
		}
		next(w, r)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *handlerTransport) {
	ht := &handlerTransport{handler: withLogin(t, handler)}
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: ht})}, opts...)
	c, err := New(context.Background(), testConfig(), opts...)
	require.NoError(t, err)
	return c, ht
}

// RFC 3986 unreserved characters pass through; everything else is %XX encoded.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ('A' <= ch && ch <= 'Z') || ('a' <= ch && ch <= 'z') || ('0' <= ch && ch <= '9') ||
			ch == '-' || ch == '.' || ch == '_' || ch == '~' {
			b.WriteByte(ch)
		} else {
			fmt.Fprintf(&b, "%%%02X", ch)
		}
	}
	return b.String()
}

func signatureBaseString(method, baseURL string, params url.Values) string {
	type pair struct{ k, v string }
	var pairs []pair
	for k, vs := range params {
		if k == "oauth_signature" {
			continue
		}
		for _, v := range vs {
			pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k == pairs[j].k {
			return pairs[i].v < pairs[j].v
		}
		return pairs[i].k < pairs[j].k
	})
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.k + "=" + p.v
	}
	return method + "&" + percentEncode(baseURL) + "&" + percentEncode(strings.Join(parts, "&"))
}

func hmacSHA1Signature(consumerSecret, tokenSecret, base string) string {
	mac := hmac.New(sha1.New, []byte(percentEncode(consumerSecret)+"&"+percentEncode(tokenSecret)))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func parseOAuthHeader(hdr string) (url.Values, error) {
	if !strings.HasPrefix(hdr, "OAuth ") {
		return nil, fmt.Errorf("not an OAuth authorization header: %q", hdr)
	}
	out := make(url.Values)
	for _, part := range strings.Split(strings.TrimPrefix(hdr, "OAuth "), ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("malformed OAuth header param: %q", part)
		}
		if k == "realm" {
			continue
		}
		key, err := url.PathUnescape(k)
		if err != nil {
			return nil, err
		}
		val, err := url.PathUnescape(strings.Trim(v, `"`))
		if err != nil {
			return nil, err
		}
		out.Add(key, val)
	}
	return out, nil
}

func requestBaseURL(r *http.Request) string {
	u := *r.URL
	u.RawQuery = ""
	return u.String()
}

// Collects the parameters which RFC 5849 includes in the signature: query string, form-encoded body, and OAuth header params.
func signedParams(t *testing.T, r *http.Request) url.Values {
	params := make(url.Values)
	for k, vs := range r.URL.Query() {
		params[k] = append(params[k], vs...)
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		assert.NoError(t, r.ParseForm())
		for k, vs := range r.PostForm {
			params[k] = append(params[k], vs...)
		}
	}
	if hdr := r.Header.Get("Authorization"); strings.HasPrefix(hdr, "OAuth ") {
		hp, err := parseOAuthHeader(hdr)
		assert.NoError(t, err)
		for k, vs := range hp {
			params[k] = append(params[k], vs...)
		}
	}
	return params
}

// Checks the request signature the way the API server does, and returns the signed parameters.
func verifySignature(t *testing.T, r *http.Request) url.Values {
	params := signedParams(t, r)
	assert.Equal(t, testConsumerKey, params.Get("oauth_consumer_key"))
	assert.Equal(t, "HMAC-SHA1", params.Get("oauth_signature_method"))
	assert.NotEmpty(t, params.Get("oauth_nonce"))
	assert.NotEmpty(t, params.Get("oauth_timestamp"))

	tokenSecret := ""
	if params.Get("oauth_token") == testToken {
		tokenSecret = testTokenSecret
	}
	base := signatureBaseString(r.Method, requestBaseURL(r), params)
	assert.Equal(t, hmacSHA1Signature(testConsumerSecret, tokenSecret, base), params.Get("oauth_signature"), "signature base string: %s", base)
	return params
}
