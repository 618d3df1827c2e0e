package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"

	"github.com/garyburd/go-oauth/oauth"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Request ready to be sent: signature already applied to the URL, body, or Authorization header. Built fresh for every call.
type signedRequest struct {
	method      string
	url         string
	body        []byte
	contentType string
	header      http.Header
	multipart   bool
}

// Signs requests with the application's consumer credentials, and optionally a token pair.
type signer struct {
	consumer oauth.Client
}

func newSigner(consumerKey, consumerSecret string) *signer {
	return &signer{
		consumer: oauth.Client{
			Credentials: oauth.Credentials{
				Token:  consumerKey,
				Secret: consumerSecret,
			},
			SignatureMethod: oauth.HMACSHA1,
		},
	}
}

func tokenCredentials(tp TokenPair) *oauth.Credentials {
	return &oauth.Credentials{
		Token:  tp.OAuthToken,
		Secret: tp.OAuthTokenSecret,
	}
}

// Builds a signed request.
//
// If params has a "file" key, POST and PUT bodies are sent as multipart/form-data and the body fields are left out of the signature base string; the OAuth parameters go in the Authorization header. Otherwise every field is signed, and the signed parameters go in the query string (GET, DELETE) or the form-encoded body (POST, PUT).
//
// `token` may be nil, in which case only the consumer credentials sign the request.
func (s *signer) sign(method, target string, params Params, token *oauth.Credentials) (*signedRequest, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	// any query string in the path is merged with the params
	pathQuery := u.Query()
	u.RawQuery = ""

	fields, files, err := params.split()
	if err != nil {
		return nil, err
	}
	isMultipart := params.isMultipart()
	if len(files) > 0 && !isMultipart {
		return nil, fmt.Errorf("file upload param '%s' requires a '%s' param", files[0].key, FileParam)
	}

	sr := signedRequest{
		method:    method,
		header:    make(http.Header),
		multipart: isMultipart,
	}

	switch method {
	case http.MethodGet, http.MethodDelete:
		form := pathQuery
		if !isMultipart {
			mergeValues(form, fields)
		}
		if err := s.consumer.SignForm(token, method, u.String(), form); err != nil {
			return nil, fmt.Errorf("signing request: %w", err)
		}
		u.RawQuery = form.Encode()
		sr.url = u.String()
	case http.MethodPost, http.MethodPut:
		if isMultipart {
			u.RawQuery = pathQuery.Encode()
			if err := s.consumer.SetAuthorizationHeader(sr.header, token, method, u, nil); err != nil {
				return nil, fmt.Errorf("signing request: %w", err)
			}
			body, contentType, err := encodeMultipart(fields, files)
			if err != nil {
				return nil, err
			}
			sr.url = u.String()
			sr.body = body
			sr.contentType = contentType
		} else {
			form := pathQuery
			mergeValues(form, fields)
			if err := s.consumer.SignForm(token, method, u.String(), form); err != nil {
				return nil, fmt.Errorf("signing request: %w", err)
			}
			sr.url = u.String()
			sr.body = []byte(form.Encode())
			sr.contentType = contentTypeForm
		}
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}
	return &sr, nil
}

func mergeValues(dst, src url.Values) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

func encodeMultipart(fields url.Values, files []formFile) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range fields[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
	}

	for _, ff := range files {
		name := ff.file.Name
		if name == "" {
			name = ff.key
		}
		part, err := w.CreateFormFile(ff.key, name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, ff.file.Reader); err != nil {
			return nil, "", fmt.Errorf("reading upload '%s': %w", ff.key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
