package client

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
)

// Path of the token resource used to exchange credentials for a token pair.
const tokenPath = "Token"

// Exchanges an account email and password for an OAuth token pair, and makes it the active token pair of this client.
//
// The request is a POST over https with HTTP Basic credentials, signed only with the consumer credentials. Any failure is returned as [*AuthError]; the previous token pair (if any) is kept in that case.
func (c *Client) Login(ctx context.Context, email, password string) error {
	credentials := base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
	res, err := c.do(ctx, http.MethodPost, tokenPath, nil, nil,
		Secure(),
		Header("Authorization", "Basic "+credentials),
	)
	if err != nil {
		return &AuthError{Err: err}
	}

	var tp TokenPair
	if err := res.DecodeEntry(&tp); err != nil {
		return &AuthError{Err: errors.Join(ErrMissingTokens, err)}
	}
	if tp.IsZero() {
		return &AuthError{Err: ErrMissingTokens}
	}

	c.setTokens(tp)
	c.logger.Info("ning login succeeded", "email", email)
	return nil
}
