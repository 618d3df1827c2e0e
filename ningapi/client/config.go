package client

import (
	"strings"
)

// Connection configuration for a single Ning network.
type Config struct {
	// Network subdomain, eg "apiexample" for apiexample.ning.com
	Subdomain string `json:"subdomain"`

	// Account email address and password. The password is only used during login.
	Email    string `json:"email"`
	Password string `json:"-"`

	// Consumer key and secret, found at {subdomain}.ning.com/main/extend/keys
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"-"`
}

// Checks that every required field is set. Returns a [*ConfigError] listing all missing fields.
func (c *Config) Validate() error {
	return c.validate(true)
}

func (c *Config) validate(requirePassword bool) error {
	var missing []string
	if strings.TrimSpace(c.Subdomain) == "" {
		missing = append(missing, "subdomain")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if requirePassword && c.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(c.ConsumerKey) == "" {
		missing = append(missing, "consumerKey")
	}
	if c.ConsumerSecret == "" {
		missing = append(missing, "consumerSecret")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// OAuth token credentials issued by the Token resource at login.
type TokenPair struct {
	OAuthToken       string `json:"oauthToken"`
	OAuthTokenSecret string `json:"oauthTokenSecret"`
}

func (tp TokenPair) IsZero() bool {
	return tp.OAuthToken == "" || tp.OAuthTokenSecret == ""
}
