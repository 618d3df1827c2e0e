package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ningdev/ningapi/ningapi/client"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v2"
)

const sessionFile = "ningctl/session.json"

var ErrNoSession = errors.New("no login session found")

// Token pair from a previous login, persisted between invocations.
type Session struct {
	Subdomain string           `json:"subdomain"`
	Email     string           `json:"email"`
	APIHost   string           `json:"apiHost,omitempty"`
	Tokens    client.TokenPair `json:"tokens"`
}

// Whether this session was issued for the account and network in cfg.
func (s *Session) matches(cfg client.Config) bool {
	if cfg.Subdomain != "" && cfg.Subdomain != s.Subdomain {
		return false
	}
	if cfg.Email != "" && cfg.Email != s.Email {
		return false
	}
	return true
}

func persistSession(fPath string, sess *Session) error {
	f, err := os.OpenFile(fPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.Write(b)
	return err
}

func loadSession(fPath string) (*Session, error) {
	b, err := os.ReadFile(fPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	} else if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", fPath, err)
	}
	if sess.Tokens.IsZero() {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func wipeSession(fPath string) error {
	err := os.Remove(fPath)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoSession
	}
	return err
}

func configFromFlags(cctx *cli.Context) client.Config {
	return client.Config{
		Subdomain:      cctx.String("subdomain"),
		Email:          cctx.String("email"),
		Password:       cctx.String("password"),
		ConsumerKey:    cctx.String("consumer-key"),
		ConsumerSecret: cctx.String("consumer-secret"),
	}
}

func clientOptions(cctx *cli.Context) []client.Option {
	var opts []client.Option
	if host := cctx.String("api-host"); host != "" {
		opts = append(opts, client.WithAPIHost(host))
	}
	if d := cctx.Duration("timeout"); d > 0 {
		opts = append(opts, client.WithTimeout(d))
	}
	return opts
}

// Returns an authenticated client: from the persisted session if it matches the configured account, otherwise by logging in with the configured password.
func loadClient(ctx context.Context, cctx *cli.Context) (*client.Client, error) {
	cfg := configFromFlags(cctx)
	opts := clientOptions(cctx)

	fPath, err := xdg.SearchStateFile(sessionFile)
	if err == nil {
		sess, err := loadSession(fPath)
		if err != nil && !errors.Is(err, ErrNoSession) {
			return nil, err
		}
		if sess != nil && sess.matches(cfg) {
			cfg.Subdomain = sess.Subdomain
			cfg.Email = sess.Email
			if sess.APIHost != "" && cctx.String("api-host") == "" {
				opts = append(opts, client.WithAPIHost(sess.APIHost))
			}
			return client.Restore(cfg, sess.Tokens, opts...)
		}
	}

	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: run 'ningctl login' or provide --password", ErrNoSession)
	}
	return client.New(ctx, cfg, opts...)
}
