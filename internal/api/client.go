// Package api is a client for the remote events API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to Doer.
type DoerFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

// TokenSource returns the bearer token for the request context.
type TokenSource func(ctx context.Context) string

type tokenKey struct{}

// ContextWithToken returns a context carrying the caller's bearer token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext is the TokenSource used by NewClient.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// WithBearer wraps next so every request carries an Authorization header
// built from source. Requests are left untouched when there is no token.
func WithBearer(next Doer, source TokenSource) Doer {
	return DoerFunc(func(req *http.Request) (*http.Response, error) {
		if token := source(req.Context()); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return next.Do(req)
	})
}

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the remote events API.
type Client struct {
	baseURL string
	doer    Doer
}

// NewClient builds a Client whose requests carry the token stored in
// their context via ContextWithToken.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return NewClientWithDoer(cfg.BaseURL, WithBearer(httpClient, TokenFromContext))
}

// NewClientWithDoer builds a Client over an arbitrary Doer chain.
func NewClientWithDoer(baseURL string, doer Doer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
	}
}

// do sends a JSON request and decodes a JSON response into out when out
// is non-nil. Non-2xx responses become *Error.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	// An empty 2xx body leaves out untouched.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
