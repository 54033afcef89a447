package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/eventdash/eventdash-go/internal/model"
)

var ErrNoAccessToken = errors.New("access token not found")

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return resp.AccessToken, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", req, nil)
}
