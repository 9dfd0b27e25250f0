package thingsboard

import (
	"context"
	"net/http"

	"argynix-connect/internal/domain"
)

// Login exchanges credentials for a JWT pair.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	return fetch[domain.LoginResponse](ctx, c, http.MethodPost, "/api/auth/login", nil, body)
}

// GetCurrentUser returns the user the token belongs to.
func (c *Client) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	return fetch[domain.User](ctx, c, http.MethodGet, "/api/auth/user", nil, nil)
}
