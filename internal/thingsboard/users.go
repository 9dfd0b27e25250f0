package thingsboard

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"argynix-connect/internal/domain"
)

// GetUsers lists the users visible to the caller (tenant admin scope).
func (c *Client) GetUsers(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.User], error) {
	return fetch[domain.PageData[domain.User]](ctx, c, http.MethodGet, "/api/users", link.Params(), nil)
}

func (c *Client) GetCustomerUsers(ctx context.Context, customerID string, link domain.PageLink) (*domain.PageData[domain.User], error) {
	return fetch[domain.PageData[domain.User]](ctx, c, http.MethodGet, "/api/customer/"+url.PathEscape(customerID)+"/users", link.Params(), nil)
}

func (c *Client) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return fetch[domain.User](ctx, c, http.MethodGet, "/api/user/"+url.PathEscape(userID), nil, nil)
}

func (c *Client) SaveUser(ctx context.Context, user *domain.User, sendActivationMail bool) (*domain.User, error) {
	q := map[string]string{"sendActivationMail": strconv.FormatBool(sendActivationMail)}
	return fetch[domain.User](ctx, c, http.MethodPost, "/api/user", q, user)
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/user/"+url.PathEscape(userID), nil, nil)
}
