package thingsboard

import (
	"context"
	"net/http"
	"net/url"

	"argynix-connect/internal/domain"
)

func (c *Client) GetCustomers(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.Customer], error) {
	return fetch[domain.PageData[domain.Customer]](ctx, c, http.MethodGet, "/api/customers", link.Params(), nil)
}

func (c *Client) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	return fetch[domain.Customer](ctx, c, http.MethodGet, "/api/customer/"+url.PathEscape(customerID), nil, nil)
}

func (c *Client) SaveCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	return fetch[domain.Customer](ctx, c, http.MethodPost, "/api/customer", nil, customer)
}

func (c *Client) DeleteCustomer(ctx context.Context, customerID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/customer/"+url.PathEscape(customerID), nil, nil)
}
