package thingsboard

import (
	"context"
	"net/http"
	"net/url"

	"argynix-connect/internal/domain"
)

func (c *Client) GetTenantDevices(ctx context.Context, link domain.PageLink, deviceType string) (*domain.PageData[domain.Device], error) {
	q := withParams(link.Params(), map[string]string{"type": deviceType})
	return fetch[domain.PageData[domain.Device]](ctx, c, http.MethodGet, "/api/tenant/devices", q, nil)
}

func (c *Client) GetCustomerDevices(ctx context.Context, customerID string, link domain.PageLink, deviceType string) (*domain.PageData[domain.Device], error) {
	q := withParams(link.Params(), map[string]string{"type": deviceType})
	return fetch[domain.PageData[domain.Device]](ctx, c, http.MethodGet, "/api/customer/"+url.PathEscape(customerID)+"/devices", q, nil)
}

func (c *Client) GetDevice(ctx context.Context, deviceID string) (*domain.Device, error) {
	return fetch[domain.Device](ctx, c, http.MethodGet, "/api/device/"+url.PathEscape(deviceID), nil, nil)
}

// SaveDevice creates the device when it has no id, otherwise updates it.
func (c *Client) SaveDevice(ctx context.Context, device *domain.Device) (*domain.Device, error) {
	return fetch[domain.Device](ctx, c, http.MethodPost, "/api/device", nil, device)
}

func (c *Client) DeleteDevice(ctx context.Context, deviceID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/device/"+url.PathEscape(deviceID), nil, nil)
}
