package thingsboard

import (
	"context"
	"net/http"
	"net/url"

	"argynix-connect/internal/domain"
)

func (c *Client) GetTenantAssets(ctx context.Context, link domain.PageLink, assetType string) (*domain.PageData[domain.Asset], error) {
	q := withParams(link.Params(), map[string]string{"type": assetType})
	return fetch[domain.PageData[domain.Asset]](ctx, c, http.MethodGet, "/api/tenant/assets", q, nil)
}

func (c *Client) GetCustomerAssets(ctx context.Context, customerID string, link domain.PageLink, assetType string) (*domain.PageData[domain.Asset], error) {
	q := withParams(link.Params(), map[string]string{"type": assetType})
	return fetch[domain.PageData[domain.Asset]](ctx, c, http.MethodGet, "/api/customer/"+url.PathEscape(customerID)+"/assets", q, nil)
}

func (c *Client) GetAsset(ctx context.Context, assetID string) (*domain.Asset, error) {
	return fetch[domain.Asset](ctx, c, http.MethodGet, "/api/asset/"+url.PathEscape(assetID), nil, nil)
}

func (c *Client) SaveAsset(ctx context.Context, asset *domain.Asset) (*domain.Asset, error) {
	return fetch[domain.Asset](ctx, c, http.MethodPost, "/api/asset", nil, asset)
}

func (c *Client) DeleteAsset(ctx context.Context, assetID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/asset/"+url.PathEscape(assetID), nil, nil)
}
