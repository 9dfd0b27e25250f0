package thingsboard

import (
	"context"
	"net/http"
	"net/url"

	"argynix-connect/internal/domain"
)

func (c *Client) GetWidgetsBundles(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.WidgetsBundle], error) {
	return fetch[domain.PageData[domain.WidgetsBundle]](ctx, c, http.MethodGet, "/api/widgetsBundles", link.Params(), nil)
}

func (c *Client) GetBundleWidgetTypes(ctx context.Context, bundleID string, link domain.PageLink) (*domain.PageData[domain.WidgetTypeInfo], error) {
	q := link.Params()
	q["widgetsBundleId"] = bundleID
	return fetch[domain.PageData[domain.WidgetTypeInfo]](ctx, c, http.MethodGet, "/api/widgetTypesInfos", q, nil)
}

func (c *Client) DeleteWidgetsBundle(ctx context.Context, bundleID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/widgetsBundle/"+url.PathEscape(bundleID), nil, nil)
}

func (c *Client) GetTenantProfileInfos(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.TenantProfileInfo], error) {
	return fetch[domain.PageData[domain.TenantProfileInfo]](ctx, c, http.MethodGet, "/api/tenantProfileInfos", link.Params(), nil)
}
