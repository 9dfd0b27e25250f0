package thingsboard

import (
	"context"
	"net/http"
	"net/url"

	"argynix-connect/internal/domain"
)

func (c *Client) GetTenantDashboards(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.DashboardInfo], error) {
	return fetch[domain.PageData[domain.DashboardInfo]](ctx, c, http.MethodGet, "/api/tenant/dashboards", link.Params(), nil)
}

func (c *Client) GetCustomerDashboards(ctx context.Context, customerID string, link domain.PageLink) (*domain.PageData[domain.DashboardInfo], error) {
	return fetch[domain.PageData[domain.DashboardInfo]](ctx, c, http.MethodGet, "/api/customer/"+url.PathEscape(customerID)+"/dashboards", link.Params(), nil)
}

func (c *Client) DeleteDashboard(ctx context.Context, dashboardID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/dashboard/"+url.PathEscape(dashboardID), nil, nil)
}
