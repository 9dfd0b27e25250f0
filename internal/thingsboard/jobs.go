package thingsboard

import (
	"context"
	"net/http"
	"net/url"

	"argynix-connect/internal/domain"
)

func (c *Client) GetJobs(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.Job], error) {
	return fetch[domain.PageData[domain.Job]](ctx, c, http.MethodGet, "/api/jobs", link.Params(), nil)
}

func (c *Client) CancelJob(ctx context.Context, jobID string) error {
	return c.exec(ctx, http.MethodPost, "/api/job/"+url.PathEscape(jobID)+"/cancel", nil, nil)
}

func (c *Client) ReprocessJob(ctx context.Context, jobID string) error {
	return c.exec(ctx, http.MethodPost, "/api/job/"+url.PathEscape(jobID)+"/reprocess", nil, nil)
}

func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/job/"+url.PathEscape(jobID), nil, nil)
}
