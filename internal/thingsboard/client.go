package thingsboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const authHeader = "X-Authorization"

// Client ThingsBoard REST client bound to one instance URL and token.
type Client struct {
	httpClient       *resty.Client
	logger           *zap.Logger
	scheduledRPCPath string
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.SetTimeout(d)
		}
	}
}

// WithScheduledRPCPath overrides the endpoint used for RPC calls with a fire time.
func WithScheduledRPCPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.scheduledRPCPath = "/" + strings.Trim(p, "/")
		}
	}
}

// New creates a client. Relative request paths resolve against baseURL.
func New(baseURL, token string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if token != "" {
		httpClient.SetHeader(authHeader, "Bearer "+token)
	}

	c := &Client{
		httpClient:       httpClient,
		logger:           logger,
		scheduledRPCPath: "/api/rpc/scheduled",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call performs one request. Non-2xx answers become *APIError carrying the
// body; empty and 204 bodies come back as nil.
func (c *Client) call(ctx context.Context, method, path string, query map[string]string, body any) ([]byte, error) {
	req := c.httpClient.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Error("ThingsBoard request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	c.logger.Debug("ThingsBoard request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	)

	if status < 200 || status > 299 {
		return nil, &APIError{
			StatusCode: status,
			Method:     method,
			Path:       path,
			Body:       resp.String(),
		}
	}

	raw := resp.Body()
	if status == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	return raw, nil
}

// fetch performs a request and decodes the answer; nil when the platform sent no body.
func fetch[T any](ctx context.Context, c *Client, method, path string, query map[string]string, body any) (*T, error) {
	raw, err := c.call(ctx, method, path, query, body)
	if err != nil || raw == nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return out, nil
}

func (c *Client) exec(ctx context.Context, method, path string, query map[string]string, body any) error {
	_, err := c.call(ctx, method, path, query, body)
	return err
}

func withParams(base map[string]string, extra map[string]string) map[string]string {
	for k, v := range extra {
		if v != "" {
			base[k] = v
		}
	}
	return base
}
