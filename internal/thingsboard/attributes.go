package thingsboard

import (
	"context"
	"net/http"
	"strings"

	"argynix-connect/internal/domain"
)

func scopeOrDefault(scope string) string {
	if scope == "" {
		return domain.ScopeServer
	}
	return scope
}

// GetAttributes reads attributes in scope; no keys means all of them.
func (c *Client) GetAttributes(ctx context.Context, entityType, entityID, scope string, keys []string) ([]domain.AttributeKV, error) {
	var q map[string]string
	if len(keys) > 0 {
		q = map[string]string{"keys": strings.Join(keys, ",")}
	}
	attrs, err := fetch[[]domain.AttributeKV](ctx, c, http.MethodGet, telemetryPath(entityType, entityID, "/values/attributes/"+scopeOrDefault(scope)), q, nil)
	if err != nil || attrs == nil {
		return nil, err
	}
	return *attrs, nil
}

// SaveAttributes writes a key/value object; values are marshalled as JSON.
func (c *Client) SaveAttributes(ctx context.Context, entityType, entityID, scope string, values map[string]any) error {
	return c.exec(ctx, http.MethodPost, telemetryPath(entityType, entityID, "/attributes/"+scopeOrDefault(scope)), nil, values)
}

func (c *Client) DeleteAttributes(ctx context.Context, entityType, entityID, scope string, keys []string) error {
	q := map[string]string{"keys": strings.Join(keys, ",")}
	return c.exec(ctx, http.MethodDelete, telemetryPath(entityType, entityID, "/"+scopeOrDefault(scope)), q, nil)
}
