package thingsboard

import (
	"context"
	"net/http"
	"net/url"

	"argynix-connect/internal/domain"
)

func (c *Client) GetCalculatedFields(ctx context.Context, entityType, entityID string, link domain.PageLink) (*domain.PageData[domain.CalculatedField], error) {
	p := "/api/" + url.PathEscape(entityType) + "/" + url.PathEscape(entityID) + "/calculatedFields"
	return fetch[domain.PageData[domain.CalculatedField]](ctx, c, http.MethodGet, p, link.Params(), nil)
}

func (c *Client) SaveCalculatedField(ctx context.Context, field *domain.CalculatedField) (*domain.CalculatedField, error) {
	return fetch[domain.CalculatedField](ctx, c, http.MethodPost, "/api/calculatedField", nil, field)
}

func (c *Client) DeleteCalculatedField(ctx context.Context, fieldID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/calculatedField/"+url.PathEscape(fieldID), nil, nil)
}
