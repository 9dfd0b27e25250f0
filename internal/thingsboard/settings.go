package thingsboard

import (
	"context"
	"net/http"

	"argynix-connect/internal/domain"
)

const mailSettingsKey = "mail"

func (c *Client) GetSecuritySettings(ctx context.Context) (*domain.SecuritySettings, error) {
	return fetch[domain.SecuritySettings](ctx, c, http.MethodGet, "/api/admin/securitySettings", nil, nil)
}

func (c *Client) SaveSecuritySettings(ctx context.Context, s *domain.SecuritySettings) (*domain.SecuritySettings, error) {
	return fetch[domain.SecuritySettings](ctx, c, http.MethodPost, "/api/admin/securitySettings", nil, s)
}

func (c *Client) GetMailSettings(ctx context.Context) (*domain.AdminSettings, error) {
	return fetch[domain.AdminSettings](ctx, c, http.MethodGet, "/api/admin/settings/"+mailSettingsKey, nil, nil)
}

// SaveMailSettings forces the settings key to "mail".
func (c *Client) SaveMailSettings(ctx context.Context, s *domain.AdminSettings) (*domain.AdminSettings, error) {
	s.Key = mailSettingsKey
	return fetch[domain.AdminSettings](ctx, c, http.MethodPost, "/api/admin/settings", nil, s)
}
