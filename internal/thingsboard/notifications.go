package thingsboard

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"argynix-connect/internal/domain"
)

func (c *Client) GetNotifications(ctx context.Context, link domain.PageLink, unreadOnly bool) (*domain.PageData[domain.Notification], error) {
	q := link.Params()
	q["unreadOnly"] = strconv.FormatBool(unreadOnly)
	return fetch[domain.PageData[domain.Notification]](ctx, c, http.MethodGet, "/api/notifications", q, nil)
}

// GetUnreadNotificationsCount returns 0 when the platform answers with an empty body.
func (c *Client) GetUnreadNotificationsCount(ctx context.Context) (int, error) {
	n, err := fetch[int](ctx, c, http.MethodGet, "/api/notifications/unread/count", nil, nil)
	if err != nil || n == nil {
		return 0, err
	}
	return *n, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.exec(ctx, http.MethodPut, "/api/notification/"+url.PathEscape(notificationID)+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.exec(ctx, http.MethodPut, "/api/notifications/read", nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, notificationID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/notification/"+url.PathEscape(notificationID), nil, nil)
}

func (c *Client) GetNotificationRules(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.NotificationRule], error) {
	return fetch[domain.PageData[domain.NotificationRule]](ctx, c, http.MethodGet, "/api/notification/rules", link.Params(), nil)
}

func (c *Client) SaveNotificationRule(ctx context.Context, rule *domain.NotificationRule) (*domain.NotificationRule, error) {
	return fetch[domain.NotificationRule](ctx, c, http.MethodPost, "/api/notification/rule", nil, rule)
}

func (c *Client) DeleteNotificationRule(ctx context.Context, ruleID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/notification/rule/"+url.PathEscape(ruleID), nil, nil)
}

func (c *Client) GetNotificationTemplates(ctx context.Context, link domain.PageLink, notificationTypes []string) (*domain.PageData[domain.NotificationTemplate], error) {
	q := withParams(link.Params(), map[string]string{"notificationTypes": strings.Join(notificationTypes, ",")})
	return fetch[domain.PageData[domain.NotificationTemplate]](ctx, c, http.MethodGet, "/api/notification/templates", q, nil)
}

func (c *Client) SaveNotificationTemplate(ctx context.Context, tpl *domain.NotificationTemplate) (*domain.NotificationTemplate, error) {
	return fetch[domain.NotificationTemplate](ctx, c, http.MethodPost, "/api/notification/template", nil, tpl)
}

func (c *Client) DeleteNotificationTemplate(ctx context.Context, templateID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/notification/template/"+url.PathEscape(templateID), nil, nil)
}
