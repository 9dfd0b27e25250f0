package thingsboard

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"argynix-connect/internal/domain"
)

func (c *Client) GetAuditLogs(ctx context.Context, link domain.PageLink, startTime, endTime int64, actionTypes []string) (*domain.PageData[domain.AuditLog], error) {
	q := withParams(link.Params(), map[string]string{"actionTypes": strings.Join(actionTypes, ",")})
	if startTime > 0 {
		q["startTime"] = strconv.FormatInt(startTime, 10)
	}
	if endTime > 0 {
		q["endTime"] = strconv.FormatInt(endTime, 10)
	}
	return fetch[domain.PageData[domain.AuditLog]](ctx, c, http.MethodGet, "/api/audit/logs", q, nil)
}
