package thingsboard

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"argynix-connect/internal/domain"
)

// AlarmQuery filters for the v2 alarm listing.
type AlarmQuery struct {
	Link         domain.PageLink
	StatusList   []string
	SeverityList []string
	TypeList     []string
	StartTime    int64
	EndTime      int64
}

func (q AlarmQuery) params() map[string]string {
	p := withParams(q.Link.Params(), map[string]string{
		"statusList":   strings.Join(q.StatusList, ","),
		"severityList": strings.Join(q.SeverityList, ","),
		"typeList":     strings.Join(q.TypeList, ","),
	})
	if q.StartTime > 0 {
		p["startTime"] = strconv.FormatInt(q.StartTime, 10)
	}
	if q.EndTime > 0 {
		p["endTime"] = strconv.FormatInt(q.EndTime, 10)
	}
	return p
}

func (c *Client) GetAlarms(ctx context.Context, q AlarmQuery) (*domain.PageData[domain.Alarm], error) {
	return fetch[domain.PageData[domain.Alarm]](ctx, c, http.MethodGet, "/api/v2/alarms", q.params(), nil)
}

func (c *Client) AckAlarm(ctx context.Context, alarmID string) (*domain.Alarm, error) {
	return fetch[domain.Alarm](ctx, c, http.MethodPost, "/api/alarm/"+url.PathEscape(alarmID)+"/ack", nil, nil)
}

func (c *Client) ClearAlarm(ctx context.Context, alarmID string) (*domain.Alarm, error) {
	return fetch[domain.Alarm](ctx, c, http.MethodPost, "/api/alarm/"+url.PathEscape(alarmID)+"/clear", nil, nil)
}

func (c *Client) DeleteAlarm(ctx context.Context, alarmID string) error {
	return c.exec(ctx, http.MethodDelete, "/api/alarm/"+url.PathEscape(alarmID), nil, nil)
}
