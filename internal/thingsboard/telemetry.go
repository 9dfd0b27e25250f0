package thingsboard

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"argynix-connect/internal/domain"
)

// TimeseriesQuery time window and keys for a raw (non aggregated) read.
type TimeseriesQuery struct {
	Keys    []string
	StartTs int64
	EndTs   int64
	Limit   int
}

func telemetryPath(entityType, entityID, suffix string) string {
	return "/api/plugins/telemetry/" + url.PathEscape(entityType) + "/" + url.PathEscape(entityID) + suffix
}

func (c *Client) GetTimeseriesKeys(ctx context.Context, entityType, entityID string) ([]string, error) {
	keys, err := fetch[[]string](ctx, c, http.MethodGet, telemetryPath(entityType, entityID, "/keys/timeseries"), nil, nil)
	if err != nil || keys == nil {
		return nil, err
	}
	return *keys, nil
}

// GetTimeseries reads raw samples. An empty answer yields an empty Telemetry, never nil.
func (c *Client) GetTimeseries(ctx context.Context, entityType, entityID string, q TimeseriesQuery) (*domain.Telemetry, error) {
	params := map[string]string{
		"keys":    strings.Join(q.Keys, ","),
		"startTs": strconv.FormatInt(q.StartTs, 10),
		"endTs":   strconv.FormatInt(q.EndTs, 10),
		"agg":     "NONE",
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	t, err := fetch[domain.Telemetry](ctx, c, http.MethodGet, telemetryPath(entityType, entityID, "/values/timeseries"), params, nil)
	if err != nil {
		return nil, err
	}
	if t == nil {
		t = &domain.Telemetry{Series: map[string][]domain.TsPoint{}}
	}
	return t, nil
}
