package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/store"

	"go.uber.org/zap"
)

// Snapshot keys written by the pollers.
const (
	SnapshotPrefix           = "argynix:poll:"
	JobsSnapshotKey          = SnapshotPrefix + "jobs"
	NotificationsSnapshotKey = SnapshotPrefix + "notifications"
)

// PollAPI platform reads refreshed in the background.
type PollAPI interface {
	GetJobs(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.Job], error)
	GetUnreadNotificationsCount(ctx context.Context) (int, error)
}

type JobsSnapshot struct {
	Jobs      []domain.Job `json:"jobs"`
	Total     int64        `json:"total"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type NotificationsSnapshot struct {
	Unread    int       `json:"unread"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Poller runs fn at start and on every tick until ctx is done. Failures are
// logged and the next tick retries.
type Poller struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	logger   *zap.Logger
}

func NewPoller(name string, interval time.Duration, fn func(ctx context.Context) error, logger *zap.Logger) *Poller {
	return &Poller{name: name, interval: interval, fn: fn, logger: logger}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("Starting poller",
		zap.String("poller", p.name),
		zap.Duration("interval", p.interval),
	)
	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Poller stopped", zap.String("poller", p.name))
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) Name() string { return p.name }

func (p *Poller) Interval() time.Duration { return p.interval }

// Refresh runs one poll now and returns its error.
func (p *Poller) Refresh(ctx context.Context) error { return p.fn(ctx) }

func (p *Poller) tick(ctx context.Context) {
	if err := p.fn(ctx); err != nil && ctx.Err() == nil {
		p.logger.Error("Poll failed", zap.String("poller", p.name), zap.Error(err))
	}
}

// NewJobsPoller refreshes the newest jobs page into the KV store.
func NewJobsPoller(api PollAPI, kv store.KV, interval time.Duration, logger *zap.Logger) *Poller {
	return NewPoller("jobs", interval, func(ctx context.Context) error {
		page, err := api.GetJobs(ctx, domain.PageLink{PageSize: 20, SortProperty: "createdTime", SortOrder: "DESC"})
		if err != nil {
			return err
		}
		snap := JobsSnapshot{UpdatedAt: time.Now().UTC()}
		if page != nil {
			snap.Jobs, snap.Total = page.Data, page.TotalElements
		}
		return store.SetJSON(ctx, kv, JobsSnapshotKey, snap, 0)
	}, logger)
}

// NewNotificationsPoller refreshes the unread notification count.
func NewNotificationsPoller(api PollAPI, kv store.KV, interval time.Duration, logger *zap.Logger) *Poller {
	return NewPoller("notifications", interval, func(ctx context.Context) error {
		n, err := api.GetUnreadNotificationsCount(ctx)
		if err != nil {
			return err
		}
		return store.SetJSON(ctx, kv, NotificationsSnapshotKey, NotificationsSnapshot{Unread: n, UpdatedAt: time.Now().UTC()}, 0)
	}, logger)
}

func LatestJobs(ctx context.Context, kv store.KV) (*JobsSnapshot, error) {
	var snap JobsSnapshot
	if err := store.GetJSON(ctx, kv, JobsSnapshotKey, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func LatestNotifications(ctx context.Context, kv store.KV) (*NotificationsSnapshot, error) {
	var snap NotificationsSnapshot
	if err := store.GetJSON(ctx, kv, NotificationsSnapshotKey, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// LatestSnapshots returns every stored poller snapshot keyed by poller name.
func LatestSnapshots(ctx context.Context, kv store.KV) (map[string]json.RawMessage, error) {
	keys, err := kv.ScanKeys(ctx, SnapshotPrefix+"*")
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		raw, err := kv.Get(ctx, key)
		if errors.Is(err, store.ErrMiss) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[strings.TrimPrefix(key, SnapshotPrefix)] = json.RawMessage(raw)
	}
	return out, nil
}
