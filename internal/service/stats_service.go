package service

import (
	"context"
	"sync/atomic"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/thingsboard"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	statsPageSize = 100
	statsFanOut   = 8
)

// StatsAPI platform reads behind the home page counters.
type StatsAPI interface {
	GetTenantDevices(ctx context.Context, link domain.PageLink, deviceType string) (*domain.PageData[domain.Device], error)
	GetCustomerDevices(ctx context.Context, customerID string, link domain.PageLink, deviceType string) (*domain.PageData[domain.Device], error)
	GetTenantAssets(ctx context.Context, link domain.PageLink, assetType string) (*domain.PageData[domain.Asset], error)
	GetCustomerAssets(ctx context.Context, customerID string, link domain.PageLink, assetType string) (*domain.PageData[domain.Asset], error)
	GetCustomers(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.Customer], error)
	GetAlarms(ctx context.Context, q thingsboard.AlarmQuery) (*domain.PageData[domain.Alarm], error)
	GetAttributes(ctx context.Context, entityType, entityID, scope string, keys []string) ([]domain.AttributeKV, error)
}

type DashboardStats struct {
	Devices         int   `json:"devices"`
	ActiveDevices   int   `json:"activeDevices"`
	InactiveDevices int   `json:"inactiveDevices"`
	Assets          int64 `json:"assets"`
	Customers       int64 `json:"customers"`
	ActiveAlarms    int64 `json:"activeAlarms"`
}

type StatsService struct {
	logger *zap.Logger
}

func NewStatsService(logger *zap.Logger) *StatsService {
	return &StatsService{logger: logger}
}

// DashboardStats counts devices by their "active" attribute, checked in a
// bounded parallel fan-out, plus asset, customer and active alarm totals.
// A customerID scopes devices and assets and skips the customer count.
func (s *StatsService) DashboardStats(ctx context.Context, api StatsAPI, customerID string) (*DashboardStats, error) {
	devices, err := s.allDevices(ctx, api, customerID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Devices: len(devices)}
	var active atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statsFanOut)
	for _, d := range devices {
		if d.ID == nil {
			continue
		}
		id := d.ID.ID
		g.Go(func() error {
			attrs, err := api.GetAttributes(gctx, domain.EntityTypeDevice, id, domain.ScopeServer, []string{"active"})
			if err != nil {
				return err
			}
			for _, a := range attrs {
				if a.Key == "active" && truthy(a.Value) {
					active.Add(1)
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		link := domain.PageLink{PageSize: 1}
		var page *domain.PageData[domain.Asset]
		var err error
		if customerID != "" {
			page, err = api.GetCustomerAssets(gctx, customerID, link, "")
		} else {
			page, err = api.GetTenantAssets(gctx, link, "")
		}
		if err != nil {
			return err
		}
		if page != nil {
			stats.Assets = page.TotalElements
		}
		return nil
	})
	g.Go(func() error {
		page, err := api.GetAlarms(gctx, thingsboard.AlarmQuery{
			Link:       domain.PageLink{PageSize: 1},
			StatusList: []string{domain.AlarmStatusActive},
		})
		if err != nil {
			return err
		}
		if page != nil {
			stats.ActiveAlarms = page.TotalElements
		}
		return nil
	})
	if customerID == "" {
		g.Go(func() error {
			page, err := api.GetCustomers(gctx, domain.PageLink{PageSize: 1})
			if err != nil {
				return err
			}
			if page != nil {
				stats.Customers = page.TotalElements
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats.ActiveDevices = int(active.Load())
	stats.InactiveDevices = stats.Devices - stats.ActiveDevices

	s.logger.Debug("Dashboard stats computed",
		zap.Int("devices", stats.Devices),
		zap.Int("active", stats.ActiveDevices),
	)
	return stats, nil
}

func (s *StatsService) allDevices(ctx context.Context, api StatsAPI, customerID string) ([]domain.Device, error) {
	var out []domain.Device
	for page := 0; ; page++ {
		link := domain.PageLink{PageSize: statsPageSize, Page: page}
		var data *domain.PageData[domain.Device]
		var err error
		if customerID != "" {
			data, err = api.GetCustomerDevices(ctx, customerID, link, "")
		} else {
			data, err = api.GetTenantDevices(ctx, link, "")
		}
		if err != nil {
			return nil, err
		}
		if data == nil {
			return out, nil
		}
		out = append(out, data.Data...)
		if !data.HasNext {
			return out, nil
		}
	}
}
