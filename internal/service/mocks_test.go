package service

import (
	"context"
	"encoding/json"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/repository"
	"argynix-connect/internal/thingsboard"

	"github.com/stretchr/testify/mock"
)

// MockPlatform stands in for the ThingsBoard client.
type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) GetTimeseries(ctx context.Context, entityType, entityID string, q thingsboard.TimeseriesQuery) (*domain.Telemetry, error) {
	args := m.Called(ctx, entityType, entityID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Telemetry), args.Error(1)
}

func (m *MockPlatform) GetAttributes(ctx context.Context, entityType, entityID, scope string, keys []string) ([]domain.AttributeKV, error) {
	args := m.Called(ctx, entityType, entityID, scope, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttributeKV), args.Error(1)
}

func (m *MockPlatform) SaveAttributes(ctx context.Context, entityType, entityID, scope string, values map[string]any) error {
	args := m.Called(ctx, entityType, entityID, scope, values)
	return args.Error(0)
}

func (m *MockPlatform) DeleteAttributes(ctx context.Context, entityType, entityID, scope string, keys []string) error {
	args := m.Called(ctx, entityType, entityID, scope, keys)
	return args.Error(0)
}

func (m *MockPlatform) SendOneWayRPC(ctx context.Context, deviceID string, req thingsboard.RPCRequest) error {
	args := m.Called(ctx, deviceID, req)
	return args.Error(0)
}

func (m *MockPlatform) SendTwoWayRPC(ctx context.Context, deviceID string, req thingsboard.RPCRequest) (json.RawMessage, error) {
	args := m.Called(ctx, deviceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockPlatform) SendScheduledRPC(ctx context.Context, deviceID string, req thingsboard.RPCRequest, fireTime int64) error {
	args := m.Called(ctx, deviceID, req, fireTime)
	return args.Error(0)
}

func (m *MockPlatform) GetTenantDevices(ctx context.Context, link domain.PageLink, deviceType string) (*domain.PageData[domain.Device], error) {
	args := m.Called(ctx, link, deviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageData[domain.Device]), args.Error(1)
}

func (m *MockPlatform) GetCustomerDevices(ctx context.Context, customerID string, link domain.PageLink, deviceType string) (*domain.PageData[domain.Device], error) {
	args := m.Called(ctx, customerID, link, deviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageData[domain.Device]), args.Error(1)
}

func (m *MockPlatform) GetTenantAssets(ctx context.Context, link domain.PageLink, assetType string) (*domain.PageData[domain.Asset], error) {
	args := m.Called(ctx, link, assetType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageData[domain.Asset]), args.Error(1)
}

func (m *MockPlatform) GetCustomerAssets(ctx context.Context, customerID string, link domain.PageLink, assetType string) (*domain.PageData[domain.Asset], error) {
	args := m.Called(ctx, customerID, link, assetType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageData[domain.Asset]), args.Error(1)
}

func (m *MockPlatform) GetCustomers(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.Customer], error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageData[domain.Customer]), args.Error(1)
}

func (m *MockPlatform) GetAlarms(ctx context.Context, q thingsboard.AlarmQuery) (*domain.PageData[domain.Alarm], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageData[domain.Alarm]), args.Error(1)
}

func (m *MockPlatform) GetJobs(ctx context.Context, link domain.PageLink) (*domain.PageData[domain.Job], error) {
	args := m.Called(ctx, link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageData[domain.Job]), args.Error(1)
}

func (m *MockPlatform) GetUnreadNotificationsCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockExportHistory records calls to the history repository.
type MockExportHistory struct {
	mock.Mock
}

func (m *MockExportHistory) Record(ctx context.Context, rec *domain.ExportRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockExportHistory) List(ctx context.Context, filter repository.ExportFilter, page, size int) ([]*domain.ExportRecord, int, error) {
	args := m.Called(ctx, filter, page, size)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.ExportRecord), args.Int(1), args.Error(2)
}
