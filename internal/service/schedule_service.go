package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/schedule"

	"go.uber.org/zap"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// AttributeAPI attribute reads and writes on any entity.
type AttributeAPI interface {
	GetAttributes(ctx context.Context, entityType, entityID, scope string, keys []string) ([]domain.AttributeKV, error)
	SaveAttributes(ctx context.Context, entityType, entityID, scope string, values map[string]any) error
	DeleteAttributes(ctx context.Context, entityType, entityID, scope string, keys []string) error
}

// ScheduleService manages offline schedules kept as SERVER_SCOPE device
// attributes. Every write rewrites the full record.
type ScheduleService struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewScheduleService(logger *zap.Logger) *ScheduleService {
	return &ScheduleService{logger: logger, now: time.Now}
}

func (s *ScheduleService) List(ctx context.Context, api AttributeAPI, deviceID string) ([]*schedule.Schedule, error) {
	attrs, err := api.GetAttributes(ctx, domain.EntityTypeDevice, deviceID, domain.ScopeServer, nil)
	if err != nil {
		return nil, err
	}
	list, skipped := schedule.FromAttributes(attrs)
	if len(skipped) > 0 {
		s.logger.Warn("Skipping unreadable schedules",
			zap.String("device_id", deviceID),
			zap.Strings("keys", skipped),
		)
	}
	return list, nil
}

// Create stores sc under the lowest free offlineSchedule_<n> key.
func (s *ScheduleService) Create(ctx context.Context, api AttributeAPI, deviceID string, sc *schedule.Schedule) (*schedule.Schedule, error) {
	if err := schedule.Validate(sc, s.now()); err != nil {
		return nil, err
	}
	attrs, err := api.GetAttributes(ctx, domain.EntityTypeDevice, deviceID, domain.ScopeServer, nil)
	if err != nil {
		return nil, err
	}
	existing := make([]string, 0, len(attrs))
	for _, a := range attrs {
		existing = append(existing, a.Key)
	}
	key, err := schedule.AllocateKey(existing)
	if err != nil {
		return nil, err
	}

	if err := s.write(ctx, api, deviceID, key, sc); err != nil {
		return nil, err
	}
	s.logger.Info("Schedule created", zap.String("device_id", deviceID), zap.String("key", key))
	return sc, nil
}

func (s *ScheduleService) Update(ctx context.Context, api AttributeAPI, deviceID, key string, sc *schedule.Schedule) (*schedule.Schedule, error) {
	if _, ok := schedule.ParseKey(key); !ok {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, key)
	}
	if err := schedule.Validate(sc, s.now()); err != nil {
		return nil, err
	}
	ok, err := s.exists(ctx, api, deviceID, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, key)
	}
	if err := s.write(ctx, api, deviceID, key, sc); err != nil {
		return nil, err
	}
	s.logger.Info("Schedule updated", zap.String("device_id", deviceID), zap.String("key", key))
	return sc, nil
}

// SetEnabled reads the stored record and rewrites it with the new flag.
func (s *ScheduleService) SetEnabled(ctx context.Context, api AttributeAPI, deviceID, key string, enabled bool) (*schedule.Schedule, error) {
	sc, err := s.get(ctx, api, deviceID, key)
	if err != nil {
		return nil, err
	}
	sc.Enabled = enabled
	if err := s.write(ctx, api, deviceID, key, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *ScheduleService) Delete(ctx context.Context, api AttributeAPI, deviceID, key string) error {
	if _, ok := schedule.ParseKey(key); !ok {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, key)
	}
	if err := api.DeleteAttributes(ctx, domain.EntityTypeDevice, deviceID, domain.ScopeServer, []string{key}); err != nil {
		return err
	}
	s.logger.Info("Schedule deleted", zap.String("device_id", deviceID), zap.String("key", key))
	return nil
}

// exists reports whether key is stored, readable or not. Update replaces the
// whole record so an unreadable value does not block it.
func (s *ScheduleService) exists(ctx context.Context, api AttributeAPI, deviceID, key string) (bool, error) {
	attrs, err := api.GetAttributes(ctx, domain.EntityTypeDevice, deviceID, domain.ScopeServer, []string{key})
	if err != nil {
		return false, err
	}
	for _, a := range attrs {
		if a.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func (s *ScheduleService) get(ctx context.Context, api AttributeAPI, deviceID, key string) (*schedule.Schedule, error) {
	if _, ok := schedule.ParseKey(key); !ok {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, key)
	}
	attrs, err := api.GetAttributes(ctx, domain.EntityTypeDevice, deviceID, domain.ScopeServer, []string{key})
	if err != nil {
		return nil, err
	}
	for _, a := range attrs {
		if a.Key == key {
			return schedule.Decode(a)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, key)
}

func (s *ScheduleService) write(ctx context.Context, api AttributeAPI, deviceID, key string, sc *schedule.Schedule) error {
	n, _ := schedule.ParseKey(key)
	sc.Key, sc.Index = key, n
	if len(sc.AttributeValue) == 0 {
		sc.AttributeValue = json.RawMessage("null")
	}
	return api.SaveAttributes(ctx, domain.EntityTypeDevice, deviceID, domain.ScopeServer, map[string]any{key: sc})
}
