package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/schedule"
	"argynix-connect/internal/thingsboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScheduleService() *ScheduleService {
	s := NewScheduleService(zap.NewNop())
	s.now = func() time.Time { return time.UnixMilli(1_000_000) }
	return s
}

func TestScheduleCreate_UsesLowestFreeKey(t *testing.T) {
	api := new(MockPlatform)
	svc := newTestScheduleService()

	api.On("GetAttributes", mock.Anything, domain.EntityTypeDevice, "d1", domain.ScopeServer, []string(nil)).
		Return([]domain.AttributeKV{
			{Key: "offlineSchedule_1", Value: json.RawMessage(`{}`)},
			{Key: "offlineSchedule_3", Value: json.RawMessage(`{}`)},
			{Key: "active", Value: json.RawMessage(`true`)},
		}, nil)
	api.On("SaveAttributes", mock.Anything, domain.EntityTypeDevice, "d1", domain.ScopeServer, mock.MatchedBy(func(v map[string]any) bool {
		_, ok := v["offlineSchedule_2"]
		return ok && len(v) == 1
	})).Return(nil)

	sc, err := svc.Create(context.Background(), api, "d1", &schedule.Schedule{
		Enabled: true, AttributeKey: "valve", AttributeValue: json.RawMessage(`1`),
		Mode: schedule.ModeRecurring, Days: []int{1, 3}, Time: "06:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "offlineSchedule_2", sc.Key)
	assert.Equal(t, 2, sc.Index)
	api.AssertExpectations(t)
}

func TestScheduleCreate_RefusesThirtyFirst(t *testing.T) {
	api := new(MockPlatform)
	svc := newTestScheduleService()

	attrs := make([]domain.AttributeKV, 0, schedule.MaxSchedules)
	for n := 1; n <= schedule.MaxSchedules; n++ {
		attrs = append(attrs, domain.AttributeKV{Key: schedule.Key(n), Value: json.RawMessage(`{}`)})
	}
	api.On("GetAttributes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(attrs, nil)

	_, err := svc.Create(context.Background(), api, "d1", &schedule.Schedule{
		AttributeKey: "valve", Mode: schedule.ModeParticular, FireTime: 2_000_000,
	})
	assert.ErrorIs(t, err, schedule.ErrScheduleLimit)
	api.AssertNotCalled(t, "SaveAttributes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduleCreate_RejectsPastFireTime(t *testing.T) {
	api := new(MockPlatform)
	svc := newTestScheduleService()

	_, err := svc.Create(context.Background(), api, "d1", &schedule.Schedule{
		AttributeKey: "valve", Mode: schedule.ModeParticular, FireTime: 10,
	})
	assert.ErrorIs(t, err, schedule.ErrInvalid)
	api.AssertNotCalled(t, "GetAttributes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduleSetEnabled_RewritesFullRecord(t *testing.T) {
	api := new(MockPlatform)
	svc := newTestScheduleService()

	stored := `{"enabled":true,"attributeKey":"valve","attributeValue":"open","mode":"recurring","days":[0],"time":"22:15"}`
	api.On("GetAttributes", mock.Anything, domain.EntityTypeDevice, "d1", domain.ScopeServer, []string{"offlineSchedule_5"}).
		Return([]domain.AttributeKV{{Key: "offlineSchedule_5", Value: json.RawMessage(stored)}}, nil)

	var written []byte
	api.On("SaveAttributes", mock.Anything, domain.EntityTypeDevice, "d1", domain.ScopeServer, mock.Anything).
		Run(func(args mock.Arguments) {
			values := args.Get(4).(map[string]any)
			written, _ = json.Marshal(values["offlineSchedule_5"])
		}).Return(nil)

	sc, err := svc.SetEnabled(context.Background(), api, "d1", "offlineSchedule_5", false)
	require.NoError(t, err)
	assert.False(t, sc.Enabled)
	assert.JSONEq(t, `{"enabled":false,"attributeKey":"valve","attributeValue":"open","mode":"recurring","days":[0],"time":"22:15"}`, string(written))
}

func TestScheduleSetEnabled_Missing(t *testing.T) {
	api := new(MockPlatform)
	svc := newTestScheduleService()
	api.On("GetAttributes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.AttributeKV{}, nil)

	_, err := svc.SetEnabled(context.Background(), api, "d1", "offlineSchedule_9", true)
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	_, err = svc.SetEnabled(context.Background(), api, "d1", "active", true)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestScheduleUpdate_RewritesFullRecord(t *testing.T) {
	api := new(MockPlatform)
	svc := newTestScheduleService()

	api.On("GetAttributes", mock.Anything, domain.EntityTypeDevice, "d1", domain.ScopeServer, []string{"offlineSchedule_4"}).
		Return([]domain.AttributeKV{{Key: "offlineSchedule_4", Value: json.RawMessage(`"not a schedule"`)}}, nil)

	var written []byte
	api.On("SaveAttributes", mock.Anything, domain.EntityTypeDevice, "d1", domain.ScopeServer, mock.Anything).
		Run(func(args mock.Arguments) {
			values := args.Get(4).(map[string]any)
			written, _ = json.Marshal(values["offlineSchedule_4"])
		}).Return(nil)

	sc, err := svc.Update(context.Background(), api, "d1", "offlineSchedule_4", &schedule.Schedule{
		Enabled: true, AttributeKey: "fan", AttributeValue: json.RawMessage(`2`),
		Mode: schedule.ModeParticular, FireTime: 5_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, "offlineSchedule_4", sc.Key)
	assert.Equal(t, 4, sc.Index)
	assert.JSONEq(t, `{"enabled":true,"attributeKey":"fan","attributeValue":2,"mode":"particular","fireTime":5000000}`, string(written))
	api.AssertExpectations(t)
}

func TestScheduleUpdate_Missing(t *testing.T) {
	api := new(MockPlatform)
	svc := newTestScheduleService()
	api.On("GetAttributes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.AttributeKV{}, nil)

	valid := &schedule.Schedule{AttributeKey: "valve", Mode: schedule.ModeRecurring, Days: []int{2}, Time: "08:30"}
	_, err := svc.Update(context.Background(), api, "d1", "offlineSchedule_17", valid)
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	_, err = svc.Update(context.Background(), api, "d1", "active", valid)
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	api.AssertNotCalled(t, "SaveAttributes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduleDelete_RemovesKey(t *testing.T) {
	api := new(MockPlatform)
	svc := newTestScheduleService()
	api.On("DeleteAttributes", mock.Anything, domain.EntityTypeDevice, "d1", domain.ScopeServer, []string{"offlineSchedule_7"}).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), api, "d1", "offlineSchedule_7"))
	api.AssertExpectations(t)
}

func TestScheduleList_SortedByIndex(t *testing.T) {
	api := new(MockPlatform)
	svc := newTestScheduleService()
	api.On("GetAttributes", mock.Anything, domain.EntityTypeDevice, "d1", domain.ScopeServer, []string(nil)).
		Return([]domain.AttributeKV{
			{Key: "offlineSchedule_12", Value: json.RawMessage(`{"attributeKey":"b","mode":"particular"}`)},
			{Key: "offlineSchedule_4", Value: json.RawMessage(`{"attributeKey":"a","mode":"particular"}`)},
		}, nil)

	list, err := svc.List(context.Background(), api, "d1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "offlineSchedule_4", list[0].Key)
	assert.Equal(t, "offlineSchedule_12", list[1].Key)
}

func TestRPCSend_Routes(t *testing.T) {
	svc := NewRPCService(zap.NewNop())
	svc.now = func() time.Time { return time.UnixMilli(1_000) }
	ctx := context.Background()

	api := new(MockPlatform)
	api.On("SendOneWayRPC", mock.Anything, "d1", thingsboard.RPCRequest{Method: "reboot", Params: map[string]any{}}).Return(nil)
	reply, err := svc.Send(ctx, api, "d1", RPCCommand{Method: "reboot"})
	require.NoError(t, err)
	assert.Nil(t, reply)

	api.On("SendTwoWayRPC", mock.Anything, "d1", mock.Anything).Return(json.RawMessage(`{"ok":true}`), nil)
	reply, err = svc.Send(ctx, api, "d1", RPCCommand{Method: "getState", TwoWay: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(reply))

	api.On("SendScheduledRPC", mock.Anything, "d1", mock.Anything, int64(5_000)).Return(nil)
	_, err = svc.Send(ctx, api, "d1", RPCCommand{Method: "open", FireTime: 5_000})
	require.NoError(t, err)

	_, err = svc.Send(ctx, api, "d1", RPCCommand{Method: "open", FireTime: 500})
	assert.ErrorIs(t, err, schedule.ErrInvalid)

	_, err = svc.Send(ctx, api, "d1", RPCCommand{})
	var fe *FormError
	assert.ErrorAs(t, err, &fe)

	api.AssertExpectations(t)
}

func TestPermissionSet_RevertsOnFailure(t *testing.T) {
	svc := NewPermissionService(zap.NewNop())
	api := new(MockPlatform)
	current := map[string]bool{"export": false, "schedule": true}

	api.On("SaveAttributes", mock.Anything, domain.EntityTypeUser, "u1", domain.ScopeServer, map[string]any{"permission_export": true}).
		Return(&thingsboard.APIError{StatusCode: 403, Body: "You don't have permission to perform this operation!"}).Once()

	flags, err := svc.Set(context.Background(), api, "u1", current, "export", true)
	require.Error(t, err)
	assert.True(t, thingsboard.IsPermissionDenied(err))
	assert.Equal(t, map[string]bool{"export": false, "schedule": true}, flags)

	api.On("SaveAttributes", mock.Anything, domain.EntityTypeUser, "u1", domain.ScopeServer, map[string]any{"permission_export": true}).Return(nil).Once()
	flags, err = svc.Set(context.Background(), api, "u1", current, "export", true)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"export": true, "schedule": true}, flags)
	assert.False(t, current["export"])
}

func TestPermissionGet_ReadsPrefixedFlags(t *testing.T) {
	svc := NewPermissionService(zap.NewNop())
	api := new(MockPlatform)
	api.On("GetAttributes", mock.Anything, domain.EntityTypeUser, "u1", domain.ScopeServer, []string(nil)).
		Return([]domain.AttributeKV{
			{Key: "permission_export", Value: json.RawMessage(`true`)},
			{Key: "permission_rpc", Value: json.RawMessage(`"false"`)},
			{Key: "lastLoginTs", Value: json.RawMessage(`1`)},
		}, nil)

	flags, err := svc.Get(context.Background(), api, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"export": true, "rpc": false}, flags)

	api2 := new(MockPlatform)
	api2.On("GetAttributes", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
	_, err = svc.Get(context.Background(), api2, "u1")
	assert.EqualError(t, err, "boom")
}
