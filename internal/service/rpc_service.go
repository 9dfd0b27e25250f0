package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"argynix-connect/internal/schedule"
	"argynix-connect/internal/thingsboard"

	"go.uber.org/zap"
)

// RPCAPI device RPC calls.
type RPCAPI interface {
	SendOneWayRPC(ctx context.Context, deviceID string, req thingsboard.RPCRequest) error
	SendTwoWayRPC(ctx context.Context, deviceID string, req thingsboard.RPCRequest) (json.RawMessage, error)
	SendScheduledRPC(ctx context.Context, deviceID string, req thingsboard.RPCRequest, fireTime int64) error
}

// RPCCommand an online schedule entry. FireTime zero means send now.
type RPCCommand struct {
	Method   string `json:"method" validate:"required,max=255"`
	Params   any    `json:"params"`
	TwoWay   bool   `json:"twoWay"`
	Timeout  int64  `json:"timeout" validate:"min=0"`
	FireTime int64  `json:"fireTime" validate:"min=0"`
}

type RPCService struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewRPCService(logger *zap.Logger) *RPCService {
	return &RPCService{logger: logger, now: time.Now}
}

// Send delivers cmd. Only an immediate two-way call returns a reply.
func (s *RPCService) Send(ctx context.Context, api RPCAPI, deviceID string, cmd RPCCommand) (json.RawMessage, error) {
	if err := ValidateForm(&cmd); err != nil {
		return nil, err
	}
	req := thingsboard.RPCRequest{Method: cmd.Method, Params: cmd.Params, Timeout: cmd.Timeout}
	if req.Params == nil {
		req.Params = map[string]any{}
	}

	if cmd.FireTime > 0 {
		if cmd.FireTime <= s.now().UnixMilli() {
			return nil, fmt.Errorf("%w: fire time must be in the future", schedule.ErrInvalid)
		}
		if err := api.SendScheduledRPC(ctx, deviceID, req, cmd.FireTime); err != nil {
			return nil, err
		}
		s.logger.Info("Scheduled RPC submitted",
			zap.String("device_id", deviceID),
			zap.String("method", cmd.Method),
			zap.Int64("fire_time", cmd.FireTime),
		)
		return nil, nil
	}

	if cmd.TwoWay {
		return api.SendTwoWayRPC(ctx, deviceID, req)
	}
	return nil, api.SendOneWayRPC(ctx, deviceID, req)
}
