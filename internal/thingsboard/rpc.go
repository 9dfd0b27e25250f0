package thingsboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// RPCRequest device RPC body. Timeout is in milliseconds; zero keeps the platform default.
type RPCRequest struct {
	Method  string `json:"method"`
	Params  any    `json:"params"`
	Timeout int64  `json:"timeout,omitempty"`
}

type scheduledRPC struct {
	RPCRequest
	FireTime int64 `json:"fireTime"`
}

func (c *Client) SendOneWayRPC(ctx context.Context, deviceID string, req RPCRequest) error {
	return c.exec(ctx, http.MethodPost, "/api/rpc/oneway/"+url.PathEscape(deviceID), nil, req)
}

// SendTwoWayRPC returns the device reply verbatim.
func (c *Client) SendTwoWayRPC(ctx context.Context, deviceID string, req RPCRequest) (json.RawMessage, error) {
	return c.call(ctx, http.MethodPost, "/api/rpc/twoway/"+url.PathEscape(deviceID), nil, req)
}

// SendScheduledRPC asks the platform to deliver req at fireTime (epoch ms).
func (c *Client) SendScheduledRPC(ctx context.Context, deviceID string, req RPCRequest, fireTime int64) error {
	body := scheduledRPC{RPCRequest: req, FireTime: fireTime}
	return c.exec(ctx, http.MethodPost, c.scheduledRPCPath+"/"+url.PathEscape(deviceID), nil, body)
}
