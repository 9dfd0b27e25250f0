package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"argynix-connect/internal/export"
	"argynix-connect/internal/service"

	"go.uber.org/zap"
)

// Exporter runs an export for a stored session and writes the file.
type Exporter interface {
	ExportToDir(ctx context.Context, sessionID string, req service.ExportRequest) (string, error)
}

// Subscriber is satisfied by *Client.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler MessageHandler) error
}

// Publisher is satisfied by *Client.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// Export outcomes reported on the result topic.
const (
	StatusWritten = "written"
	StatusNoData  = "no_data"
	StatusFailed  = "failed"
)

// ExportResult is published once per trigger when a result topic is set.
type ExportResult struct {
	SessionID string `json:"sessionId"`
	DeviceID  string `json:"deviceId"`
	Status    string `json:"status"`
	Path      string `json:"path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ExportTrigger message body. Either a single object or an array of them.
type ExportTrigger struct {
	SessionID string `json:"sessionId"`
	service.ExportRequest
}

// ExportBroker turns MQTT messages into export files.
type ExportBroker struct {
	exporter Exporter
	timeout  time.Duration
	logger   *zap.Logger

	results     Publisher
	resultTopic string
	resultQoS   byte
}

func NewExportBroker(exporter Exporter, logger *zap.Logger) *ExportBroker {
	return &ExportBroker{exporter: exporter, timeout: 2 * time.Minute, logger: logger}
}

// PublishResults reports every processed trigger on topic.
func (b *ExportBroker) PublishResults(pub Publisher, topic string, qos byte) {
	b.results, b.resultTopic, b.resultQoS = pub, topic, qos
}

// HandleMessage processes every trigger in payload; one failing trigger does
// not stop the rest.
func (b *ExportBroker) HandleMessage(topic string, payload []byte) error {
	triggers, err := decodeTriggers(payload)
	if err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	var errs []error
	for _, tr := range triggers {
		res := b.process(tr)
		if res.Status == StatusFailed {
			b.logger.Error("Failed to process export trigger",
				zap.String("topic", topic),
				zap.String("device_id", tr.DeviceID),
				zap.String("error", res.Error),
			)
			errs = append(errs, errors.New(res.Error))
		}
		b.report(res)
	}
	return errors.Join(errs...)
}

func (b *ExportBroker) report(res ExportResult) {
	if b.results == nil {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		b.logger.Error("Failed to marshal export result", zap.Error(err))
		return
	}
	if err := b.results.Publish(b.resultTopic, b.resultQoS, false, payload); err != nil {
		b.logger.Warn("Failed to publish export result",
			zap.String("topic", b.resultTopic),
			zap.Error(err),
		)
	}
}

func (b *ExportBroker) process(tr ExportTrigger) ExportResult {
	res := ExportResult{SessionID: tr.SessionID, DeviceID: tr.DeviceID}
	if tr.SessionID == "" {
		res.Status, res.Error = StatusFailed, "sessionId is required"
		return res
	}
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	path, err := b.exporter.ExportToDir(ctx, tr.SessionID, tr.ExportRequest)
	if errors.Is(err, export.ErrNoData) {
		b.logger.Info("Export trigger produced no data",
			zap.String("device_id", tr.DeviceID),
			zap.Int64("start_ts", tr.StartTs),
			zap.Int64("end_ts", tr.EndTs),
		)
		res.Status = StatusNoData
		return res
	}
	if err != nil {
		res.Status, res.Error = StatusFailed, err.Error()
		return res
	}

	b.logger.Info("Export written via MQTT trigger",
		zap.String("device_id", tr.DeviceID),
		zap.String("path", path),
	)
	res.Status, res.Path = StatusWritten, path
	return res
}

// Start subscribes the broker to topic.
func (b *ExportBroker) Start(sub Subscriber, topic string, qos byte) error {
	if err := sub.Subscribe(topic, qos, b.HandleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}
	b.logger.Info("MQTT export broker started", zap.String("topic", topic))
	return nil
}

func decodeTriggers(payload []byte) ([]ExportTrigger, error) {
	var many []ExportTrigger
	if err := json.Unmarshal(payload, &many); err == nil {
		return many, nil
	}
	var one ExportTrigger
	if err := json.Unmarshal(payload, &one); err != nil {
		return nil, err
	}
	return []ExportTrigger{one}, nil
}
