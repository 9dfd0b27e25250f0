package mqtt

import (
	"context"
	"errors"
	"testing"

	"argynix-connect/internal/export"
	"argynix-connect/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportToDir(ctx context.Context, sessionID string, req service.ExportRequest) (string, error) {
	args := m.Called(ctx, sessionID, req)
	return args.String(0), args.Error(1)
}

type fakeSubscriber struct {
	topic   string
	qos     byte
	handler MessageHandler
}

func (f *fakeSubscriber) Subscribe(topic string, qos byte, handler MessageHandler) error {
	f.topic, f.qos, f.handler = topic, qos, handler
	return nil
}

func TestHandleMessage_SingleTrigger(t *testing.T) {
	exp := new(MockExporter)
	b := NewExportBroker(exp, zap.NewNop())

	want := service.ExportRequest{DeviceID: "d1", DeviceName: "Boiler", Keys: []string{"temp"}, StartTs: 1, EndTs: 2, Format: "csv"}
	exp.On("ExportToDir", mock.Anything, "s1", want).Return("/tmp/Boiler_1_2.csv", nil)

	payload := `{"sessionId":"s1","deviceId":"d1","deviceName":"Boiler","keys":["temp"],"startTs":1,"endTs":2,"format":"csv"}`
	require.NoError(t, b.HandleMessage("argynix/export/requests", []byte(payload)))
	exp.AssertExpectations(t)
}

func TestHandleMessage_ArrayContinuesAfterFailure(t *testing.T) {
	exp := new(MockExporter)
	b := NewExportBroker(exp, zap.NewNop())

	exp.On("ExportToDir", mock.Anything, "s1", mock.MatchedBy(func(r service.ExportRequest) bool { return r.DeviceID == "d1" })).
		Return("", errors.New("session not found"))
	exp.On("ExportToDir", mock.Anything, "s1", mock.MatchedBy(func(r service.ExportRequest) bool { return r.DeviceID == "d2" })).
		Return("", export.ErrNoData)
	exp.On("ExportToDir", mock.Anything, "s1", mock.MatchedBy(func(r service.ExportRequest) bool { return r.DeviceID == "d3" })).
		Return("/tmp/x.json", nil)

	payload := `[{"sessionId":"s1","deviceId":"d1"},{"sessionId":"s1","deviceId":"d2"},{"sessionId":"s1","deviceId":"d3"}]`
	err := b.HandleMessage("t", []byte(payload))
	assert.ErrorContains(t, err, "session not found")
	exp.AssertNumberOfCalls(t, "ExportToDir", 3)
}

func TestHandleMessage_BadPayload(t *testing.T) {
	b := NewExportBroker(new(MockExporter), zap.NewNop())
	assert.Error(t, b.HandleMessage("t", []byte(`not json`)))
	assert.ErrorContains(t, b.HandleMessage("t", []byte(`{"deviceId":"d1"}`)), "sessionId")
}

type fakePublisher struct {
	topics   []string
	payloads [][]byte
}

func (f *fakePublisher) Publish(topic string, qos byte, retained bool, payload []byte) error {
	f.topics = append(f.topics, topic)
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestHandleMessage_PublishesResults(t *testing.T) {
	exp := new(MockExporter)
	pub := &fakePublisher{}
	b := NewExportBroker(exp, zap.NewNop())
	b.PublishResults(pub, "argynix/export/results", 0)

	exp.On("ExportToDir", mock.Anything, "s1", mock.MatchedBy(func(r service.ExportRequest) bool { return r.DeviceID == "d1" })).
		Return("/tmp/a.csv", nil)
	exp.On("ExportToDir", mock.Anything, "s1", mock.MatchedBy(func(r service.ExportRequest) bool { return r.DeviceID == "d2" })).
		Return("", export.ErrNoData)

	payload := `[{"sessionId":"s1","deviceId":"d1"},{"sessionId":"s1","deviceId":"d2"},{"deviceId":"d3"}]`
	assert.Error(t, b.HandleMessage("t", []byte(payload)))

	require.Len(t, pub.payloads, 3)
	assert.Equal(t, []string{"argynix/export/results", "argynix/export/results", "argynix/export/results"}, pub.topics)
	assert.JSONEq(t, `{"sessionId":"s1","deviceId":"d1","status":"written","path":"/tmp/a.csv"}`, string(pub.payloads[0]))
	assert.JSONEq(t, `{"sessionId":"s1","deviceId":"d2","status":"no_data"}`, string(pub.payloads[1]))
	assert.JSONEq(t, `{"sessionId":"","deviceId":"d3","status":"failed","error":"sessionId is required"}`, string(pub.payloads[2]))
}

func TestStart_Subscribes(t *testing.T) {
	sub := &fakeSubscriber{}
	b := NewExportBroker(new(MockExporter), zap.NewNop())
	require.NoError(t, b.Start(sub, "argynix/export/requests", 1))
	assert.Equal(t, "argynix/export/requests", sub.topic)
	assert.Equal(t, byte(1), sub.qos)
	assert.NotNil(t, sub.handler)
}
