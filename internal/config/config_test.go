package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.ThingsBoard.URL)
	assert.Equal(t, 30*time.Second, cfg.ThingsBoard.Timeout)
	assert.Equal(t, "/api/rpc/scheduled", cfg.ThingsBoard.ScheduledRPCPath)
	assert.False(t, cfg.DBEnabled)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.MQTT.Enabled)
	assert.Equal(t, "argynix/export/results", cfg.MQTT.ResultTopic)
	assert.Equal(t, 10*time.Second, cfg.Polling.JobsInterval)
	assert.Equal(t, 30*time.Second, cfg.Polling.NotificationsInterval)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("THINGSBOARD_URL", "https://tb.example.com")
	t.Setenv("THINGSBOARD_TIMEOUT", "5s")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MQTT_ENABLED", "true")
	t.Setenv("MQTT_QOS", "2")
	t.Setenv("MQTT_RESULT_TOPIC", "")
	t.Setenv("POLL_JOBS_INTERVAL", "1m")
	t.Setenv("SESSION_TTL", "bogus")

	cfg := Load()

	assert.Equal(t, "https://tb.example.com", cfg.ThingsBoard.URL)
	assert.Equal(t, 5*time.Second, cfg.ThingsBoard.Timeout)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, byte(2), cfg.MQTT.QoS)
	assert.Empty(t, cfg.MQTT.ResultTopic)
	assert.Equal(t, time.Minute, cfg.Polling.JobsInterval)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", c.GetDSN())
}
