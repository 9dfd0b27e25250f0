package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config argynix-connect console configuration
type Config struct {
	HTTP struct {
		Addr string
	}
	ThingsBoard ThingsBoardConfig
	Session     struct {
		TTL time.Duration
	}
	DBEnabled bool
	Database  DatabaseConfig
	Redis     RedisConfig
	MQTT      MQTTConfig
	Export    struct {
		Dir string
	}
	Polling struct {
		JobsInterval          time.Duration
		NotificationsInterval time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
}

// ThingsBoardConfig platform defaults. Token is optional; when set, the
// background pollers run against it.
type ThingsBoardConfig struct {
	URL              string
	Token            string
	CustomerID       string
	Timeout          time.Duration
	TimeseriesLimit  int
	ScheduledRPCPath string
}

// Load reads an optional .env file, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.ThingsBoard.URL = getEnv("THINGSBOARD_URL", "http://localhost:8080")
	cfg.ThingsBoard.Token = getEnv("THINGSBOARD_TOKEN", "")
	cfg.ThingsBoard.CustomerID = getEnv("THINGSBOARD_CUSTOMER_ID", "")
	cfg.ThingsBoard.Timeout = parseDuration(getEnv("THINGSBOARD_TIMEOUT", "30s"), 30*time.Second)
	cfg.ThingsBoard.TimeseriesLimit = parseInt(getEnv("THINGSBOARD_TIMESERIES_LIMIT", "50000"), 50000)
	cfg.ThingsBoard.ScheduledRPCPath = getEnv("THINGSBOARD_SCHEDULED_RPC_PATH", "/api/rpc/scheduled")

	cfg.Session.TTL = parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour)

	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database = DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "argynix",
		SSLMode:  "disable",
		MaxConns: 10,
		MaxIdle:  2,
	}
	cfg.Database.LoadFromEnv("DB")

	cfg.Redis = RedisConfig{Addr: "localhost:6379"}
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.MQTT = MQTTConfig{
		Broker:      "tcp://localhost:1883",
		ClientID:    "argynix-connect",
		Topic:       "argynix/export/requests",
		ResultTopic: "argynix/export/results",
		QoS:         1,
	}
	cfg.MQTT.LoadFromEnv("MQTT")

	cfg.Export.Dir = getEnv("EXPORT_DIR", "./exports")

	cfg.Polling.JobsInterval = parseDuration(getEnv("POLL_JOBS_INTERVAL", "10s"), 10*time.Second)
	cfg.Polling.NotificationsInterval = parseDuration(getEnv("POLL_NOTIFICATIONS_INTERVAL", "30s"), 30*time.Second)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
