package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	ms, err := parseTime("1700000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), ms)

	ms, err = parseTime("2026-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), ms)

	_, err = parseTime("yesterday")
	assert.Error(t, err)
}

func TestRawValue(t *testing.T) {
	assert.JSONEq(t, `true`, string(rawValue("true")))
	assert.JSONEq(t, `{"a":1}`, string(rawValue(`{"a":1}`)))
	assert.JSONEq(t, `"open"`, string(rawValue("open")))
}

func TestExportOptions_DefaultsToLastDay(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	req, err := exportOptions{deviceID: "d1", keys: []string{"temp"}, format: "csv"}.request(now)
	require.NoError(t, err)
	assert.Equal(t, "d1", req.DeviceName)
	assert.Equal(t, now.UnixMilli(), req.EndTs)
	assert.Equal(t, now.Add(-24*time.Hour).UnixMilli(), req.StartTs)

	_, err = exportOptions{deviceID: "d1", start: "nope"}.request(now)
	assert.Error(t, err)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "export", "schedule", "watch"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
