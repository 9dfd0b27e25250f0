package main

import (
	"fmt"
	"strconv"
	"time"
)

// parseTime accepts RFC3339 or epoch milliseconds and returns epoch ms.
func parseTime(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("want RFC3339 or epoch ms, got %q", s)
	}
	return t.UnixMilli(), nil
}
