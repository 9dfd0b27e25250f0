// Package schedule models offline schedules stored as device attributes.
package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"argynix-connect/internal/domain"

	"github.com/go-playground/validator/v10"
)

const (
	KeyPrefix    = "offlineSchedule_"
	MaxSchedules = 30
)

var (
	ErrScheduleLimit = fmt.Errorf("schedule limit of %d reached", MaxSchedules)
	ErrInvalid       = errors.New("invalid schedule")
)

type Mode string

const (
	ModeParticular Mode = "particular"
	ModeRecurring  Mode = "recurring"
)

// Schedule one offline attribute write. Days use 0 for Sunday; Time is HH:MM.
type Schedule struct {
	Key            string          `json:"-"`
	Index          int             `json:"-"`
	Enabled        bool            `json:"enabled"`
	AttributeKey   string          `json:"attributeKey" validate:"required,max=255"`
	AttributeValue json.RawMessage `json:"attributeValue"`
	Mode           Mode            `json:"mode" validate:"required,oneof=particular recurring"`
	FireTime       int64           `json:"fireTime,omitempty"`
	Days           []int           `json:"days,omitempty" validate:"omitempty,dive,min=0,max=6"`
	Time           string          `json:"time,omitempty"`
}

var validate = validator.New()

func Key(n int) string {
	return KeyPrefix + strconv.Itoa(n)
}

// ParseKey returns n for a well formed offlineSchedule_<n> key within range.
func ParseKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > MaxSchedules {
		return 0, false
	}
	return n, true
}

// AllocateKey picks the lowest index in [1, MaxSchedules] not used by existing.
func AllocateKey(existing []string) (string, error) {
	used := make(map[int]bool, len(existing))
	for _, k := range existing {
		if n, ok := ParseKey(k); ok {
			used[n] = true
		}
	}
	for n := 1; n <= MaxSchedules; n++ {
		if !used[n] {
			return Key(n), nil
		}
	}
	return "", ErrScheduleLimit
}

// Validate checks field constraints and the mode specific rules against now.
func Validate(s *Schedule, now time.Time) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch s.Mode {
	case ModeParticular:
		if s.FireTime <= now.UnixMilli() {
			return fmt.Errorf("%w: fire time must be in the future", ErrInvalid)
		}
	case ModeRecurring:
		if len(s.Days) == 0 {
			return fmt.Errorf("%w: at least one day is required", ErrInvalid)
		}
		if _, err := time.Parse("15:04", s.Time); err != nil || len(s.Time) != 5 {
			return fmt.Errorf("%w: time must be HH:MM", ErrInvalid)
		}
	}
	return nil
}

// Decode reads a stored attribute. The value may be the schedule object or a
// string holding its JSON.
func Decode(attr domain.AttributeKV) (*Schedule, error) {
	n, ok := ParseKey(attr.Key)
	if !ok {
		return nil, fmt.Errorf("not a schedule key: %q", attr.Key)
	}
	raw := bytes.TrimSpace(attr.Value)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decode %s: %w", attr.Key, err)
		}
		raw = []byte(s)
	}
	var out Schedule
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", attr.Key, err)
	}
	out.Key = attr.Key
	out.Index = n
	return &out, nil
}

// FromAttributes decodes every schedule attribute, ordered by index.
// Malformed records are returned in skipped.
func FromAttributes(attrs []domain.AttributeKV) (list []*Schedule, skipped []string) {
	for _, a := range attrs {
		if _, ok := ParseKey(a.Key); !ok {
			continue
		}
		s, err := Decode(a)
		if err != nil {
			skipped = append(skipped, a.Key)
			continue
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Index < list[j].Index })
	return list, skipped
}
