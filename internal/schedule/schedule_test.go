package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"argynix-connect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateKey_LowestFree(t *testing.T) {
	key, err := AllocateKey(nil)
	require.NoError(t, err)
	assert.Equal(t, "offlineSchedule_1", key)

	key, err = AllocateKey([]string{"offlineSchedule_1", "offlineSchedule_3", "active"})
	require.NoError(t, err)
	assert.Equal(t, "offlineSchedule_2", key)
}

func TestAllocateKey_RefusesThirtyFirst(t *testing.T) {
	existing := make([]string, 0, MaxSchedules)
	for n := 1; n <= MaxSchedules; n++ {
		existing = append(existing, Key(n))
	}
	_, err := AllocateKey(existing)
	assert.ErrorIs(t, err, ErrScheduleLimit)

	key, err := AllocateKey(existing[1:])
	require.NoError(t, err)
	assert.Equal(t, "offlineSchedule_1", key)
}

func TestParseKey(t *testing.T) {
	n, ok := ParseKey("offlineSchedule_30")
	assert.True(t, ok)
	assert.Equal(t, 30, n)

	for _, k := range []string{"offlineSchedule_0", "offlineSchedule_31", "offlineSchedule_x", "schedule_1"} {
		_, ok := ParseKey(k)
		assert.False(t, ok, k)
	}
}

func TestValidate(t *testing.T) {
	now := time.UnixMilli(1_000_000)

	particular := &Schedule{AttributeKey: "valve", Mode: ModeParticular, FireTime: 2_000_000}
	assert.NoError(t, Validate(particular, now))

	past := &Schedule{AttributeKey: "valve", Mode: ModeParticular, FireTime: 500}
	assert.ErrorIs(t, Validate(past, now), ErrInvalid)

	recurring := &Schedule{AttributeKey: "valve", Mode: ModeRecurring, Days: []int{0, 6}, Time: "07:30"}
	assert.NoError(t, Validate(recurring, now))

	noDays := &Schedule{AttributeKey: "valve", Mode: ModeRecurring, Time: "07:30"}
	assert.ErrorIs(t, Validate(noDays, now), ErrInvalid)

	badDay := &Schedule{AttributeKey: "valve", Mode: ModeRecurring, Days: []int{7}, Time: "07:30"}
	assert.ErrorIs(t, Validate(badDay, now), ErrInvalid)

	badTime := &Schedule{AttributeKey: "valve", Mode: ModeRecurring, Days: []int{1}, Time: "7:30pm"}
	assert.ErrorIs(t, Validate(badTime, now), ErrInvalid)

	noKey := &Schedule{Mode: ModeParticular, FireTime: 2_000_000}
	assert.ErrorIs(t, Validate(noKey, now), ErrInvalid)
}

func TestDecode_ObjectAndString(t *testing.T) {
	obj, err := Decode(domain.AttributeKV{
		Key:   "offlineSchedule_4",
		Value: json.RawMessage(`{"enabled":true,"attributeKey":"valve","attributeValue":1,"mode":"recurring","days":[1],"time":"08:00"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, obj.Index)
	assert.True(t, obj.Enabled)
	assert.Equal(t, []int{1}, obj.Days)
	assert.JSONEq(t, `1`, string(obj.AttributeValue))

	str, err := Decode(domain.AttributeKV{
		Key:   "offlineSchedule_2",
		Value: json.RawMessage(`"{\"attributeKey\":\"valve\",\"mode\":\"particular\",\"fireTime\":5}"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "offlineSchedule_2", str.Key)
	assert.Equal(t, int64(5), str.FireTime)
}

func TestFromAttributes_SortsAndSkips(t *testing.T) {
	list, skipped := FromAttributes([]domain.AttributeKV{
		{Key: "active", Value: json.RawMessage(`true`)},
		{Key: "offlineSchedule_10", Value: json.RawMessage(`{"attributeKey":"b","mode":"particular"}`)},
		{Key: "offlineSchedule_2", Value: json.RawMessage(`{"attributeKey":"a","mode":"particular"}`)},
		{Key: "offlineSchedule_3", Value: json.RawMessage(`not json`)},
	})
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Index)
	assert.Equal(t, 10, list[1].Index)
	assert.Equal(t, []string{"offlineSchedule_3"}, skipped)
}
