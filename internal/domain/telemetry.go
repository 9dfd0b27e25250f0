package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TsPoint one time-series sample; Value keeps the platform's JSON verbatim.
type TsPoint struct {
	Ts    int64           `json:"ts"`
	Value json.RawMessage `json:"value"`
}

// Telemetry is the timeseries response of the telemetry plugin. Keys keeps
// the order in which the platform returned them.
type Telemetry struct {
	Keys   []string
	Series map[string][]TsPoint
	Raw    json.RawMessage
}

func (t *Telemetry) UnmarshalJSON(b []byte) error {
	t.Keys = nil
	t.Series = map[string][]TsPoint{}
	t.Raw = append(json.RawMessage(nil), b...)

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("telemetry: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("telemetry: expected key, got %v", tok)
		}
		var points []TsPoint
		if err := dec.Decode(&points); err != nil {
			return fmt.Errorf("telemetry: key %q: %w", key, err)
		}
		if _, seen := t.Series[key]; !seen {
			t.Keys = append(t.Keys, key)
		}
		t.Series[key] = append(t.Series[key], points...)
	}
	_, err = dec.Token()
	return err
}

func (t Telemetry) MarshalJSON() ([]byte, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(t.Series[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Select returns the selected keys in fetch order. An empty selection
// means every key.
func (t *Telemetry) Select(keys []string) []string {
	if len(keys) == 0 {
		return append([]string(nil), t.Keys...)
	}
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	out := make([]string, 0, len(keys))
	for _, k := range t.Keys {
		if _, ok := want[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// PointCount counts samples across the selected keys.
func (t *Telemetry) PointCount(keys []string) int {
	if t == nil {
		return 0
	}
	n := 0
	for _, k := range t.Select(keys) {
		n += len(t.Series[k])
	}
	return n
}
