package export

import (
	"bytes"
	"encoding/json"

	"argynix-connect/internal/domain"
)

// JSON pretty prints the platform response with a two space indent.
func JSON(t *domain.Telemetry) ([]byte, error) {
	raw, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
