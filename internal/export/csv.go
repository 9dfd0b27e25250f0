package export

import (
	"bytes"
	"encoding/csv"
)

var csvHeader = []string{"timestamp", "key", "value"}

// CSV writes rows as timestamp,key,value. Fields with a comma, quote or
// newline are quoted.
func CSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{FormatTimestamp(r.Ts), r.Key, r.Value}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
