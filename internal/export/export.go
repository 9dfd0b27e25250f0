// Package export turns fetched telemetry into downloadable files.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"argynix-connect/internal/domain"
)

type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
	FormatPDFGraph Format = "pdf-graph"
	FormatXLSX     Format = "xlsx"
)

// ErrNoData is returned when none of the selected keys has a sample in range.
var ErrNoData = errors.New("No Data")

// ErrUnknownFormat wraps unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

const timestampLayout = "2006-01-02T15:04:05.000Z"

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatPDF, FormatPDFGraph, FormatXLSX:
		return f, nil
	case "graph":
		return FormatPDFGraph, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Request describes one export.
type Request struct {
	DeviceName string
	Keys       []string
	StartTs    int64
	EndTs      int64
	Format     Format
}

// File a rendered export ready to be written or streamed.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

// Row one (timestamp, key, value) triple.
type Row struct {
	Ts    int64
	Key   string
	Value string
}

// Flatten lists every sample of the selected keys, keys in fetch order and
// samples in response order.
func Flatten(t *domain.Telemetry, keys []string) []Row {
	if t == nil {
		return nil
	}
	rows := make([]Row, 0, t.PointCount(keys))
	for _, k := range t.Select(keys) {
		for _, p := range t.Series[k] {
			rows = append(rows, Row{Ts: p.Ts, Key: k, Value: FormatValue(p.Value)})
		}
	}
	return rows
}

// FormatValue renders a raw JSON value as text. Strings lose their quotes,
// null becomes empty, anything else is kept as sent.
func FormatValue(raw json.RawMessage) string {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return string(v)
}

// FormatTimestamp renders epoch milliseconds as ISO-8601 UTC.
func FormatTimestamp(ts int64) string {
	return time.UnixMilli(ts).UTC().Format(timestampLayout)
}

// Render produces the file for req. ErrNoData when nothing was fetched.
func Render(t *domain.Telemetry, req Request) (*File, error) {
	if t.PointCount(req.Keys) == 0 {
		return nil, ErrNoData
	}

	var (
		data        []byte
		contentType string
		err         error
	)
	rows := Flatten(t, req.Keys)

	switch req.Format {
	case FormatCSV:
		data, err = CSV(rows)
		contentType = "text/csv"
	case FormatJSON:
		data, err = JSON(t)
		contentType = "application/json"
	case FormatPDF:
		data, err = TablePDF(rows, title(req))
		contentType = "application/pdf"
	case FormatPDFGraph:
		data, err = GraphPDF(ChartRows(t, req.Keys), t.Select(req.Keys), title(req))
		contentType = "application/pdf"
	case FormatXLSX:
		data, err = XLSX(rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, req.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", req.Format, err)
	}

	return &File{
		Name:        FileName(req.DeviceName, req.Format, req.StartTs, req.EndTs),
		ContentType: contentType,
		Data:        data,
		Rows:        len(rows),
	}, nil
}

func title(req Request) string {
	return fmt.Sprintf("%s  %s - %s", req.DeviceName, FormatTimestamp(req.StartTs), FormatTimestamp(req.EndTs))
}
