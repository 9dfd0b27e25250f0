package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"argynix-connect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func telemetry(t *testing.T, body string) *domain.Telemetry {
	t.Helper()
	var tel domain.Telemetry
	require.NoError(t, json.Unmarshal([]byte(body), &tel))
	return &tel
}

func TestCSV_HeaderAndIsoRows(t *testing.T) {
	tel := telemetry(t, `{"temp":[{"ts":1,"value":20},{"ts":2,"value":21}]}`)

	f, err := Render(tel, Request{DeviceName: "Boiler", StartTs: 0, EndTs: 10, Format: FormatCSV})
	require.NoError(t, err)

	want := "timestamp,key,value\n" +
		"1970-01-01T00:00:00.001Z,temp,20\n" +
		"1970-01-01T00:00:00.002Z,temp,21\n"
	assert.Equal(t, want, string(f.Data))
	assert.Equal(t, "Boiler_0_10.csv", f.Name)
	assert.Equal(t, 2, f.Rows)
}

func TestCSV_QuotesValuesWithComma(t *testing.T) {
	data, err := CSV([]Row{{Ts: 1, Key: "status", Value: "on,high"}})
	require.NoError(t, err)
	assert.Equal(t, "timestamp,key,value\n1970-01-01T00:00:00.001Z,status,\"on,high\"\n", string(data))
}

func TestFlatten_KeepsFetchOrder(t *testing.T) {
	tel := telemetry(t, `{"b":[{"ts":5,"value":"x"},{"ts":1,"value":"y"}],"a":[{"ts":3,"value":true}]}`)

	rows := Flatten(tel, nil)
	require.Len(t, rows, 3)
	assert.Equal(t, Row{Ts: 5, Key: "b", Value: "x"}, rows[0])
	assert.Equal(t, Row{Ts: 1, Key: "b", Value: "y"}, rows[1])
	assert.Equal(t, Row{Ts: 3, Key: "a", Value: "true"}, rows[2])

	rows = Flatten(tel, []string{"a"})
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].Key)
}

func TestRender_EmptyTelemetryIsNoData(t *testing.T) {
	for _, body := range []string{`{}`, `{"temp":[]}`} {
		tel := telemetry(t, body)
		f, err := Render(tel, Request{DeviceName: "d", Format: FormatCSV})
		assert.Nil(t, f)
		assert.True(t, errors.Is(err, ErrNoData))
		assert.Equal(t, "No Data", err.Error())
	}

	f, err := Render(nil, Request{Format: FormatJSON})
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRender_SelectedKeyWithoutSamplesIsNoData(t *testing.T) {
	tel := telemetry(t, `{"temp":[{"ts":1,"value":20}],"hum":[]}`)
	_, err := Render(tel, Request{Keys: []string{"hum"}, Format: FormatCSV})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestJSON_PrettyPassThrough(t *testing.T) {
	tel := telemetry(t, `{"temp":[{"ts":1,"value":"20"}]}`)

	f, err := Render(tel, Request{DeviceName: "Boiler", StartTs: 1, EndTs: 2, Format: FormatJSON})
	require.NoError(t, err)
	want := "{\n  \"temp\": [\n    {\n      \"ts\": 1,\n      \"value\": \"20\"\n    }\n  ]\n}\n"
	assert.Equal(t, want, string(f.Data))
	assert.Equal(t, "application/json", f.ContentType)
}

func TestChartRows_UnionWithNulls(t *testing.T) {
	tel := telemetry(t, `{"temp":[{"ts":3,"value":"21.5"},{"ts":1,"value":20}],"hum":[{"ts":2,"value":40},{"ts":4,"value":"n/a"}]}`)

	rows := ChartRows(tel, nil)
	require.Len(t, rows, 4)
	assert.Equal(t, []int64{1, 2, 3, 4}, []int64{rows[0].Ts, rows[1].Ts, rows[2].Ts, rows[3].Ts})

	assert.Equal(t, 20.0, *rows[0].Values["temp"])
	assert.Nil(t, rows[0].Values["hum"])
	assert.Nil(t, rows[1].Values["temp"])
	assert.Equal(t, 40.0, *rows[1].Values["hum"])
	assert.Equal(t, 21.5, *rows[2].Values["temp"])
	assert.Nil(t, rows[3].Values["hum"])

	for _, r := range rows {
		assert.Len(t, r.Values, 2)
	}
}

func TestNumericValue(t *testing.T) {
	assert.Equal(t, 1.5, *NumericValue(json.RawMessage(`1.5`)))
	assert.Equal(t, -3.0, *NumericValue(json.RawMessage(`"-3"`)))
	assert.Nil(t, NumericValue(json.RawMessage(`true`)))
	assert.Nil(t, NumericValue(json.RawMessage(`"open"`)))
	assert.Nil(t, NumericValue(json.RawMessage(`null`)))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Boiler_1_2.json", FileName("Boiler", FormatJSON, 1, 2))
	assert.Equal(t, "Boiler_graph_1_2.pdf", FileName("Boiler", FormatPDFGraph, 1, 2))
	assert.Equal(t, "Boiler_1_2.pdf", FileName("Boiler", FormatPDF, 1, 2))
	assert.Equal(t, "a_b_c_1_2.csv", FileName("a/b\\c", FormatCSV, 1, 2))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("graph")
	require.NoError(t, err)
	assert.Equal(t, FormatPDFGraph, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestTablePDF_ProducesDocument(t *testing.T) {
	rows := make([]Row, 0, 200)
	for i := 0; i < 200; i++ {
		rows = append(rows, Row{Ts: int64(i), Key: "temp", Value: "20"})
	}
	data, err := TablePDF(rows, "Boiler")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestGraphPDF_ProducesDocument(t *testing.T) {
	tel := telemetry(t, `{"temp":[{"ts":1000,"value":20},{"ts":2000,"value":22}],"hum":[{"ts":1500,"value":40}]}`)

	f, err := Render(tel, Request{DeviceName: "Boiler", StartTs: 1000, EndTs: 2000, Format: FormatPDFGraph})
	require.NoError(t, err)
	assert.Equal(t, "Boiler_graph_1000_2000.pdf", f.Name)
	assert.True(t, bytes.HasPrefix(f.Data, []byte("%PDF-")))
}

func TestGraphPDF_NonNumericOnly(t *testing.T) {
	tel := telemetry(t, `{"state":[{"ts":1,"value":"open"}]}`)
	_, err := Render(tel, Request{Format: FormatPDFGraph})
	assert.ErrorIs(t, err, ErrNothingToPlot)
}

func TestXLSX_WritesRows(t *testing.T) {
	data, err := XLSX([]Row{{Ts: 1, Key: "temp", Value: "20"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"timestamp", "key", "value"}, rows[0])
	assert.Equal(t, []string{"1970-01-01T00:00:00.001Z", "temp", "20"}, rows[1])
}
