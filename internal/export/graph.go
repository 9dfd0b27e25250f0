package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"argynix-connect/internal/domain"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrNothingToPlot is returned when every selected value is non-numeric.
var ErrNothingToPlot = errors.New("no numeric values to plot")

const (
	chartWidth  = 1200
	chartHeight = 600
	pageMargin  = 24.0
	titleHeight = 28.0
)

// ChartRow one timestamp of the merged series. A nil value means the key has
// no numeric sample at Ts.
type ChartRow struct {
	Ts     int64               `json:"ts"`
	Values map[string]*float64 `json:"values"`
}

// ChartRows merges the selected series into rows over the union of their
// timestamps, ascending. Every row carries every key.
func ChartRows(t *domain.Telemetry, keys []string) []ChartRow {
	if t == nil {
		return nil
	}
	selected := t.Select(keys)
	byTs := map[int64]*ChartRow{}
	for _, k := range selected {
		for _, p := range t.Series[k] {
			row, ok := byTs[p.Ts]
			if !ok {
				row = &ChartRow{Ts: p.Ts, Values: make(map[string]*float64, len(selected))}
				for _, kk := range selected {
					row.Values[kk] = nil
				}
				byTs[p.Ts] = row
			}
			row.Values[k] = NumericValue(p.Value)
		}
	}

	rows := make([]ChartRow, 0, len(byTs))
	for _, r := range byTs {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Ts < rows[j].Ts })
	return rows
}

// NumericValue returns the number carried by raw, or nil. Numeric strings
// count as numbers.
func NumericValue(raw json.RawMessage) *float64 {
	s := strings.TrimSpace(FormatValue(raw))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// GraphPDF draws one line per key and embeds the chart in a page sized to it.
func GraphPDF(rows []ChartRow, keys []string, title string) ([]byte, error) {
	png, err := renderChart(rows, keys, title)
	if err != nil {
		return nil, err
	}

	w, h := float64(chartWidth), float64(chartHeight)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w + 2*pageMargin, Ht: h + 2*pageMargin + titleHeight},
	})
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(w, titleHeight, tr(title), "", 1, "L", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(png))
	pdf.ImageOptions("chart", pageMargin, pageMargin+titleHeight, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderChart(rows []ChartRow, keys []string, title string) ([]byte, error) {
	var (
		series     []chart.Series
		minX, maxX float64
		minY, maxY float64
		havePoints bool
	)
	for _, k := range keys {
		ts := chart.TimeSeries{Name: k}
		for _, r := range rows {
			v := r.Values[k]
			if v == nil {
				continue
			}
			at := time.UnixMilli(r.Ts).UTC()
			ts.XValues = append(ts.XValues, at)
			ts.YValues = append(ts.YValues, *v)

			x := float64(at.UnixNano())
			if !havePoints {
				minX, maxX, minY, maxY = x, x, *v, *v
				havePoints = true
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, *v), max(maxY, *v)
		}
		if len(ts.XValues) > 0 {
			series = append(series, ts)
		}
	}
	if !havePoints {
		return nil, ErrNothingToPlot
	}
	if maxX == minX {
		minX -= float64(time.Second)
		maxX += float64(time.Second)
	}
	if maxY == minY {
		minY--
		maxY++
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04:05"),
			Range:          &chart.ContinuousRange{Min: minX, Max: maxX},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
