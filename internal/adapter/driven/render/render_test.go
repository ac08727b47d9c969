package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

func sampleDataset() *entity.Dataset {
	return &entity.Dataset{
		Category: "Electronics",
		Rows: []entity.DatasetRow{
			{Label: "Jan 2024", Actual: entity.Float(100), Category: "Electronics"},
			{Label: "Feb 2024", Forecast: entity.Float(120), Category: "Electronics"},
		},
		HistoricalColor: "#3b82f6",
		ForecastColor:   "#9333ea",
		ForecastHatch:   true,
		Range:           entity.AxisRange{Min: 0, Max: 200, Valid: true},
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#3b82f6", color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}, true},
		{"#FFF", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"rgba(14,165,233,0.8)", color.NRGBA{R: 14, G: 165, B: 233, A: 204}, true},
		{"rgba(14, 165, 233, 1)", color.NRGBA{R: 14, G: 165, B: 233, A: 255}, true},
		{"rgb(1,2,3)", color.NRGBA{R: 1, G: 2, B: 3, A: 255}, true},
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"rgba(1,2)", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
		{"papayawhip", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColor(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCanvasDraw(t *testing.T) {
	c := NewCanvasRenderer(0, 0)
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := c.img.NRGBAAt(5, 5); got != white {
		t.Fatalf("cleared pixel = %v, want white", got)
	}

	if err := c.Draw(sampleDataset()); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// historical bar: x 40..328, y 200..360
	if got := c.img.NRGBAAt(100, 300); got != (color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}) {
		t.Errorf("historical bar pixel = %v", got)
	}
	// forecast bar: x 400..688, y 168..360, hatched every 5px from the top
	if got := c.img.NRGBAAt(500, 170); got != (color.NRGBA{R: 0x93, G: 0x33, B: 0xea, A: 255}) {
		t.Errorf("forecast bar pixel = %v", got)
	}
	if got := c.img.NRGBAAt(500, 173); got != white {
		t.Errorf("hatch line pixel = %v, want white", got)
	}
	// eixo vertical acima da primeira barra
	if got := c.img.NRGBAAt(40, 100); got != axisColor {
		t.Errorf("axis pixel = %v, want %v", got, axisColor)
	}

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != DefaultCanvasWidth || b.Dy() != DefaultCanvasHeight {
		t.Errorf("unexpected size %v", b)
	}
}

func TestCanvasDrawSkipsRowsWithoutValues(t *testing.T) {
	ds := sampleDataset()
	ds.Rows = []entity.DatasetRow{
		ds.Rows[0],
		{Label: "Feb 2024", Category: "Electronics"},
		{Label: "Mar 2024", Forecast: entity.Float(120), Category: "Electronics"},
	}

	c := NewCanvasRenderer(0, 0)
	_ = c.Clear()
	if err := c.Draw(ds); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// mesmo layout de duas barras do sampleDataset
	if got := c.img.NRGBAAt(100, 300); got != (color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 255}) {
		t.Errorf("historical bar pixel = %v", got)
	}
	if got := c.img.NRGBAAt(500, 170); got != (color.NRGBA{R: 0x93, G: 0x33, B: 0xea, A: 255}) {
		t.Errorf("forecast bar pixel = %v", got)
	}

	empty := sampleDataset()
	empty.Rows = []entity.DatasetRow{{Label: "Jan 2024"}}
	if err := c.Draw(empty); err == nil {
		t.Error("expected error for a dataset without values")
	}
}

func TestCanvasClearRemovesPreviousDrawing(t *testing.T) {
	c := NewCanvasRenderer(0, 0)
	_ = c.Clear()
	_ = c.Draw(sampleDataset())
	_ = c.Clear()
	if got := c.img.NRGBAAt(100, 300); got != white {
		t.Fatalf("pixel after clear = %v, want white", got)
	}
}

func TestCanvasDrawMessage(t *testing.T) {
	c := NewCanvasRenderer(400, 200)
	_ = c.Clear()
	if err := c.DrawMessage("No historical data available"); err != nil {
		t.Fatal(err)
	}

	inked := false
	for x := 0; x < 400 && !inked; x++ {
		for y := 88; y <= 100; y++ {
			if c.img.NRGBAAt(x, y) != white {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Fatalf("message text not drawn near the vertical center")
	}
}

func TestEChartsRenderer(t *testing.T) {
	r := NewEChartsRenderer(0, 0)
	if err := r.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := r.Draw(sampleDataset()); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, want := range []string{"Jan 2024", "Feb 2024", "Historical", "Forecast", "dashed", "#9333ea", "Demand Forecast (Electronics)"} {
		if !strings.Contains(html, want) {
			t.Errorf("html output missing %q", want)
		}
	}

	_ = r.Clear()
	buf.Reset()
	_, _ = r.WriteTo(&buf)
	if buf.Len() != 0 {
		t.Errorf("clear should drop the previous page")
	}
}

func TestEChartsBarDataGaps(t *testing.T) {
	data := barData([]*float64{entity.Float(3), nil})
	if data[0].Value != 3.0 || data[1].Value != "-" {
		t.Fatalf("unexpected bar data %+v", data)
	}
}

func TestPNGChartRenderer(t *testing.T) {
	r := NewPNGChartRenderer(0, 0)
	_ = r.Clear()
	if err := r.Draw(sampleDataset()); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}

	_ = r.Clear()
	if err := r.DrawMessage("No valid data points to display"); err != nil {
		t.Fatalf("DrawMessage failed: %v", err)
	}
	buf.Reset()
	_, _ = r.WriteTo(&buf)
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("message output is not a PNG: %v", err)
	}
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTerminalRenderer(&buf)
	if err := r.Draw(sampleDataset()); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Jan 2024", "Feb 2024", "100.00", "120.00", "Forecast", "▒"} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q", want)
		}
	}
}

func TestScaleBar(t *testing.T) {
	rng := entity.AxisRange{Min: 0, Max: 100, Valid: true}
	if got := scaleBar(50, rng); got != 20 {
		t.Errorf("scaleBar(50) = %d, want 20", got)
	}
	if got := scaleBar(0, rng); got != 1 {
		t.Errorf("scaleBar(0) = %d, want 1", got)
	}
	if got := scaleBar(500, rng); got != terminalBarWidth {
		t.Errorf("scaleBar(500) = %d", got)
	}
}

func TestTableData(t *testing.T) {
	view := entity.TableView{
		ShowCategory: true,
		Rows: []entity.MergedPoint{
			{Label: "Jan 2024", Actual: entity.Float(100), Category: "Electronics"},
			{Label: "Feb 2024", Forecast: entity.Float(120.5)},
		},
	}

	data := TableData(view)
	want := [][]string{
		{"Date", "Category", "Actual", "Forecast"},
		{"Jan 2024", "Electronics", "100", "-"},
		{"Feb 2024", "N/A", "-", "120.5"},
	}
	if len(data) != len(want) {
		t.Fatalf("got %d rows, want %d", len(data), len(want))
	}
	for i := range want {
		if strings.Join(data[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, data[i], want[i])
		}
	}

	view.ShowCategory = false
	if got := TableData(view)[0]; len(got) != 3 {
		t.Errorf("category column should be hidden, header = %v", got)
	}
}

func TestTableRendererEmptyAndMessage(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf)
	if err := r.RenderTable(entity.TableView{EmptyMessage: "No data available for category: Beauty"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No data available for category: Beauty") {
		t.Errorf("empty message missing: %q", buf.String())
	}

	buf.Reset()
	_ = r.RenderMessage("No historical data available")
	if !strings.Contains(buf.String(), "No historical data available") {
		t.Errorf("message missing: %q", buf.String())
	}
}
