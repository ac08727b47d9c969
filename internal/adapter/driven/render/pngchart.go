package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// PNGChartRenderer renderiza o gráfico como imagem PNG usando go-chart.
type PNGChartRenderer struct {
	width, height int
	buf           bytes.Buffer

	// mensagens são desenhadas na superfície raster, já que go-chart exige barras
	messages *CanvasRenderer
}

// NewPNGChartRenderer cria o renderizador; valores <= 0 usam 800x400.
func NewPNGChartRenderer(width, height int) *PNGChartRenderer {
	canvas := NewCanvasRenderer(width, height)
	return &PNGChartRenderer{
		width:    canvas.width,
		height:   canvas.height,
		messages: canvas,
	}
}

func (r *PNGChartRenderer) Name() string { return "png" }

func (r *PNGChartRenderer) Clear() error {
	r.buf.Reset()
	return nil
}

// Draw desenha uma barra por linha; barras de previsão usam borda tracejada.
func (r *PNGChartRenderer) Draw(ds *entity.Dataset) error {
	if ds.Len() == 0 {
		return errors.New("go-chart: empty dataset")
	}

	historical := toDrawing(colorOr(ds.HistoricalColor, fallbackHistorical))
	forecast := toDrawing(colorOr(ds.ForecastColor, fallbackForecast))

	bars := make([]chart.Value, 0, ds.Len())
	for _, row := range ds.Rows {
		value, isForecast := barValue(row)
		if value == nil {
			continue
		}
		style := chart.Style{FillColor: historical, StrokeColor: historical, StrokeWidth: 1}
		if isForecast {
			style = chart.Style{
				FillColor:       forecast,
				StrokeColor:     forecast.WithAlpha(255),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			}
		}
		bars = append(bars, chart.Value{Value: *value, Label: row.Label, Style: style})
	}
	if len(bars) == 0 {
		return errors.New("go-chart: no values to plot")
	}

	slot := (r.width - 2*canvasPadding) / len(bars)
	graph := chart.BarChart{
		Title:      chartTitle(ds.Category),
		TitleStyle: chart.Style{FontSize: 14, FontColor: toDrawing(labelColor)},
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: canvasPadding + 20, Right: canvasPadding, Bottom: canvasPadding},
			FillColor: drawing.ColorWhite,
		},
		Width:    r.width,
		Height:   r.height,
		BarWidth: int(float64(slot) * barFill),
		XAxis:    chart.Style{FontSize: 9, FontColor: toDrawing(labelColor)},
		YAxis: chart.YAxis{
			Name:      "Value",
			NameStyle: chart.Style{FontSize: 11, FontColor: toDrawing(labelColor)},
			Style:     chart.Style{FontSize: 9, FontColor: toDrawing(messageColor)},
		},
		Bars: bars,
	}
	if ds.Range.Valid {
		graph.YAxis.Range = &chart.ContinuousRange{Min: ds.Range.Min, Max: ds.Range.Max}
	}

	if err := graph.Render(chart.PNG, &r.buf); err != nil {
		return fmt.Errorf("go-chart: render: %w", err)
	}
	return nil
}

// DrawMessage gera um PNG contendo apenas a mensagem.
func (r *PNGChartRenderer) DrawMessage(msg string) error {
	if err := r.messages.Clear(); err != nil {
		return err
	}
	if err := r.messages.DrawMessage(msg); err != nil {
		return err
	}
	_, err := r.messages.WriteTo(&r.buf)
	return err
}

// WriteTo escreve o PNG gerado.
func (r *PNGChartRenderer) WriteTo(w io.Writer) (int64, error) {
	return io.Copy(w, bytes.NewReader(r.buf.Bytes()))
}

func toDrawing(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
