package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const chartPageTitle = "Demand Forecast"

// EChartsRenderer gera uma página HTML interativa com o gráfico de barras.
type EChartsRenderer struct {
	width, height int
	buf           bytes.Buffer
}

// NewEChartsRenderer cria o renderizador HTML com as dimensões em pixels.
func NewEChartsRenderer(width, height int) *EChartsRenderer {
	if width <= 0 {
		width = DefaultCanvasWidth
	}
	if height <= 0 {
		height = DefaultCanvasHeight
	}
	return &EChartsRenderer{width: width, height: height}
}

func (r *EChartsRenderer) Name() string { return "html" }

func (r *EChartsRenderer) Clear() error {
	r.buf.Reset()
	return nil
}

// Draw monta o gráfico com as séries Historical e Forecast.
func (r *EChartsRenderer) Draw(ds *entity.Dataset) error {
	if ds.Len() == 0 {
		return errors.New("echarts: empty dataset")
	}

	bar := r.newBar(chartTitle(ds.Category), "")
	bar.SetGlobalOptions(
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month", NameLocation: "center", NameGap: 30}),
		charts.WithYAxisOpts(yAxis(ds.Range)),
	)
	bar.SetXAxis(ds.Labels())

	for _, s := range ds.Series() {
		style := opts.ItemStyle{
			Color:       s.Color,
			BorderColor: s.BorderColor,
			BorderWidth: 1,
		}
		if len(s.BorderDash) > 0 {
			style.BorderType = "dashed"
			style.BorderWidth = 2
		}
		bar.AddSeries(s.Name, barData(s.Values), charts.WithItemStyleOpts(style))
	}

	if err := bar.Render(&r.buf); err != nil {
		return fmt.Errorf("echarts: render: %w", err)
	}
	return nil
}

// DrawMessage gera uma página sem séries, apenas com o título da mensagem.
func (r *EChartsRenderer) DrawMessage(msg string) error {
	bar := r.newBar(chartPageTitle, msg)
	return bar.Render(&r.buf)
}

// WriteTo escreve o HTML gerado.
func (r *EChartsRenderer) WriteTo(w io.Writer) (int64, error) {
	return io.Copy(w, bytes.NewReader(r.buf.Bytes()))
}

func (r *EChartsRenderer) newBar(title, subtitle string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: chartPageTitle,
			Width:     fmt.Sprintf("%dpx", r.width),
			Height:    fmt.Sprintf("%dpx", r.height),
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
	)
	return bar
}

func yAxis(rng entity.AxisRange) opts.YAxis {
	y := opts.YAxis{Name: "Value", NameLocation: "center", NameGap: 50}
	if rng.Valid {
		y.Min = rng.Min
		y.Max = rng.Max
	}
	return y
}

// barData converte valores em pontos do echarts; lacunas viram "-".
func barData(values []*float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		if v == nil {
			data[i] = opts.BarData{Value: "-"}
			continue
		}
		data[i] = opts.BarData{Value: *v}
	}
	return data
}

func chartTitle(category string) string {
	if category == "" {
		return chartPageTitle + " (All Categories)"
	}
	return fmt.Sprintf("%s (%s)", chartPageTitle, category)
}
