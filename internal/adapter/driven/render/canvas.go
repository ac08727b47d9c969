package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 400

	canvasPadding  = 40
	barFill        = 0.8
	hatchStep      = 5
	legendWidth    = 150
	legendSwatchW  = 20
	legendSwatchH  = 10
	legendRowSpace = 20
)

// CanvasRenderer desenha o gráfico de barras em uma superfície raster em memória.
// O conteúdo é exportado como PNG via WriteTo.
type CanvasRenderer struct {
	width, height int
	img           *image.NRGBA
	face          font.Face
}

// NewCanvasRenderer cria uma superfície width x height; valores <= 0 usam 800x400.
func NewCanvasRenderer(width, height int) *CanvasRenderer {
	if width <= 0 {
		width = DefaultCanvasWidth
	}
	if height <= 0 {
		height = DefaultCanvasHeight
	}
	c := &CanvasRenderer{width: width, height: height, face: basicfont.Face7x13}
	c.img = image.NewNRGBA(image.Rect(0, 0, width, height))
	return c
}

func (c *CanvasRenderer) Name() string { return "canvas" }

// Clear pinta a superfície inteira de branco.
func (c *CanvasRenderer) Clear() error {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return nil
}

// Draw desenha eixos, barras, legenda e título.
func (c *CanvasRenderer) Draw(ds *entity.Dataset) error {
	if ds.Len() == 0 {
		return errors.New("canvas: empty dataset")
	}

	chartW := c.width - 2*canvasPadding
	chartH := c.height - 2*canvasPadding
	if chartW <= 0 || chartH <= 0 {
		return errors.New("canvas: surface too small")
	}

	c.drawAxes()

	historical := colorOr(ds.HistoricalColor, fallbackHistorical)
	forecast := colorOr(ds.ForecastColor, fallbackForecast)

	bars := drawableRows(ds.Rows)
	if len(bars) == 0 {
		return errors.New("canvas: no values to draw")
	}

	slot := float64(chartW) / float64(len(bars))
	barW := int(slot * barFill)
	if barW < 1 {
		barW = 1
	}

	for i, row := range bars {
		value, isForecast := barValue(row)
		h := int(((*value - ds.Range.Min) / ds.Range.Span()) * float64(chartH))
		if h <= 0 {
			continue
		}
		if h > chartH {
			h = chartH
		}

		x := canvasPadding + int(float64(i)*slot)
		y := c.height - canvasPadding - h
		rect := image.Rect(x, y, x+barW, y+h)

		fill := historical
		if isForecast {
			fill = forecast
		}
		c.fill(rect, fill)
		if isForecast && ds.ForecastHatch {
			c.hatch(rect)
		}
	}

	c.drawLegend(historical, forecast, ds.ForecastHatch)

	if ds.Category != "" {
		c.textCentered("Category: "+ds.Category, c.width/2, canvasPadding/2, labelColor)
	}
	return nil
}

// DrawMessage escreve a mensagem centralizada na superfície.
func (c *CanvasRenderer) DrawMessage(msg string) error {
	c.textCentered(msg, c.width/2, c.height/2, messageColor)
	return nil
}

// WriteTo codifica a superfície atual como PNG.
func (c *CanvasRenderer) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := png.Encode(cw, c.img)
	return cw.n, err
}

// barValue returns the single value a row contributes and whether it is a forecast.
func barValue(row entity.DatasetRow) (*float64, bool) {
	if row.Actual != nil {
		return row.Actual, false
	}
	return row.Forecast, row.Forecast != nil
}

// drawableRows descarta linhas sem valor para que não ocupem espaço no eixo.
func drawableRows(rows []entity.DatasetRow) []entity.DatasetRow {
	out := make([]entity.DatasetRow, 0, len(rows))
	for _, row := range rows {
		if v, _ := barValue(row); v != nil {
			out = append(out, row)
		}
	}
	return out
}

func (c *CanvasRenderer) drawAxes() {
	bottom := c.height - canvasPadding
	c.fill(image.Rect(canvasPadding, canvasPadding, canvasPadding+1, bottom+1), axisColor)
	c.fill(image.Rect(canvasPadding, bottom, c.width-canvasPadding, bottom+1), axisColor)
}

func (c *CanvasRenderer) drawLegend(historical, forecast color.NRGBA, hatched bool) {
	x := c.width - canvasPadding - legendWidth
	y := canvasPadding

	c.fill(image.Rect(x, y, x+legendSwatchW, y+legendSwatchH), historical)
	c.text("Historical", x+25, y+9, labelColor)

	fy := y + legendRowSpace
	swatch := image.Rect(x, fy, x+legendSwatchW, fy+legendSwatchH)
	c.fill(swatch, forecast)
	if hatched {
		c.hatch(swatch)
	}
	c.text("Forecast", x+25, fy+9, labelColor)
}

func (c *CanvasRenderer) fill(r image.Rectangle, col color.NRGBA) {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

// hatch traça linhas brancas horizontais a cada 5px dentro do retângulo.
func (c *CanvasRenderer) hatch(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y += hatchStep {
		c.fill(image.Rect(r.Min.X, y, r.Max.X, y+1), white)
	}
}

func (c *CanvasRenderer) text(s string, x, y int, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

func (c *CanvasRenderer) textCentered(s string, cx, y int, col color.NRGBA) {
	w := font.MeasureString(c.face, s).Round()
	c.text(s, cx-w/2, y, col)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
