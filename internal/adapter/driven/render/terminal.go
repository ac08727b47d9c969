package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/pterm/pterm"
)

const terminalBarWidth = 40

// TerminalRenderer desenha o gráfico como barras de texto coloridas no terminal.
// A saída é montada por completo antes de ser escrita, então uma falha no meio
// do desenho nunca deixa um gráfico parcial na tela.
type TerminalRenderer struct {
	out io.Writer
}

// NewTerminalRenderer cria o renderizador; out nil usa os.Stdout.
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalRenderer{out: out}
}

func (r *TerminalRenderer) Name() string { return "terminal" }

// Clear não faz nada: o terminal só recebe saídas completas.
func (r *TerminalRenderer) Clear() error { return nil }

// Draw escreve uma tabela Month/Value/barra dentro de um painel.
func (r *TerminalRenderer) Draw(ds *entity.Dataset) error {
	if ds.Len() == 0 {
		return errors.New("terminal: empty dataset")
	}

	historical := colorOr(ds.HistoricalColor, fallbackHistorical)
	forecast := colorOr(ds.ForecastColor, fallbackForecast)
	paintHistorical := pterm.NewRGB(historical.R, historical.G, historical.B)
	paintForecast := pterm.NewRGB(forecast.R, forecast.G, forecast.B)

	tableData := pterm.TableData{{"Month", "Value", "", "Type"}}
	for _, row := range ds.Rows {
		value, isForecast := barValue(row)
		if value == nil {
			tableData = append(tableData, []string{row.Label, "-", "", ""})
			continue
		}

		length := scaleBar(*value, ds.Range)
		kind, bar := "Historical", paintHistorical.Sprint(strings.Repeat("█", length))
		if isForecast {
			glyph := "█"
			if ds.ForecastHatch {
				glyph = "▒"
			}
			kind, bar = "Forecast", paintForecast.Sprint(strings.Repeat(glyph, length))
		}

		tableData = append(tableData, []string{row.Label, fmt.Sprintf("%.2f", *value), bar, kind})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	if err != nil {
		return fmt.Errorf("terminal: render table: %w", err)
	}

	legend := fmt.Sprintf("%s Historical   %s Forecast",
		paintHistorical.Sprint("██"), paintForecast.Sprint("▒▒"))
	panel := pterm.DefaultBox.
		WithTitle(chartTitle(ds.Category)).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(rendered + "\n\n" + legend)

	_, err = fmt.Fprintln(r.out, "\n"+panel)
	return err
}

// DrawMessage escreve a mensagem em um painel simples.
func (r *TerminalRenderer) DrawMessage(msg string) error {
	panel := pterm.DefaultBox.WithBoxStyle(pterm.NewStyle(pterm.FgGray)).Sprint(msg)
	_, err := fmt.Fprintln(r.out, "\n"+panel)
	return err
}

// scaleBar converte o valor para o comprimento da barra dentro do intervalo do eixo.
func scaleBar(v float64, rng entity.AxisRange) int {
	if !rng.Valid {
		return 0
	}
	n := int(((v - rng.Min) / rng.Span()) * terminalBarWidth)
	switch {
	case n < 1:
		return 1
	case n > terminalBarWidth:
		return terminalBarWidth
	}
	return n
}
