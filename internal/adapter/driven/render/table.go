package render

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/pterm/pterm"
)

// TableRenderer imprime as linhas mescladas como tabela pterm.
// Também é o renderizador de fallback quando o gráfico falha.
type TableRenderer struct {
	out io.Writer
}

// NewTableRenderer cria o renderizador; out nil usa os.Stdout.
func NewTableRenderer(out io.Writer) *TableRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TableRenderer{out: out}
}

// RenderTable escreve título, aviso e a tabela Date/[Category]/Actual/Forecast.
func (r *TableRenderer) RenderTable(view entity.TableView) error {
	if view.Title != "" {
		fmt.Fprintln(r.out, pterm.DefaultSection.Sprint(view.Title))
	}
	if view.Notice != "" {
		fmt.Fprintln(r.out, pterm.Warning.Sprint(view.Notice))
	}
	if len(view.Rows) == 0 {
		_, err := fmt.Fprintln(r.out, pterm.FgGray.Sprint(view.EmptyMessage))
		return err
	}

	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(TableData(view)).
		Srender()
	if err != nil {
		return fmt.Errorf("table: render: %w", err)
	}
	_, err = fmt.Fprintln(r.out, rendered)
	return err
}

// RenderMessage escreve uma mensagem de aviso.
func (r *TableRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, pterm.Warning.Sprint(msg))
	return err
}

// TableData projeta a view em linhas de texto, com cabeçalho.
// Valores ausentes viram "-" e categorias vazias "N/A".
func TableData(view entity.TableView) pterm.TableData {
	header := []string{"Date"}
	if view.ShowCategory {
		header = append(header, "Category")
	}
	header = append(header, "Actual", "Forecast")

	data := pterm.TableData{header}
	for _, p := range view.Rows {
		row := []string{p.Label}
		if view.ShowCategory {
			row = append(row, CategoryCell(p.Category))
		}
		row = append(row, ValueCell(p.Actual), ValueCell(p.Forecast))
		data = append(data, row)
	}
	return data
}

// ValueCell formata um valor opcional da tabela.
func ValueCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// CategoryCell formata a categoria da linha.
func CategoryCell(c string) string {
	if c == "" {
		return "N/A"
	}
	return c
}
