package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/diillson/demand-forecast-go/internal/adapter/driven/render"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/diillson/demand-forecast-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// exportRow é a linha exportada; Origin diz de qual série o valor veio.
type exportRow struct {
	Date     string   `json:"date"`
	Label    string   `json:"label"`
	Category string   `json:"category"`
	Actual   *float64 `json:"actual"`
	Forecast *float64 `json:"forecast"`
	Origin   string   `json:"origin"`
}

type exportDocument struct {
	Title           string      `json:"title"`
	Category        string      `json:"category"`
	HistoricalColor string      `json:"historical_color"`
	ForecastColor   string      `json:"forecast_color"`
	GeneratedAt     time.Time   `json:"generated_at"`
	Rows            []exportRow `json:"rows"`
}

func toRows(view entity.TableView) []exportRow {
	rows := make([]exportRow, 0, len(view.Rows))
	for _, p := range view.Rows {
		rows = append(rows, exportRow{
			Date:     p.RawDate,
			Label:    p.Label,
			Category: p.Category,
			Actual:   p.Actual,
			Forecast: p.Forecast,
			Origin:   string(p.Origin),
		})
	}
	return rows
}

func (r *ExportRepositoryImpl) ExportToCSV(view entity.TableView, style entity.CategoryStyle, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "csv", r.now())
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Write([]string{"Date", "Label", "Category", "Actual", "Forecast", "Origin"})
	for _, row := range toRows(view) {
		writer.Write([]string{
			row.Date,
			row.Label,
			categoryCell(row.Category),
			valueCell(row.Actual, ""),
			valueCell(row.Forecast, ""),
			row.Origin,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(view entity.TableView, style entity.CategoryStyle, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json", r.now())
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	doc := exportDocument{
		Title:           reportTitle(view),
		Category:        view.Category,
		HistoricalColor: style.HistoricalColor,
		ForecastColor:   style.ForecastColor,
		GeneratedAt:     r.now().UTC(),
		Rows:            toRows(view),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(view entity.TableView, style entity.CategoryStyle, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf", r.now())
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AliasNbPages("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	generated := r.now().Format("2006-01-02")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Generated by demand-forecast | %s", generated)), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  "+reportTitle(view)), "", 1, "L", true, 0, "")

	if view.Notice != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(255, 243, 205)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(0, 8, tr("  "+view.Notice), "", 1, "L", true, 0, "")
	}
	pdf.Ln(6)

	// legenda com as cores resolvidas
	drawSwatch := func(label, css string) {
		c, err := render.ParseColor(css)
		if err != nil {
			c.R, c.G, c.B = 128, 128, 128
		}
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Rect(pdf.GetX(), pdf.GetY()+1, 8, 4, "F")
		pdf.SetX(pdf.GetX() + 10)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(40, 6, tr(label), "", 0, "L", false, 0, "")
	}
	drawSwatch("Historical", style.HistoricalColor)
	drawSwatch("Forecast", style.ForecastColor)
	pdf.Ln(10)

	if len(view.Rows) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 8, tr(view.EmptyMessage), "", 1, "L", false, 0, "")
	} else {
		headers := []string{"Date"}
		widths := []float64{45}
		if view.ShowCategory {
			headers = append(headers, "Category")
			widths = append(widths, 55)
		}
		headers = append(headers, "Actual", "Forecast")
		widths = append(widths, 45, 45)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 10)
		for _, row := range view.Rows {
			cells := []string{row.Label}
			if view.ShowCategory {
				cells = append(cells, categoryCell(row.Category))
			}
			cells = append(cells, valueCell(row.Actual, "-"), valueCell(row.Forecast, "-"))
			for i, cell := range cells {
				pdf.CellFormat(widths[i], 6, tr(cleanRichTags(cell)), "B", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

func reportTitle(view entity.TableView) string {
	if view.Title != "" {
		return view.Title
	}
	if view.Category != "" {
		return fmt.Sprintf("Demand Forecast Data (%s)", view.Category)
	}
	return "Demand Forecast Data (All Categories)"
}

func valueCell(v *float64, empty string) string {
	if v == nil {
		return empty
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func categoryCell(c string) string {
	if c == "" {
		return "N/A"
	}
	return c
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func generateFilename(base, dir, ext string, now time.Time) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	filename := fmt.Sprintf("%s_%s.%s", base, now.Format("20060102_150405"), ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
