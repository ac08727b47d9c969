package repository

import (
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(view entity.TableView, style entity.CategoryStyle, filename, outputDir string) (string, error)
	ExportToJSON(view entity.TableView, style entity.CategoryStyle, filename, outputDir string) (string, error)
	ExportToPDF(view entity.TableView, style entity.CategoryStyle, filename, outputDir string) (string, error)
}
