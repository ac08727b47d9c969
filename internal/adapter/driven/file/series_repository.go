package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

// SeriesRepository lê as séries de um arquivo local JSON ou YAML no formato
// {"historical": [...], "forecast": [...]}.
type SeriesRepository struct {
	path string
}

// NewSeriesRepository cria a fonte de dados para o arquivo em path.
func NewSeriesRepository(path string) *SeriesRepository {
	return &SeriesRepository{path: path}
}

// LoadSeries lê e decodifica o arquivo conforme a extensão.
func (r *SeriesRepository) LoadSeries(ctx context.Context) (entity.Series, error) {
	if err := ctx.Err(); err != nil {
		return entity.Series{}, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return entity.Series{}, fmt.Errorf("read series file: %w", err)
	}

	var series entity.Series
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &series)
	default:
		err = json.Unmarshal(data, &series)
	}
	if err != nil {
		return entity.Series{}, fmt.Errorf("decode series file %s: %w", r.path, err)
	}

	return series, nil
}

// SaveSeries grava a série como JSON indentado, criando o diretório se necessário.
func (r *SeriesRepository) SaveSeries(ctx context.Context, series entity.Series) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode series: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return 0, fmt.Errorf("write series file: %w", err)
	}
	return len(series.Historical) + len(series.Forecast), nil
}
