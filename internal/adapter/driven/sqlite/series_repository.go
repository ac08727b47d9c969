package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"

	_ "modernc.org/sqlite"
)

// SeriesRepository guarda as séries históricas e de previsão em SQLite.
type SeriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository abre (ou cria) o banco em dbPath e aplica as migrações.
func NewSeriesRepository(dbPath string) (*SeriesRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &SeriesRepository{db: db}, nil
}

func (r *SeriesRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadSeries lê todos os pontos na ordem em que foram importados.
func (r *SeriesRepository) LoadSeries(ctx context.Context) (entity.Series, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT origin, date, actual, forecast, category FROM series_points ORDER BY id`)
	if err != nil {
		return entity.Series{}, fmt.Errorf("query series points: %w", err)
	}
	defer rows.Close()

	series := entity.Series{
		Historical: []entity.DataPoint{},
		Forecast:   []entity.DataPoint{},
	}
	for rows.Next() {
		var (
			origin, date, category string
			actual, forecast       sql.NullFloat64
		)
		if err := rows.Scan(&origin, &date, &actual, &forecast, &category); err != nil {
			return entity.Series{}, fmt.Errorf("scan series point: %w", err)
		}

		p := entity.DataPoint{
			Date:     date,
			Actual:   nullable(actual),
			Forecast: nullable(forecast),
			Category: category,
		}
		if entity.Origin(origin) == entity.OriginForecast {
			series.Forecast = append(series.Forecast, p)
		} else {
			series.Historical = append(series.Historical, p)
		}
	}
	if err := rows.Err(); err != nil {
		return entity.Series{}, fmt.Errorf("iterate series points: %w", err)
	}

	return series, nil
}

// SaveSeries substitui o conteúdo do banco pela série informada, numa única transação.
// Retorna o número de pontos gravados.
func (r *SeriesRepository) SaveSeries(ctx context.Context, series entity.Series) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM series_points`); err != nil {
		return 0, fmt.Errorf("clear series points: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO series_points (origin, date, actual, forecast, category) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	insert := func(origin entity.Origin, points []entity.DataPoint) error {
		for _, p := range points {
			if _, err := stmt.ExecContext(ctx, string(origin), p.Date, nullFloat(p.Actual), nullFloat(p.Forecast), p.Category); err != nil {
				return fmt.Errorf("insert %s point %q: %w", origin, p.Date, err)
			}
			count++
		}
		return nil
	}
	if err := insert(entity.OriginHistorical, series.Historical); err != nil {
		return 0, err
	}
	if err := insert(entity.OriginForecast, series.Forecast); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return count, nil
}

// Categories lista as categorias distintas presentes no banco.
func (r *SeriesRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM series_points WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return entity.Float(v.Float64)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
