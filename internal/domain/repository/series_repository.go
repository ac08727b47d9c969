package repository

import (
	"context"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

// SeriesRepository loads the historical and forecast sequences from a data source.
type SeriesRepository interface {
	LoadSeries(ctx context.Context) (entity.Series, error)
}

// SeriesWriter is implemented by sources that can store a dataset (used by the import command).
type SeriesWriter interface {
	SaveSeries(ctx context.Context, series entity.Series) (int, error)
}

// CategoryLister lists the categories present in stored data.
type CategoryLister interface {
	Categories(ctx context.Context) ([]string, error)
}
