package aws

import (
	"context"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/diillson/demand-forecast-go/internal/domain/repository"
)

// S3Source adapta o AWSRepository ao SeriesRepository lendo dois objetos do bucket.
type S3Source struct {
	Repo          repository.AWSRepository
	Profile       string
	Bucket        string
	HistoricalKey string
	ForecastKey   string
}

func (s S3Source) LoadSeries(ctx context.Context) (entity.Series, error) {
	return s.Repo.GetS3Series(ctx, s.Profile, s.Bucket, s.HistoricalKey, s.ForecastKey)
}

// CostSource usa o custo mensal por serviço como série de demanda.
type CostSource struct {
	Repo           repository.AWSRepository
	Profile        string
	Months         int
	ForecastMonths int
	TopServices    int
}

func (s CostSource) LoadSeries(ctx context.Context) (entity.Series, error) {
	return s.Repo.GetCostSeries(ctx, s.Profile, s.Months, s.ForecastMonths, s.TopServices)
}
