package repository

import (
	"context"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	// Profile Operations
	GetAWSProfiles() []string
	GetAccountID(ctx context.Context, profile string) (string, error)

	// Series Operations
	GetS3Series(ctx context.Context, profile, bucket, historicalKey, forecastKey string) (entity.Series, error)
	GetCostSeries(ctx context.Context, profile string, months, forecastMonths, topServices int) (entity.Series, error)

	// Diagnostics
	TestConnectivity(ctx context.Context, profile, dataBucket string) entity.ConnectivityReport
}
