package aws

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/smithy-go"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"golang.org/x/sync/errgroup"
)

const (
	costMetric     = "UnblendedCost"
	ceDateLayout   = "2006-01-02"
	maxForecasters = 4
)

// nowUTC é substituído nos testes.
var nowUTC = func() time.Time { return time.Now().UTC() }

// costExplorerAPI é o subconjunto do cliente do Cost Explorer usado aqui.
type costExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	GetCostForecast(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error)
}

// window delimita os meses completos do histórico e o período de previsão.
type window struct {
	HistoryStart, HistoryEnd   time.Time
	ForecastStart, ForecastEnd time.Time
}

// costWindow: histórico = últimos `months` meses completos; previsão = de hoje até o
// fim do mês atual + forecastMonths-1 meses.
func costWindow(now time.Time, months, forecastMonths int) window {
	if months <= 0 {
		months = 6
	}
	if forecastMonths <= 0 {
		forecastMonths = 3
	}
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return window{
		HistoryStart:  firstOfMonth.AddDate(0, -months, 0),
		HistoryEnd:    firstOfMonth,
		ForecastStart: today,
		ForecastEnd:   firstOfMonth.AddDate(0, forecastMonths, 0),
	}
}

func loadCostSeries(ctx context.Context, api costExplorerAPI, w window, topServices int) (entity.Series, error) {
	historical, err := serviceHistory(ctx, api, w)
	if err != nil {
		return entity.Series{}, err
	}

	services := topN(historical, topServices)
	historical = onlyServices(historical, services)

	var (
		mu       sync.Mutex
		forecast []entity.DataPoint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxForecasters)
	for _, svc := range services {
		svc := svc
		g.Go(func() error {
			points, err := serviceForecast(gctx, api, w, svc)
			if err != nil {
				return err
			}
			mu.Lock()
			forecast = append(forecast, points...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entity.Series{}, err
	}

	// a ordem de chegada das goroutines não é determinística
	sort.SliceStable(forecast, func(i, j int) bool {
		if forecast[i].Category != forecast[j].Category {
			return forecast[i].Category < forecast[j].Category
		}
		return forecast[i].Date < forecast[j].Date
	})

	if forecast == nil {
		forecast = []entity.DataPoint{}
	}
	return entity.Series{Historical: historical, Forecast: forecast}, nil
}

// serviceHistory pagina o GetCostAndUsage mensal agrupado por serviço.
func serviceHistory(ctx context.Context, api costExplorerAPI, w window) ([]entity.DataPoint, error) {
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(w.HistoryStart.Format(ceDateLayout)),
			End:   aws.String(w.HistoryEnd.Format(ceDateLayout)),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []ceTypes.GroupDefinition{{
			Type: ceTypes.GroupDefinitionTypeDimension,
			Key:  aws.String("SERVICE"),
		}},
	}

	var points []entity.DataPoint
	for {
		out, err := api.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("get cost and usage: %w", err)
		}
		points = append(points, historyPoints(out.ResultsByTime)...)

		if aws.ToString(out.NextPageToken) == "" {
			break
		}
		input.NextPageToken = out.NextPageToken
	}
	return points, nil
}

func historyPoints(results []ceTypes.ResultByTime) []entity.DataPoint {
	var points []entity.DataPoint
	for _, period := range results {
		if period.TimePeriod == nil {
			continue
		}
		date := aws.ToString(period.TimePeriod.Start)
		for _, group := range period.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			metric, ok := group.Metrics[costMetric]
			if !ok {
				continue
			}
			cost, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
			if err != nil {
				continue
			}
			points = append(points, entity.DataPoint{
				Date:     date,
				Actual:   entity.Float(cost),
				Category: group.Keys[0],
			})
		}
	}
	return points
}

// serviceForecast pede a previsão mensal de um único serviço. Serviços sem histórico
// suficiente (DataUnavailableException) ficam sem previsão.
func serviceForecast(ctx context.Context, api costExplorerAPI, w window, service string) ([]entity.DataPoint, error) {
	out, err := api.GetCostForecast(ctx, &costexplorer.GetCostForecastInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(w.ForecastStart.Format(ceDateLayout)),
			End:   aws.String(w.ForecastEnd.Format(ceDateLayout)),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metric:      ceTypes.MetricUnblendedCost,
		Filter: &ceTypes.Expression{
			Dimensions: &ceTypes.DimensionValues{
				Key:    ceTypes.DimensionService,
				Values: []string{service},
			},
		},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "DataUnavailableException" {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost forecast for %s: %w", service, err)
	}

	var points []entity.DataPoint
	for _, f := range out.ForecastResultsByTime {
		if f.TimePeriod == nil {
			continue
		}
		mean, err := strconv.ParseFloat(aws.ToString(f.MeanValue), 64)
		if err != nil {
			continue
		}
		points = append(points, entity.DataPoint{
			Date:     monthStart(aws.ToString(f.TimePeriod.Start)),
			Forecast: entity.Float(mean),
			Category: service,
		})
	}
	return points, nil
}

// monthStart normaliza "2024-05-17" para "2024-05-01"; datas inválidas passam intactas.
func monthStart(date string) string {
	t, err := time.Parse(ceDateLayout, date)
	if err != nil {
		return date
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format(ceDateLayout)
}

// topN devolve os n serviços de maior custo no período, do maior para o menor.
func topN(points []entity.DataPoint, n int) []string {
	totals := make(map[string]float64)
	for _, p := range points {
		if p.Actual != nil {
			totals[p.Category] += *p.Actual
		}
	}

	services := make([]string, 0, len(totals))
	for svc := range totals {
		services = append(services, svc)
	}
	sort.Slice(services, func(i, j int) bool {
		if totals[services[i]] != totals[services[j]] {
			return totals[services[i]] > totals[services[j]]
		}
		return services[i] < services[j]
	})

	if n > 0 && len(services) > n {
		services = services[:n]
	}
	return services
}

func onlyServices(points []entity.DataPoint, services []string) []entity.DataPoint {
	keep := make(map[string]bool, len(services))
	for _, s := range services {
		keep[s] = true
	}
	out := make([]entity.DataPoint, 0, len(points))
	for _, p := range points {
		if keep[p.Category] {
			out = append(out, p)
		}
	}
	return out
}
