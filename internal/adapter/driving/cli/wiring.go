package cli

import (
	"context"
	"io"
	"strings"

	"github.com/diillson/demand-forecast-go/internal/adapter/driven/aws"
	"github.com/diillson/demand-forecast-go/internal/adapter/driven/file"
	"github.com/diillson/demand-forecast-go/internal/adapter/driven/render"
	"github.com/diillson/demand-forecast-go/internal/adapter/driven/sqlite"
	"github.com/diillson/demand-forecast-go/internal/application/forecast"
	"github.com/diillson/demand-forecast-go/internal/domain/repository"
	"github.com/diillson/demand-forecast-go/internal/shared/types"
	"github.com/diillson/demand-forecast-go/pkg/console"
	"github.com/pterm/pterm"
)

// newSource escolhe a fonte de séries. close libera recursos (ex.: conexão SQLite).
func newSource(cfg types.Config, awsRepo repository.AWSRepository) (src repository.SeriesRepository, closeFn func() error, err error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Source) {
	case "file":
		if cfg.Input == "" {
			return nil, noop, types.ErrMissingInput
		}
		return file.NewSeriesRepository(cfg.Input), noop, nil
	case "s3":
		if cfg.Bucket == "" {
			return nil, noop, types.ErrMissingBucket
		}
		return aws.S3Source{
			Repo:          awsRepo,
			Profile:       cfg.Profile,
			Bucket:        cfg.Bucket,
			HistoricalKey: cfg.HistoricalKey,
			ForecastKey:   cfg.ForecastKey,
		}, noop, nil
	case "costexplorer":
		return aws.CostSource{
			Repo:           awsRepo,
			Profile:        cfg.Profile,
			Months:         cfg.Months,
			ForecastMonths: cfg.ForecastMonths,
			TopServices:    cfg.TopServices,
		}, noop, nil
	case "sqlite":
		repo, err := sqlite.NewSeriesRepository(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return repo, repo.Close, nil
	default:
		return nil, noop, types.ErrUnknownSource
	}
}

// importTarget escolhe o destino do import: o arquivo em to (JSON) ou o banco SQLite.
// Só o destino arquivo aceita a fonte sqlite.
func importTarget(cfg types.Config, to string) (repository.SeriesWriter, func() error, error) {
	noop := func() error { return nil }

	if to != "" {
		return file.NewSeriesRepository(to), noop, nil
	}
	if strings.EqualFold(cfg.Source, "sqlite") {
		return nil, noop, types.ErrImportSQLite
	}
	db, err := sqlite.NewSeriesRepository(cfg.SQLitePath)
	if err != nil {
		return nil, noop, err
	}
	return db, db.Close, nil
}

// storedCategories abre o banco quando a fonte é sqlite; demais fontes não guardam categorias.
func storedCategories(cfg types.Config) (repository.CategoryLister, func() error, error) {
	noop := func() error { return nil }

	if !strings.EqualFold(cfg.Source, "sqlite") {
		return nil, noop, nil
	}
	db, err := sqlite.NewSeriesRepository(cfg.SQLitePath)
	if err != nil {
		return nil, noop, err
	}
	return db, db.Close, nil
}

// newRenderers devolve o renderer primário e a tabela de fallback.
// Para "table" o primário é nil e a tabela é a própria saída.
func newRenderers(cfg types.Config) (repository.ChartRenderer, repository.TableRenderer, error) {
	table := render.NewTableRenderer(nil)

	switch strings.ToLower(cfg.Renderer) {
	case "terminal":
		return render.NewTerminalRenderer(nil), table, nil
	case "table":
		return nil, table, nil
	case "html", "png", "canvas":
		if cfg.Output == "" {
			return nil, nil, types.ErrMissingOutput
		}
	default:
		return nil, nil, types.ErrUnknownRenderer
	}

	switch strings.ToLower(cfg.Renderer) {
	case "html":
		return render.NewEChartsRenderer(cfg.Width, cfg.Height), table, nil
	case "png":
		return render.NewPNGChartRenderer(cfg.Width, cfg.Height), table, nil
	default:
		return render.NewCanvasRenderer(cfg.Width, cfg.Height), table, nil
	}
}

// newObserver combina o logger local com o sink do CloudWatch quando há log group.
// out nil mantém o destino padrão do pterm (stdout).
func (app *CLIApp) newObserver(ctx context.Context, cfg types.Config, debug bool, out io.Writer) forecast.Observers {
	logger := pterm.DefaultLogger.WithLevel(pterm.LogLevelInfo)
	if debug {
		logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDebug)
	}
	if out != nil {
		logger = logger.WithWriter(out)
	}
	observers := forecast.Observers{console.NewObserverLogger(logger)}

	if cfg.LogGroup == "" || app.awsRepo == nil {
		return observers
	}

	client, err := app.awsRepo.LogsClient(ctx, cfg.Profile)
	if err != nil {
		pterm.Warning.Printfln("CloudWatch Logs disabled: %s", err)
		return observers
	}
	return append(observers, aws.NewCloudWatchSink(client, cfg.LogGroup))
}

// viewObserver é o observer do visualizador: o alt screen pertence ao bubbletea,
// então o log local é descartado e o último evento aparece na barra de status.
func (app *CLIApp) viewObserver(ctx context.Context, cfg types.Config, debug bool) forecast.Observers {
	return app.newObserver(ctx, cfg, debug, io.Discard)
}
