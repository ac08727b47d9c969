package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/diillson/demand-forecast-go/internal/application/forecast"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/diillson/demand-forecast-go/internal/domain/repository"
	"github.com/diillson/demand-forecast-go/internal/shared/types"
)

// Flusher é implementado por observadores que enviam eventos em lote (ex.: CloudWatch).
type Flusher interface {
	Flush(ctx context.Context) error
}

// ForecastRequest agrupa os colaboradores de uma renderização.
// Primary pode ser nil quando o renderer escolhido é a própria tabela.
type ForecastRequest struct {
	Source   repository.SeriesRepository
	Primary  repository.ChartRenderer
	Fallback repository.TableRenderer
	Observer forecast.Observer
	Config   types.Config
}

// ForecastUseCase handles the demand forecast commands.
type ForecastUseCase struct {
	awsRepo    repository.AWSRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewForecastUseCase creates a new forecast use case.
func NewForecastUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ForecastUseCase {
	return &ForecastUseCase{
		awsRepo:    awsRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// ResolveConfig monta a configuração final: ambiente < arquivo < flags < padrões para o resto.
func (uc *ForecastUseCase) ResolveConfig(args *types.CLIArgs) (types.Config, error) {
	cfg := uc.configRepo.LoadEnv(args.EnvFiles...)

	if args.ConfigFile != "" {
		fileCfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return types.Config{}, fmt.Errorf("error loading config file: %w", err)
		}
		cfg = cfg.Merge(*fileCfg)
	}

	return cfg.Merge(args.Config).WithDefaults(), nil
}

// LoadSeries carrega as séries exibindo um spinner enquanto a fonte responde.
func (uc *ForecastUseCase) LoadSeries(ctx context.Context, source repository.SeriesRepository) (entity.Series, error) {
	status := uc.console.Status("Loading series...")
	series, err := source.LoadSeries(ctx)
	status.Stop()
	if err != nil {
		return entity.Series{}, fmt.Errorf("error loading series: %w", err)
	}
	uc.console.LogInfo("Loaded %d historical and %d forecast points", len(series.Historical), len(series.Forecast))
	return series, nil
}

// RunForecast loads the series, renders them once and writes the outputs.
// Rendering failures never surface as errors: they end in the Error or Degraded state.
func (uc *ForecastUseCase) RunForecast(ctx context.Context, req ForecastRequest) (entity.RenderState, error) {
	series, err := uc.LoadSeries(ctx, req.Source)
	if err != nil {
		return entity.RenderState{}, err
	}
	return uc.Render(ctx, series, req), nil
}

// Render executa o pipeline sobre séries já carregadas.
func (uc *ForecastUseCase) Render(ctx context.Context, series entity.Series, req ForecastRequest) entity.RenderState {
	cfg := req.Config
	palette := forecast.NewPalette(cfg.Categories)
	if cfg.Category != "" && !palette.Has(cfg.Category) {
		uc.console.LogWarning("Category '%s' is not in the registry, using the default colors", cfg.Category)
	}

	var state entity.RenderState
	if req.Primary == nil && req.Fallback != nil {
		state = uc.renderTableOnly(series, cfg.Category, req.Fallback)
	} else {
		input := forecast.Input{
			Historical: series.Historical,
			Forecast:   series.Forecast,
			Category:   cfg.Category,
		}
		state = forecast.NewController(input, palette, req.Primary, req.Fallback, req.Observer).Run()

		if state.Stage != entity.StageDegraded {
			uc.writeOutput(req.Primary, cfg.Output)
		}
		if cfg.ShowTable && req.Fallback != nil && state.Stage == entity.StageReady {
			view := forecast.TableView(series.Historical, series.Forecast, cfg.Category)
			if err := req.Fallback.RenderTable(view); err != nil {
				uc.console.LogError("Failed to render data table: %s", err)
			}
		}
	}

	if len(cfg.ReportType) > 0 && cfg.ReportName != "" {
		view := forecast.TableView(series.Historical, series.Forecast, cfg.Category)
		if state.Stage == entity.StageDegraded {
			view = forecast.FallbackView(series.Historical, series.Forecast, cfg.Category)
		}
		uc.exportReports(view, palette.Resolve(cfg.Category), cfg)
	}

	flushObservers(ctx, req.Observer, uc.console)
	return state
}

func (uc *ForecastUseCase) renderTableOnly(series entity.Series, category string, table repository.TableRenderer) entity.RenderState {
	view := forecast.TableView(series.Historical, series.Forecast, category)
	if err := table.RenderTable(view); err != nil {
		uc.console.LogError("Failed to render data table: %s", err)
		return entity.RenderState{Stage: entity.StageError, Reason: err.Error(), Renderer: "table"}
	}
	return entity.RenderState{Stage: entity.StageReady, Renderer: "table"}
}

// writeOutput grava a superfície de renderers baseados em arquivo (html, png, canvas).
func (uc *ForecastUseCase) writeOutput(primary repository.ChartRenderer, output string) {
	wt, ok := primary.(io.WriterTo)
	if !ok || output == "" {
		return
	}

	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			uc.console.LogError("Failed to create output directory: %s", err)
			return
		}
	}

	f, err := os.Create(output)
	if err != nil {
		uc.console.LogError("Failed to create output file: %s", err)
		return
	}

	_, writeErr := wt.WriteTo(f)
	closeErr := f.Close()
	if writeErr != nil {
		uc.console.LogError("Failed to write chart: %s", writeErr)
		return
	}
	if closeErr != nil {
		uc.console.LogError("Failed to close chart file: %s", closeErr)
		return
	}
	uc.console.LogSuccess("Chart written to %s", output)
}

func (uc *ForecastUseCase) exportReports(view entity.TableView, style entity.CategoryStyle, cfg types.Config) {
	for _, reportType := range cfg.ReportType {
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "csv":
			path, err := uc.exportRepo.ExportToCSV(view, style, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", path)
			}
		case "json":
			path, err := uc.exportRepo.ExportToJSON(view, style, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", path)
			}
		case "pdf":
			path, err := uc.exportRepo.ExportToPDF(view, style, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", path)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' ignored", reportType)
		}
	}
}

// flushObservers envia o que os sinks remotos acumularam; falhas só geram aviso.
func flushObservers(ctx context.Context, obs forecast.Observer, console types.ConsoleInterface) {
	var list forecast.Observers
	switch o := obs.(type) {
	case nil:
		return
	case forecast.Observers:
		list = o
	default:
		list = forecast.Observers{o}
	}

	for _, o := range list {
		f, ok := o.(Flusher)
		if !ok {
			continue
		}
		if err := f.Flush(ctx); err != nil {
			console.LogWarning("Failed to ship diagnostics: %s", err)
		}
	}
}

// RunDoctor executa o diagnóstico de conectividade e imprime o relatório.
// Um perfil fora de ~/.aws/credentials e ~/.aws/config é rejeitado antes de chamar a AWS.
func (uc *ForecastUseCase) RunDoctor(ctx context.Context, profile, dataBucket string) (entity.ConnectivityReport, error) {
	profiles := uc.awsRepo.GetAWSProfiles()
	if profile != "" && !slices.Contains(profiles, profile) {
		uc.console.LogError("Profile '%s' not found. Available profiles: %s", profile, strings.Join(profiles, ", "))
		return entity.ConnectivityReport{}, fmt.Errorf("%w: %s", types.ErrUnknownProfile, profile)
	}

	status := uc.console.Status("Testing AWS connectivity...")
	report := uc.awsRepo.TestConnectivity(ctx, profile, dataBucket)
	status.Stop()

	table := uc.console.CreateTable()
	table.AddColumn("Check")
	table.AddColumn("Result")

	table.AddRow("Profile", valueOr(profile, "default"))
	table.AddRow("Available profiles", strings.Join(profiles, "\n"))
	table.AddRow("Region", report.Region)
	table.AddRow("Data bucket", valueOr(report.DataBucket, "N/A"))
	table.AddRow("Server time", report.ServerTime.Format("2006-01-02T15:04:05Z07:00"))

	if report.Success {
		account := report.AccountID
		if id, err := uc.awsRepo.GetAccountID(ctx, profile); err != nil {
			uc.console.LogWarning("Failed to get account ID: %s", err)
		} else if id != "" {
			account = id
		}
		table.AddRow("Account", valueOr(account, "N/A"))
		table.AddRow("Identity", report.Arn)
		table.AddRow("Credentials", valueOr(report.CredentialSource, "N/A"))
		table.AddRow("Buckets", valueOr(strings.Join(report.Buckets, "\n"), "None"))
		if dataBucket != "" {
			table.AddRow("Data bucket reachable", fmt.Sprintf("%t", report.DataBucketReachable))
		}
		uc.console.Println(table.Render())
		uc.console.LogSuccess("%s", report.Message)
		return report, nil
	}

	table.AddRow("Error", report.Error)
	table.AddRow("Error type", valueOr(report.ErrorType, "Unknown"))
	table.AddRow("Code", valueOr(report.Code, "N/A"))
	table.AddRow("Request ID", valueOr(report.RequestID, "N/A"))
	uc.console.Println(table.Render())
	uc.console.LogError("%s", types.ErrConnectivity)
	return report, types.ErrConnectivity
}

// RunImport copia as séries de uma fonte para um destino gravável.
func (uc *ForecastUseCase) RunImport(ctx context.Context, from repository.SeriesRepository, to repository.SeriesWriter) (int, error) {
	series, err := uc.LoadSeries(ctx, from)
	if err != nil {
		return 0, err
	}

	n, err := to.SaveSeries(ctx, series)
	if err != nil {
		return 0, fmt.Errorf("error saving series: %w", err)
	}
	uc.console.LogSuccess("Imported %d data points", n)
	return n, nil
}

// ListCategories imprime o registro de categorias com as cores resolvidas.
// Com stored, marca quais categorias existem nos dados e inclui as que não estão no registro.
func (uc *ForecastUseCase) ListCategories(ctx context.Context, cfg types.Config, stored repository.CategoryLister) error {
	palette := forecast.NewPalette(cfg.Categories)

	var inData []string
	if stored != nil {
		var err error
		if inData, err = stored.Categories(ctx); err != nil {
			return fmt.Errorf("error listing stored categories: %w", err)
		}
	}

	table := uc.console.CreateTable()
	table.AddColumn("Category")
	table.AddColumn("Historical")
	table.AddColumn("Forecast")
	if stored != nil {
		table.AddColumn("In data")
	}

	addRow := func(name, label string) {
		style := palette.Resolve(name)
		if stored == nil {
			table.AddRow(label, style.HistoricalColor, style.ForecastColor)
			return
		}
		table.AddRow(label, style.HistoricalColor, style.ForecastColor, yesNo(slices.Contains(inData, name)))
	}

	for _, name := range palette.Categories() {
		addRow(name, name)
	}
	for _, name := range inData {
		if !palette.Has(name) {
			addRow(name, name)
		}
	}
	all := palette.Resolve("")
	if stored == nil {
		table.AddRow("All", all.HistoricalColor, all.ForecastColor)
	} else {
		table.AddRow("All", all.HistoricalColor, all.ForecastColor, yesNo(len(inData) > 0))
	}

	uc.console.Println(table.Render())
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
