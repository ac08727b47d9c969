package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/diillson/demand-forecast-go/internal/adapter/driven/aws"
	"github.com/diillson/demand-forecast-go/internal/adapter/driving/tui"
	"github.com/diillson/demand-forecast-go/internal/application/forecast"
	"github.com/diillson/demand-forecast-go/internal/application/usecase"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/diillson/demand-forecast-go/internal/shared/types"
	"github.com/diillson/demand-forecast-go/pkg/version"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd         *cobra.Command
	forecastUseCase *usecase.ForecastUseCase
	awsRepo         *aws.AWSRepositoryImpl
	version         string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "demand-forecast",
		Short:         "Demand forecast chart CLI",
		Long:          "Renders historical and forecast demand series as a chart, with a table fallback when the chart cannot be drawn.",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}
	rootCmd.SetVersionTemplate(`{{printf "Demand Forecast version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringSlice("env-file", nil, "Environment files to load (default: .env)")
	flags.StringP("source", "s", types.DefaultSource, "Data source: file, s3, costexplorer, sqlite")
	flags.StringP("input", "i", "", "JSON or YAML file with historical and forecast series")
	flags.StringP("profile", "p", "", "AWS profile to use")
	flags.StringP("region", "r", "", "AWS region (default: AWS_REGION or us-east-1)")
	flags.StringP("bucket", "b", "", "S3 bucket holding the series (default: DATA_BUCKET)")
	flags.String("historical-key", types.DefaultHistoricalKey, "S3 key of the historical series")
	flags.String("forecast-key", types.DefaultForecastKey, "S3 key of the forecast series")
	flags.Int("months", types.DefaultMonths, "Months of Cost Explorer history")
	flags.Int("forecast-months", types.DefaultForecastMonths, "Months of Cost Explorer forecast")
	flags.Int("top-services", types.DefaultTopServices, "Number of AWS services used as categories")
	flags.String("db", types.DefaultSQLitePath, "SQLite database path")
	flags.Bool("debug", false, "Log pipeline diagnostics")

	renderFlags := rootCmd.Flags()
	renderFlags.StringP("renderer", "R", types.DefaultRenderer, "Renderer: terminal, html, png, canvas, table")
	renderFlags.StringP("category", "c", "", "Category to display (default: all categories)")
	renderFlags.StringP("output", "o", "", "Output file for html, png and canvas renderers")
	renderFlags.Int("width", types.DefaultWidth, "Chart width in pixels")
	renderFlags.Int("height", types.DefaultHeight, "Chart height in pixels")
	renderFlags.Bool("table", false, "Also print the data table below the chart")
	renderFlags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	renderFlags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	renderFlags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	renderFlags.String("log-group", "", "CloudWatch Logs group for pipeline diagnostics (default: LOG_GROUP)")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the forecast interactively, one category at a time",
		RunE:  app.runView,
	}
	viewCmd.Flags().StringP("category", "c", "", "Initial category (default: all categories)")

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Test AWS credentials, S3 access and the data bucket",
		RunE:  app.runDoctor,
	}

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Load the series from a source into the SQLite database",
		RunE:  app.runImport,
	}
	importCmd.Flags().String("to", "", "Write the series to this JSON file instead of the SQLite database")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List the category registry and its colors (with --source sqlite, also the stored categories)",
		RunE:  app.runCategories,
	}

	rootCmd.AddCommand(viewCmd, doctorCmd, importCmd, categoriesCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetForecastUseCase sets the forecast use case for the CLI app.
func (app *CLIApp) SetForecastUseCase(useCase *usecase.ForecastUseCase) {
	app.forecastUseCase = useCase
}

// SetAWSRepository define o repositório usado pelas fontes AWS e pelo sink de logs.
func (app *CLIApp) SetAWSRepository(repo *aws.AWSRepositoryImpl) {
	app.awsRepo = repo
}

// parseArgs lê somente as flags alteradas pelo usuário.
func parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	changed := flags.Changed

	args := &types.CLIArgs{}
	args.ConfigFile, _ = flags.GetString("config-file")
	args.EnvFiles, _ = flags.GetStringSlice("env-file")
	args.Debug, _ = flags.GetBool("debug")

	str := func(name string, dst *string) {
		if flags.Lookup(name) != nil && changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	num := func(name string, dst *int) {
		if flags.Lookup(name) != nil && changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}

	cfg := &args.Config
	str("source", &cfg.Source)
	str("input", &cfg.Input)
	str("profile", &cfg.Profile)
	str("region", &cfg.Region)
	str("bucket", &cfg.Bucket)
	str("historical-key", &cfg.HistoricalKey)
	str("forecast-key", &cfg.ForecastKey)
	num("months", &cfg.Months)
	num("forecast-months", &cfg.ForecastMonths)
	num("top-services", &cfg.TopServices)
	str("db", &cfg.SQLitePath)
	str("renderer", &cfg.Renderer)
	str("category", &cfg.Category)
	str("output", &cfg.Output)
	num("width", &cfg.Width)
	num("height", &cfg.Height)
	str("report-name", &cfg.ReportName)
	str("dir", &cfg.Dir)
	str("log-group", &cfg.LogGroup)

	if flags.Lookup("table") != nil && changed("table") {
		cfg.ShowTable, _ = flags.GetBool("table")
	}
	if flags.Lookup("report-type") != nil && changed("report-type") {
		cfg.ReportType, _ = flags.GetStringSlice("report-type")
	}

	return args, nil
}

// resolveConfig junta ambiente, arquivo e flags e ajusta o diretório de relatórios.
func (app *CLIApp) resolveConfig(cmd *cobra.Command) (types.Config, *types.CLIArgs, error) {
	args, err := parseArgs(cmd)
	if err != nil {
		return types.Config{}, nil, err
	}

	cfg, err := app.forecastUseCase.ResolveConfig(args)
	if err != nil {
		return types.Config{}, nil, err
	}

	// Set default directory to current working directory if not specified
	if cfg.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return types.Config{}, nil, err
		}
		cfg.Dir = cwd
	} else {
		absDir, err := filepath.Abs(cfg.Dir)
		if err != nil {
			return types.Config{}, nil, err
		}
		cfg.Dir = absDir
	}

	if app.awsRepo != nil {
		app.awsRepo.SetRegion(cfg.Region)
	}
	return cfg, args, nil
}

// runCommand é o ponto de entrada principal: renderiza uma vez e sai.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner(app.version)
	go version.CheckLatestVersion(app.version)

	cfg, args, err := app.resolveConfig(cmd)
	if err != nil {
		return err
	}

	primary, table, err := newRenderers(cfg)
	if err != nil {
		return err
	}

	source, closeSource, err := newSource(cfg, app.awsRepo)
	if err != nil {
		return err
	}
	defer closeSource()

	ctx := contextOf(cmd)
	state, err := app.forecastUseCase.RunForecast(ctx, usecase.ForecastRequest{
		Source:   source,
		Primary:  primary,
		Fallback: table,
		Observer: app.newObserver(ctx, cfg, args.Debug, nil),
		Config:   cfg,
	})
	if err != nil {
		return err
	}

	if args.Debug {
		pterm.EnableDebugMessages()
		pterm.Debug.Printfln("Render finished: %s", stateSummary(state))
	}
	return nil
}

// runView abre o visualizador interativo.
func (app *CLIApp) runView(cmd *cobra.Command, _ []string) error {
	cfg, args, err := app.resolveConfig(cmd)
	if err != nil {
		return err
	}

	source, closeSource, err := newSource(cfg, app.awsRepo)
	if err != nil {
		return err
	}
	defer closeSource()

	ctx := contextOf(cmd)
	series, err := app.forecastUseCase.LoadSeries(ctx, source)
	if err != nil {
		return err
	}

	observer := app.viewObserver(ctx, cfg, args.Debug)
	model := tui.NewModel(series, forecast.NewPalette(cfg.Categories), observer, cfg.Category)
	if err := tui.Run(model); err != nil {
		return err
	}
	return flushSinks(ctx, observer)
}

// runDoctor executa o diagnóstico de conectividade AWS.
func (app *CLIApp) runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, _, err := app.resolveConfig(cmd)
	if err != nil {
		return err
	}

	_, err = app.forecastUseCase.RunDoctor(contextOf(cmd), cfg.Profile, cfg.Bucket)
	return err
}

// runImport copia a fonte configurada para o banco SQLite ou para o arquivo de --to.
func (app *CLIApp) runImport(cmd *cobra.Command, _ []string) error {
	cfg, _, err := app.resolveConfig(cmd)
	if err != nil {
		return err
	}
	to, _ := cmd.Flags().GetString("to")

	target, closeTarget, err := importTarget(cfg, to)
	if err != nil {
		return err
	}
	defer closeTarget()

	source, closeSource, err := newSource(cfg, app.awsRepo)
	if err != nil {
		return err
	}
	defer closeSource()

	_, err = app.forecastUseCase.RunImport(contextOf(cmd), source, target)
	return err
}

// runCategories lista o registro de categorias.
func (app *CLIApp) runCategories(cmd *cobra.Command, _ []string) error {
	cfg, _, err := app.resolveConfig(cmd)
	if err != nil {
		return err
	}

	stored, closeStored, err := storedCategories(cfg)
	if err != nil {
		return err
	}
	defer closeStored()

	return app.forecastUseCase.ListCategories(contextOf(cmd), cfg, stored)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func flushSinks(ctx context.Context, observers forecast.Observers) error {
	for _, o := range observers {
		if f, ok := o.(usecase.Flusher); ok {
			if err := f.Flush(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// stateSummary descreve o estado final para o log de depuração.
func stateSummary(state entity.RenderState) string {
	switch state.Stage {
	case entity.StageError:
		return "error: " + state.Reason
	case entity.StageDegraded:
		if state.Failure != nil {
			return "degraded: " + state.Failure.Error()
		}
		return "degraded"
	default:
		return state.Stage.String()
	}
}
