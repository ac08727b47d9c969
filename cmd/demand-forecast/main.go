package main

import (
	"fmt"
	"os"

	"github.com/diillson/demand-forecast-go/internal/adapter/driven/aws"
	"github.com/diillson/demand-forecast-go/internal/adapter/driven/config"
	"github.com/diillson/demand-forecast-go/internal/adapter/driven/export"
	"github.com/diillson/demand-forecast-go/internal/adapter/driving/cli"
	"github.com/diillson/demand-forecast-go/internal/application/usecase"
	"github.com/diillson/demand-forecast-go/pkg/console"
	"github.com/diillson/demand-forecast-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios; a região é ajustada depois de ler a configuração
	awsRepo := aws.NewAWSRepository("")
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	forecastUseCase := usecase.NewForecastUseCase(
		awsRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetForecastUseCase(forecastUseCase)
	app.SetAWSRepository(awsRepo)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
