package console

import (
	"fmt"

	"github.com/pterm/pterm"
)

// ObserverLogger registra os eventos do pipeline de renderização no logger estruturado do pterm.
type ObserverLogger struct {
	logger *pterm.Logger
}

// NewObserverLogger cria o logger; logger nil usa pterm.DefaultLogger.
func NewObserverLogger(logger *pterm.Logger) *ObserverLogger {
	if logger == nil {
		logger = &pterm.DefaultLogger
	}
	return &ObserverLogger{logger: logger}
}

// Logger devolve o logger em uso.
func (o *ObserverLogger) Logger() *pterm.Logger {
	return o.logger
}

func (o *ObserverLogger) Prepared(category string, rows, forecastRows int) {
	o.logger.Debug(
		fmt.Sprintf("Chart prepared with %d total data points (%d forecast points)", rows, forecastRows),
		o.logger.Args("category", categoryLabel(category)),
	)
}

func (o *ObserverLogger) ValidationFailed(category, reason string) {
	o.logger.Warn("Chart data rejected", o.logger.Args("category", categoryLabel(category), "reason", reason))
}

func (o *ObserverLogger) RenderFailed(renderer string, err error) {
	o.logger.Error("Chart rendering failed", o.logger.Args("renderer", renderer, "error", err))
}

func (o *ObserverLogger) Degraded(renderer, category string) {
	o.logger.Warn("Showing fallback table", o.logger.Args("renderer", renderer, "category", categoryLabel(category)))
}

func categoryLabel(category string) string {
	if category == "" {
		return "All"
	}
	return category
}
