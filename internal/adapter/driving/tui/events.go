package tui

import "fmt"

// lastEvent guarda o último evento do pipeline para a barra de status.
type lastEvent struct {
	text string
}

func (e *lastEvent) Prepared(_ string, rows, forecastRows int) {
	e.text = fmt.Sprintf("prepared %d points (%d forecast)", rows, forecastRows)
}

func (e *lastEvent) ValidationFailed(_, reason string) {
	e.text = "rejected: " + reason
}

func (e *lastEvent) RenderFailed(renderer string, err error) {
	e.text = fmt.Sprintf("%s failed: %v", renderer, err)
}

func (e *lastEvent) Degraded(renderer, _ string) {
	e.text = "showing table instead of " + renderer
}
