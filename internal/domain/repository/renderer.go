package repository

import (
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

// ChartRenderer is a primary renderer: chart library, canvas or terminal bars.
type ChartRenderer interface {
	// Name identifies the renderer in diagnostics.
	Name() string
	// Clear wipes the drawing surface. It is called before every draw.
	Clear() error
	// Draw paints the dataset. Any error (or panic) degrades the render.
	Draw(ds *entity.Dataset) error
	// DrawMessage shows a validation message in place of the chart.
	DrawMessage(message string) error
}

// TableRenderer is the fallback renderer. It must not depend on a Dataset.
type TableRenderer interface {
	RenderTable(view entity.TableView) error
	RenderMessage(message string) error
}
