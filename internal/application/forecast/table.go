package forecast

import (
	"fmt"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

// NoDataMessage is the empty-table message for category.
func NoDataMessage(category string) string {
	if category != "" {
		return fmt.Sprintf("No data available for category: %s", category)
	}
	return "No data available"
}

// TableView builds the regular data table. The Category column is only shown
// when no category is selected.
func TableView(historical, forecast []entity.DataPoint, category string) entity.TableView {
	return entity.TableView{
		Category:     category,
		ShowCategory: category == "",
		Rows:         MergeForTable(historical, forecast, category),
		EmptyMessage: NoDataMessage(category),
	}
}

// FallbackView builds the degraded table straight from the original input.
func FallbackView(historical, forecast []entity.DataPoint, category string) entity.TableView {
	scope := "(All Categories)"
	if category != "" {
		scope = fmt.Sprintf("(%s)", category)
	}
	return entity.TableView{
		Title:        fmt.Sprintf("Demand Forecast Data %s (Fallback View)", scope),
		Notice:       MsgFallbackNotice,
		Category:     category,
		ShowCategory: true,
		Rows:         MergeForTable(historical, forecast, category),
		EmptyMessage: NoDataMessage(category),
	}
}
