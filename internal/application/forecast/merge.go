package forecast

import (
	"sort"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

// FilterByCategory keeps the points of category. An empty category keeps everything.
func FilterByCategory(points []entity.DataPoint, category string) []entity.DataPoint {
	if category == "" {
		return points
	}
	out := make([]entity.DataPoint, 0, len(points))
	for _, p := range points {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Merge filters both sequences by category and merges them into one date-ordered
// sequence. Points whose date does not parse are dropped. Rows sharing a date are
// kept apart (historical rows carry Actual only, forecast rows Forecast only).
func Merge(historical, forecast []entity.DataPoint, category string) []entity.MergedPoint {
	merged := combine(historical, forecast, category, false)
	sortByDate(merged)
	return merged
}

// MergeForTable is Merge for tabular output: unparseable dates are kept with
// their raw string and placed after every dated row, in input order.
func MergeForTable(historical, forecast []entity.DataPoint, category string) []entity.MergedPoint {
	merged := combine(historical, forecast, category, true)
	sortByDate(merged)
	return merged
}

func combine(historical, forecast []entity.DataPoint, category string, keepInvalid bool) []entity.MergedPoint {
	hist := FilterByCategory(historical, category)
	fc := FilterByCategory(forecast, category)

	merged := make([]entity.MergedPoint, 0, len(hist)+len(fc))
	add := func(p entity.DataPoint, origin entity.Origin) {
		date, ok := ParseDate(p.Date)
		if !ok && !keepInvalid {
			return
		}
		row := entity.MergedPoint{
			Date:     date,
			RawDate:  p.Date,
			Label:    FormatLabel(date, p.Date),
			Category: p.Category,
			Origin:   origin,
		}
		if origin == entity.OriginHistorical {
			row.Actual = p.Actual
		} else {
			row.Forecast = p.Forecast
		}
		merged = append(merged, row)
	}

	for _, p := range hist {
		add(p, entity.OriginHistorical)
	}
	for _, p := range fc {
		add(p, entity.OriginForecast)
	}
	return merged
}

func sortByDate(rows []entity.MergedPoint) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case !a.HasValidDate():
			return false
		case !b.HasValidDate():
			return true
		default:
			return a.Date.Before(b.Date)
		}
	})
}
