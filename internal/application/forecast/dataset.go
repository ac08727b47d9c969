package forecast

import (
	"errors"
	"math"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

// ErrEmptyDataset signals that there is nothing to draw.
var ErrEmptyDataset = errors.New("empty dataset")

// Axis margins applied around the observed values.
const (
	rangeLowFactor  = 0.9
	rangeHighFactor = 1.1
)

// BuildDataset shapes merged rows into the renderer-agnostic Dataset.
// Rows without a parsed date are skipped; if none remain ErrEmptyDataset is returned.
func BuildDataset(merged []entity.MergedPoint, style entity.CategoryStyle) (*entity.Dataset, error) {
	ds := &entity.Dataset{
		HistoricalColor: style.HistoricalColor,
		ForecastColor:   style.ForecastColor,
		ForecastHatch:   true,
		Rows:            make([]entity.DatasetRow, 0, len(merged)),
	}

	for _, p := range merged {
		if !p.HasValidDate() {
			continue
		}
		ds.Rows = append(ds.Rows, entity.DatasetRow{
			Label:    FormatLabel(p.Date, p.RawDate),
			Date:     p.Date,
			Category: p.Category,
			Actual:   p.Actual,
			Forecast: p.Forecast,
		})
	}

	if len(ds.Rows) == 0 {
		return nil, ErrEmptyDataset
	}

	ds.Range = ValueRange(ds.Rows)
	return ds, nil
}

// ValueRange computes the padded axis range over actual and forecast values.
func ValueRange(rows []entity.DatasetRow) entity.AxisRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	observe := func(v *float64) {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return
		}
		lo = math.Min(lo, *v)
		hi = math.Max(hi, *v)
	}
	for _, r := range rows {
		observe(r.Actual)
		observe(r.Forecast)
	}
	if math.IsInf(lo, 1) {
		return entity.AxisRange{}
	}
	return entity.AxisRange{
		Min:   math.Floor(lo * rangeLowFactor),
		Max:   math.Ceil(hi * rangeHighFactor),
		Valid: true,
	}
}
