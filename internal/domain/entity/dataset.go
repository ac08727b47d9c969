package entity

import "time"

// DatasetRow is one labeled output row handed to chart renderers.
type DatasetRow struct {
	Label    string    `json:"label"`
	Date     time.Time `json:"date"`
	Category string    `json:"category,omitempty"`
	Actual   *float64  `json:"actual"`
	Forecast *float64  `json:"forecast"`
}

// AxisRange is the value range used to scale the canvas axis.
// Valid is false when no value was observed.
type AxisRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Valid bool    `json:"valid"`
}

// Span returns Max-Min, never less than 1 so callers can divide by it.
func (r AxisRange) Span() float64 {
	if s := r.Max - r.Min; s > 0 {
		return s
	}
	return 1
}

// ChartSeries is a chart-ready series with its styling.
// Values has one entry per dataset row; nil entries are gaps.
type ChartSeries struct {
	Name        string     `json:"name"`
	Values      []*float64 `json:"values"`
	Color       string     `json:"color"`
	BorderColor string     `json:"border_color"`
	BorderDash  []float64  `json:"border_dash,omitempty"`
	Hatched     bool       `json:"hatched"`
}

// TableRow is the labeled pair projection used by tabular renderers.
type TableRow struct {
	Label    string   `json:"label"`
	Category string   `json:"category,omitempty"`
	Actual   *float64 `json:"actual"`
	Forecast *float64 `json:"forecast"`
}

// Dataset is the renderer-agnostic output of the dataset builder.
type Dataset struct {
	Category        string       `json:"category,omitempty"`
	Rows            []DatasetRow `json:"rows"`
	HistoricalColor string       `json:"historical_color"`
	ForecastColor   string       `json:"forecast_color"`
	ForecastHatch   bool         `json:"forecast_hatch"`
	Range           AxisRange    `json:"range"`
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// ForecastCount counts rows carrying a forecast value.
func (d *Dataset) ForecastCount() int {
	n := 0
	for _, r := range d.Rows {
		if r.Forecast != nil {
			n++
		}
	}
	return n
}

// Labels returns the x-axis labels in row order.
func (d *Dataset) Labels() []string {
	labels := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		labels[i] = r.Label
	}
	return labels
}

// Series returns the Historical and Forecast chart series.
// The forecast series always carries the secondary marker (dashed border, hatch).
func (d *Dataset) Series() []ChartSeries {
	actual := make([]*float64, len(d.Rows))
	forecast := make([]*float64, len(d.Rows))
	for i, r := range d.Rows {
		actual[i] = r.Actual
		forecast[i] = r.Forecast
	}
	return []ChartSeries{
		{
			Name:        "Historical",
			Values:      actual,
			Color:       d.HistoricalColor,
			BorderColor: d.HistoricalColor,
		},
		{
			Name:        "Forecast",
			Values:      forecast,
			Color:       d.ForecastColor,
			BorderColor: d.ForecastColor,
			BorderDash:  []float64{5, 5},
			Hatched:     d.ForecastHatch,
		},
	}
}

// TableRows returns the labeled pairs projection.
func (d *Dataset) TableRows() []TableRow {
	rows := make([]TableRow, len(d.Rows))
	for i, r := range d.Rows {
		rows[i] = TableRow{Label: r.Label, Category: r.Category, Actual: r.Actual, Forecast: r.Forecast}
	}
	return rows
}
