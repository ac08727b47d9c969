package entity

import "time"

// DataPoint is a single monthly observation as delivered by the forecast collaborator.
// Actual and Forecast are nil when absent; an empty Category means the point is uncategorized.
type DataPoint struct {
	Date     string   `json:"date" yaml:"date" toml:"date"`
	Actual   *float64 `json:"actual" yaml:"actual" toml:"actual"`
	Forecast *float64 `json:"forecast" yaml:"forecast" toml:"forecast"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
}

// Series agrupa as duas sequências independentes consumidas pelo pipeline.
type Series struct {
	Historical []DataPoint `json:"historical"`
	Forecast   []DataPoint `json:"forecast"`
}

// Origin identifies which input sequence produced a merged row.
type Origin string

const (
	OriginHistorical Origin = "historical"
	OriginForecast   Origin = "forecast"
)

// MergedPoint is one row of the merged, date-ordered sequence.
// Date is the zero time when RawDate could not be parsed (table path only);
// Label is then RawDate itself.
type MergedPoint struct {
	Date     time.Time `json:"date"`
	RawDate  string    `json:"raw_date"`
	Label    string    `json:"label"`
	Actual   *float64  `json:"actual"`
	Forecast *float64  `json:"forecast"`
	Category string    `json:"category,omitempty"`
	Origin   Origin    `json:"origin"`
}

// HasValidDate reports whether the row's date was parsed.
func (p MergedPoint) HasValidDate() bool {
	return !p.Date.IsZero()
}

// Float returns a pointer to v. Handy for building DataPoints in code and tests.
func Float(v float64) *float64 {
	return &v
}
