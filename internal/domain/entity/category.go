package entity

// Category is one entry of the read-only category registry supplied by configuration.
type Category struct {
	Name          string `json:"name" yaml:"name" toml:"name"`
	Color         string `json:"color" yaml:"color" toml:"color"`
	ForecastColor string `json:"forecast_color,omitempty" yaml:"forecast_color,omitempty" toml:"forecast_color,omitempty"`
}

// CategoryStyle holds the resolved colors for one render.
type CategoryStyle struct {
	HistoricalColor string `json:"historical_color"`
	ForecastColor   string `json:"forecast_color"`
}
