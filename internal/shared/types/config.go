package types

import "github.com/diillson/demand-forecast-go/internal/domain/entity"

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Source         string            `json:"source" yaml:"source" toml:"source"`
	Input          string            `json:"input" yaml:"input" toml:"input"`
	Profile        string            `json:"profile" yaml:"profile" toml:"profile"`
	Region         string            `json:"region" yaml:"region" toml:"region"`
	Bucket         string            `json:"bucket" yaml:"bucket" toml:"bucket"`
	HistoricalKey  string            `json:"historical_key" yaml:"historical_key" toml:"historical_key"`
	ForecastKey    string            `json:"forecast_key" yaml:"forecast_key" toml:"forecast_key"`
	Months         int               `json:"months" yaml:"months" toml:"months"`
	ForecastMonths int               `json:"forecast_months" yaml:"forecast_months" toml:"forecast_months"`
	TopServices    int               `json:"top_services" yaml:"top_services" toml:"top_services"`
	SQLitePath     string            `json:"sqlite_path" yaml:"sqlite_path" toml:"sqlite_path"`
	Renderer       string            `json:"renderer" yaml:"renderer" toml:"renderer"`
	Category       string            `json:"category" yaml:"category" toml:"category"`
	Output         string            `json:"output" yaml:"output" toml:"output"`
	ShowTable      bool              `json:"show_table" yaml:"show_table" toml:"show_table"`
	Width          int               `json:"width" yaml:"width" toml:"width"`
	Height         int               `json:"height" yaml:"height" toml:"height"`
	ReportName     string            `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string          `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string            `json:"dir" yaml:"dir" toml:"dir"`
	LogGroup       string            `json:"log_group" yaml:"log_group" toml:"log_group"`
	Categories     []entity.Category `json:"categories" yaml:"categories" toml:"categories"`
}

// Valores padrão aplicados quando nem flag, arquivo ou ambiente definem o campo.
const (
	DefaultSource         = "file"
	DefaultRenderer       = "terminal"
	DefaultRegion         = "us-east-1"
	DefaultHistoricalKey  = "historical.json"
	DefaultForecastKey    = "forecast.json"
	DefaultSQLitePath     = "./data/forecast.db"
	DefaultMonths         = 6
	DefaultForecastMonths = 3
	DefaultTopServices    = 5
	DefaultWidth          = 800
	DefaultHeight         = 400
)

// DefaultCategories is the category registry used when configuration provides none.
func DefaultCategories() []entity.Category {
	return []entity.Category{
		{Name: "Electronics", Color: "#3b82f6", ForecastColor: "#9333ea"},
		{Name: "Clothing", Color: "#ec4899", ForecastColor: "#0891b2"},
		{Name: "Home & Kitchen", Color: "#10b981", ForecastColor: "#7c3aed"},
		{Name: "Toys & Games", Color: "#f59e0b", ForecastColor: "#0284c7"},
		{Name: "Beauty", Color: "#8b5cf6", ForecastColor: "#ea580c"},
	}
}

// Merge overlays every non-zero field of other on top of c.
func (c Config) Merge(other Config) Config {
	out := c
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setStr(&out.Source, other.Source)
	setStr(&out.Input, other.Input)
	setStr(&out.Profile, other.Profile)
	setStr(&out.Region, other.Region)
	setStr(&out.Bucket, other.Bucket)
	setStr(&out.HistoricalKey, other.HistoricalKey)
	setStr(&out.ForecastKey, other.ForecastKey)
	setInt(&out.Months, other.Months)
	setInt(&out.ForecastMonths, other.ForecastMonths)
	setInt(&out.TopServices, other.TopServices)
	setStr(&out.SQLitePath, other.SQLitePath)
	setStr(&out.Renderer, other.Renderer)
	setStr(&out.Category, other.Category)
	setStr(&out.Output, other.Output)
	setInt(&out.Width, other.Width)
	setInt(&out.Height, other.Height)
	setStr(&out.ReportName, other.ReportName)
	setStr(&out.Dir, other.Dir)
	setStr(&out.LogGroup, other.LogGroup)
	if other.ShowTable {
		out.ShowTable = true
	}
	if len(other.ReportType) > 0 {
		out.ReportType = other.ReportType
	}
	if len(other.Categories) > 0 {
		out.Categories = other.Categories
	}
	return out
}

// WithDefaults fills every empty field with its default value.
func (c Config) WithDefaults() Config {
	return Config{
		Source:         DefaultSource,
		Region:         DefaultRegion,
		HistoricalKey:  DefaultHistoricalKey,
		ForecastKey:    DefaultForecastKey,
		Months:         DefaultMonths,
		ForecastMonths: DefaultForecastMonths,
		TopServices:    DefaultTopServices,
		SQLitePath:     DefaultSQLitePath,
		Renderer:       DefaultRenderer,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		ReportType:     []string{"csv"},
		Categories:     DefaultCategories(),
	}.Merge(c)
}
