package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/demand-forecast-go/internal/shared/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"config.toml": `
source = "s3"
bucket = "forecast-data"
months = 12
report_type = ["csv", "pdf"]

[[categories]]
name = "Garden"
color = "#22c55e"
forecast_color = "#15803d"
`,
		"config.yaml": `
source: s3
bucket: forecast-data
months: 12
report_type: [csv, pdf]
categories:
  - name: Garden
    color: "#22c55e"
    forecast_color: "#15803d"
`,
		"config.json": `{
  "source": "s3",
  "bucket": "forecast-data",
  "months": 12,
  "report_type": ["csv", "pdf"],
  "categories": [{"name": "Garden", "color": "#22c55e", "forecast_color": "#15803d"}]
}`,
	}

	repo := NewConfigRepository()
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := repo.LoadConfigFile(writeFile(t, dir, name, content))
			if err != nil {
				t.Fatalf("LoadConfigFile: %v", err)
			}
			if cfg.Source != "s3" || cfg.Bucket != "forecast-data" || cfg.Months != 12 {
				t.Errorf("config = %+v", cfg)
			}
			if len(cfg.ReportType) != 2 || cfg.ReportType[1] != "pdf" {
				t.Errorf("report types = %v", cfg.ReportType)
			}
			if len(cfg.Categories) != 1 || cfg.Categories[0].ForecastColor != "#15803d" {
				t.Errorf("categories = %+v", cfg.Categories)
			}
		})
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	repo := NewConfigRepository()

	tests := map[string]string{
		"missing":     filepath.Join(dir, "nope.toml"),
		"directory":   dir,
		"unsupported": writeFile(t, dir, "config.ini", "a=b"),
		"malformed":   writeFile(t, dir, "bad.json", "{"),
	}
	for name, path := range tests {
		if _, err := repo.LoadConfigFile(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "AWS_REGION=eu-west-1\nDATA_BUCKET=from-file\nLOG_GROUP=/forecast\n")

	env := map[string]string{"DATA_BUCKET": "from-process"}
	repo := &ConfigRepositoryImpl{lookup: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}

	cfg := repo.LoadEnv(envFile, filepath.Join(dir, "missing.env"))
	if cfg.Region != "eu-west-1" || cfg.LogGroup != "/forecast" {
		t.Errorf("values from .env not loaded: %+v", cfg)
	}
	if cfg.Bucket != "from-process" {
		t.Errorf("process environment must win over .env, got %q", cfg.Bucket)
	}
}

func TestPrecedence(t *testing.T) {
	env := types.Config{Region: "eu-west-1", Bucket: "env-bucket"}
	file := types.Config{Bucket: "file-bucket", Renderer: "html"}
	flags := types.Config{Renderer: "png"}

	cfg := env.Merge(file).Merge(flags).WithDefaults()
	if cfg.Region != "eu-west-1" || cfg.Bucket != "file-bucket" || cfg.Renderer != "png" {
		t.Errorf("precedence broken: %+v", cfg)
	}
	if cfg.Source != types.DefaultSource || len(cfg.Categories) != 5 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}
