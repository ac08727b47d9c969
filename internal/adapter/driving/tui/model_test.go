package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/diillson/demand-forecast-go/internal/application/forecast"
	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

func testSeries() entity.Series {
	return entity.Series{
		Historical: []entity.DataPoint{
			{Date: "2024-01-15", Actual: entity.Float(100), Category: "Electronics"},
			{Date: "2024-02-15", Actual: entity.Float(80), Category: "Beauty"},
		},
		Forecast: []entity.DataPoint{
			{Date: "2024-03-15", Forecast: entity.Float(120), Category: "Electronics"},
		},
	}
}

func testPalette() *forecast.Palette {
	return forecast.NewPalette([]entity.Category{
		{Name: "Electronics", Color: "#3b82f6", ForecastColor: "#9333ea"},
		{Name: "Clothing", Color: "#ec4899", ForecastColor: "#0891b2"},
		{Name: "Beauty", Color: "#8b5cf6", ForecastColor: "#ea580c"},
	})
}

func press(m Model, key tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: key})
	return next.(Model)
}

func TestNewModelStartsOnInitialCategory(t *testing.T) {
	m := NewModel(testSeries(), testPalette(), nil, "Electronics")

	if m.Category() != "Electronics" {
		t.Fatalf("category = %q", m.Category())
	}
	if m.State().Stage != entity.StageReady || m.Renders() != 1 {
		t.Errorf("state = %s, renders = %d", m.State().Stage, m.Renders())
	}
	if !strings.Contains(m.View(), "Demand Forecast") {
		t.Errorf("view missing header")
	}
}

func TestNewModelUnknownInitialSelectsAll(t *testing.T) {
	m := NewModel(testSeries(), testPalette(), nil, "Nope")
	if m.Category() != "" {
		t.Errorf("category = %q, want All", m.Category())
	}
}

func TestCategoryCycleCreatesNewController(t *testing.T) {
	m := NewModel(testSeries(), testPalette(), nil, "Electronics")

	m = press(m, tea.KeyRight)
	if m.Category() != "Clothing" {
		t.Fatalf("category = %q, want Clothing", m.Category())
	}
	if m.State().Stage != entity.StageError {
		t.Errorf("Clothing has no history, stage = %s", m.State().Stage)
	}
	if !strings.Contains(m.View(), "No historical data available for category: Clothing") {
		t.Errorf("view missing validation message:\n%s", m.View())
	}

	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyRight)
	if m.Category() != "" {
		t.Fatalf("category = %q, want All", m.Category())
	}
	if m.State().Stage != entity.StageReady || m.State().Dataset.Len() != 3 {
		t.Errorf("All state = %+v", m.State())
	}

	m = press(m, tea.KeyRight)
	if m.Category() != "Electronics" {
		t.Errorf("cycle should wrap to Electronics, got %q", m.Category())
	}
	m = press(m, tea.KeyLeft)
	if m.Category() != "" {
		t.Errorf("left should wrap back to All, got %q", m.Category())
	}
	if m.Renders() != 6 {
		t.Errorf("renders = %d, want 6", m.Renders())
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(testSeries(), testPalette(), nil, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if cmd() != tea.Quit() {
		t.Errorf("cmd did not quit")
	}
}

func TestStatusLineShowsLastEvent(t *testing.T) {
	m := NewModel(testSeries(), testPalette(), nil, "Electronics")
	if !strings.HasPrefix(m.LastEvent(), "prepared") {
		t.Errorf("last event = %q, want prepared", m.LastEvent())
	}

	m = press(m, tea.KeyRight)
	want := "rejected: No historical data available for category: Clothing"
	if m.LastEvent() != want {
		t.Errorf("last event = %q, want %q", m.LastEvent(), want)
	}
	if !strings.Contains(m.View(), "state: error • "+want) {
		t.Errorf("status line missing event:\n%s", m.View())
	}
}
