package forecast

import (
	"strings"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
)

// Cores padrão usadas quando nenhuma categoria está selecionada.
const (
	DefaultHistoricalColor       = "rgba(14,165,233,0.8)"
	DefaultForecastColor         = "rgba(249,115,22,0.8)"
	DefaultCategoryForecastColor = "#f97316"
)

// Palette resolves category names to historical/forecast colors.
// It is built from the configured registry and never mutated afterwards.
type Palette struct {
	order    []string
	base     map[string]string
	forecast map[string]string
}

// NewPalette cria uma nova paleta a partir do registro de categorias.
// Later duplicates of a name are ignored.
func NewPalette(registry []entity.Category) *Palette {
	p := &Palette{
		base:     make(map[string]string, len(registry)),
		forecast: make(map[string]string, len(registry)),
	}
	for _, c := range registry {
		if c.Name == "" {
			continue
		}
		if _, dup := p.base[c.Name]; dup {
			continue
		}
		p.order = append(p.order, c.Name)
		p.base[c.Name] = c.Color
		if c.ForecastColor != "" {
			p.forecast[c.Name] = c.ForecastColor
		}
	}
	return p
}

// Categories returns the registered names in registry order.
func (p *Palette) Categories() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Has reports whether the category is registered.
func (p *Palette) Has(category string) bool {
	_, ok := p.base[category]
	return ok
}

// Resolve returns the style for category. An empty category yields the default pair.
func (p *Palette) Resolve(category string) entity.CategoryStyle {
	if category == "" {
		return entity.CategoryStyle{
			HistoricalColor: DefaultHistoricalColor,
			ForecastColor:   DefaultForecastColor,
		}
	}

	base, ok := p.base[category]
	if !ok || base == "" {
		return entity.CategoryStyle{
			HistoricalColor: DefaultHistoricalColor,
			ForecastColor:   DefaultCategoryForecastColor,
		}
	}

	fc, ok := p.forecast[category]
	if !ok {
		fc = DefaultCategoryForecastColor
	}
	// forecast bars must stay distinguishable from historical ones
	if sameColor(fc, base) {
		fc = DefaultForecastColor
		if sameColor(fc, base) {
			fc = DefaultHistoricalColor
		}
	}

	return entity.CategoryStyle{HistoricalColor: base, ForecastColor: fc}
}

func sameColor(a, b string) bool {
	norm := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, " ", ""))
	}
	return norm(a) == norm(b)
}
