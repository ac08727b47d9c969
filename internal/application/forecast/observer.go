package forecast

// Observer receives the pipeline's diagnostic events.
// Implementations must not block; network sinks should buffer.
type Observer interface {
	Prepared(category string, rows, forecastRows int)
	ValidationFailed(category, reason string)
	RenderFailed(renderer string, err error)
	Degraded(renderer, category string)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) Prepared(string, int, int)       {}
func (NopObserver) ValidationFailed(string, string) {}
func (NopObserver) RenderFailed(string, error)      {}
func (NopObserver) Degraded(string, string)         {}

// Observers fans events out to several observers.
type Observers []Observer

func (o Observers) Prepared(category string, rows, forecastRows int) {
	for _, obs := range o {
		obs.Prepared(category, rows, forecastRows)
	}
}

func (o Observers) ValidationFailed(category, reason string) {
	for _, obs := range o {
		obs.ValidationFailed(category, reason)
	}
}

func (o Observers) RenderFailed(renderer string, err error) {
	for _, obs := range o {
		obs.RenderFailed(renderer, err)
	}
}

func (o Observers) Degraded(renderer, category string) {
	for _, obs := range o {
		obs.Degraded(renderer, category)
	}
}
