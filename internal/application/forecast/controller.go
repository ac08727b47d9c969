package forecast

import (
	"errors"
	"fmt"

	"github.com/diillson/demand-forecast-go/internal/domain/entity"
	"github.com/diillson/demand-forecast-go/internal/domain/repository"
)

// Mensagens exibidas ao usuário quando não há dados utilizáveis.
const (
	MsgNoHistorical            = "No historical data available"
	MsgNoHistoricalForCategory = "No historical data available for category: %s"
	MsgNoValidPoints           = "No valid data points to display"
	MsgFallbackNotice          = "Chart rendering failed. Showing data in table format instead."
)

var errNoPrimary = errors.New("no primary renderer configured")

// Input is one (historical, forecast, selectedCategory) triple.
type Input struct {
	Historical []entity.DataPoint
	Forecast   []entity.DataPoint
	Category   string
}

// Controller drives a single render through Preparing, Ready, Error and Degraded.
// A Controller belongs to one Input; a new triple needs a new Controller.
type Controller struct {
	input    Input
	palette  *Palette
	primary  repository.ChartRenderer
	fallback repository.TableRenderer
	observer Observer

	state    entity.RenderState
	rendered bool
}

// NewController cria um novo controlador no estado Preparing.
func NewController(
	input Input,
	palette *Palette,
	primary repository.ChartRenderer,
	fallback repository.TableRenderer,
	observer Observer,
) *Controller {
	if palette == nil {
		palette = NewPalette(nil)
	}
	if observer == nil {
		observer = NopObserver{}
	}
	c := &Controller{
		input:    input,
		palette:  palette,
		primary:  primary,
		fallback: fallback,
		observer: observer,
	}
	c.state = entity.RenderState{Stage: entity.StagePreparing, Renderer: c.primaryName()}
	return c
}

// State returns the current render state.
func (c *Controller) State() entity.RenderState {
	return c.state
}

// Run prepares the data and renders it, returning the final state.
func (c *Controller) Run() entity.RenderState {
	c.Prepare()
	return c.Render()
}

// Prepare validates the input and builds the dataset. It only acts in Preparing.
func (c *Controller) Prepare() (state entity.RenderState) {
	if c.state.Stage != entity.StagePreparing {
		return c.state
	}

	defer func() {
		if r := recover(); r != nil {
			state = c.fail(fmt.Sprintf("Error preparing chart: %v", r))
		}
	}()

	in := c.input
	if len(in.Historical) == 0 {
		return c.fail(MsgNoHistorical)
	}
	if len(FilterByCategory(in.Historical, in.Category)) == 0 {
		return c.fail(fmt.Sprintf(MsgNoHistoricalForCategory, in.Category))
	}

	merged := Merge(in.Historical, in.Forecast, in.Category)
	if len(merged) == 0 {
		return c.fail(MsgNoValidPoints)
	}

	ds, err := BuildDataset(merged, c.palette.Resolve(in.Category))
	if err != nil {
		return c.fail(MsgNoHistorical)
	}
	ds.Category = in.Category

	c.state = entity.RenderState{Stage: entity.StageReady, Dataset: ds, Renderer: c.primaryName()}
	c.observer.Prepared(in.Category, ds.Len(), ds.ForecastCount())
	return c.state
}

// Render draws the current state once. Ready draws the chart and degrades to the
// fallback table if the draw fails; Error shows its message; Degraded is final.
func (c *Controller) Render() entity.RenderState {
	if c.state.Stage == entity.StagePreparing {
		c.Prepare()
	}
	if c.rendered {
		return c.state
	}
	c.rendered = true

	switch c.state.Stage {
	case entity.StageReady:
		if err := c.draw(c.state.Dataset); err != nil {
			c.degrade(err)
		}
	case entity.StageError:
		c.showMessage(c.state.Reason)
	}
	return c.state
}

func (c *Controller) draw(ds *entity.Dataset) error {
	if c.primary == nil {
		return errNoPrimary
	}
	return guard(func() error {
		if err := c.primary.Clear(); err != nil {
			return fmt.Errorf("clear surface: %w", err)
		}
		return c.primary.Draw(ds)
	})
}

// degrade drops the primary renderer and hands the original input to the fallback.
// The fallback recomputes its rows; it never reads the Ready dataset.
func (c *Controller) degrade(cause error) {
	name := c.primaryName()
	c.observer.RenderFailed(name, cause)

	if c.primary != nil {
		if err := guard(c.primary.Clear); err != nil {
			c.observer.RenderFailed(name, fmt.Errorf("clear after failure: %w", err))
		}
	}
	c.primary = nil

	if c.fallback != nil {
		view := FallbackView(c.input.Historical, c.input.Forecast, c.input.Category)
		if err := guard(func() error { return c.fallback.RenderTable(view) }); err != nil {
			c.observer.RenderFailed("fallback-table", err)
		}
	}

	c.state = entity.RenderState{
		Stage:    entity.StageDegraded,
		Dataset:  c.state.Dataset,
		Failure:  cause,
		Renderer: name,
	}
	c.observer.Degraded(name, c.input.Category)
}

func (c *Controller) showMessage(msg string) {
	if c.primary != nil {
		err := guard(func() error {
			if err := c.primary.Clear(); err != nil {
				return err
			}
			return c.primary.DrawMessage(msg)
		})
		if err == nil {
			return
		}
		c.observer.RenderFailed(c.primaryName(), err)
	}
	if c.fallback != nil {
		if err := guard(func() error { return c.fallback.RenderMessage(msg) }); err != nil {
			c.observer.RenderFailed("fallback-table", err)
		}
	}
}

func (c *Controller) fail(reason string) entity.RenderState {
	c.state = entity.RenderState{Stage: entity.StageError, Reason: reason, Renderer: c.primaryName()}
	c.observer.ValidationFailed(c.input.Category, reason)
	return c.state
}

func (c *Controller) primaryName() string {
	if c.primary == nil {
		return ""
	}
	return c.primary.Name()
}

// guard turns a renderer panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()
	return fn()
}
