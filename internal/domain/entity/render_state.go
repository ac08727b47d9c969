package entity

// Stage is the position of a render in the fallback state machine.
type Stage int

const (
	StagePreparing Stage = iota
	StageReady
	StageError
	StageDegraded
)

func (s Stage) String() string {
	switch s {
	case StagePreparing:
		return "preparing"
	case StageReady:
		return "ready"
	case StageError:
		return "error"
	case StageDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible for the current input.
func (s Stage) Terminal() bool {
	return s == StageError || s == StageDegraded
}

// RenderState is the observable state of one render.
// Dataset is set in Ready (and kept in Degraded for inspection), Reason in Error,
// Failure in Degraded.
type RenderState struct {
	Stage    Stage
	Dataset  *Dataset
	Reason   string
	Failure  error
	Renderer string
}
