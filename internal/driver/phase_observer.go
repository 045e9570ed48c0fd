package driver

import (
	"time"

	"canon/internal/observ"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted while a file is processed.
type PhaseObserver func(PhaseEvent)

// phases couples the per-file timer with the observer.
type phases struct {
	path     string
	timer    *observ.Timer
	observer PhaseObserver
}

func (p *phases) run(name string, fn func() string) {
	if p.observer != nil {
		p.observer(PhaseEvent{Path: p.path, Name: name, Status: PhaseStart})
	}
	idx := p.timer.Begin(name)
	p.timer.End(idx, fn())
	if p.observer != nil {
		p.observer(PhaseEvent{Path: p.path, Name: name, Status: PhaseEnd, Elapsed: p.timer.Phases()[idx].Dur})
	}
}
