package controller

import (
	"errors"
	"sync/atomic"
)

// ErrStale is returned when a newer request on the same surface superseded
// the one that just completed. Nothing is rendered for it.
var ErrStale = errors.New("stale response discarded")

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// surface is one render target. phase is guarded by the controller mutex.
type surface struct {
	gen   atomic.Uint64
	phase Phase
}

func (s *surface) begin() uint64 {
	s.phase = PhaseLoading
	return s.gen.Add(1)
}

func (s *surface) current(gen uint64) bool {
	return s.gen.Load() == gen
}
