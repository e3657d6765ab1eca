package controller

import (
	"errors"
	"strings"
	"sync"

	"travelagent/internal/types"
)

var ErrTooManyPreferences = errors.New("too many preferences")

// PreferenceSelector holds at most types.MaxPreferences tags in selection order.
type PreferenceSelector struct {
	mu   sync.Mutex
	tags []string
}

func NewPreferenceSelector() *PreferenceSelector {
	return &PreferenceSelector{}
}

// Toggle adds tag when checked and removes it otherwise. Selecting beyond the
// cap returns ErrTooManyPreferences and leaves the selection unchanged.
func (p *PreferenceSelector) Toggle(tag string, checked bool) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.indexOf(tag)
	if !checked {
		if idx >= 0 {
			p.tags = append(p.tags[:idx], p.tags[idx+1:]...)
		}
		return nil
	}
	if idx >= 0 {
		return nil
	}
	if len(p.tags) >= types.MaxPreferences {
		return ErrTooManyPreferences
	}
	p.tags = append(p.tags, tag)
	return nil
}

// Selected returns a copy of the current tags; never nil.
func (p *PreferenceSelector) Selected() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.tags...)
}

func (p *PreferenceSelector) Clear() {
	p.mu.Lock()
	p.tags = nil
	p.mu.Unlock()
}

func (p *PreferenceSelector) indexOf(tag string) int {
	for i, t := range p.tags {
		if t == tag {
			return i
		}
	}
	return -1
}
