// README: History service records suggestions and prunes old entries on a cron schedule.
package history

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"travelagent/internal/types"
)

// Repository is the persistence the service needs; *Store implements it.
type Repository interface {
	Insert(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Service struct {
	store Repository
	now   func() time.Time
}

func NewService(store Repository) *Service {
	return &Service{store: store, now: time.Now}
}

// Record stores one answered suggestion request.
func (s *Service) Record(ctx context.Context, kind Kind, query string, prefs []string, dests []types.Destination) error {
	if prefs == nil {
		prefs = []string{}
	}
	if dests == nil {
		dests = []types.Destination{}
	}
	return s.store.Insert(ctx, Entry{
		ID:           uuid.NewString(),
		Kind:         kind,
		Query:        query,
		Preferences:  prefs,
		Destinations: dests,
		CreatedAt:    s.now().UTC(),
	})
}

// Recent returns up to limit entries, newest first. Non-positive limits use
// DefaultLimit and anything above MaxLimit is clamped.
func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	entries, err := s.store.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Prune deletes entries older than retention.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("history: retention must be positive")
	}
	return s.store.DeleteBefore(ctx, s.now().UTC().Add(-retention))
}

// StartPruner schedules Prune with a standard cron spec (e.g. "@daily").
// The scheduler stops when ctx is cancelled.
func (s *Service) StartPruner(ctx context.Context, spec string, retention time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		n, err := s.Prune(runCtx, retention)
		if err != nil {
			log.Printf("[error] operation=history_prune error=%v", err)
			return
		}
		log.Printf("[info] operation=history_prune removed=%d", n)
	})
	if err != nil {
		return nil, fmt.Errorf("history: invalid prune schedule %q: %w", spec, err)
	}

	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	log.Printf("History pruner started (schedule %s, retention %s)", spec, retention)
	return c, nil
}
