// README: History persistence in Postgres (suggestion_history table).
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles suggestion_history persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, e Entry) error {
	dests, err := json.Marshal(e.Destinations)
	if err != nil {
		return fmt.Errorf("history: marshal destinations: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO suggestion_history (id, kind, query, preferences, destinations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, string(e.Kind), e.Query, e.Preferences, dests, e.CreatedAt)
	return err
}

// Recent returns the newest entries first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, kind, query, preferences, destinations, created_at
		FROM suggestion_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e     Entry
			kind  string
			dests []byte
		)
		if err := rows.Scan(&e.ID, &kind, &e.Query, &e.Preferences, &dests, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		if err := json.Unmarshal(dests, &e.Destinations); err != nil {
			return nil, fmt.Errorf("history: decode destinations for %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteBefore removes entries created before cutoff and reports how many were removed.
func (s *Store) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM suggestion_history WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
