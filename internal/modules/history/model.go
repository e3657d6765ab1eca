// README: Suggestion history entries and limits.
package history

import (
	"errors"
	"time"

	"travelagent/internal/types"
)

// ErrDisabled is returned when no database is configured.
var ErrDisabled = errors.New("history disabled")

const (
	// DefaultLimit is used when the caller does not ask for a page size.
	DefaultLimit = 20
	// MaxLimit caps a single Recent call.
	MaxLimit = 100
)

type Kind string

const (
	KindLocation Kind = "location"
	KindImage    Kind = "image"
)

type Entry struct {
	ID           string              `json:"id"`
	Kind         Kind                `json:"kind"`
	Query        string              `json:"query"`
	Preferences  []string            `json:"preferences"`
	Destinations []types.Destination `json:"destinations"`
	CreatedAt    time.Time           `json:"created_at"`
}
