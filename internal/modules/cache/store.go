// README: Response cache backed by Redis string keys with TTLs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	suggestKeyPrefix = "travel:suggest:%s:%s"
	weatherKeyPrefix = "travel:weather:%s"
)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// GetJSON decodes the cached value for key into v. It reports false on a miss.
func (s *Store) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	val, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, v); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		_ = s.redis.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}
	return s.redis.Set(ctx, key, b, ttl).Err()
}

// SuggestionKey identifies a suggestion request of the given kind ("location"
// or "image"). subject is the location text or the image digest. Preference
// order does not affect the key.
func SuggestionKey(kind, subject string, prefs []string) string {
	sorted := append([]string(nil), prefs...)
	for i := range sorted {
		sorted[i] = strings.ToLower(sorted[i])
	}
	sort.Strings(sorted)
	return fmt.Sprintf(suggestKeyPrefix, kind, digest(strings.ToLower(strings.TrimSpace(subject))+"|"+strings.Join(sorted, ",")))
}

func WeatherKey(destination string) string {
	return fmt.Sprintf(weatherKeyPrefix, digest(strings.ToLower(strings.TrimSpace(destination))))
}

// Digest returns the hex sha256 of b; used to key image uploads.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func digest(s string) string {
	return Digest([]byte(s))
}
