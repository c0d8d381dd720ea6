package menu

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// ViewCache stores rendered per-currency menu views in cache.db.
// The cache database runs with the cache profile (no fsync, auto-vacuum), so
// entries are cheap to write and safe to lose. Payloads are msgpack-encoded.
type ViewCache struct {
	db  *sql.DB // cache.db - menu_views table
	ttl time.Duration
	log zerolog.Logger
}

// NewViewCache creates a menu view cache with the given TTL
func NewViewCache(db *sql.DB, ttl time.Duration, log zerolog.Logger) *ViewCache {
	return &ViewCache{
		db:  db,
		ttl: ttl,
		log: log.With().Str("repository", "menu_view_cache").Logger(),
	}
}

// Get returns the cached view for a currency, if present and fresh
func (c *ViewCache) Get(code string) (*View, bool) {
	var payload []byte
	var cachedAt int64
	err := c.db.QueryRow(
		"SELECT payload, cached_at FROM menu_views WHERE currency = ?", code,
	).Scan(&payload, &cachedAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("currency", code).Msg("Menu view cache read failed")
		return nil, false
	}

	if time.Since(time.Unix(cachedAt, 0)) > c.ttl {
		return nil, false
	}

	var view View
	if err := msgpack.Unmarshal(payload, &view); err != nil {
		c.log.Warn().Err(err).Str("currency", code).Msg("Menu view cache entry is corrupt, ignoring")
		return nil, false
	}
	return &view, true
}

// Put stores a rendered view. Failures are logged and swallowed - the cache
// is an optimization, never a source of truth.
func (c *ViewCache) Put(code string, view View) {
	payload, err := msgpack.Marshal(view)
	if err != nil {
		c.log.Warn().Err(err).Str("currency", code).Msg("Failed to encode menu view")
		return
	}

	_, err = c.db.Exec(`
		INSERT INTO menu_views (currency, payload, cached_at)
		VALUES (?, ?, ?)
		ON CONFLICT(currency) DO UPDATE SET
			payload = excluded.payload,
			cached_at = excluded.cached_at
	`, code, payload, time.Now().Unix())
	if err != nil {
		c.log.Warn().Err(err).Str("currency", code).Msg("Failed to write menu view cache")
	}
}

// PurgeStale deletes entries older than the TTL. Called by the maintenance
// scheduler.
func (c *ViewCache) PurgeStale() (int64, error) {
	cutoff := time.Now().Add(-c.ttl).Unix()
	res, err := c.db.Exec("DELETE FROM menu_views WHERE cached_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge menu view cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
