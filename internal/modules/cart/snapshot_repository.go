package cart

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// snapshotKey is the fixed app_state key the cart snapshot lives under
const snapshotKey = "restaurantCart"

// SnapshotRepository persists and restores the cart snapshot
type SnapshotRepository interface {
	// Save writes the snapshot, replacing any previous one
	Save(snap Snapshot) error
	// Load reads the snapshot. The second return is false when no usable
	// snapshot exists (absent or malformed) - never an error condition.
	Load() (Snapshot, bool, error)
}

// SQLiteSnapshotRepository stores the snapshot as a JSON value in the
// app_state key-value table in store.db, under a single fixed key. Two
// processes sharing the file race with last-write-wins semantics, which is
// accepted for a single-user storefront.
type SQLiteSnapshotRepository struct {
	db  *sql.DB // store.db - app_state table
	log zerolog.Logger
}

// NewSQLiteSnapshotRepository creates a snapshot repository backed by store.db
func NewSQLiteSnapshotRepository(db *sql.DB, log zerolog.Logger) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{
		db:  db,
		log: log.With().Str("repository", "cart_snapshot").Logger(),
	}
}

// Save serializes the snapshot and upserts it under the fixed key
func (r *SQLiteSnapshotRepository) Save(snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize cart snapshot: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, snapshotKey, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	return nil
}

// Load reads and deserializes the snapshot. A missing row or a value that no
// longer parses both mean "no prior cart".
func (r *SQLiteSnapshotRepository) Load() (Snapshot, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM app_state WHERE key = ?", snapshotKey).Scan(&value)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		// Tampered or truncated storage is treated as no prior cart
		r.log.Warn().Err(err).Msg("Cart snapshot is malformed, ignoring")
		return Snapshot{}, false, nil
	}

	return snap, true, nil
}
