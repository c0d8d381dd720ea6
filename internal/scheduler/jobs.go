package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/saveur/storefront/internal/database"
	"github.com/saveur/storefront/internal/modules/menu"
)

// CheckpointJob forces WAL checkpoints on every database so WAL files stay
// bounded on a long-running device.
type CheckpointJob struct {
	dbs []*database.DB
	log zerolog.Logger
}

// NewCheckpointJob creates a checkpoint job over the given databases
func NewCheckpointJob(log zerolog.Logger, dbs ...*database.DB) *CheckpointJob {
	return &CheckpointJob{
		dbs: dbs,
		log: log.With().Str("job", "wal_checkpoint").Logger(),
	}
}

// Name implements Job
func (j *CheckpointJob) Name() string { return "wal_checkpoint" }

// Run checkpoints each database, continuing past individual failures
func (j *CheckpointJob) Run() error {
	var firstErr error
	for _, db := range j.dbs {
		if err := db.Checkpoint(); err != nil {
			j.log.Warn().Err(err).Str("database", db.Name()).Msg("Checkpoint failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		j.log.Debug().Str("database", db.Name()).Msg("Checkpoint complete")
	}
	return firstErr
}

// MenuCachePurgeJob removes stale per-currency menu views from cache.db
type MenuCachePurgeJob struct {
	cache *menu.ViewCache
	log   zerolog.Logger
}

// NewMenuCachePurgeJob creates a menu cache purge job
func NewMenuCachePurgeJob(cache *menu.ViewCache, log zerolog.Logger) *MenuCachePurgeJob {
	return &MenuCachePurgeJob{
		cache: cache,
		log:   log.With().Str("job", "menu_cache_purge").Logger(),
	}
}

// Name implements Job
func (j *MenuCachePurgeJob) Name() string { return "menu_cache_purge" }

// Run deletes expired cache entries
func (j *MenuCachePurgeJob) Run() error {
	n, err := j.cache.PurgeStale()
	if err != nil {
		return err
	}
	if n > 0 {
		j.log.Info().Int64("purged", n).Msg("Purged stale menu views")
	}
	return nil
}
