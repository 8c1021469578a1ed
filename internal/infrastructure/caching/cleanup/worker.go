// Package cleanup provides the background session eviction worker
package cleanup

import (
	"context"
	"time"

	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/caching/sessions"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
)

// Worker handles background TTL eviction of idle intake sessions
type Worker struct {
	store  *sessions.Store
	config *Config
	logger *logging.ChanneledLogger
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(store *sessions.Store, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Start begins the cleanup worker routine, using the configured interval
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	w.logger.Cache().Info("Session cleanup worker started",
		"interval", w.config.CleanupInterval,
		"sessionTTL", w.config.SessionTTL,
		"verbose", w.config.VerboseReporting)

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Session cleanup worker stopping...")
			return
		case <-ticker.C:
			w.performCleanup()
		}
	}
}

// performCleanup evicts sessions idle past their TTL
func (w *Worker) performCleanup() {
	start := time.Now()
	before := w.store.Count()

	purged := w.store.PurgeExpired(w.config.SessionTTL)

	duration := time.Since(start)
	if purged > 0 {
		w.logger.Cache().Info("Session cleanup finished",
			"purged", purged,
			"before", before,
			"remaining", w.store.Count(),
			"duration", duration)
	} else if w.config.VerboseReporting {
		w.logger.Cache().Debug("Session cleanup completed - no expired sessions found",
			"held", before,
			"duration", duration)
	}
}
