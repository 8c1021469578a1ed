package services

import (
	"time"

	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/performance"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/persistence/database"
)

// DBService provides database health checking for the health endpoint.
type DBService struct {
	db          *database.DB
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewDBService creates a new database service
func NewDBService(db *database.DB, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *DBService {
	return &DBService{
		db:          db,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// CheckStatus verifies the database is reachable with a trivial query.
func (s *DBService) CheckStatus() map[string]any {
	start := time.Now()
	marker := s.perfTracker.StartOperation("db:status")
	defer marker.Complete()

	status := map[string]any{
		"status":    "ok",
		"database":  "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	var one int
	if err := s.db.QueryRow("SELECT 1").Scan(&one); err != nil {
		s.logger.Database().Error("Database health check failed", "error", err.Error(), "duration", time.Since(start))
		marker.SetError(err)
		status["status"] = "error"
		status["database"] = "unavailable"
		status["error"] = err.Error()
		return status
	}

	marker.SetSuccess(true)
	s.logger.Database().Debug("Database health check passed", "duration", time.Since(start))
	return status
}

// GetConnectionStats returns pool statistics for observability.
func (s *DBService) GetConnectionStats() map[string]any {
	stats := s.db.Stats()
	return map[string]any{
		"openConns":    stats.OpenConnections,
		"inUse":        stats.InUse,
		"idle":         stats.Idle,
		"waitCount":    stats.WaitCount,
		"waitDuration": stats.WaitDuration.String(),
	}
}
