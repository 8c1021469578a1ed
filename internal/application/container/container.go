// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/hearsaylabs/revuloop-go/internal/application/services"
	"github.com/hearsaylabs/revuloop-go/internal/domain/review"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/caching/sessions"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/email"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/performance"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/persistence/database"
	reviewrepo "github.com/hearsaylabs/revuloop-go/internal/infrastructure/persistence/review"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services (stateless singletons)
	DialogueService *services.DialogueService
	ReviewService   *services.ReviewService
	DBService       *services.DBService

	// Infrastructure Dependencies
	DB           *database.DB
	SessionStore *sessions.Store
	ReviewRepo   review.Repository
	Notifier     email.Service
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.DB, notifier email.Service, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *Container {
	sessionStore := sessions.NewStore(logger)
	reviewRepo := reviewrepo.NewSQLReviewRepository(db, logger)

	return &Container{
		DialogueService: services.NewDialogueService(sessionStore, reviewRepo, notifier, logger, perfTracker),
		ReviewService:   services.NewReviewService(reviewRepo, logger, perfTracker),
		DBService:       services.NewDBService(db, logger, perfTracker),

		DB:           db,
		SessionStore: sessionStore,
		ReviewRepo:   reviewRepo,
		Notifier:     notifier,
		Logger:       logger,
		PerfTracker:  perfTracker,
	}
}
