// Package services provides application-level orchestration services
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/hearsaylabs/revuloop-go/internal/domain/dialogue"
	"github.com/hearsaylabs/revuloop-go/internal/domain/review"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/caching/sessions"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/email"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/performance"
)

// DialogueService drives the review-intake conversation. Each inbound message
// advances the contact's session exactly one step; the completing step
// persists the assembled review before the session resets, so a failed save
// leaves the session recoverable and the user can resend their review text.
type DialogueService struct {
	store       *sessions.Store
	reviews     review.Repository
	notifier    email.Service
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewDialogueService creates a new dialogue service. notifier may be nil when
// review notifications are not configured.
func NewDialogueService(store *sessions.Store, reviews review.Repository, notifier email.Service, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *DialogueService {
	return &DialogueService{
		store:       store,
		reviews:     reviews,
		notifier:    notifier,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// HandleMessage advances one contact's conversation by a single turn and
// returns the reply text. Message content is accepted verbatim apart from
// whitespace trimming; the position in the conversation decides which field
// the message fills. The only error path is a failed persistence attempt on
// the completing step.
func (s *DialogueService) HandleMessage(contactID, message string) (string, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("dialogue:handle_message")
	defer marker.Complete()

	message = strings.TrimSpace(message)

	session, existed := s.store.GetOrCreate(contactID)
	session.Mu.Lock()
	defer session.Mu.Unlock()
	session.Touch()

	log := s.logger.WithContact(logging.ChannelDialogue, contactID)
	log.Debug("Processing inbound message", "step", string(session.Step), "existed", existed)

	var reply string

	switch session.Step {
	case dialogue.StepInit:
		// The first message only signals that the user has started; its
		// content is discarded.
		session.Step = dialogue.StepAwaitingProduct
		reply = dialogue.PromptProduct

	case dialogue.StepAwaitingProduct:
		session.ProductName = message
		session.Step = dialogue.StepAwaitingName
		reply = dialogue.PromptName

	case dialogue.StepAwaitingName:
		session.UserName = message
		session.Step = dialogue.StepAwaitingReview
		reply = fmt.Sprintf(dialogue.PromptReviewFmt, session.ProductName)

	case dialogue.StepAwaitingReview:
		rec := &review.Review{
			ContactNumber: contactID,
			UserName:      session.UserName,
			ProductName:   session.ProductName,
			ProductReview: message,
		}

		// Persist before resetting: if the store is unreachable the session
		// stays at this step and the next message retries the completion.
		if err := s.reviews.Store(rec); err != nil {
			log.Error("Failed to persist completed review",
				"product", session.ProductName,
				"error", err.Error(),
				"duration", time.Since(start))
			marker.SetError(err)
			return "", fmt.Errorf("storing completed review: %w", err)
		}

		reply = fmt.Sprintf(dialogue.ConfirmationFmt, session.UserName, session.ProductName)
		log.Info("Review recorded",
			"reviewId", rec.ID,
			"product", rec.ProductName,
			"duration", time.Since(start))

		s.notifyReviewRecorded(rec)
		session.ResetInPlace()

	default:
		// Unknown step tag; restart the conversation from the top.
		log.Warn("Session in unknown step, restarting", "step", string(session.Step))
		session.ResetInPlace()
		session.Step = dialogue.StepAwaitingProduct
		reply = dialogue.PromptProduct
	}

	marker.SetSuccess(true)
	s.logger.Perf().Debug("Performance for HandleMessage", "duration", marker.Duration, "step", string(session.Step))
	return reply, nil
}

// notifyReviewRecorded sends the best-effort notification email. Failures are
// logged and never affect the dialogue outcome.
func (s *DialogueService) notifyReviewRecorded(rec *review.Review) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.SendReviewRecordedEmail(rec); err != nil {
			s.logger.Email().Error("Review notification email failed", "reviewId", rec.ID, "error", err.Error())
		} else {
			s.logger.Email().Info("Review notification email sent", "reviewId", rec.ID)
		}
	}()
}
