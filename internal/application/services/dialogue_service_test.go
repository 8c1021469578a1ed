package services

import (
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearsaylabs/revuloop-go/internal/domain/review"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/caching/sessions"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/performance"
)

type mockReviewRepo struct {
	mu       sync.Mutex
	stored   []*review.Review
	storeErr error
}

func (m *mockReviewRepo) Store(rec *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return m.storeErr
	}
	m.stored = append(m.stored, rec)
	return nil
}

func (m *mockReviewRepo) FindAll() ([]*review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*review.Review, len(m.stored))
	copy(out, m.stored)
	return out, nil
}

func (m *mockReviewRepo) FindByID(id string) (*review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.stored {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (m *mockReviewRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stored)
}

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.DefaultLevel = slog.LevelError + 1 // silence all channels
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

func newTestDialogueService(t *testing.T, repo review.Repository) *DialogueService {
	t.Helper()
	logger := newTestLogger(t)
	store := sessions.NewStore(logger)
	tracker := performance.NewTracker(nil)
	return NewDialogueService(store, repo, nil, logger, tracker)
}

func TestHandleMessageFirstContactPromptsForProduct(t *testing.T) {
	repo := &mockReviewRepo{}
	svc := newTestDialogueService(t, repo)

	for _, first := range []string{"hi", "", "   ", "I want to leave a review"} {
		contactID := "+1555" + first
		reply, err := svc.HandleMessage(contactID, first)
		require.NoError(t, err)
		assert.Equal(t, "Which product is this review for?", reply)
	}
	assert.Zero(t, repo.count())
}

func TestHandleMessageFullCycle(t *testing.T) {
	repo := &mockReviewRepo{}
	svc := newTestDialogueService(t, repo)

	messages := []string{"hi", "Soap", "Alice", "Great product!"}
	wantReplies := []string{
		"Which product is this review for?",
		"What's your name?",
		"Please send your review for Soap.",
		"Thanks Alice — your review for Soap has been recorded.",
	}

	for i, msg := range messages {
		reply, err := svc.HandleMessage("+1555", msg)
		require.NoError(t, err)
		assert.Equal(t, wantReplies[i], reply, "reply %d", i+1)
	}

	require.Equal(t, 1, repo.count())
	rec := repo.stored[0]
	assert.Equal(t, "+1555", rec.ContactNumber)
	assert.Equal(t, "Soap", rec.ProductName)
	assert.Equal(t, "Alice", rec.UserName)
	assert.Equal(t, "Great product!", rec.ProductReview)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestHandleMessageCycleRestartsAfterCompletion(t *testing.T) {
	repo := &mockReviewRepo{}
	svc := newTestDialogueService(t, repo)

	for _, msg := range []string{"hi", "Soap", "Alice", "Great product!"} {
		_, err := svc.HandleMessage("+1555", msg)
		require.NoError(t, err)
	}

	// A fifth message starts a fresh dialogue from the top.
	reply, err := svc.HandleMessage("+1555", "hello again")
	require.NoError(t, err)
	assert.Equal(t, "Which product is this review for?", reply)

	// And the cycle is repeatable indefinitely.
	for _, msg := range []string{"Shampoo", "Bob", "Not bad"} {
		reply, err = svc.HandleMessage("+1555", msg)
		require.NoError(t, err)
	}
	assert.Equal(t, "Thanks Bob — your review for Shampoo has been recorded.", reply)
	assert.Equal(t, 2, repo.count())
}

func TestHandleMessageInterleavedContactsStayIsolated(t *testing.T) {
	repo := &mockReviewRepo{}
	svc := newTestDialogueService(t, repo)

	steps := []struct {
		contact string
		message string
		want    string
	}{
		{"+111", "hey", "Which product is this review for?"},
		{"+222", "hello", "Which product is this review for?"},
		{"+111", "Soap", "What's your name?"},
		{"+222", "Lamp", "What's your name?"},
		{"+222", "Bob", "Please send your review for Lamp."},
		{"+111", "Alice", "Please send your review for Soap."},
		{"+111", "Lovely", "Thanks Alice — your review for Soap has been recorded."},
		{"+222", "Too dim", "Thanks Bob — your review for Lamp has been recorded."},
	}

	for i, step := range steps {
		reply, err := svc.HandleMessage(step.contact, step.message)
		require.NoError(t, err)
		assert.Equal(t, step.want, reply, "step %d", i+1)
	}

	require.Equal(t, 2, repo.count())
	byContact := map[string]*review.Review{}
	for _, rec := range repo.stored {
		byContact[rec.ContactNumber] = rec
	}
	assert.Equal(t, "Soap", byContact["+111"].ProductName)
	assert.Equal(t, "Alice", byContact["+111"].UserName)
	assert.Equal(t, "Lamp", byContact["+222"].ProductName)
	assert.Equal(t, "Bob", byContact["+222"].UserName)
}

func TestHandleMessageEmptyMessagesAcceptedVerbatim(t *testing.T) {
	repo := &mockReviewRepo{}
	svc := newTestDialogueService(t, repo)

	for _, msg := range []string{"", "", "", ""} {
		_, err := svc.HandleMessage("+1555", msg)
		require.NoError(t, err)
	}

	require.Equal(t, 1, repo.count())
	rec := repo.stored[0]
	assert.Empty(t, rec.ProductName)
	assert.Empty(t, rec.UserName)
	assert.Empty(t, rec.ProductReview)
}

func TestHandleMessageTrimsWhitespaceOnly(t *testing.T) {
	repo := &mockReviewRepo{}
	svc := newTestDialogueService(t, repo)

	for _, msg := range []string{"hi", "  Soap  ", "\tAlice\n", "  Great product!  "} {
		_, err := svc.HandleMessage("+1555", msg)
		require.NoError(t, err)
	}

	require.Equal(t, 1, repo.count())
	rec := repo.stored[0]
	assert.Equal(t, "Soap", rec.ProductName)
	assert.Equal(t, "Alice", rec.UserName)
	assert.Equal(t, "Great product!", rec.ProductReview)
}

func TestHandleMessagePersistFailureKeepsSessionRecoverable(t *testing.T) {
	repo := &mockReviewRepo{storeErr: errors.New("database is locked")}
	svc := newTestDialogueService(t, repo)

	for _, msg := range []string{"hi", "Soap", "Alice"} {
		_, err := svc.HandleMessage("+1555", msg)
		require.NoError(t, err)
	}

	// The completing step fails to persist; the error surfaces and nothing
	// is stored.
	_, err := svc.HandleMessage("+1555", "Great product!")
	require.Error(t, err)
	assert.Zero(t, repo.count())

	// The session stayed at the review step, so resending the review text
	// completes the dialogue once the store recovers.
	repo.storeErr = nil
	reply, err := svc.HandleMessage("+1555", "Great product!")
	require.NoError(t, err)
	assert.Equal(t, "Thanks Alice — your review for Soap has been recorded.", reply)
	require.Equal(t, 1, repo.count())
	assert.Equal(t, "Great product!", repo.stored[0].ProductReview)
}

func TestHandleMessageConcurrentContactsDoNotRace(t *testing.T) {
	repo := &mockReviewRepo{}
	svc := newTestDialogueService(t, repo)

	var wg sync.WaitGroup
	contacts := []string{"+100", "+200", "+300", "+400"}
	for _, contact := range contacts {
		wg.Add(1)
		go func(contact string) {
			defer wg.Done()
			for _, msg := range []string{"hi", "Soap " + contact, "User " + contact, "fine"} {
				_, err := svc.HandleMessage(contact, msg)
				assert.NoError(t, err)
			}
		}(contact)
	}
	wg.Wait()

	assert.Equal(t, len(contacts), repo.count())
}
