package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearsaylabs/revuloop-go/internal/application/services"
	"github.com/hearsaylabs/revuloop-go/internal/domain/review"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/caching/sessions"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/performance"
)

type mockReviewRepo struct {
	mu       sync.Mutex
	stored   []*review.Review
	storeErr error
	findErr  error
}

func (m *mockReviewRepo) Store(rec *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return m.storeErr
	}
	rec.ID = "01TESTULID"
	m.stored = append(m.stored, rec)
	return nil
}

func (m *mockReviewRepo) FindAll() ([]*review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
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

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.DefaultLevel = slog.LevelError + 1 // silence all channels
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

func newWebhookTestRouter(t *testing.T, repo review.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := newTestLogger(t)
	tracker := performance.NewTracker(nil)
	store := sessions.NewStore(logger)
	dialogueService := services.NewDialogueService(store, repo, nil, logger, tracker)
	h := NewWebhookHandlers(dialogueService, logger, tracker)

	r := gin.New()
	r.POST("/webhook/whatsapp", h.PostWhatsApp)
	return r
}

func postWhatsApp(t *testing.T, r *gin.Engine, from, body string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	if from != "" {
		form.Set("From", from)
	}
	form.Set("Body", body)

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPostWhatsAppFirstMessageReturnsProductPrompt(t *testing.T) {
	r := newWebhookTestRouter(t, &mockReviewRepo{})

	w := postWhatsApp(t, r, "whatsapp:+1555", "hi")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, w.Body.String(), `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, w.Body.String(), "<Response><Message>Which product is this review for?</Message></Response>")
}

func TestPostWhatsAppFullCycleEmitsTwiMLReplies(t *testing.T) {
	repo := &mockReviewRepo{}
	r := newWebhookTestRouter(t, repo)

	steps := []struct {
		body string
		want string
	}{
		{"hi", "Which product is this review for?"},
		{"Soap", "What&#39;s your name?"},
		{"Alice", "Please send your review for Soap."},
		{"Great product!", "Thanks Alice — your review for Soap has been recorded."},
	}

	for i, step := range steps {
		w := postWhatsApp(t, r, "whatsapp:+1555", step.body)
		require.Equal(t, http.StatusOK, w.Code, "step %d", i+1)
		assert.Contains(t, w.Body.String(), step.want, "step %d", i+1)
	}

	require.Len(t, repo.stored, 1)
	assert.Equal(t, "whatsapp:+1555", repo.stored[0].ContactNumber)
}

func TestPostWhatsAppEscapesUserContentInTwiML(t *testing.T) {
	r := newWebhookTestRouter(t, &mockReviewRepo{})

	postWhatsApp(t, r, "whatsapp:+1555", "hi")
	w := postWhatsApp(t, r, "whatsapp:+1555", "Soap & <Co>")
	require.Equal(t, http.StatusOK, w.Code)

	w = postWhatsApp(t, r, "whatsapp:+1555", "Alice")
	assert.Contains(t, w.Body.String(), "Please send your review for Soap &amp; &lt;Co&gt;.")
	assert.NotContains(t, w.Body.String(), "<Co>")
}

func TestPostWhatsAppMissingFromRejected(t *testing.T) {
	r := newWebhookTestRouter(t, &mockReviewRepo{})

	w := postWhatsApp(t, r, "", "hi")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostWhatsAppPersistFailureReturnsApology(t *testing.T) {
	repo := &mockReviewRepo{storeErr: errors.New("database is locked")}
	r := newWebhookTestRouter(t, repo)

	for _, body := range []string{"hi", "Soap", "Alice"} {
		w := postWhatsApp(t, r, "whatsapp:+1555", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := postWhatsApp(t, r, "whatsapp:+1555", "Great product!")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sorry, we couldn&#39;t record your review just now.")
	assert.Empty(t, repo.stored)

	// The session survived the failure: resending completes the dialogue.
	repo.storeErr = nil
	w = postWhatsApp(t, r, "whatsapp:+1555", "Great product!")
	assert.Contains(t, w.Body.String(), "Thanks Alice — your review for Soap has been recorded.")
	require.Len(t, repo.stored, 1)
}
