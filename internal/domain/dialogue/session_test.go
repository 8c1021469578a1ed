package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsAtInit(t *testing.T) {
	session := NewSession("+1555")

	assert.Equal(t, "+1555", session.ContactID)
	assert.Equal(t, StepInit, session.Step)
	assert.Empty(t, session.ProductName)
	assert.Empty(t, session.UserName)
	assert.Empty(t, session.ProductReview)
	assert.False(t, session.CreatedAt.IsZero())
	assert.Equal(t, session.CreatedAt, session.LastActivity)
}

func TestResetInPlaceClearsCollectedFields(t *testing.T) {
	session := NewSession("+1555")
	session.Step = StepAwaitingReview
	session.ProductName = "Soap"
	session.UserName = "Alice"
	session.ProductReview = "Great product!"

	session.ResetInPlace()

	assert.Equal(t, StepInit, session.Step)
	assert.Empty(t, session.ProductName)
	assert.Empty(t, session.UserName)
	assert.Empty(t, session.ProductReview)
	assert.Equal(t, "+1555", session.ContactID)
}

func TestTouchAdvancesLastActivity(t *testing.T) {
	session := NewSession("+1555")
	stale := time.Now().UTC().Add(-time.Hour)
	session.LastActivity = stale

	session.Touch()
	require.True(t, session.LastActivity.After(stale))
}
