// Package dialogue defines the review-intake conversation state machine types.
package dialogue

import (
	"sync"
	"time"
)

// Step identifies the field the intake conversation is waiting on. The flow
// captures exactly one field per inbound message, so the step alone determines
// how the next message is interpreted.
type Step string

const (
	StepInit            Step = "init"
	StepAwaitingProduct Step = "awaiting_product"
	StepAwaitingName    Step = "awaiting_name"
	StepAwaitingReview  Step = "awaiting_review"
)

// Session holds one contact's in-progress intake conversation. Fields fill in
// strict order (product, name, review) and are never overwritten within a
// single dialogue run. Mu serializes the read-modify-write of a single turn;
// concurrent messages from the same contact are processed one at a time.
type Session struct {
	ContactID     string    `json:"contactId"`
	Step          Step      `json:"step"`
	ProductName   string    `json:"productName"`
	UserName      string    `json:"userName"`
	ProductReview string    `json:"productReview"`
	CreatedAt     time.Time `json:"createdAt"`
	LastActivity  time.Time `json:"lastActivity"`
	Mu            sync.Mutex
}

// NewSession creates a fresh session at the initial step.
func NewSession(contactID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ContactID:    contactID,
		Step:         StepInit,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// ResetInPlace returns the session to its initial empty state while keeping
// the same entry (and lock) registered in the store.
func (s *Session) ResetInPlace() {
	s.Step = StepInit
	s.ProductName = ""
	s.UserName = ""
	s.ProductReview = ""
	s.LastActivity = time.Now().UTC()
}

// Touch updates the activity timestamp used for TTL eviction.
func (s *Session) Touch() {
	s.LastActivity = time.Now().UTC()
}
