package services

import (
	"sync"

	"github.com/progprogect/NutritionBot/models"
)

// SessionKind names what the next free-text message from a user means.
type SessionKind string

const (
	SessionGramEdit  SessionKind = "gram_edit"
	SessionGoalValue SessionKind = "goal_value"
	SessionCoach     SessionKind = "coach"
)

// CoachDraft accumulates questionnaire answers across messages.
type CoachDraft struct {
	Goal        string
	Constraints string
	Stats       string
	Contact     string
}

// Session is a pending multi-step interaction for one user. At most one
// session exists per user; starting a new one overwrites the old.
type Session struct {
	Kind SessionKind

	// SessionGramEdit
	ItemID uint

	// SessionGoalValue
	Nutrient models.Nutrient

	// SessionCoach: step counts answered questions, 0..3
	Step  int
	Draft CoachDraft
}

// SessionStore keeps pending sessions in process memory. Sessions are
// short-lived prompts, losing them on restart just re-asks the question.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// StartGramEdit arms the next message as a gram value for the item.
func (s *SessionStore) StartGramEdit(tgID string, itemID uint) {
	s.put(tgID, &Session{Kind: SessionGramEdit, ItemID: itemID})
}

// StartGoalValue arms the next message as a target for the nutrient.
func (s *SessionStore) StartGoalValue(tgID string, nutrient models.Nutrient) {
	s.put(tgID, &Session{Kind: SessionGoalValue, Nutrient: nutrient})
}

// StartCoach opens the four-question coach intake.
func (s *SessionStore) StartCoach(tgID string) {
	s.put(tgID, &Session{Kind: SessionCoach})
}

func (s *SessionStore) put(tgID string, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tgID] = sess
}

// Peek returns the pending session without consuming it.
func (s *SessionStore) Peek(tgID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tgID]
	if !ok {
		return nil, false
	}
	copied := *sess
	return &copied, true
}

// Clear drops any pending session for the user.
func (s *SessionStore) Clear(tgID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tgID)
}

// Take consumes and returns the pending session, if any.
func (s *SessionStore) Take(tgID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tgID]
	if !ok {
		return nil, false
	}
	delete(s.sessions, tgID)
	return sess, true
}

// AdvanceCoach records one answer and reports whether the intake is
// complete. The filled draft is returned on the final answer; until then
// the session stays armed for the next question.
func (s *SessionStore) AdvanceCoach(tgID, answer string) (draft CoachDraft, done bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, found := s.sessions[tgID]
	if !found || sess.Kind != SessionCoach {
		return CoachDraft{}, false, false
	}

	switch sess.Step {
	case 0:
		sess.Draft.Goal = answer
	case 1:
		sess.Draft.Constraints = answer
	case 2:
		sess.Draft.Stats = answer
	case 3:
		sess.Draft.Contact = answer
	}
	sess.Step++

	if sess.Step >= 4 {
		delete(s.sessions, tgID)
		return sess.Draft, true, true
	}
	return sess.Draft, false, true
}
