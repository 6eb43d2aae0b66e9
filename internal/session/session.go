package session

import (
	"sync"
	"time"

	"github.com/noah-isme/maum-go-api/internal/models"
)

// Phase identifies where a student session is in the workflow.
type Phase string

// Workflow phases. A session moves Idle -> Chatting -> (ReadyToEnd) ->
// Drawing -> Submitting; Drawing is entered either by a confirmed manual end
// or automatically once the turn threshold is reached.
const (
	PhaseIdle       Phase = "idle"
	PhaseChatting   Phase = "chatting"
	PhaseReadyToEnd Phase = "ready_to_end"
	PhaseDrawing    Phase = "drawing"
	PhaseSubmitting Phase = "submitting"
)

// Turn thresholds for the conversation engine.
const (
	// ManualEndTurns is the turn count at which the student may end the
	// conversation themselves.
	ManualEndTurns = 3
	// AutoAdvanceTurns is the turn count at which the session advances to
	// the drawing phase regardless of manual action.
	AutoAdvanceTurns = 7
)

// Session owns the transient workflow state for one student: the running
// transcript, the turn counter, and the phase-boundary timestamps. Nothing
// here is persisted; the activity recorder snapshots it at submission time.
// The store hands the same Session to every request carrying the user's
// token, so all methods are safe for concurrent use.
type Session struct {
	UserID   string
	UserName string

	mu         sync.Mutex
	phase      Phase
	transcript []models.ConversationEntry
	turnCount  int

	chatStartedAt    time.Time
	chatEndedAt      time.Time
	drawingStartedAt time.Time
}

// New creates an idle session for the given user.
func New(userID, userName string) *Session {
	return &Session{
		UserID:   userID,
		UserName: userName,
		phase:    PhaseIdle,
	}
}

// Phase returns the current workflow phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// TurnCount returns the number of completed exchanges (user message + reply).
func (s *Session) TurnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnCount
}

// Transcript returns a copy of the accumulated conversation entries.
func (s *Session) Transcript() []models.ConversationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ConversationEntry(nil), s.transcript...)
}

// CanEnd reports whether the manual end-conversation affordance is available.
func (s *Session) CanEnd() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canEnd()
}

func (s *Session) canEnd() bool {
	return s.turnCount >= ManualEndTurns
}

// ShouldAutoAdvance reports whether the session must advance to drawing.
func (s *Session) ShouldAutoAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turnCount >= AutoAdvanceTurns
}

// BeginTurn marks the start of an outbound exchange. The chat start
// timestamp is recorded on the first message only, never again.
func (s *Session) BeginTurn(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseIdle {
		s.chatStartedAt = now
		s.phase = PhaseChatting
	}
}

// RecordExchange appends a completed (user message, reply) pair to the
// transcript and increments the turn counter exactly once. The pair lands
// adjacently even under concurrent exchanges.
func (s *Session) RecordExchange(userContent, botContent string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript,
		models.ConversationEntry{Type: models.EntryTypeUser, Content: userContent, Timestamp: now},
		models.ConversationEntry{Type: models.EntryTypeBot, Content: botContent, Timestamp: now},
	)
	s.turnCount++

	if s.phase == PhaseChatting && s.canEnd() {
		s.phase = PhaseReadyToEnd
	}
}

// RecordFailure appends the user message and a bot-attributed error entry
// without incrementing the turn counter. The student may retry by sending
// another message.
func (s *Session) RecordFailure(userContent, errorContent string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = append(s.transcript,
		models.ConversationEntry{Type: models.EntryTypeUser, Content: userContent, Timestamp: now},
		models.ConversationEntry{Type: models.EntryTypeBot, Content: errorContent, Timestamp: now},
	)
}

// EndChat stamps the conversation end and drawing start timestamps and moves
// the session into the drawing phase. Calling it again is a no-op so the
// timestamps are stamped once.
func (s *Session) EndChat(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseDrawing || s.phase == PhaseSubmitting {
		return
	}

	s.chatEndedAt = now
	s.drawingStartedAt = now
	s.phase = PhaseDrawing
}

// BeginSubmission moves the session into the submitting phase.
func (s *Session) BeginSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseSubmitting
}

// AbortSubmission rolls the session back to the drawing phase after a failed
// submission so the student can retry.
func (s *Session) AbortSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseSubmitting {
		s.phase = PhaseDrawing
	}
}

// ChatDuration returns the chat phase length in whole seconds, zero when no
// conversation occurred.
func (s *Session) ChatDuration() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chatStartedAt.IsZero() || s.chatEndedAt.IsZero() {
		return 0
	}

	seconds := int(s.chatEndedAt.Sub(s.chatStartedAt) / time.Second)
	if seconds < 0 {
		return 0
	}

	return seconds
}

// DrawingDuration returns the elapsed drawing time in whole seconds at now.
func (s *Session) DrawingDuration(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drawingStartedAt.IsZero() {
		return 0
	}

	seconds := int(now.Sub(s.drawingStartedAt) / time.Second)
	if seconds < 0 {
		return 0
	}

	return seconds
}
