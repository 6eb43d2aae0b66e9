package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/maum-go-api/internal/dto"
	"github.com/noah-isme/maum-go-api/internal/session"
	"github.com/noah-isme/maum-go-api/pkg/ai"
)

var (
	// ErrCannotEndYet is returned when a manual end is requested before the
	// minimum turn count is reached.
	ErrCannotEndYet = fmt.Errorf("conversation cannot be ended yet")
	// ErrConversationFinished is returned when a message arrives after the
	// session has moved past the chat phase.
	ErrConversationFinished = fmt.Errorf("conversation already finished")
)

// ChatService drives the turn-bounded counseling conversation.
type ChatService interface {
	Session(userID, userName string) dto.ChatSessionResponse
	SendMessage(ctx context.Context, userID, userName, message string) (dto.ChatMessageResponse, error)
	EndConversation(userID, userName string) (dto.ChatSessionResponse, error)
}

type chatService struct {
	sessions  *session.Store
	counselor ai.Counselor
	logger    zerolog.Logger
	now       func() time.Time
}

// NewChatService constructs the chat service.
func NewChatService(sessions *session.Store, counselor ai.Counselor, logger zerolog.Logger) ChatService {
	return &chatService{
		sessions:  sessions,
		counselor: counselor,
		logger:    logger.With().Str("component", "chat_service").Logger(),
		now:       time.Now,
	}
}

func (s *chatService) Session(userID, userName string) dto.ChatSessionResponse {
	sess := s.sessions.Get(userID, userName)
	return sessionResponse(sess)
}

// SendMessage appends the user message, asks the counselor for a reply with
// the full accumulated history as context, and advances the turn counter on
// success. A failed remote call is surfaced inline in the transcript as a
// bot-attributed entry and leaves the counter unchanged; the student retries
// by sending another message. Messages arriving after the drawing handoff
// are rejected.
func (s *chatService) SendMessage(ctx context.Context, userID, userName, message string) (dto.ChatMessageResponse, error) {
	sess := s.sessions.Get(userID, userName)
	if phase := sess.Phase(); phase == session.PhaseDrawing || phase == session.PhaseSubmitting {
		return dto.ChatMessageResponse{}, ErrConversationFinished
	}

	now := s.now()
	sess.BeginTurn(now)

	reply, err := s.counselor.Reply(ctx, sess.Transcript(), message)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("counselor call failed")
		errorEntry := fmt.Sprintf("죄송합니다. 오류가 발생했습니다: %v", err)
		sess.RecordFailure(message, errorEntry, now)

		return dto.ChatMessageResponse{
			Reply:     errorEntry,
			TurnCount: sess.TurnCount(),
			Phase:     string(sess.Phase()),
			CanEnd:    sess.CanEnd(),
		}, nil
	}

	sess.RecordExchange(message, reply, now)

	autoAdvance := sess.ShouldAutoAdvance()
	if autoAdvance {
		// Threshold reached: the session hands off to the drawing phase
		// regardless of manual action. The client renders the short delay.
		sess.EndChat(s.now())
	}

	return dto.ChatMessageResponse{
		Reply:       reply,
		TurnCount:   sess.TurnCount(),
		Phase:       string(sess.Phase()),
		CanEnd:      sess.CanEnd(),
		AutoAdvance: autoAdvance,
	}, nil
}

// EndConversation performs the student-confirmed manual end, stamping the
// chat end and drawing start timestamps.
func (s *chatService) EndConversation(userID, userName string) (dto.ChatSessionResponse, error) {
	sess := s.sessions.Get(userID, userName)
	if !sess.CanEnd() {
		return dto.ChatSessionResponse{}, ErrCannotEndYet
	}

	sess.EndChat(s.now())

	return sessionResponse(sess), nil
}

func sessionResponse(sess *session.Session) dto.ChatSessionResponse {
	transcript := sess.Transcript()
	entries := make([]dto.TranscriptEntry, 0, len(transcript))
	for _, entry := range transcript {
		entries = append(entries, dto.TranscriptEntry{
			Type:      entry.Type,
			Content:   entry.Content,
			Timestamp: entry.Timestamp,
		})
	}

	return dto.ChatSessionResponse{
		Phase:      string(sess.Phase()),
		TurnCount:  sess.TurnCount(),
		CanEnd:     sess.CanEnd(),
		Transcript: entries,
	}
}
