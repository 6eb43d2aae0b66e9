package dto

import "time"

// ChatMessageRequest is one outbound student message.
type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// TranscriptEntry mirrors a stored conversation entry for API responses.
type TranscriptEntry struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessageResponse carries the counselor reply plus the session state the
// client needs to drive the workflow.
type ChatMessageResponse struct {
	Reply       string `json:"reply"`
	TurnCount   int    `json:"turn_count"`
	Phase       string `json:"phase"`
	CanEnd      bool   `json:"can_end"`
	AutoAdvance bool   `json:"auto_advance"`
}

// ChatSessionResponse describes the current conversation session.
type ChatSessionResponse struct {
	Phase      string            `json:"phase"`
	TurnCount  int               `json:"turn_count"`
	CanEnd     bool              `json:"can_end"`
	Transcript []TranscriptEntry `json:"transcript"`
}
