package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Conversation entry types as stored in the transcript.
const (
	EntryTypeUser = "user"
	EntryTypeBot  = "bot"
)

// ConversationEntry is one transcript line of a counseling session.
// Insertion order is chronological; the transcript is never reordered.
type ConversationEntry struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityRecord is the persisted unit combining a conversation transcript,
// timing metrics, and a drawing reference for one student session. Records
// are written exactly once and never mutated; the only further lifecycle
// event is whole-record deletion by a reviewer.
type ActivityRecord struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	UserID              string         `gorm:"size:128;index;not null" json:"user_id"`
	UserName            string         `gorm:"size:255" json:"user_name"`
	UserEmail           string         `gorm:"size:255" json:"user_email"`
	ChatDuration        int            `gorm:"not null;default:0" json:"chat_duration"`
	DrawingDuration     int            `gorm:"not null;default:0" json:"drawing_duration"`
	ConversationHistory datatypes.JSON `gorm:"type:json" json:"conversation_history"`
	ActivityDate        string         `gorm:"size:10;index" json:"activity_date"`
	ActivityTime        string         `gorm:"size:5" json:"activity_time"`
	ImageURL            string         `gorm:"type:text" json:"image_url"`
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`
}

// Transcript decodes the stored conversation history.
func (r ActivityRecord) Transcript() ([]ConversationEntry, error) {
	if len(r.ConversationHistory) == 0 {
		return nil, nil
	}

	var entries []ConversationEntry
	if err := json.Unmarshal(r.ConversationHistory, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// EncodeTranscript serialises transcript entries for storage.
func EncodeTranscript(entries []ConversationEntry) (datatypes.JSON, error) {
	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}

	return datatypes.JSON(payload), nil
}
