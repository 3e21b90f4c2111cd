package entity

import (
	"time"
)

// Speaker roles as reported by the voice agent
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Utterance is a single turn in a voice conversation. The timestamp is
// optional; not every transcript source reports per-turn times.
type Utterance struct {
	Role      string `json:"role" bson:"role"`
	Message   string `json:"message" bson:"message"`
	Timestamp string `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}

// Text returns the spoken content of the utterance
func (u Utterance) Text() string {
	return u.Message
}

// Transcript holds the accumulated utterances of a call
type Transcript struct {
	ID         string      `bson:"_id,omitempty"`
	CallID     string      `bson:"callId"`
	RoomName   string      `bson:"roomName,omitempty"`
	Utterances []Utterance `bson:"utterances"`
	CreatedAt  time.Time   `bson:"createdAt"`
	UpdatedAt  time.Time   `bson:"updatedAt"`
}
