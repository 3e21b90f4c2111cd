package entity

import (
	"time"
)

// ConversationSummary is the structured digest of a completed call
type ConversationSummary struct {
	MainTopic    string   `json:"main_topic" bson:"mainTopic"`
	KeyPoints    []string `json:"key_points" bson:"keyPoints"`
	ActionsTaken string   `json:"actions_taken" bson:"actionsTaken"`
	NextSteps    string   `json:"next_steps" bson:"nextSteps"`
}

// CallSummary bundles everything produced at call end: the formatted
// summary, the booking (if any) and the transcript it was mined from
type CallSummary struct {
	ID         string              `json:"-" bson:"_id,omitempty"`
	CallID     string              `json:"call_id" bson:"callId"`
	Summary    string              `json:"summary" bson:"summary"`
	Structured ConversationSummary `json:"structured" bson:"structured"`
	Booking    *BookingRecord      `json:"booking_details,omitempty" bson:"booking,omitempty"`
	Transcript []Utterance         `json:"transcript" bson:"transcript"`
	UserName   string              `json:"user_name" bson:"userName"`
	Timestamp  string              `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
	CreatedAt  time.Time           `json:"-" bson:"createdAt"`
}
