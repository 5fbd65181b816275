package interview

import "time"

// Category is the interview type.
type Category string

const (
	SystemDesign Category = "system_design"
	LiveCoding   Category = "live_coding"
	MLTheory     Category = "ml_theory"
	Coaching     Category = "coaching"
)

func (c Category) Valid() bool {
	switch c {
	case SystemDesign, LiveCoding, MLTheory, Coaching:
		return true
	}
	return false
}

// Tone controls how the interviewer speaks.
type Tone string

const (
	Friendly    Tone = "friendly"
	Neutral     Tone = "neutral"
	Adversarial Tone = "adversarial"
)

func (t Tone) Valid() bool {
	switch t {
	case Friendly, Neutral, Adversarial:
		return true
	}
	return false
}

// Verbosity controls how much the interviewer says per turn.
type Verbosity string

const (
	VerbosityLow    Verbosity = "low"
	VerbosityMedium Verbosity = "medium"
	VerbosityHigh   Verbosity = "high"
)

func (v Verbosity) Valid() bool {
	switch v {
	case VerbosityLow, VerbosityMedium, VerbosityHigh:
		return true
	}
	return false
}

// TopicSource says where a session's topic comes from at creation.
type TopicSource string

const (
	TopicRandom      TopicSource = "random"
	TopicDescription TopicSource = "description"
	TopicURL         TopicSource = "url"
)

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerCandidate   Speaker = "candidate"
)

// Turn is one utterance in a session.
type Turn struct {
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one live interview conversation. Category, Tone, Verbosity and
// Topic are fixed at creation; only History grows, append-only.
type Session struct {
	ID        string    `json:"session_id"`
	Category  Category  `json:"category"`
	Tone      Tone      `json:"tone"`
	Verbosity Verbosity `json:"verbosity"`
	Topic     string    `json:"topic,omitempty"`
	History   []Turn    `json:"history"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot returns a copy whose History slice is independent of the live one.
func (s *Session) Snapshot() Session {
	out := *s
	out.History = append([]Turn(nil), s.History...)
	return out
}
