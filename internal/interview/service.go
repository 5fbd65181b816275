package interview

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/interviewninja/backend/internal/ai"
)

// Synthesizer is the speech side channel. It is always best-effort: the
// Service checks credentials first and swallows every synthesis error.
type Synthesizer interface {
	HasCredentials() bool
	VoiceForTone(tone string) string
	SynthesizeBase64(ctx context.Context, text, voiceID string) (string, error)
}

// Service owns all live session state and drives the conversation loop.
type Service struct {
	store    *Store
	provider ai.Provider
	synth    Synthesizer // may be nil; audio then degrades to absent
}

func NewService(store *Store, provider ai.Provider, synth Synthesizer) *Service {
	return &Service{store: store, provider: provider, synth: synth}
}

// Create starts a session: resolves the topic, stores the session with the
// opening turn, and attempts opening audio. Category, tone and verbosity must
// already be validated at the API boundary.
func (s *Service) Create(ctx context.Context, category Category, tone Tone, verbosity Verbosity, source TopicSource, description string) (id, opening, audioURL string, err error) {
	var topic string
	switch source {
	case TopicRandom:
		p := Pick(category)
		topic = p.Name + "\n\n" + p.Content
	case TopicDescription, TopicURL:
		// url topics arrive pre-scraped as a description
		topic = strings.TrimSpace(description)
	}

	opening = Opening(category, tone, topic)
	id = uuid.NewString()

	now := time.Now()
	s.store.Put(&Session{
		ID:        id,
		Category:  category,
		Tone:      tone,
		Verbosity: verbosity,
		Topic:     topic,
		History: []Turn{
			{Speaker: SpeakerInterviewer, Text: opening, Timestamp: now},
		},
		CreatedAt: now,
	})

	audioURL = s.synthesizeBestEffort(ctx, opening, tone)
	return id, opening, audioURL, nil
}

// Respond appends the candidate turn, generates the interviewer reply over the
// full history, appends it, and attempts reply audio.
//
// On generation failure the candidate turn stays appended — history is
// append-only and never truncated. There is no internal replay; a retry is a
// fresh Respond from the caller.
func (s *Service) Respond(ctx context.Context, id, candidateText string) (reply, audioURL string, err error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return "", "", ErrSessionNotFound
	}

	sess.History = append(sess.History, Turn{
		Speaker:   SpeakerCandidate,
		Text:      candidateText,
		Timestamp: time.Now(),
	})

	msgs := make([]ai.Message, 0, len(sess.History)+1)
	msgs = append(msgs, ai.Message{
		Role:    "system",
		Content: Compose(sess.Category, sess.Tone, sess.Verbosity, sess.Topic),
	})
	for _, t := range sess.History {
		role := "user"
		if t.Speaker == SpeakerInterviewer {
			role = "assistant"
		}
		msgs = append(msgs, ai.Message{Role: role, Content: t.Text})
	}

	reply, err = s.provider.Chat(ctx, msgs)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	sess.History = append(sess.History, Turn{
		Speaker:   SpeakerInterviewer,
		Text:      reply,
		Timestamp: time.Now(),
	})

	audioURL = s.synthesizeBestEffort(ctx, reply, sess.Tone)
	return reply, audioURL, nil
}

// End removes the session and returns its total turn count.
func (s *Service) End(id string) (int, error) {
	sess, ok := s.store.Remove(id)
	if !ok {
		return 0, ErrSessionNotFound
	}
	return len(sess.History), nil
}

// Get returns a snapshot of the live session.
func (s *Service) Get(id string) (Session, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess.Snapshot(), nil
}

// synthesizeBestEffort is the single boundary where synthesis failure is
// converted to an absent result. It returns a data:audio/mpeg;base64 URL, or
// "" when no audio could be produced.
func (s *Service) synthesizeBestEffort(ctx context.Context, text string, tone Tone) string {
	if s.synth == nil || !s.synth.HasCredentials() {
		log.Printf("[tts] credentials not set, skipping synthesis - client falls back to browser TTS")
		return ""
	}
	voiceID := s.synth.VoiceForTone(string(tone))
	b64, err := s.synth.SynthesizeBase64(ctx, text, voiceID)
	if err != nil {
		log.Printf("[tts] synthesis failed voice=%s err=%v", voiceID, err)
		return ""
	}
	return "data:audio/mpeg;base64," + b64
}
