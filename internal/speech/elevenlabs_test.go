package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestVoiceForTone(t *testing.T) {
	if got := VoiceForTone("friendly"); got != voiceElli {
		t.Fatalf("friendly voice = %s", got)
	}
	if got := VoiceForTone("adversarial"); got != voiceBella {
		t.Fatalf("adversarial voice = %s", got)
	}
	if got := VoiceForTone("neutral"); got != voiceRachel {
		t.Fatalf("neutral voice = %s", got)
	}
	if got := VoiceForTone("anything-else"); got != voiceRachel {
		t.Fatalf("default voice = %s", got)
	}
}

func TestSynthesize_NoCredentials(t *testing.T) {
	c := NewClient("", "", nil)
	if c.HasCredentials() {
		t.Fatalf("expected no credentials")
	}
	if _, err := c.Synthesize(context.Background(), "hi", ""); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
	if _, err := c.Voices(context.Background()); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("voices: expected ErrNoCredentials, got %v", err)
	}
}

func TestSynthesize_SendsRequestAndReturnsAudio(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("MP3DATA"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", nil)
	audio, err := c.Synthesize(context.Background(), "Hello candidate", voiceBella)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if string(audio) != "MP3DATA" {
		t.Fatalf("audio = %q", audio)
	}
	if gotPath != "/text-to-speech/"+voiceBella {
		t.Fatalf("path = %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header = %q", gotKey)
	}
}

func TestSynthesize_DefaultsVoice(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", nil)
	if _, err := c.Synthesize(context.Background(), "hi", ""); err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if !strings.HasSuffix(gotPath, DefaultVoiceID) {
		t.Fatalf("default voice not used: %s", gotPath)
	}
}

func TestSynthesize_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", nil)
	_, err := c.Synthesize(context.Background(), "hi", voiceRachel)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error missing status: %v", err)
	}
}

type fakeCache struct {
	data map[string][]byte
	sets int
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (f *fakeCache) GetBytes(ctx context.Context, key string) ([]byte, error) {
	return f.data[key], nil
}

func (f *fakeCache) SetBytes(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	f.data[key] = val
	f.sets++
	return nil
}

func TestSynthesize_CacheHitSkipsRequest(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte("FRESH"))
	}))
	defer srv.Close()

	cache := newFakeCache()
	c := NewClient(srv.URL, "k", cache)

	first, err := c.Synthesize(context.Background(), "same phrase", voiceRachel)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	second, err := c.Synthesize(context.Background(), "same phrase", voiceRachel)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}

	if calls != 1 {
		t.Fatalf("upstream called %d times, want 1", calls)
	}
	if string(first) != "FRESH" || string(second) != "FRESH" {
		t.Fatalf("audio mismatch: %q %q", first, second)
	}
	if cache.sets != 1 {
		t.Fatalf("cache writes = %d, want 1", cache.sets)
	}

	// a different voice misses the cache
	if _, err := c.Synthesize(context.Background(), "same phrase", voiceBella); err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if calls != 2 {
		t.Fatalf("upstream called %d times, want 2", calls)
	}
}

func TestSynthesizeBase64(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("AUDIO"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", nil)
	got, err := c.SynthesizeBase64(context.Background(), "hi", voiceRachel)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if want := base64.StdEncoding.EncodeToString([]byte("AUDIO")); got != want {
		t.Fatalf("b64 = %q, want %q", got, want)
	}
}

func TestVoices_ParsesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/voices" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"voices":[{"voice_id":"v1","name":"Rachel","labels":{"gender":"female"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", nil)
	voices, err := c.Voices(context.Background())
	if err != nil {
		t.Fatalf("voices: %v", err)
	}
	if len(voices) != 1 || voices[0].VoiceID != "v1" || voices[0].Labels["gender"] != "female" {
		t.Fatalf("unexpected voices: %+v", voices)
	}
}
