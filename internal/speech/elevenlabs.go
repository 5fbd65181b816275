package speech

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrNoCredentials means the API key is not configured. Callers must check
// HasCredentials before synthesizing; this is a precondition, not a service
// failure.
var ErrNoCredentials = errors.New("elevenlabs: api key not configured")

const audioCacheTTL = 24 * time.Hour

// ByteCache is the audio cache contract, satisfied by redisstore.Store.
type ByteCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Client synthesizes speech via the ElevenLabs API, with an optional
// best-effort redis cache for repeated phrases.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Cache   ByteCache // may be nil
}

func NewClient(baseURL, apiKey string, cache ByteCache) *Client {
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io/v1"
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Cache:   cache,
	}
}

func (c *Client) HasCredentials() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// VoiceForTone satisfies the orchestrator's Synthesizer interface.
func (c *Client) VoiceForTone(tone string) string {
	return VoiceForTone(tone)
}

type ttsReq struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Synthesize converts text to MP3 bytes.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if !c.HasCredentials() {
		return nil, ErrNoCredentials
	}
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	key := cacheKey(voiceID, text)
	if c.Cache != nil {
		if b, err := c.Cache.GetBytes(ctx, key); err != nil {
			log.Printf("[tts] cache read err=%v", err)
		} else if b != nil {
			return b, nil
		}
	}

	body, err := json.Marshal(ttsReq{
		Text:    text,
		ModelID: "eleven_monolingual_v1",
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0.5,
			UseSpeakerBoost: true,
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", strings.TrimRight(c.BaseURL, "/"), voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return nil, fmt.Errorf("elevenlabs: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if c.Cache != nil {
		if err := c.Cache.SetBytes(ctx, key, audio, audioCacheTTL); err != nil {
			log.Printf("[tts] cache write err=%v", err)
		}
	}
	return audio, nil
}

// SynthesizeBase64 returns the audio base64-encoded for embedding in JSON.
func (c *Client) SynthesizeBase64(ctx context.Context, text, voiceID string) (string, error) {
	audio, err := c.Synthesize(ctx, text, voiceID)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(audio), nil
}

// Voice is one entry from the ElevenLabs voice library.
type Voice struct {
	VoiceID    string            `json:"voice_id"`
	Name       string            `json:"name"`
	Labels     map[string]string `json:"labels"`
	PreviewURL string            `json:"preview_url"`
}

// Voices lists the voices available to the configured account.
func (c *Client) Voices(ctx context.Context) ([]Voice, error) {
	if !c.HasCredentials() {
		return nil, ErrNoCredentials
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/voices"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("elevenlabs: status %d", resp.StatusCode)
	}

	var decoded struct {
		Voices []Voice `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded.Voices, nil
}

func cacheKey(voiceID, text string) string {
	sum := sha256.Sum256([]byte(voiceID + "|" + text))
	return "tts:" + hex.EncodeToString(sum[:])
}
