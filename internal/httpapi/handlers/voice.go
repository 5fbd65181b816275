package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/interviewninja/backend/internal/interview"
	"github.com/interviewninja/backend/internal/speech"
)

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "ok",
		"data":    data,
	})
}

func fail(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}

type startSessionReq struct {
	InterviewType      string `json:"interview_type" binding:"required"`
	Tone               string `json:"tone"`
	Verbosity          string `json:"verbosity"`
	ProblemSource      string `json:"problem_source"`
	ProblemDescription string `json:"problem_description"`
}

func (h *Handler) StartSession(c *gin.Context) {
	var req startSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	category := interview.Category(req.InterviewType)
	if !category.Valid() {
		fail(c, http.StatusBadRequest, 10010, "unknown interview_type")
		return
	}
	tone := interview.Tone(req.Tone)
	if req.Tone == "" {
		tone = interview.Neutral
	}
	if !tone.Valid() {
		fail(c, http.StatusBadRequest, 10011, "unknown tone")
		return
	}
	verbosity := interview.Verbosity(req.Verbosity)
	if req.Verbosity == "" {
		verbosity = interview.VerbosityMedium
	}
	if !verbosity.Valid() {
		fail(c, http.StatusBadRequest, 10012, "unknown verbosity")
		return
	}
	source := interview.TopicSource(req.ProblemSource)
	if req.ProblemSource == "" {
		source = interview.TopicRandom
	}
	switch source {
	case interview.TopicRandom, interview.TopicDescription, interview.TopicURL:
	default:
		fail(c, http.StatusBadRequest, 10013, "unknown problem_source")
		return
	}

	id, opening, audioURL, err := h.SessSvc.Create(c.Request.Context(), category, tone, verbosity, source, req.ProblemDescription)
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "failed to start session")
		return
	}

	ok(c, gin.H{
		"session_id":   id,
		"opening_text": opening,
		"audio_url":    audioURL,
	})
}

type respondReq struct {
	SessionID   string `json:"session_id" binding:"required"`
	UserMessage string `json:"user_message" binding:"required"`
}

func (h *Handler) Respond(c *gin.Context) {
	var req respondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	reply, audioURL, err := h.SessSvc.Respond(c.Request.Context(), req.SessionID, req.UserMessage)
	if err != nil {
		if errors.Is(err, interview.ErrSessionNotFound) {
			fail(c, http.StatusNotFound, 40401, "session not found")
			return
		}
		if errors.Is(err, interview.ErrGeneration) {
			fail(c, http.StatusBadGateway, 50201, "ai generation error")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	ok(c, gin.H{
		"response_text": reply,
		"audio_url":     audioURL,
		"is_complete":   false,
	})
}

type ttsReq struct {
	Text    string `json:"text" binding:"required"`
	VoiceID string `json:"voice_id"`
}

// TTS is the standalone synthesis endpoint; it returns raw MP3 bytes rather
// than the JSON envelope.
func (h *Handler) TTS(c *gin.Context) {
	var req ttsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	audio, err := h.Speech.Synthesize(c.Request.Context(), req.Text, req.VoiceID)
	if err != nil {
		if errors.Is(err, speech.ErrNoCredentials) {
			fail(c, http.StatusServiceUnavailable, 50301, "tts not configured")
			return
		}
		fail(c, http.StatusInternalServerError, 50002, "tts error")
		return
	}

	c.Header("Content-Disposition", `attachment; filename=speech.mp3`)
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

func (h *Handler) GetSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("session_id"))
	sess, err := h.SessSvc.Get(id)
	if err != nil {
		fail(c, http.StatusNotFound, 40401, "session not found")
		return
	}
	ok(c, sess)
}

func (h *Handler) EndSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("session_id"))
	total, err := h.SessSvc.End(id)
	if err != nil {
		fail(c, http.StatusNotFound, 40401, "session not found")
		return
	}
	ok(c, gin.H{
		"message":     "Session ended",
		"total_turns": total,
	})
}
