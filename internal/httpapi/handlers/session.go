package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/interviewninja/backend/internal/common"
	"github.com/interviewninja/backend/internal/interview"
)

type saveSessionReq struct {
	SessionID string `json:"session_id" binding:"required"`
}

// SaveSession snapshots a live session into the archive. Saving twice for the
// same id overwrites the earlier archive.
func (h *Handler) SaveSession(c *gin.Context) {
	var req saveSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	sess, err := h.SessSvc.Get(req.SessionID)
	if err != nil {
		fail(c, http.StatusNotFound, 40401, "session not found")
		return
	}

	rec, err := h.Archive.Save(c.Request.Context(), sess)
	if err != nil {
		fail(c, http.StatusInternalServerError, 50003, "failed to save session")
		return
	}

	ok(c, gin.H{
		"message":    "Session saved successfully",
		"session_id": rec.SessionID,
		"saved_at":   rec.SavedAt,
	})
}

func (h *Handler) ListSessions(c *gin.Context) {
	summaries, err := h.Archive.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, 50003, "failed to list sessions")
		return
	}
	ok(c, gin.H{"sessions": summaries})
}

func (h *Handler) GetSavedSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("session_id"))
	rec, err := h.Archive.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, interview.ErrArchiveNotFound) {
			fail(c, http.StatusNotFound, 40402, "saved session not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50003, "failed to read session")
		return
	}
	ok(c, rec)
}

func (h *Handler) DeleteSavedSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("session_id"))
	if err := h.Archive.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, interview.ErrArchiveNotFound) {
			fail(c, http.StatusNotFound, 40402, "saved session not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50003, "failed to delete session")
		return
	}
	ok(c, gin.H{
		"message":    "Session deleted",
		"session_id": id,
	})
}

type analyzeReq struct {
	SessionID string `json:"session_id" binding:"required"`
}

// transcriptFor resolves a session id to its turns, preferring the live store
// and falling back to the archive.
func (h *Handler) transcriptFor(c *gin.Context, id string) (interview.Category, []interview.Turn, bool) {
	if sess, err := h.SessSvc.Get(id); err == nil {
		return sess.Category, sess.History, true
	}
	if rec, err := h.Archive.Get(c.Request.Context(), id); err == nil {
		return rec.Category, rec.Turns, true
	}
	return "", nil, false
}

func (h *Handler) AnalyzeSession(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	category, turns, found := h.transcriptFor(c, req.SessionID)
	if !found {
		fail(c, http.StatusNotFound, 40401, "session not found")
		return
	}
	if len(turns) == 0 {
		fail(c, http.StatusBadRequest, 10020, "no messages to analyze")
		return
	}

	analysis, err := interview.Analyze(c.Request.Context(), h.Provider, category, interview.Transcript(turns))
	if err != nil {
		if errors.Is(err, interview.ErrGeneration) {
			fail(c, http.StatusBadGateway, 50201, "ai generation error")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "analysis error")
		return
	}
	ok(c, analysis)
}

func (h *Handler) AnalyzeSessionAsync(c *gin.Context) {
	if h.Rabbit == nil {
		fail(c, http.StatusServiceUnavailable, 50302, "async analysis unavailable")
		return
	}

	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	category, turns, found := h.transcriptFor(c, req.SessionID)
	if !found {
		fail(c, http.StatusNotFound, 40401, "session not found")
		return
	}
	if len(turns) == 0 {
		fail(c, http.StatusBadRequest, 10020, "no messages to analyze")
		return
	}

	jobID, err := common.NewULID()
	if err != nil {
		fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	job := &interview.Job{
		ID:         jobID,
		SessionID:  req.SessionID,
		Category:   string(category),
		Transcript: interview.Transcript(turns),
		Status:     interview.JobQueued,
	}
	if err := h.Repo.CreateJob(c.Request.Context(), job); err != nil {
		log.Printf("[analyze] create job session=%s err=%v", req.SessionID, err)
		fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	if err := h.Rabbit.PublishJob(c.Request.Context(), job.ID); err != nil {
		log.Printf("[analyze] publish job=%s err=%v", job.ID, err)
		fail(c, http.StatusInternalServerError, 50004, "enqueue failed")
		return
	}

	ok(c, gin.H{"job_id": job.ID})
}

func (h *Handler) GetAnalysisJob(c *gin.Context) {
	jobID := strings.TrimSpace(c.Param("job_id"))
	if jobID == "" {
		fail(c, http.StatusBadRequest, 10002, "job_id required")
		return
	}

	j, err := h.Repo.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, 40403, "job not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	var result json.RawMessage
	if j.Result != nil {
		result = json.RawMessage(*j.Result)
	}

	ok(c, gin.H{
		"job": gin.H{
			"id":         j.ID,
			"session_id": j.SessionID,
			"status":     j.Status,
			"result":     result,
			"error":      j.Error,
			"created_at": j.CreatedAt,
			"updated_at": j.UpdatedAt,
		},
	})
}
