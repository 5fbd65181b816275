package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type executeCodeReq struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language"`
	Stdin    string `json:"stdin"`
}

// ExecuteCode proxies a snippet to the Piston sandbox.
func (h *Handler) ExecuteCode(c *gin.Context) {
	var req executeCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	result, err := h.Sandbox.Execute(c.Request.Context(), req.Code, req.Language, req.Stdin)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			fail(c, http.StatusRequestTimeout, 40801, "code execution timed out")
			return
		}
		fail(c, http.StatusBadGateway, 50203, "code execution error")
		return
	}

	ok(c, result)
}

func (h *Handler) ListRuntimes(c *gin.Context) {
	runtimes, err := h.Sandbox.Runtimes(c.Request.Context())
	if err != nil {
		fail(c, http.StatusBadGateway, 50203, "failed to fetch runtimes")
		return
	}
	ok(c, gin.H{"runtimes": runtimes})
}
