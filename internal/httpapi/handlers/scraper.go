package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewninja/backend/internal/scrape"
)

type scrapeReq struct {
	URL string `json:"url" binding:"required"`
}

// ExtractProblems scrapes a page and extracts interview problems with AI.
func (h *Handler) ExtractProblems(c *gin.Context) {
	var req scrapeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	html, err := h.Scraper.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		fail(c, http.StatusBadGateway, 50202, "failed to fetch url")
		return
	}

	text, err := scrape.ExtractText(html)
	if err != nil || text == "" {
		fail(c, http.StatusBadRequest, 10030, "no readable content found on the page")
		return
	}

	problems, err := h.Scraper.ExtractProblems(c.Request.Context(), text, req.URL)
	if err != nil {
		fail(c, http.StatusBadGateway, 50201, "ai extraction error")
		return
	}
	if len(problems) == 0 {
		content := text
		if len(content) > 3000 {
			content = content[:3000]
		}
		problems = []scrape.Problem{{Name: "Page Content", Content: content}}
	}

	ok(c, gin.H{
		"problems":   problems,
		"source_url": req.URL,
	})
}

// PreviewURL returns the extracted page text without AI processing.
func (h *Handler) PreviewURL(c *gin.Context) {
	var req scrapeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	html, err := h.Scraper.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		fail(c, http.StatusBadGateway, 50202, "failed to fetch url")
		return
	}

	text, err := scrape.ExtractText(html)
	if err != nil {
		fail(c, http.StatusInternalServerError, 50005, "failed to parse page")
		return
	}

	preview := text
	if len(preview) > 1000 {
		preview = preview[:1000]
	}
	ok(c, gin.H{
		"url":         req.URL,
		"text_length": len(text),
		"preview":     preview,
		"full_text":   text,
	})
}
