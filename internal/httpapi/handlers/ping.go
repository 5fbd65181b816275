package handlers

import "github.com/gin-gonic/gin"

func (h *Handler) Ping(c *gin.Context) {
	ok(c, gin.H{"status": "healthy"})
}
