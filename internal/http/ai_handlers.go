package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retrodesk/reanimated/internal/ai"
	"github.com/retrodesk/reanimated/internal/vfs"
)

// statusClientCancelled mirrors nginx's non-standard 499 for requests the
// client abandoned; cancellation is the only error AI operations surface.
const statusClientCancelled = 499

// Summarize condenses a document.
func (h *Handlers) Summarize(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.aiClient.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Rewrite restyles a document.
func (h *Handlers) Rewrite(c *gin.Context) {
	var req struct {
		Text  string `json:"text" binding:"required"`
		Style string `json:"style" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rewritten, err := h.aiClient.Rewrite(c.Request.Context(), req.Text, req.Style)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": rewritten, "style": req.Style})
}

// Interpret maps a natural-language query to a desktop intent.
func (h *Handlers) Interpret(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := h.aiClient.Interpret(c.Request.Context(), req.Query)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}

// ExplainFolder describes a folder's contents. The folder listing comes from
// the filesystem, so a missing path fails before any provider call.
func (h *Handlers) ExplainFolder(c *gin.Context) {
	var req struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.fs.ReadFolder(req.Path)
	if err != nil {
		respondFSError(c, err)
		return
	}

	data := ai.FolderData{Path: req.Path}
	for _, item := range items {
		if item.Kind == vfs.KindFolder {
			data.Folders = append(data.Folders, item.Name)
		} else {
			data.Files = append(data.Files, item.Name)
		}
	}

	explanation, err := h.aiClient.ExplainFolder(c.Request.Context(), data)
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, explanation)
}

// AIUsage returns cumulative usage statistics.
func (h *Handlers) AIUsage(c *gin.Context) {
	hits, misses, size := h.aiClient.CacheStats()
	c.JSON(http.StatusOK, gin.H{
		"usage":    h.aiClient.Usage(),
		"provider": h.aiClient.ProviderName(),
		"cache": gin.H{
			"hits":   hits,
			"misses": misses,
			"size":   size,
		},
	})
}

// ClearAICache drops every cached response.
func (h *Handlers) ClearAICache(c *gin.Context) {
	h.aiClient.ClearCache()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondAIError(c *gin.Context, err error) {
	if errors.Is(err, ai.ErrCancelled) {
		c.JSON(statusClientCancelled, gin.H{"error": "request cancelled"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
