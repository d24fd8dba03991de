package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retrodesk/reanimated/internal/desktop"
)

// ListWindows returns all windows in stacking order.
func (h *Handlers) ListWindows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"windows": h.desktop.List(),
		"stats":   h.desktop.Stats(),
	})
}

// OpenWindow opens a window for an application.
func (h *Handlers) OpenWindow(c *gin.Context) {
	var req struct {
		App    string         `json:"app" binding:"required"`
		Title  string         `json:"title"`
		Path   string         `json:"path"`
		Bounds desktop.Bounds `json:"bounds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w := h.desktop.Open(req.App, req.Title, req.Path, req.Bounds)
	h.metrics.IncWindowsTotal()
	h.metrics.SetWindowsOpen(h.desktop.Stats().TotalWindows)

	c.JSON(http.StatusCreated, w)
}

// GetWindow returns a single window.
func (h *Handlers) GetWindow(c *gin.Context) {
	w, ok := h.desktop.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}
	c.JSON(http.StatusOK, w)
}

// FocusWindow raises a window to the top of the stack.
func (h *Handlers) FocusWindow(c *gin.Context) {
	id := c.Param("id")
	if !h.desktop.Focus(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// UpdateWindow applies a partial update: position, size or state.
func (h *Handlers) UpdateWindow(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		X      *int    `json:"x"`
		Y      *int    `json:"y"`
		Width  *int    `json:"width"`
		Height *int    `json:"height"`
		State  *string `json:"state"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := h.desktop.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}

	if req.X != nil && req.Y != nil {
		h.desktop.Move(id, *req.X, *req.Y)
	}
	if req.Width != nil && req.Height != nil {
		if !h.desktop.Resize(id, *req.Width, *req.Height) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window size"})
			return
		}
	}
	if req.State != nil {
		if !h.desktop.SetState(id, *req.State) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window state"})
			return
		}
	}

	w, _ := h.desktop.Get(id)
	c.JSON(http.StatusOK, w)
}

// CloseWindow destroys a window.
func (h *Handlers) CloseWindow(c *gin.Context) {
	id := c.Param("id")
	if !h.desktop.Close(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found"})
		return
	}
	h.metrics.SetWindowsOpen(h.desktop.Stats().TotalWindows)
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// DesktopStats returns desktop statistics.
func (h *Handlers) DesktopStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.desktop.Stats())
}
