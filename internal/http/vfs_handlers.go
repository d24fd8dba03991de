package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retrodesk/reanimated/internal/infrastructure/monitoring"
)

// ReadFolder lists a folder's contents, folders first.
func (h *Handlers) ReadFolder(c *gin.Context) {
	timer := monitoring.NewFSTimer(h.metrics, "readFolder")
	path := c.Query("path")
	items, err := h.fs.ReadFolder(path)
	if err != nil {
		timer.Stop("error")
		respondFSError(c, err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{"path": path, "items": items})
}

// ReadFile returns a file's content.
func (h *Handlers) ReadFile(c *gin.Context) {
	timer := monitoring.NewFSTimer(h.metrics, "readFile")
	path := c.Query("path")
	content, err := h.fs.ReadFile(path)
	if err != nil {
		timer.Stop("error")
		respondFSError(c, err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{"path": path, "content": content})
}

// WriteFile creates or overwrites a file, creating missing parent folders.
func (h *Handlers) WriteFile(c *gin.Context) {
	var req struct {
		Path    string `json:"path" binding:"required"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewFSTimer(h.metrics, "writeFile")
	if err := h.fs.WriteFile(req.Path, req.Content); err != nil {
		timer.Stop("error")
		respondFSError(c, err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{"success": true, "path": req.Path})
}

// CreateFolder creates a folder, creating missing parent folders.
func (h *Handlers) CreateFolder(c *gin.Context) {
	var req struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewFSTimer(h.metrics, "createFolder")
	if err := h.fs.CreateFolder(req.Path); err != nil {
		timer.Stop("error")
		respondFSError(c, err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusCreated, gin.H{"success": true, "path": req.Path})
}

// DeleteItem removes a file or folder subtree.
func (h *Handlers) DeleteItem(c *gin.Context) {
	timer := monitoring.NewFSTimer(h.metrics, "deleteItem")
	path := c.Query("path")
	if err := h.fs.DeleteItem(path); err != nil {
		timer.Stop("error")
		respondFSError(c, err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{"success": true, "path": path})
}

// RenameItem renames an item in place.
func (h *Handlers) RenameItem(c *gin.Context) {
	var req struct {
		Path    string `json:"path" binding:"required"`
		NewName string `json:"newName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewFSTimer(h.metrics, "renameItem")
	if err := h.fs.RenameItem(req.Path, req.NewName); err != nil {
		timer.Stop("error")
		respondFSError(c, err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{"success": true, "path": req.Path, "newName": req.NewName})
}

// MoveItem relocates an item into a destination folder.
func (h *Handlers) MoveItem(c *gin.Context) {
	var req struct {
		Path        string `json:"path" binding:"required"`
		Destination string `json:"destination" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewFSTimer(h.metrics, "moveItem")
	if err := h.fs.MoveItem(req.Path, req.Destination); err != nil {
		timer.Stop("error")
		respondFSError(c, err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{"success": true, "path": req.Path, "destination": req.Destination})
}

// ItemMetadata returns metadata for a single item.
func (h *Handlers) ItemMetadata(c *gin.Context) {
	timer := monitoring.NewFSTimer(h.metrics, "metadata")
	path := c.Query("path")
	meta, err := h.fs.Metadata(path)
	if err != nil {
		timer.Stop("error")
		respondFSError(c, err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, meta)
}

// ItemExists reports whether a path exists. It never fails.
func (h *Handlers) ItemExists(c *gin.Context) {
	timer := monitoring.NewFSTimer(h.metrics, "exists")
	path := c.Query("path")
	exists := h.fs.Exists(path)
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{"path": path, "exists": exists})
}

// FSStats returns tree-wide counters.
func (h *Handlers) FSStats(c *gin.Context) {
	stats := h.fs.Stats()
	h.metrics.SetFSCounts(stats.Files, stats.Folders)
	c.JSON(http.StatusOK, stats)
}

// SearchItems matches paths against a glob pattern.
func (h *Handlers) SearchItems(c *gin.Context) {
	timer := monitoring.NewFSTimer(h.metrics, "search")
	pattern := c.Query("pattern")
	items, err := h.fs.Search(pattern)
	if err != nil {
		timer.Stop("error")
		respondFSError(c, err)
		return
	}
	timer.Stop("ok")
	c.JSON(http.StatusOK, gin.H{"pattern": pattern, "items": items})
}
