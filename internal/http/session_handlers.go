package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retrodesk/reanimated/internal/storage"
)

// ListSessions returns saved session metadata, newest first.
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions, err := h.sessions.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"stats":    h.sessions.Stats(),
	})
}

// SaveSession captures the current desktop under a new session.
func (h *Handlers) SaveSession(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.sessions.Save(req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.metrics.IncSessionsSaved()

	c.JSON(http.StatusCreated, saved)
}

// GetSession returns a full session including window payloads.
func (h *Handlers) GetSession(c *gin.Context) {
	session, err := h.sessions.Load(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RestoreSession replaces the desktop with a saved session.
func (h *Handlers) RestoreSession(c *gin.Context) {
	session, err := h.sessions.Restore(c.Param("id"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	h.metrics.IncSessionsRestored()
	h.metrics.SetWindowsOpen(h.desktop.Stats().TotalWindows)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
		"windows": h.desktop.List(),
	})
}

// DeleteSession removes a saved session.
func (h *Handlers) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
