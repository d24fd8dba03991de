package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retrodesk/reanimated/internal/ai"
	"github.com/retrodesk/reanimated/internal/desktop"
	"github.com/retrodesk/reanimated/internal/infrastructure/monitoring"
	"github.com/retrodesk/reanimated/internal/session"
	"github.com/retrodesk/reanimated/internal/vfs"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	fs       *vfs.VFS
	aiClient *ai.Client
	desktop  *desktop.Manager
	sessions *session.Manager
	metrics  *monitoring.Metrics
	started  time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(
	fs *vfs.VFS,
	aiClient *ai.Client,
	d *desktop.Manager,
	sessions *session.Manager,
	metrics *monitoring.Metrics,
) *Handlers {
	return &Handlers{
		fs:       fs,
		aiClient: aiClient,
		desktop:  d,
		sessions: sessions,
		metrics:  metrics,
		started:  time.Now(),
	}
}

// Root handles the basic liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Win95 Reanimated Backend",
		"version": "1.0.0",
	})
}

// Health handles the detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"uptime":      time.Since(h.started).String(),
		"filesystem":  h.fs.Stats(),
		"desktop":     h.desktop.Stats(),
		"sessions":    h.sessions.Stats(),
		"ai_provider": h.aiClient.ProviderName(),
	})
}

// Stats returns the JSON metrics snapshot
func (h *Handlers) Stats(c *gin.Context) {
	snap := h.metrics.GetSnapshot()
	c.JSON(http.StatusOK, gin.H{
		"total_requests":  snap.TotalRequests,
		"total_errors":    snap.TotalErrors,
		"open_windows":    snap.OpenWindows,
		"ws_connections":  snap.Connections,
		"avg_latency_sec": h.metrics.AverageLatency(),
		"uptime":          time.Since(h.started).String(),
	})
}
