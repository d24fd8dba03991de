package http

import (
	"github.com/gin-gonic/gin"

	"github.com/retrodesk/reanimated/internal/ws"
)

// RegisterRoutes mounts every endpoint on the router.
func RegisterRoutes(router *gin.Engine, h *Handlers, wsHandler *ws.Handler) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/stats", h.Stats)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	// Virtual filesystem
	fs := router.Group("/vfs")
	{
		fs.GET("/folder", h.ReadFolder)
		fs.POST("/folder", h.CreateFolder)
		fs.GET("/file", h.ReadFile)
		fs.POST("/file", h.WriteFile)
		fs.DELETE("/item", h.DeleteItem)
		fs.POST("/rename", h.RenameItem)
		fs.POST("/move", h.MoveItem)
		fs.GET("/metadata", h.ItemMetadata)
		fs.GET("/exists", h.ItemExists)
		fs.GET("/search", h.SearchItems)
		fs.GET("/stats", h.FSStats)
	}

	// AI operations
	aiGroup := router.Group("/ai")
	{
		aiGroup.POST("/summarize", h.Summarize)
		aiGroup.POST("/rewrite", h.Rewrite)
		aiGroup.POST("/interpret", h.Interpret)
		aiGroup.POST("/explain-folder", h.ExplainFolder)
		aiGroup.GET("/usage", h.AIUsage)
		aiGroup.DELETE("/cache", h.ClearAICache)
	}

	// Desktop windows
	d := router.Group("/desktop")
	{
		d.GET("/windows", h.ListWindows)
		d.POST("/windows", h.OpenWindow)
		d.GET("/windows/:id", h.GetWindow)
		d.POST("/windows/:id/focus", h.FocusWindow)
		d.PATCH("/windows/:id", h.UpdateWindow)
		d.DELETE("/windows/:id", h.CloseWindow)
		d.GET("/stats", h.DesktopStats)
	}

	// Sessions
	s := router.Group("/sessions")
	{
		s.GET("", h.ListSessions)
		s.POST("", h.SaveSession)
		s.GET("/:id", h.GetSession)
		s.POST("/:id/restore", h.RestoreSession)
		s.DELETE("/:id", h.DeleteSession)
	}

	// Change notification stream
	if wsHandler != nil {
		router.GET("/stream", wsHandler.HandleConnection)
	}
}
