package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/retrodesk/reanimated/internal/events"
	"github.com/retrodesk/reanimated/internal/infrastructure/monitoring"
	"github.com/retrodesk/reanimated/internal/vfs"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// streamedEvents are the filesystem notifications forwarded to clients.
var streamedEvents = []string{
	vfs.EventFileCreated,
	vfs.EventFileModified,
	vfs.EventFileDeleted,
	vfs.EventFolderCreated,
	vfs.EventFolderDeleted,
}

const (
	writeWait  = 10 * time.Second
	sendBuffer = 64
)

// Handler manages WebSocket connections streaming filesystem changes.
type Handler struct {
	emitter *events.Emitter
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHandler creates a new WebSocket handler.
func NewHandler(emitter *events.Emitter, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{emitter: emitter, metrics: metrics, logger: logger}
}

// outbound is the wire format for a streamed notification.
type outbound struct {
	Type      string `json:"type"`
	Path      string `json:"path,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// HandleConnection upgrades the request and streams filesystem events until
// the client disconnects.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSConnected()
		defer h.metrics.WSDisconnected()
	}

	// Single writer goroutine; event handlers and the read loop only push
	// into the channel. The channel is never closed so a straggling event
	// handler can never hit a closed channel; quit tears the writer down.
	send := make(chan outbound, sendBuffer)
	quit := make(chan struct{})
	done := make(chan struct{})

	subs := make([]events.Subscription, 0, len(streamedEvents))
	for _, event := range streamedEvents {
		event := event
		subs = append(subs, h.emitter.On(event, func(data any) {
			msg := outbound{Type: event, Timestamp: time.Now().Unix()}
			if change, ok := data.(vfs.Change); ok {
				msg.Path = change.Path
				msg.Timestamp = change.Timestamp.Unix()
			}
			select {
			case send <- msg:
			default:
				// Slow consumer; drop rather than block the filesystem.
			}
		}))
	}
	defer func() {
		for _, sub := range subs {
			h.emitter.Off(sub)
		}
	}()

	go func() {
		defer close(done)
		for {
			select {
			case msg := <-send:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
				if h.metrics != nil {
					h.metrics.RecordWSMessage("out", msg.Type)
				}
			case <-quit:
				return
			}
		}
	}()

	push := func(msg outbound) {
		select {
		case send <- msg:
		default:
		}
	}

	push(outbound{
		Type:      "system",
		Message:   "Connected to Win95 Reanimated Backend",
		Timestamp: time.Now().Unix(),
	})

	// Read loop: pings keep the connection alive, anything else is rejected.
	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "ping":
			push(outbound{Type: "pong", Timestamp: time.Now().Unix()})
		default:
			push(outbound{Type: "error", Message: "unknown message type", Timestamp: time.Now().Unix()})
		}
	}

	close(quit)
	<-done
}
