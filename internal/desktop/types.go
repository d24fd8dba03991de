package desktop

import "time"

// Window state values.
const (
	StateNormal    = "normal"
	StateMinimized = "minimized"
	StateMaximized = "maximized"
)

// Well-known applications a window can host.
const (
	AppNotepad     = "notepad"
	AppExplorer    = "explorer"
	AppPaint       = "paint"
	AppMinesweeper = "minesweeper"
	AppAssistant   = "assistant"
)

// Bounds positions a window on the desktop.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Window is a single open window on the simulated desktop.
type Window struct {
	ID       string    `json:"id"`
	App      string    `json:"app"`
	Title    string    `json:"title"`
	Path     string    `json:"path,omitempty"`
	State    string    `json:"state"`
	Bounds   Bounds    `json:"bounds"`
	ZIndex   int       `json:"zIndex"`
	OpenedAt time.Time `json:"openedAt"`
}

// Stats summarizes the desktop for the status endpoint.
type Stats struct {
	TotalWindows int     `json:"totalWindows"`
	Minimized    int     `json:"minimized"`
	Focused      *string `json:"focused,omitempty"`
}
