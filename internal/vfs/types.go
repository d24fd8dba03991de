package vfs

import (
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Event names emitted on tree mutations. Payloads are Change values.
const (
	EventFileCreated   = "fileCreated"
	EventFileModified  = "fileModified"
	EventFileDeleted   = "fileDeleted"
	EventFolderCreated = "folderCreated"
	EventFolderDeleted = "folderDeleted"
)

// Change is the payload delivered with every VFS event.
type Change struct {
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Item is one entry of a folder listing: a flat, non-recursive view of a
// child node, shaped for the explorer UI.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Kind      NodeKind  `json:"kind"`
	Size      int       `json:"size"`
	Modified  time.Time `json:"modified"`
	Icon      string    `json:"icon"`
	Extension string    `json:"extension,omitempty"`
}

// Metadata describes a single node.
type Metadata struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Kind       NodeKind  `json:"kind"`
	Size       int       `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// Stats summarizes the tree for health reporting.
type Stats struct {
	Files      int `json:"files"`
	Folders    int `json:"folders"`
	TotalBytes int `json:"total_bytes"`
}

// Display icon tags understood by the desktop shell.
const (
	IconFolder  = "folder"
	IconText    = "text"
	IconImage   = "image"
	IconAudio   = "audio"
	IconVideo   = "video"
	IconProgram = "program"
	IconFile    = "file"
)

var iconsByExtension = map[string]string{
	"txt":  IconText,
	"md":   IconText,
	"log":  IconText,
	"ini":  IconText,
	"json": IconText,
	"png":  IconImage,
	"jpg":  IconImage,
	"jpeg": IconImage,
	"gif":  IconImage,
	"bmp":  IconImage,
	"ico":  IconImage,
	"wav":  IconAudio,
	"mid":  IconAudio,
	"mp3":  IconAudio,
	"avi":  IconVideo,
	"mp4":  IconVideo,
	"exe":  IconProgram,
	"bat":  IconProgram,
	"com":  IconProgram,
}

// extensionOf returns the lowercased extension without the dot, or "".
func extensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// iconFor picks a display icon for a node. Extensions decide for named
// files; extensionless files fall back to content sniffing so pasted blobs
// still render with a sensible icon.
func iconFor(n *Node) string {
	if n.Kind == KindFolder {
		return IconFolder
	}
	if ext := extensionOf(n.Name); ext != "" {
		if icon, ok := iconsByExtension[ext]; ok {
			return icon
		}
		return IconFile
	}
	if n.Content == "" {
		return IconFile
	}

	mtype := mimetype.Detect([]byte(n.Content))
	switch {
	case strings.HasPrefix(mtype.String(), "text/"):
		return IconText
	case strings.HasPrefix(mtype.String(), "image/"):
		return IconImage
	case strings.HasPrefix(mtype.String(), "audio/"):
		return IconAudio
	case strings.HasPrefix(mtype.String(), "video/"):
		return IconVideo
	default:
		return IconFile
	}
}

func itemFor(n *Node) Item {
	it := Item{
		ID:       n.ID,
		Name:     n.Name,
		Path:     n.Path,
		Kind:     n.Kind,
		Size:     n.Size(),
		Modified: n.ModifiedAt,
		Icon:     iconFor(n),
	}
	if n.Kind == KindFile {
		it.Extension = extensionOf(n.Name)
	}
	return it
}
