package vfs

import (
	"time"

	"github.com/google/uuid"

	"github.com/retrodesk/reanimated/internal/shared/paths"
)

// NodeKind discriminates files from folders.
type NodeKind string

const (
	KindFile   NodeKind = "file"
	KindFolder NodeKind = "folder"
)

// Node is one file or folder in the tree. A node's Path is always the
// normalized join of its parent's path and its own name; rename and move
// rewrite the whole subtree to keep that invariant.
type Node struct {
	ID         string
	Name       string
	Path       string
	Kind       NodeKind
	CreatedAt  time.Time
	ModifiedAt time.Time

	// Content is the file payload. Folders keep it empty.
	Content string

	// parent is a non-owning back-reference; nil only for the root.
	parent *Node

	// children is keyed by child name; order preserves insertion.
	children map[string]*Node
	order    []string
}

func newFolder(name string, now time.Time) *Node {
	return &Node{
		ID:         uuid.New().String(),
		Name:       name,
		Kind:       KindFolder,
		CreatedAt:  now,
		ModifiedAt: now,
		children:   make(map[string]*Node),
	}
}

func newFile(name, content string, now time.Time) *Node {
	return &Node{
		ID:         uuid.New().String(),
		Name:       name,
		Kind:       KindFile,
		CreatedAt:  now,
		ModifiedAt: now,
		Content:    content,
	}
}

// Size is the byte length of a file's content; folders report zero.
func (n *Node) Size() int {
	if n.Kind == KindFile {
		return len(n.Content)
	}
	return 0
}

// IsRoot reports whether the node is the tree root.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// Children returns the node's children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.children[name])
	}
	return out
}

// child looks up a child by name.
func (n *Node) child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// attach adds c under n and fixes c's parent pointer and path. The caller
// guarantees no sibling already holds the name.
func (n *Node) attach(c *Node) {
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	c.parent = n
	c.Path = paths.Join(n.Path, c.Name)
	n.children[c.Name] = c
	n.order = append(n.order, c.Name)
}

// detach removes c from n, leaving c's parent pointer cleared.
func (n *Node) detach(c *Node) {
	delete(n.children, c.Name)
	for i, name := range n.order {
		if name == c.Name {
			n.order = append(n.order[:i:i], n.order[i+1:]...)
			break
		}
	}
	c.parent = nil
}

// walk visits the node and every descendant, depth-first.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, name := range n.order {
		n.children[name].walk(fn)
	}
}

// rewritePaths recomputes the subtree's paths after a rename or reparent.
func (n *Node) rewritePaths() {
	if n.parent != nil {
		n.Path = paths.Join(n.parent.Path, n.Name)
	}
	for _, name := range n.order {
		n.children[name].rewritePaths()
	}
}
