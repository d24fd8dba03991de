package vfs

import (
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/retrodesk/reanimated/internal/shared/paths"
)

// snapshotVersion tags the persisted format so future migrations can branch
// on it instead of guessing.
const snapshotVersion = 1

type nodeRecord struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Kind       NodeKind               `json:"kind"`
	CreatedAt  time.Time              `json:"createdAt"`
	ModifiedAt time.Time              `json:"modifiedAt"`
	Content    string                 `json:"content,omitempty"`
	Children   map[string]*nodeRecord `json:"children,omitempty"`

	// Order preserves child insertion order, which JSON objects cannot.
	Order []string `json:"order,omitempty"`
}

type snapshot struct {
	Version int         `json:"version"`
	Root    *nodeRecord `json:"root"`
}

// serializeTree encodes the whole tree as JSON. Children serialize as a
// name-keyed object plus an insertion-order array; timestamps as ISO-8601.
func serializeTree(root *Node) ([]byte, error) {
	data, err := sonic.Marshal(snapshot{
		Version: snapshotVersion,
		Root:    recordFor(root),
	})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func recordFor(n *Node) *nodeRecord {
	rec := &nodeRecord{
		ID:         n.ID,
		Name:       n.Name,
		Kind:       n.Kind,
		CreatedAt:  n.CreatedAt,
		ModifiedAt: n.ModifiedAt,
		Content:    n.Content,
	}
	if n.Kind == KindFolder {
		rec.Children = make(map[string]*nodeRecord, len(n.children))
		for name, c := range n.children {
			rec.Children[name] = recordFor(c)
		}
		rec.Order = append([]string(nil), n.order...)
	}
	return rec
}

// deserializeTree rebuilds the node tree and the path index from a snapshot.
// Parent back-references and node paths are re-derived during the walk rather
// than trusted from the payload. Any structural defect fails the whole load,
// and the caller falls back to the seeded default tree.
func deserializeTree(data []byte) (*Node, map[string]*Node, error) {
	var snap snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Root == nil {
		return nil, nil, fmt.Errorf("snapshot has no root")
	}
	if snap.Root.Kind != KindFolder {
		return nil, nil, fmt.Errorf("snapshot root is not a folder")
	}

	index := make(map[string]*Node)
	root, err := rebuild(snap.Root, nil, paths.Root, index)
	if err != nil {
		return nil, nil, err
	}
	return root, index, nil
}

func rebuild(rec *nodeRecord, parent *Node, nodePath string, index map[string]*Node) (*Node, error) {
	if parent != nil && rec.Name == "" {
		return nil, fmt.Errorf("node at %s has an empty name", nodePath)
	}
	if rec.Kind != KindFile && rec.Kind != KindFolder {
		return nil, fmt.Errorf("node at %s has unknown kind %q", nodePath, rec.Kind)
	}
	if rec.ID == "" {
		return nil, fmt.Errorf("node at %s has no id", nodePath)
	}

	n := &Node{
		ID:         rec.ID,
		Name:       rec.Name,
		Path:       nodePath,
		Kind:       rec.Kind,
		CreatedAt:  rec.CreatedAt,
		ModifiedAt: rec.ModifiedAt,
		Content:    rec.Content,
		parent:     parent,
	}
	if parent == nil {
		n.Name = paths.Root
	}
	index[nodePath] = n

	if rec.Kind == KindFile {
		return n, nil
	}

	n.children = make(map[string]*Node, len(rec.Children))
	for _, name := range childOrder(rec) {
		child, err := rebuild(rec.Children[name], n, paths.Join(nodePath, name), index)
		if err != nil {
			return nil, err
		}
		child.Name = name
		n.children[name] = child
		n.order = append(n.order, name)
	}
	return n, nil
}

// childOrder reconciles the order array with the children map: ordered names
// come first, children missing from the array follow sorted. Snapshots
// written by older builds carried no order array at all.
func childOrder(rec *nodeRecord) []string {
	seen := make(map[string]bool, len(rec.Order))
	var names []string
	for _, name := range rec.Order {
		if _, ok := rec.Children[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range rec.Children {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
