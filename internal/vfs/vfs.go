package vfs

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/retrodesk/reanimated/internal/events"
	"github.com/retrodesk/reanimated/internal/shared/paths"
	"github.com/retrodesk/reanimated/internal/storage"
)

// VFS is a path-addressed CRUD façade over an in-memory node tree. All paths
// are normalized on entry. Mutations persist the whole tree best-effort: a
// failed save is logged and swallowed, and the in-memory tree stays the
// source of truth for the rest of the session.
type VFS struct {
	mu      sync.RWMutex
	root    *Node
	index   map[string]*Node
	store   storage.Store
	emitter *events.Emitter
	logger  *zap.Logger
}

// New builds a VFS from the persisted snapshot in store, or seeds and
// persists the default desktop tree when the snapshot is missing, malformed,
// or structurally incomplete.
func New(store storage.Store, emitter *events.Emitter, logger *zap.Logger) *VFS {
	if logger == nil {
		logger = zap.NewNop()
	}
	if emitter == nil {
		emitter = events.New(logger)
	}

	v := &VFS{
		store:   store,
		emitter: emitter,
		logger:  logger,
	}

	if data, err := store.Load(storage.KeyVFS); err == nil {
		if root, index, derr := deserializeTree(data); derr == nil {
			v.root = root
			v.index = index
			logger.Info("restored virtual file system",
				zap.Int("nodes", len(index)),
			)
			return v
		} else {
			logger.Warn("discarding unreadable vfs snapshot", zap.Error(derr))
		}
	}

	v.root, v.index = seedTree(time.Now())
	v.persistLocked()
	logger.Info("seeded default virtual file system")
	return v
}

// On subscribes to one of the five VFS events.
func (v *VFS) On(event string, fn events.Handler) events.Subscription {
	return v.emitter.On(event, fn)
}

// Off removes a subscription.
func (v *VFS) Off(sub events.Subscription) {
	v.emitter.Off(sub)
}

// ReadFolder lists the children of the folder at p: folders before files,
// alphabetical by name within each group. That ordering is a contract the
// explorer UI depends on.
func (v *VFS) ReadFolder(p string) ([]Item, error) {
	p = paths.Normalize(p)

	v.mu.RLock()
	defer v.mu.RUnlock()

	node, ok := v.index[p]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	if node.Kind != KindFolder {
		return nil, fmt.Errorf("%s: %w", p, ErrNotAFolder)
	}

	items := make([]Item, 0, len(node.children))
	for _, c := range node.Children() {
		items = append(items, itemFor(c))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind == KindFolder
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// ReadFile returns the raw content of the file at p.
func (v *VFS) ReadFile(p string) (string, error) {
	p = paths.Normalize(p)

	v.mu.RLock()
	defer v.mu.RUnlock()

	node, ok := v.index[p]
	if !ok {
		return "", fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	if node.Kind != KindFile {
		return "", fmt.Errorf("%s: %w", p, ErrNotAFile)
	}
	return node.Content, nil
}

// WriteFile creates or overwrites the file at p. Missing ancestor folders are
// created silently. Emits fileCreated or fileModified.
func (v *VFS) WriteFile(p, content string) error {
	p = paths.Normalize(p)
	now := time.Now()

	v.mu.Lock()

	if node, ok := v.index[p]; ok {
		if node.Kind != KindFile {
			v.mu.Unlock()
			return fmt.Errorf("%s: %w", p, ErrNotAFile)
		}
		node.Content = content
		node.ModifiedAt = now
		v.persistLocked()
		v.mu.Unlock()

		v.emitter.Emit(EventFileModified, Change{Path: p, Timestamp: now})
		return nil
	}

	parent, err := v.ensureFolderLocked(paths.Dirname(p), now)
	if err != nil {
		v.mu.Unlock()
		return err
	}

	file := newFile(paths.Basename(p), content, now)
	parent.attach(file)
	parent.ModifiedAt = now
	v.index[file.Path] = file
	v.persistLocked()
	v.mu.Unlock()

	v.emitter.Emit(EventFileCreated, Change{Path: p, Timestamp: now})
	return nil
}

// CreateFolder creates a folder at p, auto-creating missing ancestors. Emits
// folderCreated for the leaf folder.
func (v *VFS) CreateFolder(p string) error {
	p = paths.Normalize(p)
	now := time.Now()

	v.mu.Lock()

	if _, ok := v.index[p]; ok {
		v.mu.Unlock()
		return fmt.Errorf("%s: %w", p, ErrAlreadyExists)
	}
	if _, err := v.ensureFolderLocked(p, now); err != nil {
		v.mu.Unlock()
		return err
	}
	v.persistLocked()
	v.mu.Unlock()

	v.emitter.Emit(EventFolderCreated, Change{Path: p, Timestamp: now})
	return nil
}

// DeleteItem removes the node at p and its entire subtree. Emits fileDeleted
// or folderDeleted for the deleted node only, never per descendant.
func (v *VFS) DeleteItem(p string) error {
	p = paths.Normalize(p)
	now := time.Now()

	v.mu.Lock()

	if p == paths.Root {
		v.mu.Unlock()
		return ErrCannotDeleteRoot
	}
	node, ok := v.index[p]
	if !ok {
		v.mu.Unlock()
		return fmt.Errorf("%s: %w", p, ErrNotFound)
	}

	node.walk(func(n *Node) { delete(v.index, n.Path) })
	parent := node.parent
	parent.detach(node)
	parent.ModifiedAt = now
	v.persistLocked()
	v.mu.Unlock()

	event := EventFileDeleted
	if node.Kind == KindFolder {
		event = EventFolderDeleted
	}
	v.emitter.Emit(event, Change{Path: p, Timestamp: now})
	return nil
}

// RenameItem changes the leaf name of the node at p, keeping its parent.
// Every descendant path is rewritten and reindexed.
func (v *VFS) RenameItem(p, newName string) error {
	p = paths.Normalize(p)
	now := time.Now()

	if newName == "" || newName == "." || newName == ".." || strings.Contains(newName, "/") {
		return fmt.Errorf("%q: %w", newName, ErrInvalidName)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if p == paths.Root {
		return ErrCannotRenameRoot
	}
	node, ok := v.index[p]
	if !ok {
		return fmt.Errorf("%s: %w", p, ErrNotFound)
	}

	parent := node.parent
	if _, taken := parent.child(newName); taken {
		return fmt.Errorf("%s: %w", newName, ErrNameAlreadyExists)
	}

	node.walk(func(n *Node) { delete(v.index, n.Path) })
	parent.detach(node)
	node.Name = newName
	parent.attach(node)
	node.rewritePaths()
	node.walk(func(n *Node) { v.index[n.Path] = n })
	node.ModifiedAt = now
	parent.ModifiedAt = now

	v.persistLocked()
	return nil
}

// MoveItem reparents the node at sourcePath under the folder at
// destFolderPath, keeping its name. Moving a folder into itself or any of its
// descendants fails and leaves the tree unchanged.
func (v *VFS) MoveItem(sourcePath, destFolderPath string) error {
	src := paths.Normalize(sourcePath)
	dst := paths.Normalize(destFolderPath)
	now := time.Now()

	v.mu.Lock()
	defer v.mu.Unlock()

	node, ok := v.index[src]
	if !ok {
		return fmt.Errorf("%s: %w", src, ErrNotFound)
	}
	dest, ok := v.index[dst]
	if !ok {
		return fmt.Errorf("%s: %w", dst, ErrDestinationNotFound)
	}
	if dest.Kind != KindFolder {
		return fmt.Errorf("%s: %w", dst, ErrDestinationNotAFolder)
	}
	if paths.IsAncestor(src, dst) {
		return fmt.Errorf("%s -> %s: %w", src, dst, ErrCannotMoveIntoSelf)
	}
	if _, taken := dest.child(node.Name); taken {
		return fmt.Errorf("%s: %w", paths.Join(dst, node.Name), ErrDestinationAlreadyExists)
	}

	node.walk(func(n *Node) { delete(v.index, n.Path) })
	oldParent := node.parent
	oldParent.detach(node)
	oldParent.ModifiedAt = now
	dest.attach(node)
	node.rewritePaths()
	node.walk(func(n *Node) { v.index[n.Path] = n })
	node.ModifiedAt = now
	dest.ModifiedAt = now

	v.persistLocked()
	return nil
}

// Exists reports whether a node lives at p. It never fails, no matter how
// malformed the input is.
func (v *VFS) Exists(p string) bool {
	p = paths.Normalize(p)

	v.mu.RLock()
	defer v.mu.RUnlock()

	_, ok := v.index[p]
	return ok
}

// Metadata returns the metadata of the node at p.
func (v *VFS) Metadata(p string) (Metadata, error) {
	p = paths.Normalize(p)

	v.mu.RLock()
	defer v.mu.RUnlock()

	node, ok := v.index[p]
	if !ok {
		return Metadata{}, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	return Metadata{
		Name:       node.Name,
		Path:       node.Path,
		Kind:       node.Kind,
		Size:       node.Size(),
		CreatedAt:  node.CreatedAt,
		ModifiedAt: node.ModifiedAt,
	}, nil
}

// Stats counts live nodes and file bytes.
func (v *VFS) Stats() Stats {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var s Stats
	for _, n := range v.index {
		if n.Kind == KindFile {
			s.Files++
			s.TotalBytes += n.Size()
		} else {
			s.Folders++
		}
	}
	return s
}

// ensureFolderLocked resolves the folder at p, creating it and any missing
// ancestors. Fails with ErrNotAFolder when an intermediate segment resolves
// to a file. Caller holds the write lock.
func (v *VFS) ensureFolderLocked(p string, now time.Time) (*Node, error) {
	if node, ok := v.index[p]; ok {
		if node.Kind != KindFolder {
			return nil, fmt.Errorf("%s: %w", p, ErrNotAFolder)
		}
		return node, nil
	}

	current := v.root
	for _, segment := range paths.Split(p) {
		next, ok := current.child(segment)
		if !ok {
			next = newFolder(segment, now)
			current.attach(next)
			current.ModifiedAt = now
			v.index[next.Path] = next
		} else if next.Kind != KindFolder {
			return nil, fmt.Errorf("%s: %w", next.Path, ErrNotAFolder)
		}
		current = next
	}
	return current, nil
}

// persistLocked serializes the whole tree to the store. Failures are logged
// and swallowed: a failed save never rolls back the in-memory mutation.
func (v *VFS) persistLocked() {
	data, err := serializeTree(v.root)
	if err != nil {
		v.logger.Error("serialize vfs tree", zap.Error(err))
		return
	}
	if err := v.store.Save(storage.KeyVFS, data); err != nil {
		v.logger.Error("persist vfs tree", zap.Error(err))
	}
}
