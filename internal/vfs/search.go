package vfs

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Search matches every live path against a doublestar glob pattern and
// returns the matching nodes as listing items, sorted by path. Patterns are
// rooted: "/documents/*.txt" matches direct children, "/**/*.txt" matches at
// any depth. The root itself never matches.
func (v *VFS) Search(pattern string) ([]Item, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern: %w", ErrInvalidName)
	}
	if pattern[0] != '/' {
		pattern = "/" + pattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%q: %w", pattern, doublestar.ErrBadPattern)
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	var items []Item
	for p, n := range v.index {
		if n.IsRoot() {
			continue
		}
		ok, err := doublestar.Match(pattern, p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", pattern, err)
		}
		if ok {
			items = append(items, itemFor(n))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}
