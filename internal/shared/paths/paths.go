package paths

import (
	"path"
	"strings"
)

// Root is the path of the VFS root folder.
const Root = "/"

// Standard folders seeded into a fresh desktop.
const (
	Documents = "/documents"
	Pictures  = "/pictures"
	Programs  = "/programs"
	Work      = "/documents/work"
)

// StandardDirectories returns all folders that exist on a fresh desktop.
func StandardDirectories() []string {
	return []string{
		Documents,
		Pictures,
		Programs,
		Work,
	}
}

// Normalize canonicalizes a VFS path: empty input becomes Root, a missing
// leading slash is added, trailing slashes and "." segments are dropped, and
// ".." resolves against the preceding segment. ".." segments that would climb
// past the root are silently discarded, so any input normalizes to a valid
// absolute path.
func Normalize(p string) string {
	if p == "" {
		return Root
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}

// Join concatenates path parts with "/" separators and normalizes the result.
func Join(parts ...string) string {
	return Normalize(strings.Join(parts, "/"))
}

// Dirname returns the parent of the normalized path. The root's parent is the
// root itself; a top-level item's parent is the root.
func Dirname(p string) string {
	return path.Dir(Normalize(p))
}

// Basename returns the last segment of the normalized path. The root's
// basename is "/".
func Basename(p string) string {
	return path.Base(Normalize(p))
}

// Split returns the segments of the normalized path between root and leaf.
// The root splits into no segments.
func Split(p string) []string {
	n := Normalize(p)
	if n == Root {
		return nil
	}
	return strings.Split(strings.TrimPrefix(n, "/"), "/")
}

// IsAbs reports whether the raw, non-normalized path starts with "/".
func IsAbs(p string) bool {
	return strings.HasPrefix(p, "/")
}

// Depth returns the number of segments in the normalized path. The root has
// depth zero.
func Depth(p string) int {
	return len(Split(p))
}

// IsAncestor reports whether ancestor is the same as or a prefix folder of p.
// Both inputs are normalized before comparison.
func IsAncestor(ancestor, p string) bool {
	a := Normalize(ancestor)
	n := Normalize(p)
	if a == Root {
		return true
	}
	return n == a || strings.HasPrefix(n, a+"/")
}
