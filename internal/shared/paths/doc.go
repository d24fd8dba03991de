// Package paths provides pure path-string helpers for the virtual file
// system.
//
// Every VFS path is absolute and '/'-separated. All inputs that enter the
// VFS are funneled through Normalize first, so the rest of the system can
// assume canonical paths. None of the functions here have error paths:
// malformed input degrades gracefully to the root path.
//
// # Desktop layout
//
//	/
//	  ├── documents/
//	  │   └── work/
//	  ├── pictures/
//	  └── programs/
//
// # Usage
//
//	import "github.com/retrodesk/reanimated/internal/shared/paths"
//
//	p := paths.Normalize("documents/../pictures/")  // "/pictures"
//	paths.Dirname("/documents/readme.txt")          // "/documents"
//	paths.Basename("/documents/readme.txt")         // "readme.txt"
package paths
