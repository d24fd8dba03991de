package vfs

import (
	"time"

	"github.com/retrodesk/reanimated/internal/shared/paths"
)

const (
	readmeContent = "Welcome to Win95 Reanimated!\r\n\r\n" +
		"This is your documents folder. Double-click a file to open it in\r\n" +
		"Notepad, or right-click for more options.\r\n"

	notesContent = "Things to try:\r\n" +
		"- Open the Explorer from the Start menu\r\n" +
		"- Ask the Assistant to summarize a document\r\n" +
		"- Drag files between folders\r\n"

	reportContent = "Q3 STATUS REPORT\r\n\r\n" +
		"Everything is proceeding exactly as it did in 1995.\r\n"
)

// seedTree builds the default desktop tree: the standard folders plus three
// sample files, all stamped with the same creation time.
func seedTree(now time.Time) (*Node, map[string]*Node) {
	root := newFolder(paths.Root, now)
	root.Path = paths.Root
	index := map[string]*Node{paths.Root: root}

	mkdir := func(p string) *Node {
		parent := index[paths.Dirname(p)]
		folder := newFolder(paths.Basename(p), now)
		parent.attach(folder)
		index[folder.Path] = folder
		return folder
	}
	mkfile := func(p, content string) {
		parent := index[paths.Dirname(p)]
		file := newFile(paths.Basename(p), content, now)
		parent.attach(file)
		index[file.Path] = file
	}

	for _, dir := range paths.StandardDirectories() {
		mkdir(dir)
	}

	mkfile(paths.Join(paths.Documents, "readme.txt"), readmeContent)
	mkfile(paths.Join(paths.Documents, "notes.txt"), notesContent)
	mkfile(paths.Join(paths.Work, "report.txt"), reportContent)

	return root, index
}
