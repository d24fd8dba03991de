package vfs

import "errors"

// Error kinds for VFS operations. Callers discriminate with errors.Is; the
// wrapped message carries the offending path for display.
var (
	ErrNotFound                 = errors.New("item not found")
	ErrNotAFile                 = errors.New("not a file")
	ErrNotAFolder               = errors.New("not a folder")
	ErrAlreadyExists            = errors.New("item already exists")
	ErrNameAlreadyExists        = errors.New("an item with this name already exists")
	ErrCannotDeleteRoot         = errors.New("cannot delete root folder")
	ErrCannotRenameRoot         = errors.New("cannot rename root folder")
	ErrDestinationNotFound      = errors.New("destination folder not found")
	ErrDestinationNotAFolder    = errors.New("destination is not a folder")
	ErrDestinationAlreadyExists = errors.New("destination already contains an item with this name")
	ErrCannotMoveIntoSelf       = errors.New("cannot move a folder into itself")
	ErrInvalidName              = errors.New("invalid item name")
)
