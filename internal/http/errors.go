package http

import (
	"errors"
	"net/http"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gin-gonic/gin"

	"github.com/retrodesk/reanimated/internal/vfs"
)

// respondFSError translates filesystem sentinel errors into HTTP statuses.
func respondFSError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, vfs.ErrNotFound),
		errors.Is(err, vfs.ErrDestinationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, vfs.ErrAlreadyExists),
		errors.Is(err, vfs.ErrNameAlreadyExists),
		errors.Is(err, vfs.ErrDestinationAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, vfs.ErrNotAFile),
		errors.Is(err, vfs.ErrNotAFolder),
		errors.Is(err, vfs.ErrDestinationNotAFolder),
		errors.Is(err, vfs.ErrCannotDeleteRoot),
		errors.Is(err, vfs.ErrCannotRenameRoot),
		errors.Is(err, vfs.ErrCannotMoveIntoSelf),
		errors.Is(err, vfs.ErrInvalidName),
		errors.Is(err, doublestar.ErrBadPattern):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
