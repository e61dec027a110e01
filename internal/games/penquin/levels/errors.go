package levels

import (
	"errors"
	"fmt"
)

// Content problems detected while compiling a level document.
var (
	ErrMissingLayer   = errors.New("missing layer")
	ErrMissingMarker  = errors.New("missing marker")
	ErrMissingTileset = errors.New("missing tileset")
	ErrBadTeleport    = errors.New("bad teleport")
	ErrBadTile        = errors.New("bad tile")
)

// ContentError reports a level that cannot be played as authored.
// It wraps one of the sentinel errors above.
type ContentError struct {
	Level  string // file name or level id
	Err    error
	Detail string
}

func (e *ContentError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("levels: %s: %v", e.Level, e.Err)
	}
	return fmt.Sprintf("levels: %s: %v: %s", e.Level, e.Err, e.Detail)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

func contentErr(level string, err error, format string, args ...any) *ContentError {
	return &ContentError{Level: level, Err: err, Detail: fmt.Sprintf(format, args...)}
}
