//go:build !unix

package cache

import (
	"errors"
	"io/fs"
)

// classifyErrno on non-Unix platforms falls back to the portable fs.Err*
// sentinels; the lock-vs-sandbox distinction is a POSIX/macOS concept and
// has no equivalent here, so both surface as IoDenied.
func classifyErrno(err error) ErrorKind {
	if errors.Is(err, fs.ErrNotExist) {
		return IoMissing
	}
	if errors.Is(err, fs.ErrPermission) {
		return IoDenied
	}
	return IoOther
}
