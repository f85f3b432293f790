//go:build unix

package cache

import (
	"errors"
	"io/fs"
	"syscall"
)

// classifyErrno inspects the raw OS error beneath a *fs.PathError the way
// Chromium's own cache backend distinguishes a mandatory byte-range lock
// (EACCES, errno 13) held by the owning process from a macOS TCC/Full Disk
// Access denial, which the Rust original surfaces as errno 1 (EPERM) from
// its sandboxed file probe.
func classifyErrno(err error) ErrorKind {
	var perr *fs.PathError
	if errors.As(err, &perr) {
		var errno syscall.Errno
		if errors.As(perr.Err, &errno) {
			switch errno {
			case syscall.EACCES:
				return IoLocked
			case syscall.EPERM:
				return IoDenied
			case syscall.ENOENT:
				return IoMissing
			}
		}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return IoMissing
	}
	if errors.Is(err, fs.ErrPermission) {
		return IoDenied
	}
	return IoOther
}
