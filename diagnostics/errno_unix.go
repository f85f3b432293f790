//go:build unix

package diagnostics

import (
	"errors"
	"io/fs"
	"runtime"
	"syscall"
)

const isDarwin = runtime.GOOS == "darwin"

// errnoOf extracts the raw OS error number from err, plus whether it is
// EPERM (a TCC-style denial on macOS, as opposed to EACCES's ordinary BSD
// permission bits).
func errnoOf(err error) (code int, isEPERM bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno), errno == syscall.EPERM
	}
	if errors.Is(err, fs.ErrPermission) {
		return int(syscall.EACCES), false
	}
	return 0, false
}
