//go:build !unix

package diagnostics

import (
	"errors"
	"io/fs"
)

const isDarwin = false

func errnoOf(err error) (code int, isEPERM bool) {
	if errors.Is(err, fs.ErrPermission) {
		return 1, false
	}
	if errors.Is(err, fs.ErrNotExist) {
		return 2, false
	}
	return 0, false
}
