//go:build unix

package sidecar

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"runtime"
)

const isWindows = false

func fixExecuteBit(r *BinaryFixResult, path string, info fs.FileInfo) {
	mode := info.Mode().Perm()
	r.ModeOctal = fmt.Sprintf("0o%o", mode)
	r.WasExecutable = mode&0o111 != 0
	if r.WasExecutable {
		return
	}

	newMode := mode | 0o755
	if err := os.Chmod(path, newMode); err != nil {
		r.ChmodError = err.Error()
		return
	}
	r.ChmodFixed = true
	log.Printf("[sidecar] fixed execute permission on %s", path)
}

func removeQuarantine(r *BinaryFixResult, path string) {
	if runtime.GOOS != "darwin" {
		return
	}
	out, err := exec.Command("xattr", "-d", "com.apple.quarantine", path).CombinedOutput()
	if err == nil {
		r.QuarantineRemoved = true
		log.Printf("[sidecar] removed quarantine xattr from %s", path)
		return
	}
	if bytesContainsNoSuchXattr(out) {
		r.QuarantineNote = "not quarantined"
		return
	}
	r.QuarantineError = string(out)
}

func bytesContainsNoSuchXattr(out []byte) bool {
	const needle = "No such xattr"
	s := string(out)
	for i := 0; i+len(needle) <= len(s); i++ {
		if s[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
