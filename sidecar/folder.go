// Package sidecar manages the helper binaries and OS-level shell-outs this
// tool relies on: revealing a path in the system file browser, keeping
// ffmpeg/ffprobe executable on disk, and probing container metadata.
package sidecar

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenFolder reveals path in the platform's file browser.
func OpenFolder(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open folder %s: %w", path, err)
	}
	return nil
}
