package sidecar

import (
	"os"
	"path/filepath"
)

// BinaryFixResult reports the outcome of checking and, if needed, fixing
// one sidecar binary's permissions.
type BinaryFixResult struct {
	Name              string
	Path              string
	Exists            bool
	Error             string
	ModeOctal         string
	WasExecutable     bool
	ChmodFixed        bool
	ChmodError        string
	QuarantineRemoved bool
	QuarantineNote    string
	QuarantineError   string
}

// FixSidecarPermissionsResult is the full fix_sidecar_permissions response.
type FixSidecarPermissionsResult struct {
	ExeDir   string
	Binaries []BinaryFixResult
}

// sidecarNames are the helper binaries this tool shells out to for
// container metadata probing.
func sidecarNames() []string {
	if isWindows {
		return []string{"ffmpeg.exe", "ffprobe.exe"}
	}
	return []string{"ffmpeg", "ffprobe"}
}

// FixSidecarPermissions ensures ffmpeg/ffprobe next to the running
// executable are executable, and on macOS strips the quarantine xattr a
// fresh download or unzip leaves in place, which otherwise blocks exec.
func FixSidecarPermissions() (FixSidecarPermissionsResult, error) {
	exePath, err := os.Executable()
	if err != nil {
		return FixSidecarPermissionsResult{}, err
	}
	exeDir := filepath.Dir(exePath)

	result := FixSidecarPermissionsResult{ExeDir: exeDir}
	for _, name := range sidecarNames() {
		result.Binaries = append(result.Binaries, fixOne(exeDir, name))
	}
	return result, nil
}

func fixOne(exeDir, name string) BinaryFixResult {
	path := filepath.Join(exeDir, name)
	r := BinaryFixResult{Name: name, Path: path}

	info, err := os.Stat(path)
	if err != nil {
		r.Exists = false
		r.Error = "binary not found"
		return r
	}
	r.Exists = true

	fixExecuteBit(&r, path, info)
	removeQuarantine(&r, path)
	return r
}

