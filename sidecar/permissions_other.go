//go:build !unix

package sidecar

import "io/fs"

const isWindows = true

// Windows has no execute bit and no quarantine xattr to manage; sidecar
// binaries there are expected to already carry the .exe extension and run
// as-is once copied alongside the main binary.
func fixExecuteBit(r *BinaryFixResult, path string, info fs.FileInfo) {
	r.WasExecutable = true
}

func removeQuarantine(r *BinaryFixResult, path string) {}
