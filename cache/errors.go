// Package cache decodes Chromium Simple Cache entries: the dual-EOF and
// single-EOF stream layouts, the sparse-range variant used for HTTP 206
// responses, and the filename conventions that distinguish them from the
// older Blockfile backend.
package cache

import "fmt"

// ErrorKind classifies a failure the way callers need to act on it, not by
// the underlying Go error type.
type ErrorKind int

const (
	// IoOther is any I/O failure with no special remediation.
	IoOther ErrorKind = iota
	// IoDenied is a sandbox/permission denial (macOS TCC/Full Disk Access
	// or a conventional permission error); the remediation differs from
	// a lock conflict, so it is reported separately.
	IoDenied
	// IoLocked is a recoverable byte-range lock conflict. FileReader
	// retries this internally; it only reaches a caller after the retry
	// budget is exhausted.
	IoLocked
	// IoMissing is "no such file or directory".
	IoMissing
)

func (k ErrorKind) String() string {
	switch k {
	case IoDenied:
		return "IoDenied"
	case IoLocked:
		return "IoLocked"
	case IoMissing:
		return "IoMissing"
	default:
		return "IoOther"
	}
}

// ReadError wraps an I/O failure with its classification and a per-kind
// remediation hint: the IoDenied hint (grant Full Disk Access or check
// permissions) differs from the IoLocked hint (close the owning
// application), since the two require different fixes from the user.
type ReadError struct {
	Kind ErrorKind
	Path string
	Hint string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Path, e.Err, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func newReadError(path string, kind ErrorKind, err error) *ReadError {
	re := &ReadError{Kind: kind, Path: path, Err: err}
	switch kind {
	case IoDenied:
		re.Hint = "grant Full Disk Access to this program, or check file permissions"
	case IoLocked:
		re.Hint = "the owning application holds a lock on this file; close it and retry"
	case IoMissing:
		re.Hint = "path does not exist"
	}
	return re
}
