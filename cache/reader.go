package cache

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

const (
	lockRetryAttempts = 6 // the first read plus up to 5 retries
	lockRetryBase     = 100 * time.Millisecond
)

// ReadWithLockRetry performs a whole-file read, retrying up to 5 times with
// linear backoff (100ms, 200ms, ...) when the OS reports a byte-range lock
// conflict. The retry exists because the owning Discord/Chromium process
// holds mandatory byte-range locks on sparse entries while running;
// backoff gives it a chance to release the lock or finish writing.
func ReadWithLockRetry(path string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= lockRetryAttempts; attempt++ {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}

		kind := classifyErrno(err)
		if kind != IoLocked {
			return nil, newReadError(path, kind, err)
		}

		lastErr = err
		if attempt < lockRetryAttempts {
			log.Printf("[cache] lock conflict reading %s (attempt %d/%d), retrying", path, attempt, lockRetryAttempts)
			time.Sleep(time.Duration(attempt) * lockRetryBase)
		}
	}
	return nil, newReadError(path, IoLocked, fmt.Errorf("lock held after %d attempts: %w", lockRetryAttempts, lastErr))
}

// ReadHeader returns the first min(n, 4096) bytes of path without fully
// decoding it, for the read_header host command's raw preview path. For a
// Simple Cache file (recognized by the magic in its 24-byte header) this skips the
// 24+key_length prefix and returns body-relative bytes; Blockfile and
// unrecognized entries are read from the start.
func ReadHeader(path string, n int) ([]byte, error) {
	if n > 4096 {
		n = 4096
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, newReadError(path, classifyErrno(err), err)
	}
	defer f.Close()

	var headerBuf [simpleCacheHeaderSize]byte
	headerRead, err := f.Read(headerBuf[:])
	if err != nil && headerRead == 0 {
		return nil, newReadError(path, classifyErrno(err), err)
	}

	var bodyOffset int64
	if hdr, ok := parseHeader(headerBuf[:headerRead]); ok {
		bodyOffset = int64(simpleCacheHeaderSize) + int64(hdr.KeyLength)
	}

	if _, err := f.Seek(bodyOffset, io.SeekStart); err != nil {
		return nil, newReadError(path, classifyErrno(err), err)
	}

	buf := make([]byte, n)
	read, err := f.Read(buf)
	if err != nil && read == 0 {
		return nil, newReadError(path, classifyErrno(err), err)
	}
	return buf[:read], nil
}
