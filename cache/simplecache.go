package cache

import (
	"bytes"
	"encoding/binary"
	"strings"
)

const (
	simpleCacheHeaderMagic = 0xFCFB6D1BA7725C30
	simpleCacheHeaderSize  = 24
	simpleCacheEOFMagic    = 0xF4FA6F45970D41D8
	simpleCacheEOFSize     = 24

	// flagHasKeySHA256 is bit 1 of SimpleFileEOF.flags: when set, a
	// 32-byte SHA-256 of the key is appended between stream0 and EOF0.
	flagHasKeySHA256 = 2
)

// SimpleFileHeader is the 24-byte header common to every Simple Cache
// entry file, followed by key_length bytes of URL key.
type SimpleFileHeader struct {
	Magic     uint64
	Version   uint32
	KeyLength uint32
	KeyHash   uint32
	Padding   uint32
}

// SimpleFileEOF is the 24-byte trailer that closes a stream.
type SimpleFileEOF struct {
	Magic      uint64
	Flags      uint32
	DataCRC32  uint32
	StreamSize uint32
	Padding    uint32
}

func (e SimpleFileEOF) hasKeySHA256() bool { return e.Flags&flagHasKeySHA256 != 0 }

func parseHeader(b []byte) (SimpleFileHeader, bool) {
	if len(b) < simpleCacheHeaderSize {
		return SimpleFileHeader{}, false
	}
	h := SimpleFileHeader{
		Magic:     binary.LittleEndian.Uint64(b[0:8]),
		Version:   binary.LittleEndian.Uint32(b[8:12]),
		KeyLength: binary.LittleEndian.Uint32(b[12:16]),
		KeyHash:   binary.LittleEndian.Uint32(b[16:20]),
		Padding:   binary.LittleEndian.Uint32(b[20:24]),
	}
	return h, h.Magic == simpleCacheHeaderMagic
}

func parseEOF(b []byte) (SimpleFileEOF, bool) {
	if len(b) < simpleCacheEOFSize {
		return SimpleFileEOF{}, false
	}
	e := SimpleFileEOF{
		Magic:      binary.LittleEndian.Uint64(b[0:8]),
		Flags:      binary.LittleEndian.Uint32(b[8:12]),
		DataCRC32:  binary.LittleEndian.Uint32(b[12:16]),
		StreamSize: binary.LittleEndian.Uint32(b[16:20]),
		Padding:    binary.LittleEndian.Uint32(b[20:24]),
	}
	return e, e.Magic == simpleCacheEOFMagic
}

// Stream1Layout reports the byte ranges SimpleStream1 parsing recovered.
// Stream0Start/Stream0End are (0, 0) when the fallback path was taken.
type Stream1Layout struct {
	Stream1Start int
	Stream1End   int
	Stream0Start int
	Stream0End   int
	EOF0         SimpleFileEOF
	HasEOF0      bool
	Fallback     bool
}

// ParseStream1Layout implements the dual-EOF SimpleStream1 boundary
// algorithm: it reads EOF0 from the tail, uses its declared stream_size to
// locate stream0, then reads EOF1 immediately before stream0 to bound
// stream1. Any inconsistency falls back to scanning forward from
// stream1_start for the first EOF magic occurrence, reporting stream0's
// bounds as unknown.
func ParseStream1Layout(b []byte) (Stream1Layout, bool) {
	if len(b) < 48 {
		return Stream1Layout{}, false
	}
	hdr, ok := parseHeader(b)
	if !ok {
		return Stream1Layout{}, false
	}

	stream1Start := simpleCacheHeaderSize + int(hdr.KeyLength)
	if stream1Start >= len(b) {
		return Stream1Layout{}, false
	}

	layout, ok := tryStream1Trailer(b, stream1Start)
	if ok {
		return layout, true
	}
	return fallbackStream1Layout(b, stream1Start)
}

func tryStream1Trailer(b []byte, stream1Start int) (Stream1Layout, bool) {
	n := len(b)
	if n < simpleCacheEOFSize {
		return Stream1Layout{}, false
	}
	eof0, ok := parseEOF(b[n-simpleCacheEOFSize:])
	if !ok {
		return Stream1Layout{}, false
	}

	shaLen := 0
	if eof0.hasKeySHA256() {
		shaLen = 32
	}
	stream0End := n - simpleCacheEOFSize - shaLen
	stream0Start := stream0End - int(eof0.StreamSize)
	if stream0Start < simpleCacheEOFSize {
		return Stream1Layout{}, false
	}

	eof1Start := stream0Start - simpleCacheEOFSize
	if eof1Start < 0 || eof1Start+simpleCacheEOFSize > n {
		return Stream1Layout{}, false
	}
	_, ok = parseEOF(b[eof1Start : eof1Start+simpleCacheEOFSize])
	if !ok {
		return Stream1Layout{}, false
	}

	stream1End := stream0Start - simpleCacheEOFSize
	if stream1Start > stream1End {
		return Stream1Layout{}, false
	}

	return Stream1Layout{
		Stream1Start: stream1Start,
		Stream1End:   stream1End,
		Stream0Start: stream0Start,
		Stream0End:   stream0End,
		EOF0:         eof0,
		HasEOF0:      true,
	}, true
}

func fallbackStream1Layout(b []byte, stream1Start int) (Stream1Layout, bool) {
	magic := make([]byte, 8)
	binary.LittleEndian.PutUint64(magic, simpleCacheEOFMagic)

	idx := bytes.Index(b[stream1Start:], magic)
	if idx < 0 {
		return Stream1Layout{}, false
	}
	stream1End := stream1Start + idx
	if stream1Start > stream1End {
		return Stream1Layout{}, false
	}
	return Stream1Layout{
		Stream1Start: stream1Start,
		Stream1End:   stream1End,
		Fallback:     true,
	}, true
}

// Stream2Layout is the single-EOF SimpleStream2 boundary result.
type Stream2Layout struct {
	BodyStart int
	BodyEnd   int
	HasEOF    bool
}

// ParseStream2Layout implements the tolerant single-EOF algorithm: the
// trailing EOF record is optional, since some writers omit it.
func ParseStream2Layout(b []byte) (Stream2Layout, bool) {
	if len(b) < simpleCacheHeaderSize {
		return Stream2Layout{}, false
	}
	hdr, ok := parseHeader(b)
	if !ok {
		return Stream2Layout{}, false
	}
	bodyStart := simpleCacheHeaderSize + int(hdr.KeyLength)
	if bodyStart > len(b) {
		return Stream2Layout{}, false
	}

	n := len(b)
	if n-simpleCacheEOFSize >= bodyStart {
		if _, ok := parseEOF(b[n-simpleCacheEOFSize:]); ok {
			return Stream2Layout{BodyStart: bodyStart, BodyEnd: n - simpleCacheEOFSize, HasEOF: true}, true
		}
	}
	return Stream2Layout{BodyStart: bodyStart, BodyEnd: n}, true
}

// ExtractHTTPBody returns the stream1 (response body) bytes for a stream1
// layout. Stream2 layouts use ExtractHTTPBodyStream2.
func ExtractHTTPBody(b []byte, l Stream1Layout) []byte {
	if l.Stream1Start < 0 || l.Stream1End > len(b) || l.Stream1Start > l.Stream1End {
		return nil
	}
	return b[l.Stream1Start:l.Stream1End]
}

// ExtractHTTPBodyStream2 returns the body bytes described by a stream2
// layout.
func ExtractHTTPBodyStream2(b []byte, l Stream2Layout) []byte {
	if l.BodyStart < 0 || l.BodyEnd > len(b) || l.BodyStart > l.BodyEnd {
		return nil
	}
	return b[l.BodyStart:l.BodyEnd]
}

// ExtractHTTPHeaders returns the stream0 payload (raw, NUL-separated HTTP
// header block) for a parsed stream1 layout. It returns nil when the
// layout took the fallback path, since stream0's bounds are unknown there.
func ExtractHTTPHeaders(b []byte, l Stream1Layout) []byte {
	if l.Fallback || !l.HasEOF0 {
		return nil
	}
	if l.Stream0Start < 0 || l.Stream0End > len(b) || l.Stream0Start > l.Stream0End {
		return nil
	}
	return b[l.Stream0Start:l.Stream0End]
}

// ExtractContentType parses Chromium's NUL-separated HTTP header block
// ("HTTP/1.1 200\x00Content-Type: video/mp4\x00...") and returns the
// lowercased, parameter-stripped MIME type, or "" if absent.
func ExtractContentType(headers []byte) string {
	parts := bytes.Split(headers, []byte{0})
	for _, part := range parts {
		s := string(part)
		lower := strings.ToLower(strings.TrimSpace(s))
		const prefix = "content-type:"
		if strings.HasPrefix(lower, prefix) {
			value := strings.TrimSpace(s[len(prefix):])
			if semi := strings.IndexByte(value, ';'); semi >= 0 {
				value = value[:semi]
			}
			return strings.ToLower(strings.TrimSpace(value))
		}
	}
	return ""
}
