package cache

import (
	"encoding/binary"
	"testing"
)

func putHeader(keyLength uint32) []byte {
	h := make([]byte, simpleCacheHeaderSize)
	binary.LittleEndian.PutUint64(h[0:8], simpleCacheHeaderMagic)
	binary.LittleEndian.PutUint32(h[8:12], 1) // version
	binary.LittleEndian.PutUint32(h[12:16], keyLength)
	return h
}

func putEOF(flags uint32, streamSize uint32) []byte {
	e := make([]byte, simpleCacheEOFSize)
	binary.LittleEndian.PutUint64(e[0:8], simpleCacheEOFMagic)
	binary.LittleEndian.PutUint32(e[8:12], flags)
	binary.LittleEndian.PutUint32(e[16:20], streamSize)
	return e
}

// buildStream1 assembles a well-formed SimpleStream1 buffer:
// [header][key][stream1 = response body][EOF1][stream0 = HTTP headers][EOF0].
func buildStream1(key, stream1Body, stream0Data []byte) []byte {
	var out []byte
	out = append(out, putHeader(uint32(len(key)))...)
	out = append(out, key...)
	out = append(out, stream1Body...)
	out = append(out, putEOF(0, 0)...) // EOF1
	out = append(out, stream0Data...)
	out = append(out, putEOF(0, uint32(len(stream0Data)))...) // EOF0
	return out
}

func TestParseStream1Layout_WellFormed(t *testing.T) {
	key := []byte("01234567")
	stream1Body := []byte("fake mp4 body bytes")
	stream0Headers := []byte("HTTP/1.1 200\x00Content-Type: video/mp4\x00\x00")

	buf := buildStream1(key, stream1Body, stream0Headers)
	layout, ok := ParseStream1Layout(buf)
	if !ok {
		t.Fatalf("expected layout to parse")
	}
	if layout.Stream1Start != 24+len(key) {
		t.Errorf("Stream1Start = %d, want %d", layout.Stream1Start, 24+len(key))
	}
	wantStream0End := len(buf) - 24
	if layout.Stream0End != wantStream0End {
		t.Errorf("Stream0End = %d, want %d", layout.Stream0End, wantStream0End)
	}
	if got := layout.Stream0End - layout.Stream0Start; got != len(stream0Headers) {
		t.Errorf("stream0 size = %d, want %d", got, len(stream0Headers))
	}

	body := ExtractHTTPBody(buf, layout)
	if string(body) != string(stream1Body) {
		t.Errorf("ExtractHTTPBody = %q, want %q", body, stream1Body)
	}

	headers := ExtractHTTPHeaders(buf, layout)
	if string(headers) != string(stream0Headers) {
		t.Errorf("ExtractHTTPHeaders = %q, want %q", headers, stream0Headers)
	}

	if ct := ExtractContentType(headers); ct != "video/mp4" {
		t.Errorf("ExtractContentType = %q, want video/mp4", ct)
	}
}

func TestParseStream1Layout_WithSHA256(t *testing.T) {
	key := []byte("key12345")
	stream1Body := []byte("body-bytes-here")
	stream0Headers := []byte("hdrs")

	var out []byte
	out = append(out, putHeader(uint32(len(key)))...)
	out = append(out, key...)
	out = append(out, stream1Body...)
	out = append(out, putEOF(0, 0)...)
	out = append(out, stream0Headers...)
	out = append(out, make([]byte, 32)...) // SHA256 placeholder
	out = append(out, putEOF(2, uint32(len(stream0Headers)))...)

	layout, ok := ParseStream1Layout(out)
	if !ok {
		t.Fatalf("expected layout to parse")
	}
	if got := layout.Stream0End - layout.Stream0Start; got != len(stream0Headers) {
		t.Errorf("stream0 size = %d, want %d", got, len(stream0Headers))
	}
	wantEnd := len(out) - 24 - 32
	if layout.Stream0End != wantEnd {
		t.Errorf("Stream0End = %d, want %d", layout.Stream0End, wantEnd)
	}
}

func TestParseStream1Layout_FallbackOnBadTrailer(t *testing.T) {
	key := []byte("ab")
	stream1Body := []byte("some body bytes before eof magic")

	var out []byte
	out = append(out, putHeader(uint32(len(key)))...)
	out = append(out, key...)
	out = append(out, stream1Body...)
	out = append(out, putEOF(0, 0)...) // only one EOF marker, no stream0/EOF0
	out = append(out, []byte("garbage tail not matching trailer math")...)

	layout, ok := ParseStream1Layout(out)
	if !ok {
		t.Fatalf("expected fallback layout to parse")
	}
	if !layout.Fallback {
		t.Errorf("expected Fallback=true")
	}
	if layout.Stream1Start != 24+len(key) {
		t.Errorf("Stream1Start = %d, want %d", layout.Stream1Start, 24+len(key))
	}
}

func TestParseStream1Layout_TooShort(t *testing.T) {
	if _, ok := ParseStream1Layout(make([]byte, 10)); ok {
		t.Errorf("expected failure for buffer shorter than 48 bytes")
	}
}

func TestParseStream2Layout(t *testing.T) {
	key := []byte("k")
	body := []byte("single stream body")

	var withEOF []byte
	withEOF = append(withEOF, putHeader(uint32(len(key)))...)
	withEOF = append(withEOF, key...)
	withEOF = append(withEOF, body...)
	withEOF = append(withEOF, putEOF(0, uint32(len(body)))...)

	layout, ok := ParseStream2Layout(withEOF)
	if !ok || !layout.HasEOF {
		t.Fatalf("expected layout with EOF, got %+v ok=%v", layout, ok)
	}
	got := ExtractHTTPBodyStream2(withEOF, layout)
	if string(got) != string(body) {
		t.Errorf("body = %q, want %q", got, body)
	}

	var noEOF []byte
	noEOF = append(noEOF, putHeader(uint32(len(key)))...)
	noEOF = append(noEOF, key...)
	noEOF = append(noEOF, body...)

	layout2, ok := ParseStream2Layout(noEOF)
	if !ok || layout2.HasEOF {
		t.Fatalf("expected tolerant layout without EOF, got %+v ok=%v", layout2, ok)
	}
	got2 := ExtractHTTPBodyStream2(noEOF, layout2)
	if string(got2) != string(body) {
		t.Errorf("body = %q, want %q", got2, body)
	}
}

func TestScenario1_LiteralBytes(t *testing.T) {
	// 30 5C 72 A7 1B 6D FB FC = magic LE, then version=1, key_length=8.
	buf := []byte{0x30, 0x5C, 0x72, 0xA7, 0x1B, 0x6D, 0xFB, 0xFC, 0x01, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0, 0}
	key := []byte("12345678")
	stream0Headers := []byte("abcdefghijklmnop")
	buf = append(buf, key...)
	buf = append(buf, putEOF(0, 0)...)
	buf = append(buf, stream0Headers...)
	buf = append(buf, putEOF(0, uint32(len(stream0Headers)))...)

	layout, ok := ParseStream1Layout(buf)
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if layout.Stream1Start != 32 {
		t.Errorf("stream1_start = %d, want 32", layout.Stream1Start)
	}
}
