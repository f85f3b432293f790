package cache

import (
	"encoding/binary"
	"fmt"
	"sort"
)

const (
	sparseRangeMagic      = 0xEB97BF016553676B
	sparseRangeHeaderSize = 32
)

// SparseRangeHeader precedes each data chunk in a SimpleSparse file.
type SparseRangeHeader struct {
	Magic  uint64
	Offset uint64
	Length uint64
	CRC32  uint32
}

type sparseChunk struct {
	offset uint64
	data   []byte
}

func parseSparseRangeHeader(b []byte) (SparseRangeHeader, bool) {
	if len(b) < sparseRangeHeaderSize {
		return SparseRangeHeader{}, false
	}
	h := SparseRangeHeader{
		Magic:  binary.LittleEndian.Uint64(b[0:8]),
		Offset: binary.LittleEndian.Uint64(b[8:16]),
		Length: binary.LittleEndian.Uint64(b[16:24]),
		CRC32:  binary.LittleEndian.Uint32(b[24:28]),
	}
	return h, h.Magic == sparseRangeMagic
}

// walkSparseRanges reads the header/key prefix and then every
// SparseRangeHeader+data pair it can find, stopping at the first magic
// mismatch, truncated range, or end of buffer. It returns the chunks found
// (possibly none), the header's key_length (needed by the no-ranges
// fallback to locate the body), and whether the header magic was valid.
func walkSparseRanges(b []byte) (chunks []sparseChunk, keyLength int, ok bool) {
	hdr, ok := parseHeader(b)
	if !ok {
		return nil, 0, false
	}
	pos := simpleCacheHeaderSize + int(hdr.KeyLength)
	if pos > len(b) {
		return nil, int(hdr.KeyLength), false
	}

	for pos+sparseRangeHeaderSize <= len(b) {
		rh, ok := parseSparseRangeHeader(b[pos : pos+sparseRangeHeaderSize])
		if !ok {
			break
		}
		dataStart := pos + sparseRangeHeaderSize
		dataEnd := dataStart + int(rh.Length)
		truncated := false
		if dataEnd > len(b) {
			dataEnd = len(b)
			truncated = true
		}
		if dataStart > dataEnd {
			break
		}
		chunks = append(chunks, sparseChunk{offset: rh.Offset, data: b[dataStart:dataEnd]})
		if truncated {
			break
		}
		pos = dataEnd
	}
	return chunks, int(hdr.KeyLength), true
}

// Reassemble implements the SparseReassembler algorithm: range-indexed
// chunks are copied into a zero-filled buffer at their declared offsets;
// gaps between ranges stay zero, matching Chromium's fill semantics for
// never-written regions. A sparse file with no parseable range framing
// falls back to treating everything after the key as one contiguous body
// (a writer variant some callers produce).
func Reassemble(b []byte) ([]byte, error) {
	chunks, keyLength, ok := walkSparseRanges(b)
	if !ok {
		return nil, fmt.Errorf("cache: invalid sparse header")
	}

	if len(chunks) == 0 {
		return fallbackSparseBody(b, keyLength), nil
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].offset < chunks[j].offset })

	var size uint64
	for _, c := range chunks {
		end := c.offset + uint64(len(c.data))
		if end > size {
			size = end
		}
	}

	out := make([]byte, size)
	for _, c := range chunks {
		copy(out[c.offset:], c.data)
	}
	return out, nil
}

// fallbackSparseBody treats [24+key_length, len-24-sha_len) as the raw
// body when a trailing SimpleFileEOF is present, else [24+key_length, len).
func fallbackSparseBody(b []byte, keyLength int) []byte {
	start := simpleCacheHeaderSize + keyLength
	if start > len(b) {
		return nil
	}
	end := len(b)
	if end-simpleCacheEOFSize >= start {
		if eof, ok := parseEOF(b[end-simpleCacheEOFSize:]); ok {
			shaLen := 0
			if eof.hasKeySHA256() {
				shaLen = 32
			}
			end = end - simpleCacheEOFSize - shaLen
		}
	}
	if end < start {
		return nil
	}
	return b[start:end]
}

// TotalSize walks the same range sequence as Reassemble without
// allocating a reassembly buffer, for the sparse_total_size host command.
func TotalSize(b []byte) (uint64, error) {
	chunks, keyLength, ok := walkSparseRanges(b)
	if !ok {
		return 0, fmt.Errorf("cache: invalid sparse header")
	}
	if len(chunks) == 0 {
		return uint64(len(fallbackSparseBody(b, keyLength))), nil
	}
	var size uint64
	for _, c := range chunks {
		end := c.offset + uint64(len(c.data))
		if end > size {
			size = end
		}
	}
	return size, nil
}

// Prefix returns the first min(n, 4096) bytes of the reassembled sparse
// stream, for a host-side preview. It reassembles the whole stream with
// Reassemble and then slices it; it does not assemble a partial buffer.
func Prefix(b []byte, n int) ([]byte, error) {
	if n > 4096 {
		n = 4096
	}
	full, err := Reassemble(b)
	if err != nil {
		return nil, err
	}
	if n > len(full) {
		n = len(full)
	}
	return full[:n], nil
}
