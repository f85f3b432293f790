// Package reconstruct orchestrates ChunkedMp4Reconstructor: rebuilding a
// fragmented MP4 from one header chunk plus N body chunks plus an optional
// tail chunk carrying the moov atom, using Chromium Blockfile filename hex
// keys as the original ordering.
package reconstruct

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cachesalvage/cache"
	"cachesalvage/mp4"
)

// Reconstruct implements Phases A-F of the chunked MP4 reconstruction
// algorithm. chunkPaths must already be sorted lexicographically by the
// caller (the core performs no ordering decisions of its own beyond the
// hex-key gap arithmetic in Phase E). It returns the number of bytes
// written to outputPath.
func Reconstruct(headerPath string, chunkPaths []string, outputPath string) (uint64, error) {
	headerBody, err := cache.ReadWithLockRetry(headerPath)
	if err != nil {
		return 0, fmt.Errorf("reconstruct: reading header: %w", err)
	}

	hdr, err := parseHeaderLayout(headerBody)
	if err != nil {
		return 0, fmt.Errorf("reconstruct: %w", err)
	}

	chunks, err := loadChunks(chunkPaths)
	if err != nil {
		return 0, err
	}

	fullChunkSize := modalChunkSize(chunks)

	tail, middles := selectTail(chunks, fullChunkSize)

	concat := concatenate(headerBody, middles, tail)
	moovOffset, moovSize, moovFound := mp4.ScanForMoov(concat)

	var out []byte
	if moovFound && moovOffset >= len(concat)/2 {
		out = assembleMoovAtEnd(hdr, headerPath, headerBody, middles, tail, moovSize, fullChunkSize)
	} else {
		out = concat
	}

	if err := writeAtomic(outputPath, out); err != nil {
		return 0, fmt.Errorf("reconstruct: writing output: %w", err)
	}
	return uint64(len(out)), nil
}

type chunkFile struct {
	path string
	hex  uint64
	body []byte
}

func loadChunks(paths []string) ([]chunkFile, error) {
	chunks := make([]chunkFile, 0, len(paths))
	for _, p := range paths {
		body, err := cache.ReadWithLockRetry(p)
		if err != nil {
			return nil, fmt.Errorf("reconstruct: reading chunk %s: %w", p, err)
		}
		hex, _ := cache.ParseBlockfileHex(filepath.Base(p))
		chunks = append(chunks, chunkFile{path: p, hex: hex, body: body})
	}
	return chunks, nil
}

// modalChunkSize computes the predominant body length among non-header
// chunks. Ties are broken deterministically by preferring the
// first-encountered size with the maximum count.
func modalChunkSize(chunks []chunkFile) int {
	counts := make(map[int]int)
	order := make([]int, 0, len(chunks))
	for _, c := range chunks {
		size := len(c.body)
		if counts[size] == 0 {
			order = append(order, size)
		}
		counts[size]++
	}
	best := 0
	bestCount := -1
	for _, size := range order {
		if counts[size] > bestCount {
			bestCount = counts[size]
			best = size
		}
	}
	return best
}

// selectTail implements Phase C: undersized chunks are scanned first for a
// moov; if none carry one, every chunk (including full-sized) is scanned
// as a fallback.
func selectTail(chunks []chunkFile, fullChunkSize int) (tail *chunkFile, middles []chunkFile) {
	var tailIdx = -1
	for i, c := range chunks {
		if len(c.body) >= fullChunkSize {
			continue
		}
		if _, _, found := mp4.ScanForMoov(c.body); found {
			tailIdx = i
			break
		}
	}
	if tailIdx < 0 {
		for i, c := range chunks {
			if _, _, found := mp4.ScanForMoov(c.body); found {
				tailIdx = i
				break
			}
		}
	}

	if tailIdx < 0 {
		return nil, chunks
	}
	t := chunks[tailIdx]
	middles = make([]chunkFile, 0, len(chunks)-1)
	for i, c := range chunks {
		if i == tailIdx {
			continue
		}
		middles = append(middles, c)
	}
	return &t, middles
}

func concatenate(headerBody []byte, middles []chunkFile, tail *chunkFile) []byte {
	size := len(headerBody)
	for _, m := range middles {
		size += len(m.body)
	}
	if tail != nil {
		size += len(tail.body)
	}
	out := make([]byte, 0, size)
	out = append(out, headerBody...)
	for _, m := range middles {
		out = append(out, m.body...)
	}
	if tail != nil {
		out = append(out, tail.body...)
	}
	return out
}

type headerLayout struct {
	ftypOffset     int
	ftypSize       uint64
	mdatOffset     int
	mdatDeclared   uint64
	mdatHeaderSize int
	gapBeforeMdat  int
}

func parseHeaderLayout(body []byte) (headerLayout, error) {
	ftypOffset, ftypSize, _, found := mp4.FindBox(body, "ftyp")
	if !found {
		return headerLayout{}, fmt.Errorf("header file has no ftyp box")
	}
	mdatOffset, mdatSize, mdatHdrSize, found := mp4.FindBox(body, "mdat")
	if !found {
		return headerLayout{}, fmt.Errorf("header file has no mdat box")
	}
	return headerLayout{
		ftypOffset:     ftypOffset,
		ftypSize:       ftypSize,
		mdatOffset:     mdatOffset,
		mdatDeclared:   mdatSize,
		mdatHeaderSize: mdatHdrSize,
		gapBeforeMdat:  mdatOffset - (ftypOffset + int(ftypSize)),
	}, nil
}

// assembleMoovAtEnd implements Phase E's streaming-layout synthesis: a
// buffer sized exactly to the original file, with ftyp, the ftyp-mdat gap
// (typically a free box, preserved so moov's sample-table offsets stay
// valid), a freshly written mdat header, the header chunk's post-mdat-
// header payload, the middle chunks placed with hex-gap padding, and the
// tail (carrying moov) at the very end.
func assembleMoovAtEnd(hdr headerLayout, headerPath string, headerBody []byte, middles []chunkFile, tail *chunkFile, moovSize int, fullChunkSize int) []byte {
	originalSize := int(hdr.ftypSize) + hdr.gapBeforeMdat + int(hdr.mdatDeclared) + moovSize
	out := make([]byte, originalSize)

	copy(out[0:hdr.ftypSize], headerBody[hdr.ftypOffset:hdr.ftypOffset+int(hdr.ftypSize)])

	gapStart := int(hdr.ftypSize)
	gapEnd := gapStart + hdr.gapBeforeMdat
	copy(out[gapStart:gapEnd], headerBody[hdr.ftypOffset+int(hdr.ftypSize):hdr.mdatOffset])

	mdatStart := gapEnd
	writeMdatHeader(out[mdatStart:], hdr.mdatDeclared, hdr.mdatHeaderSize)

	postHeaderStart := mdatStart + hdr.mdatHeaderSize
	postHeaderSrc := headerBody[hdr.mdatOffset+hdr.mdatHeaderSize:]
	n := copy(out[postHeaderStart:], postHeaderSrc)
	pos := postHeaderStart + n

	var tailBodyLen int
	var tailHex uint64
	if tail != nil {
		tailBodyLen = len(tail.body)
		tailHex, _ = cache.ParseBlockfileHex(filepath.Base(tail.path))
	}
	tailStart := originalSize - tailBodyLen

	headerHex, _ := cache.ParseBlockfileHex(filepath.Base(headerPath))
	lastWrittenHex := headerHex
	if tailHex > lastWrittenHex {
		lastWrittenHex = tailHex
	}

	sorted := make([]chunkFile, len(middles))
	copy(sorted, middles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].hex < sorted[j].hex })

	for _, m := range sorted {
		if pos >= tailStart {
			break
		}
		if len(m.body) != fullChunkSize {
			continue
		}
		if m.hex > lastWrittenHex+1 {
			gap := int(m.hex-lastWrittenHex) - 1
			advance := gap * fullChunkSize
			if advance > tailStart-pos {
				advance = tailStart - pos
			}
			pos += advance
		}
		remaining := tailStart - pos
		if remaining <= 0 {
			break
		}
		writeLen := len(m.body)
		if writeLen > remaining {
			writeLen = remaining
		}
		copy(out[pos:pos+writeLen], m.body[:writeLen])
		pos += writeLen
		lastWrittenHex = m.hex
	}

	if tail != nil {
		writeLen := tailBodyLen
		if tailStart+writeLen > originalSize {
			writeLen = originalSize - tailStart
		}
		copy(out[tailStart:tailStart+writeLen], tail.body[:writeLen])
	}

	return out
}

// writeMdatHeader emits an 8-byte (32-bit size) or 16-byte (size==1,
// 64-bit extended) mdat box header matching the original's framing.
func writeMdatHeader(dst []byte, declaredSize uint64, headerSize int) {
	if headerSize == 16 {
		dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 1
		copy(dst[4:8], "mdat")
		putUint64BE(dst[8:16], declaredSize)
		return
	}
	putUint32BE(dst[0:4], uint32(declaredSize))
	copy(dst[4:8], "mdat")
}

func putUint32BE(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

func putUint64BE(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[7-i] = byte(v >> (8 * i))
	}
}

// writeAtomic writes data to path, creating parent directories as needed.
func writeAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
