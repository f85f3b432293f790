// Package mp4 walks ISO Base Media File Format (MP4) top-level boxes: the
// plain and 64-bit-extended size framing, the moov-location heuristic used
// to recover a likely moov atom from an otherwise unparsed buffer, and the
// de-duplication of redundant top-level moov boxes.
package mp4

import "encoding/binary"

// Box describes one top-level ISO-BMFF box: its absolute offset and
// declared size in the source buffer, whether its header was 8 or 16
// bytes (16 for the size==1 extended-size form), and its four-character
// type.
type Box struct {
	Offset       int
	DeclaredSize uint64
	HeaderSize   int
	Type         string
}

// End returns the box's exclusive end offset.
func (b Box) End() int { return b.Offset + int(b.DeclaredSize) }

func isPrintableFourCC(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// EnumerateTopLevelBoxes walks b from offset 0, returning every box
// encountered before the walk halts. A halt (non-printable fourcc,
// non-progressing or out-of-bounds size) stops the walk without an error:
// partial results are valid, matching the decoder's "never throw for
// recoverable corruption" policy.
func EnumerateTopLevelBoxes(b []byte) []Box {
	var boxes []Box
	pos := 0
	for pos+8 <= len(b) {
		box, ok := readBoxAt(b, pos)
		if !ok {
			break
		}
		next := pos + int(box.DeclaredSize)
		if box.DeclaredSize == 0 {
			// "extends to EOF" is a valid terminal box; include it and stop.
			boxes = append(boxes, box)
			break
		}
		if next <= pos || next > len(b) {
			break
		}
		boxes = append(boxes, box)
		pos = next
	}
	return boxes
}

// readBoxAt decodes one box header at pos. It returns ok=false on any
// condition that should halt the walk: truncated header, declared size < 8
// (for the 32-bit form), or a non-printable fourcc.
func readBoxAt(b []byte, pos int) (Box, bool) {
	if pos+8 > len(b) {
		return Box{}, false
	}
	size32 := binary.BigEndian.Uint32(b[pos : pos+4])
	fourcc := b[pos+4 : pos+8]
	if !isPrintableFourCC(fourcc) {
		return Box{}, false
	}

	switch size32 {
	case 0:
		return Box{Offset: pos, DeclaredSize: 0, HeaderSize: 8, Type: string(fourcc)}, true
	case 1:
		if pos+16 > len(b) {
			return Box{}, false
		}
		ext := binary.BigEndian.Uint64(b[pos+8 : pos+16])
		return Box{Offset: pos, DeclaredSize: ext, HeaderSize: 16, Type: string(fourcc)}, true
	default:
		if size32 < 8 {
			return Box{}, false
		}
		return Box{Offset: pos, DeclaredSize: uint64(size32), HeaderSize: 8, Type: string(fourcc)}, true
	}
}

// FindBox walks top-level boxes looking for the first occurrence of
// fourcc, returning its offset, declared size, and header size.
func FindBox(b []byte, fourcc string) (offset int, size uint64, headerSize int, found bool) {
	pos := 0
	for pos+8 <= len(b) {
		box, ok := readBoxAt(b, pos)
		if !ok {
			break
		}
		if box.Type == fourcc {
			return box.Offset, box.DeclaredSize, box.HeaderSize, true
		}
		next := pos + int(box.DeclaredSize)
		if box.DeclaredSize == 0 {
			break
		}
		if next <= pos || next > len(b) {
			break
		}
		pos = next
	}
	return 0, 0, 0, false
}
