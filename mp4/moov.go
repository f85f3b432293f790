package mp4

import (
	"bytes"
	"encoding/binary"
)

const (
	moovSizeMin = 500
	moovSizeMax = 2_000_000
)

// ScanForMoov searches anywhere in b (not just at top level) for the
// literal "moov" fourcc. A candidate is accepted only if: the 4 bytes
// preceding it decode as a big-endian size in [500, 2_000_000], the
// candidate's declared extent fits inside b, and its interior contains
// both "mvhd" and "trak". The first accepted candidate wins; the bounds
// and interior check are a tolerance heuristic for locating a moov atom
// inside an otherwise-unparsed blob, not a full box walk.
func ScanForMoov(b []byte) (offset int, size int, found bool) {
	needle := []byte("moov")
	searchFrom := 0
	for {
		idx := bytes.Index(b[searchFrom:], needle)
		if idx < 0 {
			return 0, 0, false
		}
		moovPos := searchFrom + idx
		searchFrom = moovPos + 1

		if moovPos < 4 {
			continue
		}
		sizePos := moovPos - 4
		candidateSize := int(binary.BigEndian.Uint32(b[sizePos : sizePos+4]))
		if candidateSize < moovSizeMin || candidateSize > moovSizeMax {
			continue
		}
		end := sizePos + candidateSize
		if end > len(b) {
			continue
		}
		interior := b[moovPos+4 : end]
		if !bytes.Contains(interior, []byte("mvhd")) || !bytes.Contains(interior, []byte("trak")) {
			continue
		}
		return sizePos, candidateSize, true
	}
}
