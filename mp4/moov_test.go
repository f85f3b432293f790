package mp4

import (
	"encoding/binary"
	"testing"
)

func buildMoov(interiorExtra []byte) []byte {
	interior := append([]byte("mvhd....................trak...."), interiorExtra...)
	size := 8 + len(interior)
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(size))
	out = append(out, []byte("moov")...)
	out = append(out, interior...)
	return out
}

func TestScanForMoov_Found(t *testing.T) {
	prefix := make([]byte, 20)
	moov := buildMoov(make([]byte, 500))
	buf := append(prefix, moov...)

	off, size, found := ScanForMoov(buf)
	if !found {
		t.Fatalf("expected moov to be found")
	}
	if off != len(prefix) {
		t.Errorf("offset = %d, want %d", off, len(prefix))
	}
	if off+size > len(buf) {
		t.Errorf("candidate extends past buffer: off=%d size=%d len=%d", off, size, len(buf))
	}
}

func TestScanForMoov_RejectsOutOfWindowSize(t *testing.T) {
	// Declared size is far too small to be a plausible moov.
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, 10)
	out = append(out, []byte("moovmvhdtrak")...)

	if _, _, found := ScanForMoov(out); found {
		t.Errorf("expected no match for undersized candidate")
	}
}

func TestScanForMoov_RejectsMissingInterior(t *testing.T) {
	size := 600
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(size))
	out = append(out, []byte("moov")...)
	out = append(out, make([]byte, size-8)...) // no mvhd/trak inside

	if _, _, found := ScanForMoov(out); found {
		t.Errorf("expected no match without mvhd/trak interior")
	}
}

func TestScanForMoov_NoneFound(t *testing.T) {
	if _, _, found := ScanForMoov([]byte("nothing relevant here")); found {
		t.Errorf("expected no match")
	}
}

func TestDedupMoov_SingleMoovUnchanged(t *testing.T) {
	ftyp := []byte{0x00, 0x00, 0x00, 0x08, 'f', 't', 'y', 'p'}
	moov := buildMoov(make([]byte, 10))
	buf := append(append([]byte{}, ftyp...), moov...)

	count, out := DedupMoov(buf)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if out != nil {
		t.Errorf("expected nil output for single moov")
	}
}

func TestDedupMoov_DuplicatesRemoved(t *testing.T) {
	ftyp := []byte{0x00, 0x00, 0x00, 0x08, 'f', 't', 'y', 'p'}
	moov1 := buildMoov(make([]byte, 10))
	moov2 := buildMoov(make([]byte, 20))

	var buf []byte
	buf = append(buf, ftyp...)
	buf = append(buf, moov1...)
	buf = append(buf, moov2...)

	count, out := DedupMoov(buf)
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	boxes := EnumerateTopLevelBoxes(out)
	moovCount := 0
	for _, box := range boxes {
		if box.Type == "moov" {
			moovCount++
		}
	}
	if moovCount != 1 {
		t.Errorf("deduped output has %d moov boxes, want 1", moovCount)
	}
	if len(out) != len(ftyp)+len(moov1) {
		t.Errorf("len(out) = %d, want %d", len(out), len(ftyp)+len(moov1))
	}
}
