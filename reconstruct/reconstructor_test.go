package reconstruct

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func box(fourcc string, payload []byte) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(8+len(payload)))
	out = append(out, []byte(fourcc)...)
	out = append(out, payload...)
	return out
}

func moovBox(padTo int) []byte {
	interior := append([]byte("mvhd0000000000000000000trak0000"), make([]byte, 0)...)
	if pad := padTo - 8 - len(interior); pad > 0 {
		interior = append(interior, make([]byte, pad)...)
	}
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(8+len(interior)))
	out = append(out, []byte("moov")...)
	out = append(out, interior...)
	return out
}

// TestReconstruct_MoovAtFront builds a synthetic progressive-layout input:
// the header chunk holds ftyp, then moov, then mdat, and no middle or tail
// chunks are passed. The concatenation's moov sits in the first half, so
// the reconstructor should emit it unchanged.
func TestReconstruct_MoovAtFront(t *testing.T) {
	dir := t.TempDir()

	ftyp := box("ftyp", []byte("isomiso2"))
	moov := moovBox(600)
	mdatPayload := make([]byte, 64)
	for i := range mdatPayload {
		mdatPayload[i] = byte(i)
	}
	mdat := box("mdat", mdatPayload)

	headerBody := append(append([]byte{}, ftyp...), moov...)
	headerBody = append(headerBody, mdat...)

	headerPath := filepath.Join(dir, "f_000001")
	if err := os.WriteFile(headerPath, headerBody, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := Reconstruct(headerPath, nil, filepath.Join(dir, "out.mp4"))
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if out != uint64(len(headerBody)) {
		t.Errorf("bytes written = %d, want %d", out, len(headerBody))
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.mp4"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != len(headerBody) {
		t.Errorf("output size = %d, want %d", len(data), len(headerBody))
	}
}

// TestReconstruct_GapPadding exercises Scenario 6: a hex jump from
// f_000010 to f_000013 across 64 KiB modal chunks should leave exactly two
// chunks' worth of zero padding in the moov-at-end assembly.
func TestReconstruct_GapPadding(t *testing.T) {
	dir := t.TempDir()
	const chunkSize = 64 * 1024

	ftyp := box("ftyp", []byte("isomiso2"))
	// The mdat box declares a size covering media data spread across
	// several chunk files; only a small fragment of it is actually
	// present in the header chunk on disk, matching how Chromium splits
	// one logical mdat across many blockfile entries.
	headerPayload := make([]byte, 8)
	declaredMdatPayload := uint32(3*chunkSize + len(headerPayload))
	mdat := make([]byte, 4)
	binary.BigEndian.PutUint32(mdat, 8+declaredMdatPayload)
	mdat = append(mdat, []byte("mdat")...)
	mdat = append(mdat, headerPayload...)
	headerBody := append(append([]byte{}, ftyp...), mdat...)
	headerPath := filepath.Join(dir, "f_000010")
	if err := os.WriteFile(headerPath, headerBody, 0o644); err != nil {
		t.Fatal(err)
	}

	chunk13 := make([]byte, chunkSize)
	for i := range chunk13 {
		chunk13[i] = 0xBB
	}
	chunk13Path := filepath.Join(dir, "f_000013")
	if err := os.WriteFile(chunk13Path, chunk13, 0o644); err != nil {
		t.Fatal(err)
	}

	// The tail's hex key is deliberately lower than the header's, so the
	// gap baseline max(header_hex, tail_hex) equals header_hex and the
	// two-chunk gap before f_000013 is actually visible (see the
	// reconstructor's documented caveat about tail_hex dominating the
	// baseline when the browser writes the tail file last).
	tailBody := moovBox(600)
	tailPath := filepath.Join(dir, "f_00000a")
	if err := os.WriteFile(tailPath, tailBody, 0o644); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "out.mp4")
	n, err := Reconstruct(headerPath, []string{chunk13Path, tailPath}, outPath)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if uint64(len(out)) != n {
		t.Fatalf("reported %d bytes, file has %d", n, len(out))
	}

	// Locate where f_000013's 0xBB content lands; everything between the
	// header's own payload and that point should be exactly two chunks
	// of zero padding (f_000011 and f_000012 are missing from input).
	postHeaderStart := len(ftyp) + 8 + len(headerPayload) // ftyp + mdat header + header payload
	bbStart := -1
	for i := postHeaderStart; i < len(out); i++ {
		if out[i] == 0xBB {
			bbStart = i
			break
		}
	}
	if bbStart < 0 {
		t.Fatalf("expected to find f_000013's content in output")
	}
	gapLen := bbStart - postHeaderStart
	if gapLen != 2*chunkSize {
		t.Errorf("gap before f_000013 content = %d bytes, want %d", gapLen, 2*chunkSize)
	}
	for i := postHeaderStart; i < bbStart; i++ {
		if out[i] != 0 {
			t.Fatalf("expected zero padding at offset %d, got %d", i, out[i])
		}
	}
}
