package cache

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func sparseHeader(keyLength uint32) []byte {
	h := make([]byte, simpleCacheHeaderSize)
	binary.LittleEndian.PutUint64(h[0:8], simpleCacheHeaderMagic)
	binary.LittleEndian.PutUint32(h[12:16], keyLength)
	return h
}

func rangeHeader(offset, length uint64) []byte {
	r := make([]byte, sparseRangeHeaderSize)
	binary.LittleEndian.PutUint64(r[0:8], sparseRangeMagic)
	binary.LittleEndian.PutUint64(r[8:16], offset)
	binary.LittleEndian.PutUint64(r[16:24], length)
	return r
}

func TestReassemble_Scenario2(t *testing.T) {
	key := []byte("key4")
	data := []byte{1, 2, 3, 4, 5}

	var buf []byte
	buf = append(buf, sparseHeader(uint32(len(key)))...)
	buf = append(buf, key...)
	buf = append(buf, rangeHeader(10, uint64(len(data)))...)
	buf = append(buf, data...)

	got, err := Reassemble(buf)
	if err != nil {
		t.Fatalf("Reassemble: %v", err)
	}
	if len(got) != 15 {
		t.Fatalf("len = %d, want 15", len(got))
	}
	want := append(make([]byte, 10), data...)
	if !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	total, err := TotalSize(buf)
	if err != nil {
		t.Fatalf("TotalSize: %v", err)
	}
	if total != 15 {
		t.Errorf("TotalSize = %d, want 15", total)
	}
}

func TestReassemble_Scenario3_GapIsZero(t *testing.T) {
	key := []byte("k")
	var buf []byte
	buf = append(buf, sparseHeader(uint32(len(key)))...)
	buf = append(buf, key...)
	buf = append(buf, rangeHeader(0, 3)...)
	buf = append(buf, []byte{1, 2, 3}...)
	buf = append(buf, rangeHeader(6, 3)...)
	buf = append(buf, []byte{7, 8, 9}...)

	got, err := Reassemble(buf)
	if err != nil {
		t.Fatalf("Reassemble: %v", err)
	}
	if len(got) != 9 {
		t.Fatalf("len = %d, want 9", len(got))
	}
	for _, i := range []int{3, 4, 5} {
		if got[i] != 0 {
			t.Errorf("byte %d = %d, want 0", i, got[i])
		}
	}
}

func TestReassemble_FallbackNoRanges(t *testing.T) {
	key := []byte("k")
	body := []byte("raw contiguous sparse body with no range framing")

	var buf []byte
	buf = append(buf, sparseHeader(uint32(len(key)))...)
	buf = append(buf, key...)
	buf = append(buf, body...)

	got, err := Reassemble(buf)
	if err != nil {
		t.Fatalf("Reassemble: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("got %q, want %q", got, body)
	}
}

func TestPrefix_CapsAt4096(t *testing.T) {
	key := []byte("k")
	data := bytes.Repeat([]byte{0xAB}, 5000)

	var buf []byte
	buf = append(buf, sparseHeader(uint32(len(key)))...)
	buf = append(buf, key...)
	buf = append(buf, rangeHeader(0, uint64(len(data)))...)
	buf = append(buf, data...)

	got, err := Prefix(buf, 100000)
	if err != nil {
		t.Fatalf("Prefix: %v", err)
	}
	if len(got) != 4096 {
		t.Errorf("len = %d, want 4096", len(got))
	}
}
