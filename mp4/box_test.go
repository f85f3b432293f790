package mp4

import "testing"

func TestFindBox_Scenario4(t *testing.T) {
	b := []byte{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p'}
	b = append(b, make([]byte, 0x20-8)...)

	off, size, hdr, found := FindBox(b, "ftyp")
	if !found {
		t.Fatalf("expected ftyp to be found")
	}
	if off != 0 || size != 32 || hdr != 8 {
		t.Errorf("got (%d, %d, %d), want (0, 32, 8)", off, size, hdr)
	}
}

func TestFindBox_Scenario5_ExtendedSize(t *testing.T) {
	b := []byte{0x00, 0x00, 0x00, 0x01, 'm', 'd', 'a', 't', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00}
	b = append(b, make([]byte, 4096-16)...)

	off, size, hdr, found := FindBox(b, "mdat")
	if !found {
		t.Fatalf("expected mdat to be found")
	}
	if off != 0 || size != 4096 || hdr != 16 {
		t.Errorf("got (%d, %d, %d), want (0, 4096, 16)", off, size, hdr)
	}
}

func TestFindBox_NotFound(t *testing.T) {
	b := []byte{0x00, 0x00, 0x00, 0x08, 'f', 't', 'y', 'p'}
	if _, _, _, found := FindBox(b, "mdat"); found {
		t.Errorf("expected not found")
	}
}

func TestEnumerateTopLevelBoxes_HaltsOnNonPrintableFourCC(t *testing.T) {
	b := []byte{0x00, 0x00, 0x00, 0x08, 'f', 't', 'y', 'p'}
	b = append(b, 0x00, 0x00, 0x00, 0x08, 0x01, 0x02, 0x03, 0x04) // non-printable fourcc
	boxes := EnumerateTopLevelBoxes(b)
	if len(boxes) != 1 {
		t.Fatalf("expected walk to halt after 1 box, got %d", len(boxes))
	}
	if boxes[0].Type != "ftyp" {
		t.Errorf("expected ftyp, got %s", boxes[0].Type)
	}
}

func TestEnumerateTopLevelBoxes_HaltsOnUndersizedBox(t *testing.T) {
	b := []byte{0x00, 0x00, 0x00, 0x04, 'f', 'r', 'e', 'e'} // size 4 < 8, invalid
	boxes := EnumerateTopLevelBoxes(b)
	if len(boxes) != 0 {
		t.Errorf("expected no boxes, got %d", len(boxes))
	}
}

func TestEnumerateTopLevelBoxes_ZeroSizeExtendsToEOF(t *testing.T) {
	b := []byte{0x00, 0x00, 0x00, 0x08, 'f', 't', 'y', 'p'}
	b = append(b, 0x00, 0x00, 0x00, 0x00, 'm', 'd', 'a', 't')
	b = append(b, make([]byte, 100)...)

	boxes := EnumerateTopLevelBoxes(b)
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(boxes))
	}
	if boxes[1].Type != "mdat" || boxes[1].DeclaredSize != 0 {
		t.Errorf("expected trailing zero-size mdat, got %+v", boxes[1])
	}
}
