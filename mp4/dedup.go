package mp4

// DedupMoov walks b's top-level boxes and counts moov occurrences. If more
// than one is present, it returns a new buffer keeping only the first moov
// and every other top-level box in original order, along with the
// pre-dedup count. If at most one moov is present, it returns the count
// and a nil buffer — the caller makes no changes in that case.
func DedupMoov(b []byte) (count int, deduped []byte) {
	boxes := EnumerateTopLevelBoxes(b)

	for _, box := range boxes {
		if box.Type == "moov" {
			count++
		}
	}
	if count <= 1 {
		return count, nil
	}

	out := make([]byte, 0, len(b))
	keptMoov := false
	for _, box := range boxes {
		if box.Type == "moov" {
			if keptMoov {
				continue
			}
			keptMoov = true
		}
		end := box.End()
		if box.DeclaredSize == 0 {
			end = len(b)
		}
		out = append(out, b[box.Offset:end]...)
	}
	return count, out
}
