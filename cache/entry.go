package cache

import "fmt"

// ReadBody loads path, classifies it, and returns the HTTP body with the
// Simple Cache framing stripped — stream1 for a stream1 file, the body for
// a stream2 file, or the reassembled buffer for a sparse file. Blockfile
// entries have no framing to strip and are returned verbatim.
func ReadBody(path string) ([]byte, error) {
	raw, err := ReadWithLockRetry(path)
	if err != nil {
		return nil, err
	}
	return StripWrapper(raw, Classify(baseName(path)))
}

// StripWrapper removes the Simple Cache envelope for the given variant.
// Blockfile and unknown variants are returned unchanged; a stream1 or
// stream2 entry whose framing does not parse, or a sparse entry with a bad
// header, is reported as an error.
func StripWrapper(raw []byte, v Variant) ([]byte, error) {
	switch v {
	case VariantSimpleStream1:
		layout, ok := ParseStream1Layout(raw)
		if !ok {
			return nil, fmt.Errorf("cache: not a valid stream1 entry")
		}
		return ExtractHTTPBody(raw, layout), nil
	case VariantSimpleStream2:
		layout, ok := ParseStream2Layout(raw)
		if !ok {
			return nil, fmt.Errorf("cache: not a valid stream2 entry")
		}
		return ExtractHTTPBodyStream2(raw, layout), nil
	case VariantSimpleSparse:
		return Reassemble(raw)
	default:
		return raw, nil
	}
}

// ReadContentType loads path and returns the lowercase MIME type recorded
// in stream0's HTTP headers, or "" if the entry has no stream1 header
// block (stream2/sparse/blockfile entries carry no headers of their own).
func ReadContentType(path string) (string, error) {
	raw, err := ReadWithLockRetry(path)
	if err != nil {
		return "", err
	}
	if Classify(baseName(path)) != VariantSimpleStream1 {
		return "", nil
	}
	layout, ok := ParseStream1Layout(raw)
	if !ok {
		return "", nil
	}
	headers := ExtractHTTPHeaders(raw, layout)
	if headers == nil {
		return "", nil
	}
	return ExtractContentType(headers), nil
}

func baseName(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '/' && path[i] != '\\' {
		i--
	}
	return path[i+1:]
}
