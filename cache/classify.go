package cache

import (
	"regexp"
	"strconv"
)

// Variant identifies which of the four on-disk cache entry file patterns a
// filename matches.
type Variant int

const (
	VariantUnknown Variant = iota
	VariantBlockfile
	VariantSimpleStream1
	VariantSimpleStream2
	VariantSimpleSparse
)

func (v Variant) String() string {
	switch v {
	case VariantBlockfile:
		return "blockfile"
	case VariantSimpleStream1:
		return "simple-stream1"
	case VariantSimpleStream2:
		return "simple-stream2"
	case VariantSimpleSparse:
		return "simple-sparse"
	default:
		return "unknown"
	}
}

var (
	blockfilePattern = regexp.MustCompile(`^f_[0-9a-f]{6}$`)
	simplePattern    = regexp.MustCompile(`^[0-9a-f]{16}_([01s])$`)
)

// Classify implements CacheEntryClassifier: filename pattern matching only,
// no file content is consulted.
func Classify(name string) Variant {
	if blockfilePattern.MatchString(name) {
		return VariantBlockfile
	}
	if m := simplePattern.FindStringSubmatch(name); m != nil {
		switch m[1] {
		case "0":
			return VariantSimpleStream1
		case "1":
			return VariantSimpleStream2
		case "s":
			return VariantSimpleSparse
		}
	}
	return VariantUnknown
}

// ParseBlockfileHex extracts the 6-hex-digit ordering key from a
// Blockfile filename ("f_000a1b" -> 0xa1b). It reports false for any name
// that isn't a valid Blockfile pattern.
func ParseBlockfileHex(name string) (uint64, bool) {
	if !blockfilePattern.MatchString(name) {
		return 0, false
	}
	v, err := strconv.ParseUint(name[2:], 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsCacheFile reports whether name matches any of the four recognized
// cache entry patterns; index/journal files and anything else are
// rejected.
func IsCacheFile(name string) bool {
	return Classify(name) != VariantUnknown
}
