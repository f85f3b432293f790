package discovery

import (
	"os"

	"cachesalvage/cache"
)

// ValidationResult is the validate_path host command's response.
type ValidationResult struct {
	Exists         bool
	CacheFileCount int
	TotalSize      int64
	ClientLabel    string
}

// ValidatePath reports whether dir exists and, if so, how many recognized
// cache entries it holds and their combined size.
func ValidatePath(dir string) (ValidationResult, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ValidationResult{Exists: false}, nil
	}

	files, err := ListCacheFiles(dir)
	if err != nil {
		return ValidationResult{Exists: true}, err
	}

	var total int64
	for _, f := range files {
		total += f.Size
	}

	return ValidationResult{
		Exists:         true,
		CacheFileCount: len(files),
		TotalSize:      total,
		ClientLabel:    labelForPath(dir),
	}, nil
}

// labelForPath makes a best-effort guess at which client family owns dir,
// purely for display; it never affects parsing behavior.
func labelForPath(dir string) string {
	for _, c := range EnumerateDefaultPaths() {
		if c.Path == dir {
			if c.ProfileName != "" {
				return c.ClientLabel + " (" + c.ProfileName + ")"
			}
			return c.ClientLabel
		}
	}
	return ""
}

// IsCacheFile re-exports the classifier's filename check for callers that
// only have the discovery package imported.
func IsCacheFile(name string) bool { return cache.IsCacheFile(name) }
