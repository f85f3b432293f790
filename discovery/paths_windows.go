//go:build windows

package discovery

import (
	"os"
	"path/filepath"
)

// On Windows, Discord clients live under %APPDATA% and Chromium-family
// browsers under %LOCALAPPDATA%.
func discordCacheDir(client string) string {
	base := os.Getenv("APPDATA")
	if base == "" {
		return ""
	}
	return filepath.Join(base, client, "Cache", "Cache_Data")
}

func chromiumUserDataDir(client string) string {
	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		return ""
	}
	switch client {
	case "Google/Chrome":
		return filepath.Join(base, "Google", "Chrome", "User Data")
	case "BraveSoftware/Brave-Browser":
		return filepath.Join(base, "BraveSoftware", "Brave-Browser", "User Data")
	case "Microsoft/Edge":
		return filepath.Join(base, "Microsoft", "Edge", "User Data")
	case "Opera Software/Opera Stable":
		return filepath.Join(base, "Opera Software", "Opera Stable")
	default:
		return ""
	}
}
