//go:build darwin

package discovery

import (
	"os"
	"path/filepath"
)

// On macOS, Discord clients and Chromium-family browsers both store
// profile data under ~/Library/Application Support.
func appSupport() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Application Support")
}

func discordCacheDir(client string) string {
	base := appSupport()
	if base == "" {
		return ""
	}
	// Discord's macOS data folders use the same all-lowercase names as
	// the client ids.
	name := map[string]string{
		"discord":             "discord",
		"discordptb":          "discordptb",
		"discordcanary":       "discordcanary",
		"discorddevelopment":  "discorddevelopment",
	}[client]
	return filepath.Join(base, name, "Cache", "Cache_Data")
}

func chromiumUserDataDir(client string) string {
	base := appSupport()
	if base == "" {
		return ""
	}
	switch client {
	case "Google/Chrome":
		return filepath.Join(base, "Google", "Chrome")
	case "BraveSoftware/Brave-Browser":
		return filepath.Join(base, "BraveSoftware", "Brave-Browser")
	case "Microsoft/Edge":
		return filepath.Join(base, "Microsoft Edge")
	case "Opera Software/Opera Stable":
		return filepath.Join(base, "com.operasoftware.Opera")
	default:
		return ""
	}
}
