//go:build linux

package discovery

import (
	"os"
	"path/filepath"
)

// On Linux, Discord's client variants and Chromium-family browsers both
// store their profile data under $XDG_CONFIG_HOME (default ~/.config).
func configHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

func discordCacheDir(client string) string {
	base := configHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, client, "Cache", "Cache_Data")
}

func chromiumUserDataDir(client string) string {
	base := configHome()
	if base == "" {
		return ""
	}
	switch client {
	case "Google/Chrome":
		return filepath.Join(base, "google-chrome")
	case "BraveSoftware/Brave-Browser":
		return filepath.Join(base, "BraveSoftware", "Brave-Browser")
	case "Microsoft/Edge":
		return filepath.Join(base, "microsoft-edge")
	case "Opera Software/Opera Stable":
		return filepath.Join(base, "opera")
	default:
		return ""
	}
}
