// Package discovery enumerates cache directories for the known Discord and
// Chromium-family client installs, validates candidate paths, and lists the
// cache entry files inside them. Per-OS path tables live in build-tagged
// files; this file holds the platform-independent walk logic.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cachesalvage/cache"
)

// ClientFamily groups the well-known install layouts this tool knows how
// to probe.
type ClientFamily int

const (
	FamilyDiscord ClientFamily = iota
	FamilyChromium
)

// discordClients mirrors the four Discord desktop variants that ship a
// Chromium-derived cache.
var discordClients = []string{"discord", "discordptb", "discordcanary", "discorddevelopment"}

// chromiumClients are the browser installs probed for a multi-profile
// Chromium cache layout.
var chromiumClients = []string{"Google/Chrome", "BraveSoftware/Brave-Browser", "Microsoft/Edge", "Opera Software/Opera Stable"}

// Candidate is one cache directory this tool knows how to look for,
// whether or not it currently exists on disk.
type Candidate struct {
	ClientLabel string
	ProfileName string
	Path        string
}

// EnumerateDefaultPaths returns every known-client cache directory
// candidate for this OS. A Default profile candidate is always emitted
// for every Chromium-family client, even when nothing exists there yet,
// so the UI can report "not found" rather than silently omitting it.
func EnumerateDefaultPaths() []Candidate {
	var out []Candidate
	for _, client := range discordClients {
		if dir := discordCacheDir(client); dir != "" {
			out = append(out, Candidate{ClientLabel: client, ProfileName: "", Path: dir})
		}
	}
	for _, client := range chromiumClients {
		out = append(out, collectChromiumProfiles(client)...)
	}
	return out
}

// collectChromiumProfiles walks a Chromium-family user-data directory
// enumerating Default plus every Profile N subdirectory, resolving each to
// its cache directory. The Default profile is always emitted, existing or
// not.
func collectChromiumProfiles(client string) []Candidate {
	userDataDir := chromiumUserDataDir(client)
	if userDataDir == "" {
		return nil
	}

	label := extractClientName(client)
	var out []Candidate
	out = append(out, Candidate{
		ClientLabel: label,
		ProfileName: "Default",
		Path:        resolveCacheDir(filepath.Join(userDataDir, "Default")),
	})

	entries, err := os.ReadDir(userDataDir)
	if err != nil {
		return out
	}
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "Profile ") {
			continue
		}
		out = append(out, Candidate{
			ClientLabel: label,
			ProfileName: e.Name(),
			Path:        resolveCacheDir(filepath.Join(userDataDir, e.Name())),
		})
	}
	return out
}

// resolveCacheDir checks profileDir/Cache/Cache_Data first (the Simple
// Cache on-disk layout), then profileDir/Cache (older Blockfile layout),
// returning whichever path should be reported even if absent.
func resolveCacheDir(profileDir string) string {
	simple := filepath.Join(profileDir, "Cache", "Cache_Data")
	if info, err := os.Stat(simple); err == nil && info.IsDir() {
		return simple
	}
	plain := filepath.Join(profileDir, "Cache")
	return plain
}

func extractClientName(client string) string {
	if idx := strings.LastIndexByte(client, '/'); idx >= 0 {
		return client[idx+1:]
	}
	return client
}

// ExtractProfileLabel turns a profile directory name into a
// human-presentable label ("Default" stays as-is, "Profile 3" stays as-is).
func ExtractProfileLabel(profileDirName string) string {
	return profileDirName
}

// CacheFileInfo describes one cache entry file for the list_cache_files
// host command.
type CacheFileInfo struct {
	Name            string
	Path            string
	Size            int64
	ModifiedSeconds int64
}

// ListCacheFiles lists every recognized cache entry in dir, sorted by
// name. Non-cache files (index, journal, etc.) are excluded via
// cache.IsCacheFile.
func ListCacheFiles(dir string) ([]CacheFileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []CacheFileInfo
	for _, e := range entries {
		if e.IsDir() || !cache.IsCacheFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, CacheFileInfo{
			Name:            e.Name(),
			Path:            filepath.Join(dir, e.Name()),
			Size:            info.Size(),
			ModifiedSeconds: info.ModTime().Unix(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
