package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Settings holds the user-provided client configuration. All fields are
// optional; a missing file loads as the zero value.
type Settings struct {
	// BackendAddress is the news backend, as host or host:port.
	BackendAddress string `yaml:"backend_address,omitempty"`
	// SiteURL is the optional external site opened from the popup.
	SiteURL string `yaml:"site_url,omitempty"`
	// RefreshInterval is the watch cadence ("1h", "30m", "1d"). Default 1h.
	RefreshInterval string `yaml:"refresh_interval,omitempty"`
	// Glyph is the rating marker. Default 🐾.
	Glyph string `yaml:"glyph,omitempty"`
}

// Patch is a partial update; nil fields keep their stored value.
type Patch struct {
	BackendAddress  *string
	SiteURL         *string
	RefreshInterval *string
	Glyph           *string
}

func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "catbreak", "settings.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "catbreak", "catbreak.db")
}

// Load reads settings from path (DefaultPath when empty). A missing file is
// not an error: the popup and watcher treat unset fields as "not configured".
func Load(path string) (Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return s, nil
}

// Save merges patch into the stored settings and writes the result back.
// Provided fields overwrite (trimmed of surrounding whitespace), absent
// fields keep their current value. Returns the merged settings.
func Save(path string, patch Patch) (Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	s, err := Load(path)
	if err != nil {
		return Settings{}, err
	}

	if patch.BackendAddress != nil {
		s.BackendAddress = strings.TrimSpace(*patch.BackendAddress)
	}
	if patch.SiteURL != nil {
		s.SiteURL = strings.TrimSpace(*patch.SiteURL)
	}
	if patch.RefreshInterval != nil {
		s.RefreshInterval = strings.TrimSpace(*patch.RefreshInterval)
	}
	if patch.Glyph != nil {
		s.Glyph = strings.TrimSpace(*patch.Glyph)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Settings{}, fmt.Errorf("creating settings dir: %w", err)
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return Settings{}, fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Settings{}, fmt.Errorf("writing settings: %w", err)
	}
	return s, nil
}

// HasBackend reports whether a backend address is configured.
func (s Settings) HasBackend() bool {
	return strings.TrimSpace(s.BackendAddress) != ""
}

func (s Settings) RefreshDuration() time.Duration {
	d, err := parseDuration(s.RefreshInterval)
	if err != nil {
		return time.Hour
	}
	return d
}

// parseDuration handles time.ParseDuration syntax plus "Nd" day values.
func parseDuration(v string) (time.Duration, error) {
	if v == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if len(v) > 1 && v[len(v)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(v, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(v)
}
