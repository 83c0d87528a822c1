package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the resolved runtime settings.
type Config struct {
	BaseURL   string
	ConfigDir string
	Debug     bool
}

// Load validates the raw flag values and expands paths.
func Load(baseURL, configDir string, debug bool) (*Config, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	dir, err := ExpandHome(configDir)
	if err != nil {
		return nil, fmt.Errorf("invalid config dir: %w", err)
	}

	return &Config{
		BaseURL:   normalized,
		ConfigDir: dir,
		Debug:     debug,
	}, nil
}

// NormalizeBaseURL checks that raw is an absolute http(s) URL and strips any
// trailing slash so collection paths can be appended directly.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("api url is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid api url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid api url %q: missing host", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("invalid api url %q: query and fragment are not allowed", raw)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
