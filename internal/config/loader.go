package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".contactscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// FilterExtensions lists additions to the built-in junk filter.
// Extensions only ever extend the built-in blocklists, never replace
// them: the built-ins encode hard-won knowledge about tracker and
// template noise, and an operator config should not silently lose it.
type FilterExtensions struct {
	// BlockedDomains are extra email domains to reject, matched exactly
	// or as a suffix like the built-in list.
	BlockedDomains []string `yaml:"blockedDomains,omitempty"`

	// BlockedLocalParts are extra local parts to reject.
	BlockedLocalParts []string `yaml:"blockedLocalParts,omitempty"`
}

// File represents the structure of the .contactscan configuration file.
type File struct {
	// Filters holds junk-filter extensions.
	Filters FilterExtensions `yaml:"filters,omitempty"`
}

// LoadConfigFile loads filter extensions from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error based on whether the config file path
// was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .contactscan in the current directory
// 3. Look for .contactscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
