package config

import (
	"os"
	"path/filepath"
)

// ProjectFileName is the project-local config file looked up by Discover.
const ProjectFileName = ".dsv.yaml"

// Source tells where a resolved config path came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceProject Source = "project"
	SourceUser    Source = "user"
	SourceNone    Source = "defaults"
)

// Discover resolves which config file to use. An explicit path wins, then
// a .dsv.yaml found walking up from the working directory, then the XDG
// config file if it exists.
func Discover(explicit string) (string, Source) {
	if explicit != "" {
		return expandHome(explicit), SourceFlag
	}
	if dir, err := os.Getwd(); err == nil {
		if path, ok := findProjectConfig(dir); ok {
			return path, SourceProject
		}
	}
	if path := ConfigPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, SourceUser
		}
	}
	return "", SourceNone
}

// LoadDiscovered discovers and loads the config in one step.
func LoadDiscovered(explicit string) (Config, string, error) {
	path, src := Discover(explicit)
	if src == SourceNone {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadFrom(path)
	return cfg, path, err
}

// findProjectConfig walks up from dir looking for .dsv.yaml.
func findProjectConfig(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		// Don't go above home directory
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}
