package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvHome overrides the base directory for relative runtime paths.
const EnvHome = "FOLIO_HOME"

// BaseDir returns the directory relative runtime paths resolve against:
// $FOLIO_HOME, else the working directory.
func BaseDir() string {
	if home := strings.TrimSpace(os.Getenv(EnvHome)); home != "" {
		return filepath.Clean(home)
	}
	if wd, err := os.Getwd(); err == nil && strings.TrimSpace(wd) != "" {
		return wd
	}
	return "."
}

// ResolveRuntimePath resolves a runtime path against BaseDir.
func ResolveRuntimePath(raw string, fallback string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallback)
		if target == "" {
			return BaseDir()
		}
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(BaseDir(), target))
}
