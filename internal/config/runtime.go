package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".condobot"

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("CONDO_RUNTIME_PATH"))
}

// resolveRuntimePath places relative runtime paths under the user's home.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = filepath.Join(home, path)
	}
	return path
}
