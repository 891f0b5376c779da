package cli

import (
	"fmt"
	"path/filepath"
)

const defaultConfigName = ".canvass.yml"

// resolveConfigPath normalizes the config path, defaulting to .canvass.yml
// in the current directory.
func resolveConfigPath(configPath string) (string, error) {
	if configPath == "" {
		configPath = defaultConfigName
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}
