// Package configfiles embeds the example configuration used to initialise a
// new site.
package configfiles

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed skilltreedocs.example.yaml
var configFS embed.FS

// ExampleConfigName is the embedded example file name.
const ExampleConfigName = "skilltreedocs.example.yaml"

// GetConfigExample returns the example configuration file content
func GetConfigExample() ([]byte, error) {
	return configFS.ReadFile(ExampleConfigName)
}

// InitConfig writes the example configuration to path unless a file already
// exists there. It reports whether a file was written.
func InitConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	data, err := GetConfigExample()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
