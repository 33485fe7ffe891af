package check

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/skilltreedocs/skilltreedocs/internal/configfiles"
)

// FileCheckResult is the state of one file the site needs.
type FileCheckResult struct {
	Path    string
	Exists  bool
	Created bool
	Error   error
}

// checkConfigFile reports whether the configuration exists. In interactive
// mode a missing file can be created from the embedded example.
func (c *Checker) checkConfigFile(interactive bool) FileCheckResult {
	result := FileCheckResult{Path: c.configPath}
	if fileExists(c.configPath) {
		result.Exists = true
		return result
	}
	if !interactive {
		return result
	}

	ok, err := c.confirm(c.configPath)
	if err != nil {
		result.Error = fmt.Errorf("prompt failed: %w", err)
		return result
	}
	if !ok {
		return result
	}

	created, err := configfiles.InitConfig(c.configPath)
	if err != nil {
		result.Error = err
		return result
	}
	result.Exists = true
	result.Created = created
	return result
}

func (c *Checker) confirmCreate(path string) (bool, error) {
	var confirm bool
	field := huh.NewConfirm().
		Title(fmt.Sprintf("Create %s from the example configuration?", path)).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm)
	err := huh.NewForm(huh.NewGroup(field)).WithTheme(c.theme).Run()
	if err != nil {
		return false, err
	}
	return confirm, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
