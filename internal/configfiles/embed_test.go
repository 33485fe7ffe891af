package configfiles

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGetConfigExample(t *testing.T) {
	content, err := GetConfigExample()
	if err != nil {
		t.Fatalf("GetConfigExample failed: %v", err)
	}
	var parsed map[string]any
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		t.Fatalf("example config is not valid YAML: %v", err)
	}
	for _, section := range []string{"server", "content", "database", "sessions", "admin", "logging", "telemetry"} {
		if _, ok := parsed[section]; !ok {
			t.Errorf("example config is missing section %q", section)
		}
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "skilltreedocs.yaml")

	written, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if !written {
		t.Fatal("expected the config to be written")
	}

	if err := os.WriteFile(path, []byte("custom"), 0644); err != nil {
		t.Fatal(err)
	}
	written, err = InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if written {
		t.Error("existing config should not be overwritten")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "custom" {
		t.Errorf("config content changed to %q", data)
	}
}
