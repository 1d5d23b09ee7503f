package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type demoConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type validatedConfig struct {
	Port int `yaml:"port"`
}

func (c *validatedConfig) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "name: penna\nport: 3001\n")
	var cfg demoConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "penna" || cfg.Port != 3001 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("PENNA_TEST_NAME", "expanded")
	path := writeFile(t, "name: ${PENNA_TEST_NAME}\n")
	var cfg demoConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "expanded" {
		t.Errorf("name = %q", cfg.Name)
	}
}

func TestLoadRunsValidator(t *testing.T) {
	path := writeFile(t, "port: -1\n")
	var cfg validatedConfig
	if err := Load(path, &cfg); err == nil {
		t.Fatal("validator should have failed")
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg demoConfig
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestLoadOptionalMissingFileKeepsDefaults(t *testing.T) {
	cfg := validatedConfig{Port: 8080}
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadOptionalStillValidatesDefaults(t *testing.T) {
	cfg := validatedConfig{Port: 0}
	if err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Fatal("invalid defaults should fail validation")
	}
}

func TestLoadOptionalReadsExistingFile(t *testing.T) {
	path := writeFile(t, "port: 9000\n")
	cfg := validatedConfig{Port: 8080}
	if err := LoadOptional(path, &cfg); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("port = %d", cfg.Port)
	}
}
