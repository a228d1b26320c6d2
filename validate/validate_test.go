package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateConfig_ValidConfig(t *testing.T) {
	// Create a valid test config
	validConfig := `{
		"name": "Test Config",
		"mode": "full",
		"modules": ["sushi", "night_shift"],
		"extended_restaurants": true,
		"journal_depth": 30,
		"seed": 42
	}`

	// Write to temp file
	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(validConfig)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(tmpfile.Name()) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(tmpfile.Name()), result.File)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	// Create invalid JSON
	invalidJSON := `{"name": "test", invalid json}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(invalidJSON))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config for malformed JSON")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Invalid JSON") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected 'Invalid JSON' error, got: %v", result.Errors)
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/nonexistent/path/config.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Failed to read file") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected 'Failed to read file' error, got: %v", result.Errors)
	}
}

func TestValidateConfig_MissingName(t *testing.T) {
	config := `{"mode": "full"}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config without a name")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "name is required") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected name error, got: %v", result.Errors)
	}
}

func TestValidateConfig_UnknownMode(t *testing.T) {
	config := `{"name": "test", "mode": "marathon"}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config for unknown mode")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Unknown mode") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected mode error, got: %v", result.Errors)
	}
}

func TestValidateConfig_MissingMode(t *testing.T) {
	config := `{"name": "test"}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config without a mode")
	}
}

func TestValidateConfig_UnknownModule(t *testing.T) {
	config := `{"name": "test", "mode": "full", "modules": ["sushi", "tacos"]}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config for unknown module")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, `Unknown module "tacos"`) {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected module error, got: %v", result.Errors)
	}
}

func TestValidateConfig_DuplicateModule(t *testing.T) {
	config := `{"name": "test", "mode": "quick", "modules": ["lobbyists", "lobbyists"]}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config for duplicate module")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Duplicate module") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected duplicate error, got: %v", result.Errors)
	}
}

func TestValidateConfig_NegativeJournalDepth(t *testing.T) {
	config := `{"name": "test", "mode": "full", "journal_depth": -5}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config for negative journal depth")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "Journal depth cannot be negative") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected journal depth error, got: %v", result.Errors)
	}
}

func TestValidateConfig_NegativeSeed(t *testing.T) {
	config := `{"name": "test", "mode": "full", "seed": -1}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if result.Valid {
		t.Error("Expected invalid config for negative seed")
	}
}

func TestValidateConfig_InfoMessages(t *testing.T) {
	config := `{"name": "base", "mode": "full"}`

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name())

	tmpfile.Write([]byte(config))
	tmpfile.Close()

	result := validateConfig(tmpfile.Name())
	if !result.Valid {
		t.Fatalf("Expected valid config, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "✓ Name: base") {
		t.Errorf("Expected name info message, got: %v", result.Errors)
	}
	if !strings.Contains(joined, "✓ Modules: none (base game)") {
		t.Errorf("Expected base-game modules message, got: %v", result.Errors)
	}
}
