// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Presence of a config name
//   - Game mode (full or quick)
//   - Module names against the known expansion set
//   - Journal depth and seed sanity
//   - Duplicate module entries
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a game configuration.
type Config struct {
	Name                string   `json:"name"`
	Seed                int64    `json:"seed"`
	Mode                string   `json:"mode"`
	Modules             []string `json:"modules"`
	ExtendedRestaurants bool     `json:"extended_restaurants"`
	AggressiveSetup     bool     `json:"aggressive_setup"`
	AggressiveRestruct  bool     `json:"aggressive_restructuring"`
	JournalDepth        int      `json:"journal_depth"`
}

// knownModules lists the expansion module names the engine accepts.
var knownModules = map[string]bool{
	"sushi":           true,
	"noodle":          true,
	"coffee":          true,
	"kimchi":          true,
	"gourmet":         true,
	"mass_marketeer":  true,
	"rural_marketeer": true,
	"night_shift":     true,
	"ketchup":         true,
	"fry_chefs":       true,
	"movie_stars":     true,
	"reserve_prices":  true,
	"lobbyists":       true,
	"new_districts":   true,
	"milestones":      true,
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, mode and module validation, and sanity
// checks on the numeric settings.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate the name
	if strings.TrimSpace(config.Name) == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Config name is required")
	}

	// Validate the mode
	switch config.Mode {
	case "full", "quick":
	case "":
		result.Valid = false
		result.Errors = append(result.Errors, "Mode is required (full or quick)")
	default:
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Unknown mode %q: must be full or quick", config.Mode))
	}

	// Validate modules
	seen := map[string]bool{}
	for _, m := range config.Modules {
		if !knownModules[m] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Unknown module %q", m))
		}
		if seen[m] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate module %q", m))
		}
		seen[m] = true
	}

	// Validate numeric settings
	if config.JournalDepth < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Journal depth cannot be negative (got %d)", config.JournalDepth))
	}

	if config.Seed < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Seed cannot be negative (got %d)", config.Seed))
	}

	// Add informational messages
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Mode: %s", config.Mode))
		if len(config.Modules) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Modules: %s", strings.Join(config.Modules, ", ")))
		} else {
			result.Errors = append(result.Errors, "✓ Modules: none (base game)")
		}
		if config.ExtendedRestaurants {
			result.Errors = append(result.Errors, "✓ Extended restaurants enabled")
		}
		if config.AggressiveSetup {
			result.Errors = append(result.Errors, "✓ Aggressive setup enabled")
		}
		if config.AggressiveRestruct {
			result.Errors = append(result.Errors, "✓ Aggressive restructuring enabled")
		}
		if config.JournalDepth > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Journal depth: %d", config.JournalDepth))
		}
		if config.Seed > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Fixed seed: %d", config.Seed))
		}
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
