// Package config provides game configuration management.
//
// Configurations are JSON files in a configurable directory, loaded lazily
// and cached. Each file holds an engine.GameConfig: session name, rng
// seed, mode (full or quick) and the enabled expansion modules. The
// manager validates configs on load and skips invalid files when listing.
//
// Usage:
//
//	manager, err := config.NewManager("./configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cfg, err := manager.LoadConfig("base")
//
// The default configuration is base.json when present, otherwise the
// first valid file in the directory, otherwise the built-in default.
package config
