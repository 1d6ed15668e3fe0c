// Package config describes action bindings as data.
//
// A binding file lists actions with their thresholds and keys, plus
// thumbstick dead-zones:
//
//	deadzone = 0.1
//
//	[deadzones]
//	thumbstick-2 = 0.25
//
//	[[actions]]
//	name = "jump"
//	keys = ["Space", "ButtonA"]
//
//	[[actions]]
//	name = "left"
//	threshold = 0.3
//	keys = ["a", "thumbstick-1-left"]
//
// Files may be TOML, YAML or JSON, chosen by extension. Environment
// variables prefixed with ACTIONBIND_ override the dead-zones and
// thresholds of a loaded file. Load reads and merges both; Apply pushes the
// result into an input manager; Watcher reloads a file when it changes.
//
// Subpackages:
//   - loader: format parsers, environment overrides and map merging
//   - watcher: fsnotify-based file change notification with debouncing
package config
