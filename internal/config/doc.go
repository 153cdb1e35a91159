// Package config loads scenepick settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, usually scenepick.toml
//  3. SCENEPICK_* environment variables
//
// A missing file is not an error. Watcher reloads the file when it changes
// on disk so a running viewer picks up new picking settings without a
// restart.
package config
