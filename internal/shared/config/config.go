package config

import "time"

// Options names the candidate config files for one load attempt.
type Options struct {
	// YAMLPath is the primary YAML config file.
	YAMLPath string

	// EnvPath is the .env fallback, consulted only when the YAML file is absent.
	EnvPath string
}

// ConfigProvider is the read surface the rest of the service depends on.
// Implementations must be safe for concurrent use.
type ConfigProvider interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetDuration(key string) time.Duration

	// IsSet reports whether the key is present in the loaded config.
	IsSet(key string) bool

	// Source reports the active config source: "yaml" or "env".
	Source() string

	// WatchChanges starts watching the config file for edits. It is a no-op
	// for .env sources. Non-blocking.
	WatchChanges()

	// OnChange registers a callback invoked after a successful reload.
	// Callbacks run in registration order.
	OnChange(fn func())

	// StopWatching releases the file watcher.
	StopWatching()
}
