// Package config loads and validates plugin settings from a YAML file,
// conventionally placed in the simulator's preferences directory.
package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns Settings with sensible defaults applied.
func Defaults() Settings {
	return Settings{
		Logging: LoggingSettings{
			Level: "info",
		},
		Inspector: InspectorSettings{
			Bind: "127.0.0.1:18590",
		},
		Recorder: RecorderSettings{
			SampleHz: 1,
			Database: "fdr.db",
		},
	}
}
