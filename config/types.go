package config

// Settings is the root configuration for a plugin built on this module.
// It is loaded from a YAML file in the simulator's preferences directory;
// every field has a working default so a missing file is not an error.
type Settings struct {
	Logging   LoggingSettings   `yaml:"logging,omitempty"`
	Inspector InspectorSettings `yaml:"inspector,omitempty"`
	Recorder  RecorderSettings  `yaml:"recorder,omitempty"`
}

// LoggingSettings controls the wrapper's logging facade.
type LoggingSettings struct {
	Level string `yaml:"level,omitempty"` // "trace" | "debug" | "info" | "warn" | "error" | "silent"
}

// InspectorSettings controls the embedded live-inspector server.
type InspectorSettings struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Bind    string `yaml:"bind,omitempty"`  // host:port to listen on
	Token   string `yaml:"token,omitempty"` // shared secret; supports ${ENV_VAR}
}

// RecorderSettings controls the flight data recorder.
type RecorderSettings struct {
	Enabled  bool     `yaml:"enabled,omitempty"`
	SampleHz float64  `yaml:"sampleHz,omitempty"` // samples per second
	DataRefs []string `yaml:"datarefs,omitempty"` // accessor names to record
	Database string   `yaml:"database,omitempty"` // sqlite file path
}
