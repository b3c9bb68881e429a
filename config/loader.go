package config

import (
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so the inspector token can be stored as ${ENV_VAR}.
func expandSensitiveFields(s *Settings) {
	s.Inspector.Token = expandEnvVars(s.Inspector.Token)
}

// Load reads a settings file, applies environment overrides, and returns
// merged Settings. A missing file produces the defaults only.
func Load(path string) (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&s)
			return s, nil
		}
		return s, err
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, &ConfigError{Message: "failed to parse settings: " + err.Error()}
	}

	applyDefaults(&s)
	applyEnvOverrides(&s)
	expandSensitiveFields(&s)
	return s, nil
}

// Save writes the settings back to a YAML file.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(s *Settings) {
	if s.Logging.Level == "" {
		s.Logging.Level = "info"
	}
	if s.Inspector.Bind == "" {
		s.Inspector.Bind = "127.0.0.1:18590"
	}
	if s.Recorder.SampleHz == 0 {
		s.Recorder.SampleHz = 1
	}
	if s.Recorder.Database == "" {
		s.Recorder.Database = "fdr.db"
	}
}

// applyEnvOverrides reads GOXPLM_* environment variables and overrides
// settings values. Handy when the settings file ships with a plugin and
// the user only wants to turn the log level up.
func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("GOXPLM_LOG_LEVEL"); v != "" {
		s.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("GOXPLM_INSPECTOR_BIND"); v != "" {
		s.Inspector.Bind = v
	}
	if v := os.Getenv("GOXPLM_INSPECTOR_TOKEN"); v != "" {
		s.Inspector.Token = v
	}
}
