package config

import (
	"fmt"
	"net"
	"slices"
)

// ValidationIssue describes a problem with a settings value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks Settings for issues. Returns nil if valid.
func Validate(s *Settings) []ValidationIssue {
	var issues []ValidationIssue

	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "silent"}
	if s.Logging.Level != "" && !slices.Contains(validLogLevels, s.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, s.Logging.Level),
		})
	}

	if s.Inspector.Enabled {
		host, _, err := net.SplitHostPort(s.Inspector.Bind)
		if err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "inspector.bind",
				Message: fmt.Sprintf("must be host:port, got %q", s.Inspector.Bind),
			})
		} else if host != "127.0.0.1" && host != "localhost" && host != "::1" && s.Inspector.Token == "" {
			issues = append(issues, ValidationIssue{
				Path:    "inspector.token",
				Message: "required when binding beyond loopback",
			})
		}
	}

	if s.Recorder.Enabled {
		if s.Recorder.SampleHz <= 0 {
			issues = append(issues, ValidationIssue{
				Path:    "recorder.sampleHz",
				Message: fmt.Sprintf("must be positive, got %g", s.Recorder.SampleHz),
			})
		}
		if len(s.Recorder.DataRefs) == 0 {
			issues = append(issues, ValidationIssue{
				Path:    "recorder.datarefs",
				Message: "at least one accessor name is required",
			})
		}
	}

	return issues
}
