package config

import (
	"path/filepath"

	"github.com/xplm-go/xplm/utilities"
)

// DefaultPath returns the conventional settings location for a plugin:
// a file named <name>.yaml in the simulator's preferences directory. The
// host reports that directory as a path to a file inside it, so the file
// name is stripped first.
func DefaultPath(name string) string {
	prefs := utilities.PrefsPath()
	if prefs == "" {
		return name + ".yaml"
	}
	return filepath.Join(filepath.Dir(prefs), name+".yaml")
}
