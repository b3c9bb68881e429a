// Package utilities collects the simulator's odds and ends: well-known
// paths, the debug log, speech output, version and language queries, data
// file loading, and diagnostics.
package utilities

import (
	"fmt"

	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/logging"
)

// SystemPath returns the simulator's installation root, with a trailing
// separator. Enable plugin.FeatureUseNativePaths at start to get POSIX
// paths on every platform.
func SystemPath() string { return readPath(host.PathSystem) }

// PrefsPath returns a file path inside the preferences directory.
// Plugins keeping settings files should write them next to this path.
func PrefsPath() string { return readPath(host.PathPrefs) }

// readPath fetches a host path with the length-then-fetch protocol the
// native API uses: ask for the size, allocate exactly, read.
func readPath(kind host.PathKind) string {
	h := host.Active()
	n := h.PathLength(kind)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	return string(buf[:h.ReadPath(kind, buf)])
}

// DirectorySeparator returns the separator for the platform's legacy
// path convention. With native paths enabled this is always "/".
func DirectorySeparator() string { return host.Active().DirectorySeparator() }

// DebugString appends s verbatim to the simulator's Log.txt. The write
// is flushed immediately, so keep it out of per-frame paths; most code
// wants the logging package, which formats and routes here, instead.
func DebugString(s string) { host.Active().DebugString(s) }

// SpeakString reads s aloud through the simulator's speech synthesis.
func SpeakString(s string) { host.Active().SpeakString(s) }

// Versions identifies the running simulator, its plugin ABI revision,
// and the host application.
type Versions = host.Versions

// HostApp identifies the application hosting the plugin.
type HostApp = host.HostApp

const (
	HostUnknown = host.HostUnknown
	HostXPlane  = host.HostXPlane
)

// GetVersions returns the running simulator's version record.
func GetVersions() Versions { return host.Active().Versions() }

// Language is the localization the simulator is running in.
type Language = host.Language

// Relabeled host language codes, for matching against GetLanguage.
const (
	LangUnknown   = host.LangUnknown
	LangEnglish   = host.LangEnglish
	LangFrench    = host.LangFrench
	LangGerman    = host.LangGerman
	LangItalian   = host.LangItalian
	LangSpanish   = host.LangSpanish
	LangKorean    = host.LangKorean
	LangRussian   = host.LangRussian
	LangGreek     = host.LangGreek
	LangJapanese  = host.LangJapanese
	LangChinese   = host.LangChinese
	LangUkrainian = host.LangUkrainian
)

// GetLanguage returns the simulator's localization, for plugins that
// ship translated text.
func GetLanguage() Language { return host.Active().Language() }

// DataFileKind selects what LoadDataFile and SaveDataFile operate on.
type DataFileKind = host.DataFileKind

const (
	// Situation is a saved flight situation (.sit).
	Situation = host.DataFileSituation
	// ReplayMovie is a saved replay (.smo).
	ReplayMovie = host.DataFileReplayMovie
)

// LoadDataFile loads a situation or replay from a path relative to the
// installation root.
func LoadDataFile(kind DataFileKind, path string) error {
	if !host.Active().LoadDataFile(kind, path) {
		return fmt.Errorf("load data file %q: host refused", path)
	}
	return nil
}

// SaveDataFile writes the current situation or replay to a path relative
// to the installation root.
func SaveDataFile(kind DataFileKind, path string) error {
	if !host.Active().SaveDataFile(kind, path) {
		return fmt.Errorf("save data file %q: host refused", path)
	}
	return nil
}

// ClearReplay drops the replay currently held in memory.
func ClearReplay() {
	host.Active().LoadDataFile(host.DataFileReplayMovie, "")
}

// ReloadScenery reloads the scenery around the aircraft's current
// position. Expensive; meant for scenery development tools.
func ReloadScenery() { host.Active().ReloadScenery() }

// SetErrorCallback installs fn to receive diagnostics when this plugin
// misuses the native API. Install it in debug builds only: the simulator
// runs slower with any error callback set. Passing nil removes it.
func SetErrorCallback(fn func(msg string)) {
	if fn == nil {
		host.Active().SetErrorCallback(nil)
		return
	}
	log := logging.Sub("diagnostics")
	host.Active().SetErrorCallback(func(msg string) {
		defer logging.Catch(log, "error callback")
		fn(msg)
	})
}

// VirtualKeyDescription names a virtual key code for display, "" for
// codes the simulator has no name for.
func VirtualKeyDescription(key byte) string {
	return host.Active().VirtualKeyDescription(key)
}
