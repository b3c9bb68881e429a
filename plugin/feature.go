package plugin

import "github.com/xplm-go/xplm/host"

// Feature names an optional capability negotiated between a plugin and the
// simulator. Unknown names are harmless to probe and refuse to enable.
type Feature string

const (
	// FeatureWantsReflections asks for drawing callbacks during reflection
	// rendering passes.
	FeatureWantsReflections Feature = "XPLM_WANTS_REFLECTIONS"
	// FeatureUseNativePaths makes every path API return POSIX-style paths
	// rooted at the install directory. Plugins should enable this at start;
	// the legacy per-OS path convention survives only for compatibility.
	FeatureUseNativePaths Feature = "XPLM_USE_NATIVE_PATHS"
	// FeatureUseNativeWidgetWindows hosts legacy widgets in modern windows.
	FeatureUseNativeWidgetWindows Feature = "XPLM_USE_NATIVE_WIDGET_WINDOWS"
	// FeatureWantsDatarefNotifications delivers MsgDatarefsAdded when other
	// plugins publish new accessors.
	FeatureWantsDatarefNotifications Feature = "XPLM_WANTS_DATAREF_NOTIFICATIONS"
)

// HasFeature reports whether the running simulator understands f at all.
func HasFeature(f Feature) bool {
	return host.Active().HasFeature(string(f))
}

// FeatureEnabled reports whether f is currently switched on for this
// plugin. Unknown features read as off.
func FeatureEnabled(f Feature) bool {
	return host.Active().IsFeatureEnabled(string(f))
}

// EnableFeature switches f on or off for this plugin. Enabling a feature
// the simulator does not have is ignored; probe with HasFeature first when
// the behavior matters.
func EnableFeature(f Feature, on bool) {
	host.Active().EnableFeature(string(f), on)
}
