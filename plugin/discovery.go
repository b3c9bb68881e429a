package plugin

import "github.com/xplm-go/xplm/host"

// Details is the simulator's descriptive record for a loaded plugin.
type Details = host.PluginDetails

// Self returns the calling plugin's own ID.
func Self() ID {
	return host.Active().MyID()
}

// Count returns the number of loaded plugins, enabled or not.
func Count() int {
	return host.Active().CountPlugins()
}

// Nth returns the plugin at index i, in [0, Count()). The order is
// arbitrary but stable until plugins are reloaded.
func Nth(i int) (ID, bool) {
	id := host.Active().NthPlugin(i)
	return id, id.Valid()
}

// FindByPath looks a plugin up by the absolute path of its library file.
func FindByPath(path string) (ID, bool) {
	id := host.Active().FindPluginByPath(path)
	return id, id.Valid()
}

// FindBySignature looks a plugin up by its signature. This is the robust
// way to locate another plugin, since install paths vary per machine.
func FindBySignature(signature string) (ID, bool) {
	id := host.Active().FindPluginBySignature(signature)
	return id, id.Valid()
}

// Describe returns the descriptive record for id, or false when the
// simulator does not know the ID.
func Describe(id ID) (Details, bool) {
	return host.Active().PluginDetails(id)
}

// IsEnabled reports whether id is currently enabled.
func IsEnabled(id ID) bool {
	return host.Active().IsPluginEnabled(id)
}

// Enable asks the simulator to enable id and reports whether the plugin
// accepted. Enabling an already enabled plugin succeeds trivially.
func Enable(id ID) bool {
	return host.Active().EnablePlugin(id)
}

// Disable asks the simulator to disable id.
func Disable(id ID) {
	host.Active().DisablePlugin(id)
}

// ReloadAll asks the simulator to stop and restart every plugin once
// control returns to it. The caller is reloaded too, so any state not
// written to disk is lost.
func ReloadAll() {
	host.Active().ReloadPlugins()
}
