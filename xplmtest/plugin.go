package xplmtest

import "github.com/xplm-go/xplm/host"

type simPlugin struct {
	details host.PluginDetails
	enabled bool
	// refuse makes EnablePlugin report failure, for plugins that decline
	// to come back up.
	refuse bool
}

// AddPlugin adds another loaded plugin to the simulated process and
// returns its ID. The plugin under test is always ID 0.
func (s *Sim) AddPlugin(details host.PluginDetails, enabled bool) host.PluginID {
	s.plugins = append(s.plugins, &simPlugin{details: details, enabled: enabled})
	return host.PluginID(len(s.plugins) - 1)
}

// RefuseEnable makes future EnablePlugin calls for id fail, as a plugin
// refusing to enable would.
func (s *Sim) RefuseEnable(id host.PluginID) {
	if p := s.pluginByID(id); p != nil {
		p.refuse = true
		p.enabled = false
	}
}

// SentMessages returns every interplugin message the plugin under test
// has sent, directed or broadcast.
func (s *Sim) SentMessages() []SentMessage { return s.sent }

func (s *Sim) pluginByID(id host.PluginID) *simPlugin {
	if int(id) < 0 || int(id) >= len(s.plugins) {
		return nil
	}
	return s.plugins[id]
}

// MyID implements host.PluginAPI.
func (s *Sim) MyID() host.PluginID { return 0 }

// CountPlugins implements host.PluginAPI.
func (s *Sim) CountPlugins() int { return len(s.plugins) }

// NthPlugin implements host.PluginAPI.
func (s *Sim) NthPlugin(i int) host.PluginID {
	if i < 0 || i >= len(s.plugins) {
		return host.NoPlugin
	}
	return host.PluginID(i)
}

// FindPluginByPath implements host.PluginAPI.
func (s *Sim) FindPluginByPath(path string) host.PluginID {
	for i, p := range s.plugins {
		if p.details.FilePath == path {
			return host.PluginID(i)
		}
	}
	return host.NoPlugin
}

// FindPluginBySignature implements host.PluginAPI.
func (s *Sim) FindPluginBySignature(signature string) host.PluginID {
	for i, p := range s.plugins {
		if p.details.Signature == signature {
			return host.PluginID(i)
		}
	}
	return host.NoPlugin
}

// PluginDetails implements host.PluginAPI.
func (s *Sim) PluginDetails(id host.PluginID) (host.PluginDetails, bool) {
	p := s.pluginByID(id)
	if p == nil {
		return host.PluginDetails{}, false
	}
	return p.details, true
}

// IsPluginEnabled implements host.PluginAPI.
func (s *Sim) IsPluginEnabled(id host.PluginID) bool {
	p := s.pluginByID(id)
	return p != nil && p.enabled
}

// EnablePlugin implements host.PluginAPI.
func (s *Sim) EnablePlugin(id host.PluginID) bool {
	p := s.pluginByID(id)
	if p == nil || p.refuse {
		return false
	}
	p.enabled = true
	return true
}

// DisablePlugin implements host.PluginAPI.
func (s *Sim) DisablePlugin(id host.PluginID) {
	if p := s.pluginByID(id); p != nil {
		p.enabled = false
	}
}

// ReloadPlugins implements host.PluginAPI. The Sim records the request
// instead of tearing the test process down.
func (s *Sim) ReloadPlugins() { s.reloads++ }

// PluginReloads returns how many times ReloadPlugins was called.
func (s *Sim) PluginReloads() int { return s.reloads }

// SendMessage implements host.PluginAPI. Messages are recorded, not
// delivered; use Deliver to push a message at the plugin under test.
func (s *Sim) SendMessage(id host.PluginID, msg int32, param uintptr) {
	s.sent = append(s.sent, SentMessage{To: id, Msg: msg, Param: param})
}

// AddFeature makes the simulated host support a feature name beyond the
// standard set.
func (s *Sim) AddFeature(name string) {
	if _, known := s.features[name]; !known {
		s.features[name] = false
	}
}

// HasFeature implements host.PluginAPI.
func (s *Sim) HasFeature(name string) bool {
	_, known := s.features[name]
	return known
}

// IsFeatureEnabled implements host.PluginAPI.
func (s *Sim) IsFeatureEnabled(name string) bool { return s.features[name] }

// EnableFeature implements host.PluginAPI. Unknown features are ignored,
// matching the host's behavior.
func (s *Sim) EnableFeature(name string, on bool) {
	if _, known := s.features[name]; known {
		s.features[name] = on
	}
}
