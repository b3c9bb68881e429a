package xplmtest

import "github.com/xplm-go/xplm/host"

type simCommand struct {
	name        string
	description string
	handlers    []*simCommandHandler
	held        bool
	// defaultRuns counts how often the host's own handling of the command
	// ran, i.e. how often no before-handler inhibited it.
	defaultRuns int
}

type simCommandHandler struct {
	token  host.HandlerToken
	before bool
	fn     host.CommandFunc
}

// MustCommand returns the handle of an existing command or fails the test.
func (s *Sim) MustCommand(name string) host.CommandRef {
	ref := s.FindCommand(name)
	if ref == 0 {
		s.fatalf("MustCommand: no command named %q", name)
	}
	return ref
}

// AddCommand pre-defines a host command, as the simulator's built-in
// command set would.
func (s *Sim) AddCommand(name, description string) host.CommandRef {
	return s.CreateCommand(name, description)
}

// DefaultRuns reports how often the host's own handling of the named
// command ran, i.e. how often it was triggered without a before-handler
// inhibiting it.
func (s *Sim) DefaultRuns(name string) int {
	if c := s.commandByHandle(s.FindCommand(name)); c != nil {
		return c.defaultRuns
	}
	return 0
}

// CommandHandlerCount reports how many command handlers are currently
// registered across all commands.
func (s *Sim) CommandHandlerCount() int {
	n := 0
	for _, c := range s.commands {
		n += len(c.handlers)
	}
	return n
}

func (s *Sim) commandByHandle(ref host.CommandRef) *simCommand {
	i := int(ref) - 1
	if i < 0 || i >= len(s.commands) {
		return nil
	}
	return s.commands[i]
}

// FindCommand implements host.CommandAPI.
func (s *Sim) FindCommand(name string) host.CommandRef {
	for i, c := range s.commands {
		if c.name == name {
			return host.CommandRef(i + 1)
		}
	}
	return 0
}

// CreateCommand implements host.CommandAPI. Creating a name that already
// exists returns the existing handle, as the real host does.
func (s *Sim) CreateCommand(name, description string) host.CommandRef {
	if ref := s.FindCommand(name); ref != 0 {
		return ref
	}
	s.commands = append(s.commands, &simCommand{name: name, description: description})
	return host.CommandRef(len(s.commands))
}

// CommandOnce implements host.CommandAPI: a begin phase and an end phase
// in the same invocation.
func (s *Sim) CommandOnce(cmd host.CommandRef) {
	c := s.commandByHandle(cmd)
	if c == nil {
		return
	}
	if s.dispatchCommand(c, host.CommandBegin) {
		c.defaultRuns++
	}
	s.dispatchCommand(c, host.CommandEnd)
}

// CommandBegin implements host.CommandAPI. While a command is held, every
// Advance dispatches a continue phase until CommandEnd.
func (s *Sim) CommandBegin(cmd host.CommandRef) {
	c := s.commandByHandle(cmd)
	if c == nil || c.held {
		return
	}
	c.held = true
	if s.dispatchCommand(c, host.CommandBegin) {
		c.defaultRuns++
	}
}

// CommandEnd implements host.CommandAPI.
func (s *Sim) CommandEnd(cmd host.CommandRef) {
	c := s.commandByHandle(cmd)
	if c == nil || !c.held {
		return
	}
	c.held = false
	s.dispatchCommand(c, host.CommandEnd)
}

// RegisterCommandHandler implements host.CommandAPI.
func (s *Sim) RegisterCommandHandler(cmd host.CommandRef, before bool, fn host.CommandFunc) host.HandlerToken {
	c := s.commandByHandle(cmd)
	if c == nil || fn == nil {
		return 0
	}
	s.nextToken++
	h := &simCommandHandler{token: host.HandlerToken(s.nextToken), before: before, fn: fn}
	c.handlers = append(c.handlers, h)
	return h.token
}

// UnregisterCommandHandler implements host.CommandAPI.
func (s *Sim) UnregisterCommandHandler(token host.HandlerToken) {
	for _, c := range s.commands {
		for i, h := range c.handlers {
			if h.token == token {
				c.handlers = append(c.handlers[:i], c.handlers[i+1:]...)
				return
			}
		}
	}
}

// dispatchCommand runs the phase through the command's handler chain the
// way the host does: before-handlers first, and any of them returning 0
// halts processing, skipping the host's own handling and the
// after-handlers. After-handler return values are ignored. It reports
// whether the host's own handling ran.
func (s *Sim) dispatchCommand(c *simCommand, phase host.CommandPhase) bool {
	for _, h := range snapshot(c.handlers) {
		if h.before && h.fn(phase) == 0 {
			return false
		}
	}
	for _, h := range snapshot(c.handlers) {
		if !h.before {
			h.fn(phase)
		}
	}
	return true
}

// snapshot copies a handler list so dispatch survives handlers that
// register or unregister during the callback.
func snapshot[T any](in []T) []T {
	return append([]T(nil), in...)
}
