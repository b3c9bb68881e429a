// Package command finds, creates, triggers, and handles the simulator's
// named commands.
//
// Commands are the things key bindings, joystick buttons, and menu items
// trigger: "sim/lights/landing_lights_toggle" and thousands more. A
// command press has three phases: it begins, continues once per frame
// while held, and ends. Plugins can trigger commands programmatically and
// can attach handlers to run when anyone triggers them.
//
// A before-handler attached with Handle takes the command over: the
// simulator's own response is inhibited while it is attached. A panic
// inside a handler is recovered and logged, and that press falls through
// to the simulator's own handling instead.
package command

import (
	"errors"
	"fmt"

	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/internal/cleanup"
	"github.com/xplm-go/xplm/logging"
)

// Command is a named simulator command.
type Command struct {
	ref  host.CommandRef
	name string
}

// Find looks up an existing command by name. Lookups are not free; find
// once and keep the result.
func Find(name string) (*Command, bool) {
	ref := host.Active().FindCommand(name)
	if ref == 0 {
		return nil, false
	}
	return &Command{ref: ref, name: name}, true
}

// New creates a command, or returns the existing one when the name is
// already taken; the description then keeps its first value. Create
// commands at start so key bindings can see them; handle them with Handle.
func New(name, description string) (*Command, error) {
	ref := host.Active().CreateCommand(name, description)
	if ref == 0 {
		return nil, fmt.Errorf("create command %q: host refused", name)
	}
	return &Command{ref: ref, name: name}, nil
}

// Name returns the name the command was found or created under.
func (c *Command) Name() string { return c.name }

// Ref exposes the underlying host handle, for wiring commands into other
// host objects such as menu items.
func (c *Command) Ref() host.CommandRef { return c.ref }

// Once triggers a complete press: begin and end in the same instant, with
// no held frames between.
func (c *Command) Once() { host.Active().CommandOnce(c.ref) }

// Begin starts holding the command down. Every Begin must be paired with
// exactly one End; the simulator reference-counts the hold.
func (c *Command) Begin() { host.Active().CommandBegin(c.ref) }

// End releases a hold started with Begin.
func (c *Command) End() { host.Active().CommandEnd(c.ref) }

// Handler receives the phases of a command press.
type Handler interface {
	// CommandBegin runs when the press starts.
	CommandBegin(c *Command)
	// CommandContinue runs once per frame while the command is held.
	CommandContinue(c *Command)
	// CommandEnd runs when the press is released.
	CommandEnd(c *Command)
}

// HandlerFuncs adapts free functions to Handler. Nil fields ignore their
// phase.
type HandlerFuncs struct {
	Begin    func(c *Command)
	Continue func(c *Command)
	End      func(c *Command)
}

func (h HandlerFuncs) CommandBegin(c *Command) {
	if h.Begin != nil {
		h.Begin(c)
	}
}

func (h HandlerFuncs) CommandContinue(c *Command) {
	if h.Continue != nil {
		h.Continue(c)
	}
}

func (h HandlerFuncs) CommandEnd(c *Command) {
	if h.End != nil {
		h.End(c)
	}
}

// Pressed adapts a plain function to Handler, run once per press at the
// begin phase.
func Pressed(fn func()) Handler {
	return HandlerFuncs{Begin: func(*Command) { fn() }}
}

// Registration is an attached handler. Unregister detaches it; otherwise
// it is detached automatically when the plugin stops.
type Registration struct {
	token      host.HandlerToken
	cleanupTok cleanup.Token
	done       bool
}

// Handle attaches h to the command. With before true the handler runs
// ahead of the simulator's own handling and inhibits it, which is how a
// plugin takes a command over; with before false the handler observes the
// command after the simulator has responded to it.
func (c *Command) Handle(before bool, h Handler) (*Registration, error) {
	if h == nil {
		return nil, errors.New("nil command handler")
	}
	token := host.Active().RegisterCommandHandler(c.ref, before, dispatchFunc(c, h))
	if token == 0 {
		return nil, fmt.Errorf("handle command %q: host refused", c.name)
	}
	r := &Registration{token: token}
	r.cleanupTok = cleanup.Register(func() {
		r.done = true
		host.Active().UnregisterCommandHandler(token)
	})
	return r, nil
}

// Unregister detaches the handler. Extra calls are no-ops.
func (r *Registration) Unregister() {
	if r == nil || r.done {
		return
	}
	r.done = true
	cleanup.Forget(r.cleanupTok)
	host.Active().UnregisterCommandHandler(r.token)
}

// dispatchFunc bridges one registration to the host callback. Handled
// phases return 0 so the simulator's own response is inhibited; a
// recovered panic returns 1, letting the press fall through.
func dispatchFunc(c *Command, h Handler) host.CommandFunc {
	log := logging.Sub("command")
	return func(phase host.CommandPhase) (ret int) {
		ret = 0
		defer func() {
			if r := recover(); r != nil {
				logging.Panicked(log, "command "+c.name+" ("+phase.String()+")", r)
				ret = 1
			}
		}()
		switch phase {
		case host.CommandBegin:
			h.CommandBegin(c)
		case host.CommandContinue:
			h.CommandContinue(c)
		case host.CommandEnd:
			h.CommandEnd(c)
		}
		return ret
	}
}
