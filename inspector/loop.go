package inspector

import (
	"errors"
	"slices"
	"time"

	"github.com/xplm-go/xplm/dataref"
	"github.com/xplm-go/xplm/flightloop"
)

// action is one piece of simulator work queued by a socket goroutine for
// the next frame. The result channel is buffered so the frame never
// blocks delivering it.
type action struct {
	run    func() (any, error)
	result chan actionResult
}

type actionResult struct {
	payload any
	err     error
}

const actionTimeout = 5 * time.Second

// errFrameTimeout reports that no loop callback ran within actionTimeout.
var errFrameTimeout = errors.New("simulator did not run a frame in time")

// enqueue hands fn to the flight loop and waits for its result. fn runs
// on the simulator thread during the next loop callback, the only place
// host state may be touched. A timed-out action may still run on a later
// frame; the caller just stops waiting for it.
func (s *Server) enqueue(fn func() (any, error)) (any, error) {
	a := action{run: fn, result: make(chan actionResult, 1)}
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil, ErrStopped
	}
	s.actions = append(s.actions, a)
	s.mu.Unlock()

	select {
	case r := <-a.result:
		return r.payload, r.err
	case <-time.After(actionTimeout):
		return nil, errFrameTimeout
	}
}

// watchEntry is one watched accessor, resolved to a numeric read.
type watchEntry struct {
	read func() float64
}

// Snapshot is one frame's view of the watched accessors, broadcast as
// the data.snapshot event.
type Snapshot struct {
	SimTime float32            `json:"simTime"`
	Cycle   int32              `json:"cycle"`
	Values  map[string]float64 `json:"values"`
}

// tick runs once per frame on the simulator thread. It applies queued
// actions, then reads every watched accessor into a snapshot and hands
// it to the fan-out goroutine without waiting.
func (s *Server) tick(flightloop.Timing) flightloop.Next {
	s.mu.Lock()
	actions := s.actions
	s.actions = nil
	s.mu.Unlock()

	for _, a := range actions {
		payload, err := a.run()
		a.result <- actionResult{payload: payload, err: err}
	}

	s.mu.Lock()
	var snap Snapshot
	send := len(s.watches) > 0
	if send {
		snap = Snapshot{
			SimTime: flightloop.ElapsedTime(),
			Cycle:   flightloop.CycleNumber(),
			Values:  make(map[string]float64, len(s.watches)),
		}
		for name, w := range s.watches {
			snap.Values[name] = w.read()
		}
	}
	snapshots := s.snapshots
	s.mu.Unlock()

	if send {
		select {
		case snapshots <- snap:
		default:
			// Fan-out is behind; drop this one. A fresher snapshot
			// arrives next frame and the frame must never wait on a
			// socket.
		}
	}
	return flightloop.NextLoop()
}

// broadcastLoop fans snapshots out to connected clients. It lives on its
// own goroutine so a slow socket never stalls a frame.
func (s *Server) broadcastLoop(snapshots <-chan Snapshot, done chan<- struct{}) {
	defer close(done)
	for snap := range snapshots {
		if s.clients.Count() == 0 {
			continue
		}
		s.clients.Broadcast("data.snapshot", snap, s.eventSeq.Add(1))
	}
}

// watchChange reports the outcome of a watch or unwatch request.
type watchChange struct {
	Added       []string `json:"added,omitempty"`
	Removed     []string `json:"removed,omitempty"`
	Missing     []string `json:"missing,omitempty"`
	Unsupported []string `json:"unsupported,omitempty"`
	Watched     []string `json:"watched"`
}

// addWatches resolves names and adds them to the watch set. Runs on the
// simulator thread.
func (s *Server) addWatches(names []string) watchChange {
	var ch watchChange
	for _, name := range names {
		s.mu.Lock()
		_, exists := s.watches[name]
		s.mu.Unlock()
		if exists {
			continue
		}
		d, err := dataref.Find(name)
		if err != nil {
			ch.Missing = append(ch.Missing, name)
			continue
		}
		read, ok := numericRead(d)
		if !ok {
			ch.Unsupported = append(ch.Unsupported, name)
			continue
		}
		s.mu.Lock()
		s.watches[name] = watchEntry{read: read}
		s.mu.Unlock()
		ch.Added = append(ch.Added, name)
	}
	ch.Watched = s.watchedNames()
	return ch
}

// removeWatches drops names from the watch set. No simulator state is
// involved, so it runs directly on the caller's goroutine.
func (s *Server) removeWatches(names []string) watchChange {
	var ch watchChange
	s.mu.Lock()
	for _, name := range names {
		if _, ok := s.watches[name]; ok {
			delete(s.watches, name)
			ch.Removed = append(ch.Removed, name)
		}
	}
	s.mu.Unlock()
	ch.Watched = s.watchedNames()
	return ch
}

// watchedNames returns the watch set sorted by name.
func (s *Server) watchedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.watches))
	for name := range s.watches {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// numericRead binds the widest numeric view an accessor publishes.
func numericRead(d *dataref.DataRef) (func() float64, bool) {
	if r, err := d.Double(); err == nil {
		return func() float64 { return r.Read() }, true
	}
	if r, err := d.Float(); err == nil {
		return func() float64 { return float64(r.Read()) }, true
	}
	if r, err := d.Int(); err == nil {
		return func() float64 { return float64(r.Read()) }, true
	}
	return nil, false
}
