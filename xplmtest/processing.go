package xplmtest

import "github.com/xplm-go/xplm/host"

type simFlightLoop struct {
	id    host.FlightLoopID
	phase host.FlightLoopPhase
	fn    host.FlightLoopFunc

	active  bool
	byCycle bool
	dueTime float32
	dueAt   int32
	// schedVersion detects explicit ScheduleFlightLoop calls made inside
	// the callback; those win over the callback's return value, as in the
	// real host.
	schedVersion int

	lastCall  float32
	calledYet bool
	destroyed bool
}

// OpenFlightLoops reports how many flight loops exist, scheduled or not.
func (s *Sim) OpenFlightLoops() int {
	n := 0
	for _, l := range s.loops {
		if !l.destroyed {
			n++
		}
	}
	return n
}

// Advance runs one simulator frame: the clock moves dt seconds, the cycle
// number increments, held commands receive their continue phase, and every
// due flight loop runs, before-flight-model callbacks first. Loops
// created or scheduled inside a callback take effect from the next frame.
func (s *Sim) Advance(dt float32) {
	s.elapsed += dt
	s.cycle++
	for _, c := range snapshot(s.commands) {
		if c.held {
			s.dispatchCommand(c, host.CommandContinue)
		}
	}
	sinceBatch := s.elapsed - s.lastBatch
	ran := false
	// One snapshot for the whole frame: loops created during any callback
	// wait for the next frame, whatever their phase.
	frame := snapshot(s.loops)
	for _, phase := range []host.FlightLoopPhase{host.BeforeFlightModel, host.AfterFlightModel} {
		for _, l := range frame {
			if l.destroyed || !l.active || l.phase != phase || !s.due(l) {
				continue
			}
			sinceCall := s.elapsed
			if l.calledYet {
				sinceCall = s.elapsed - l.lastCall
			}
			v := l.schedVersion
			next := l.fn(sinceCall, sinceBatch, s.cycle)
			ran = true
			l.lastCall = s.elapsed
			l.calledYet = true
			if l.schedVersion == v {
				s.applyNext(l, next)
			}
		}
	}
	if ran {
		s.lastBatch = s.elapsed
	}
}

// AdvanceFrames runs n frames of dt seconds each.
func (s *Sim) AdvanceFrames(n int, dt float32) {
	for i := 0; i < n; i++ {
		s.Advance(dt)
	}
}

func (s *Sim) due(l *simFlightLoop) bool {
	if l.byCycle {
		return s.cycle >= l.dueAt
	}
	return s.elapsed >= l.dueTime
}

func (s *Sim) applyNext(l *simFlightLoop, next float32) {
	switch {
	case next > 0:
		l.byCycle = false
		l.dueTime = s.elapsed + next
	case next < 0:
		l.byCycle = true
		l.dueAt = s.cycle + int32(-next)
	default:
		l.active = false
	}
}

func (s *Sim) loopByID(id host.FlightLoopID) *simFlightLoop {
	for _, l := range s.loops {
		if l.id == id && !l.destroyed {
			return l
		}
	}
	return nil
}

// CreateFlightLoop implements host.ProcessingAPI. New loops start
// unscheduled.
func (s *Sim) CreateFlightLoop(phase host.FlightLoopPhase, fn host.FlightLoopFunc) host.FlightLoopID {
	if fn == nil {
		return 0
	}
	s.nextLoopID++
	l := &simFlightLoop{id: host.FlightLoopID(s.nextLoopID), phase: phase, fn: fn}
	s.loops = append(s.loops, l)
	return l.id
}

// DestroyFlightLoop implements host.ProcessingAPI.
func (s *Sim) DestroyFlightLoop(id host.FlightLoopID) {
	if l := s.loopByID(id); l != nil {
		l.destroyed = true
		l.active = false
	}
}

// ScheduleFlightLoop implements host.ProcessingAPI.
func (s *Sim) ScheduleFlightLoop(id host.FlightLoopID, interval float32, relativeToNow bool) {
	l := s.loopByID(id)
	if l == nil {
		return
	}
	l.schedVersion++
	switch {
	case interval > 0:
		base := l.lastCall
		if relativeToNow || !l.calledYet {
			base = s.elapsed
		}
		l.active = true
		l.byCycle = false
		l.dueTime = base + interval
	case interval < 0:
		l.active = true
		l.byCycle = true
		l.dueAt = s.cycle + int32(-interval)
	default:
		l.active = false
	}
}

// ElapsedTime implements host.ProcessingAPI.
func (s *Sim) ElapsedTime() float32 { return s.elapsed }

// CycleNumber implements host.ProcessingAPI.
func (s *Sim) CycleNumber() int32 { return s.cycle }
