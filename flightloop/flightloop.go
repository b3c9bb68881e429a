// Package flightloop runs plugin code inside the simulator's own loop.
//
// The simulator has no threads to offer plugins; instead, a flight loop
// callback runs at a point the plugin picks, before or after each flight
// model integration, and its return value says when to run next:
//
//	loop, _ := flightloop.New(flightloop.AfterFlightModel, func(t flightloop.Timing) flightloop.Next {
//		sample()
//		return flightloop.After(5) // again in five seconds
//	})
//	loop.Schedule(flightloop.Now())
//
// Timer resolution is the frame rate: a callback due in five seconds runs
// on the first frame after those five seconds have passed, never between
// frames. A panic in a callback is recovered and logged, and the loop is
// parked until it is scheduled again.
package flightloop

import (
	"errors"
	"fmt"

	"github.com/xplm-go/xplm/host"
	"github.com/xplm-go/xplm/internal/cleanup"
	"github.com/xplm-go/xplm/logging"
)

// ErrDestroyed reports an operation on a destroyed loop.
var ErrDestroyed = errors.New("flight loop destroyed")

// Phase selects where in the frame a callback runs.
type Phase = host.FlightLoopPhase

const (
	// BeforeFlightModel runs the callback ahead of the flight model, the
	// place to inject control or override state for the coming frame.
	BeforeFlightModel = host.BeforeFlightModel
	// AfterFlightModel runs the callback once the frame's physics are
	// final, the place to read results.
	AfterFlightModel = host.AfterFlightModel
)

// Timing tells a callback how long it has been away.
type Timing struct {
	// SinceLastCall is the seconds since this callback last ran, or since
	// the simulator started on the first call.
	SinceLastCall float32
	// SinceLastLoop is the seconds since any flight loop was dispatched.
	SinceLastLoop float32
	// Counter is the simulator's frame counter.
	Counter int32
}

// Next is a callback's continuation: when it wants to run again.
type Next struct {
	interval float32
}

// After continues in the given number of seconds, counted from this call.
func After(seconds float32) Next { return Next{interval: seconds} }

// AfterLoops continues after n more frames.
func AfterLoops(n int) Next { return Next{interval: float32(-n)} }

// NextLoop continues on the very next frame.
func NextLoop() Next { return AfterLoops(1) }

// Stop parks the loop. It stays registered and can be scheduled again.
func Stop() Next { return Next{} }

// Func is a flight loop callback.
type Func func(Timing) Next

// Loop is a registered flight loop callback.
type Loop struct {
	id         host.FlightLoopID
	destroyed  bool
	cleanupTok cleanup.Token
	log        *logging.Logger
}

// New registers fn to run in the given phase. The loop starts parked;
// arm it with Schedule. Loops not destroyed explicitly are released when
// the plugin stops.
func New(phase Phase, fn Func) (*Loop, error) {
	if fn == nil {
		return nil, errors.New("nil flight loop func")
	}
	l := &Loop{log: logging.Sub("flightloop")}
	l.id = host.Active().CreateFlightLoop(phase, l.dispatch(fn))
	if l.id == 0 {
		return nil, errors.New("create flight loop: host refused")
	}
	l.cleanupTok = cleanup.Register(l.release)
	return l, nil
}

// dispatch bridges fn to the host callback. A recovered panic parks the
// loop; the simulator keeps running without it.
func (l *Loop) dispatch(fn Func) host.FlightLoopFunc {
	return func(sinceCall, sinceLoop float32, counter int32) (next float32) {
		defer func() {
			if r := recover(); r != nil {
				logging.Panicked(l.log, "flight loop", r)
				next = 0
			}
		}()
		n := fn(Timing{
			SinceLastCall: sinceCall,
			SinceLastLoop: sinceLoop,
			Counter:       counter,
		})
		return n.interval
	}
}

// Schedule is an arming request for a loop: when it should run next.
type Schedule struct {
	interval float32
	fromNow  bool
}

// In arms the loop to run in the given number of seconds from now.
func In(seconds float32) Schedule {
	return Schedule{interval: seconds, fromNow: true}
}

// InFromLastCall arms the loop to run the given number of seconds after
// its previous call, keeping a fixed cadence across rescheduling.
func InFromLastCall(seconds float32) Schedule {
	return Schedule{interval: seconds}
}

// InLoops arms the loop to run after n more frames.
func InLoops(n int) Schedule {
	return Schedule{interval: float32(-n), fromNow: true}
}

// Now arms the loop for the very next frame.
func Now() Schedule { return InLoops(1) }

// Schedule arms or re-arms the loop. Calling it from inside the loop's
// own callback is legal and overrides the callback's return value.
func (l *Loop) Schedule(when Schedule) error {
	if l.destroyed {
		return fmt.Errorf("schedule: %w", ErrDestroyed)
	}
	host.Active().ScheduleFlightLoop(l.id, when.interval, when.fromNow)
	return nil
}

// Deactivate parks the loop without destroying it.
func (l *Loop) Deactivate() error {
	if l.destroyed {
		return fmt.Errorf("deactivate: %w", ErrDestroyed)
	}
	host.Active().ScheduleFlightLoop(l.id, 0, false)
	return nil
}

// Destroy unregisters the loop. The first call wins; any later use of
// the loop, Destroy included, returns ErrDestroyed. Destroying from
// inside the loop's own callback is legal.
func (l *Loop) Destroy() error {
	if l.destroyed {
		return fmt.Errorf("destroy: %w", ErrDestroyed)
	}
	cleanup.Forget(l.cleanupTok)
	l.release()
	return nil
}

func (l *Loop) release() {
	if l.destroyed {
		return
	}
	l.destroyed = true
	host.Active().DestroyFlightLoop(l.id)
}

// ElapsedTime returns the seconds since the simulator started. The clock
// keeps counting while the simulator is paused, which makes it a wall
// clock, not a flight clock.
func ElapsedTime() float32 { return host.Active().ElapsedTime() }

// CycleNumber returns the simulator's frame counter.
func CycleNumber() int32 { return host.Active().CycleNumber() }
