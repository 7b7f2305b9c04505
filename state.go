// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gifcap

import (
	"fmt"
	"sync/atomic"
	"time"
)

// CaptureState describes where a capture session is in its lifecycle.
// Exactly one state is live at a time; transitions happen only inside
// [Session.Tick].
type CaptureState int

const (
	// StateOff means no capture is running.
	StateOff CaptureState = iota

	// StateCapturing means the capture window is open and frames are
	// being read back each tick.
	StateCapturing

	// StateJustFinished means the window elapsed this tick; the encoder
	// consumes this state and resets the session to StateOff.
	StateJustFinished
)

// String returns the string representation of CaptureState.
func (s CaptureState) String() string {
	switch s {
	case StateOff:
		return "Off"
	case StateCapturing:
		return "Capturing"
	case StateJustFinished:
		return "JustFinished"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// RestartPolicy resolves the race where a capture-start signal arrives on
// the same tick the capture window elapses.
type RestartPolicy int

const (
	// RestartWins restarts the window immediately; the pending encode is
	// superseded and no file is written for the elapsed window. Captured
	// frames are kept and the new window extends them. This matches the
	// behavior of resetting the timer on every start signal.
	RestartWins RestartPolicy = iota

	// FinishWins lets the elapsed window encode first; the start signal
	// stays queued and opens a fresh capture on the next tick.
	FinishWins
)

// String returns the string representation of RestartPolicy.
func (p RestartPolicy) String() string {
	switch p {
	case RestartWins:
		return "RestartWins"
	case FinishWins:
		return "FinishWins"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// stateMachine drives the Off -> Capturing -> JustFinished cycle, evaluated
// exactly once per tick. Start signals are edge-triggered: any number of
// signals between two ticks coalesce into a single restart.
type stateMachine struct {
	state  CaptureState
	timer  *CaptureTimer
	policy RestartPolicy

	// startPending is set from RequestStart, which may run on any
	// goroutine (input handlers, UI callbacks). All other fields are
	// touched only from the tick.
	startPending atomic.Bool
}

func newStateMachine(duration time.Duration, policy RestartPolicy) *stateMachine {
	return &stateMachine{
		state:  StateOff,
		timer:  NewCaptureTimer(duration),
		policy: policy,
	}
}

// RequestStart records a capture-start signal for the next tick.
func (m *stateMachine) RequestStart() {
	m.startPending.Store(true)
}

// State returns the current state.
func (m *stateMachine) State() CaptureState { return m.state }

// Advance evaluates one tick: the timer moves first, then a pending start
// (restarting the window regardless of prior state), then the finish check.
// At most one transition happens per tick.
func (m *stateMachine) Advance(dt time.Duration) CaptureState {
	m.timer.Tick(dt)

	start := m.startPending.Load()
	finished := m.timer.JustFinished() && m.state == StateCapturing

	switch {
	case start && finished && m.policy == FinishWins:
		// The start stays queued and takes effect next tick.
		m.state = StateJustFinished
	case start:
		m.startPending.Store(false)
		if finished {
			Logger().Warn("gifcap: restart superseded a finished capture window")
		}
		m.timer.Reset()
		m.state = StateCapturing
	case finished:
		m.state = StateJustFinished
	}
	return m.state
}

// ConsumeFinished returns the machine to StateOff after the encoder has
// consumed a JustFinished transition.
func (m *stateMachine) ConsumeFinished() {
	if m.state == StateJustFinished {
		m.state = StateOff
	}
}
