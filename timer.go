// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gifcap

import "time"

// CaptureTimer measures one capture window. It reports the exact tick on
// which the window elapses and can be reset mid-flight when a new
// capture-start signal arrives.
//
// CaptureTimer is not safe for concurrent use; the session drives it from
// the render tick only.
type CaptureTimer struct {
	duration     time.Duration
	elapsed      time.Duration
	finished     bool
	justFinished bool
}

// NewCaptureTimer creates a timer for the given window length.
func NewCaptureTimer(duration time.Duration) *CaptureTimer {
	return &CaptureTimer{duration: duration}
}

// Tick advances the timer by dt. JustFinished becomes true on exactly the
// tick where accumulated time reaches the window length, and stays false
// on every later tick until Reset.
func (t *CaptureTimer) Tick(dt time.Duration) {
	if t.finished {
		t.justFinished = false
		return
	}
	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.finished = true
		t.justFinished = true
	}
}

// Reset restarts the window from zero. Called whenever a capture-start
// signal is observed, even if a capture is already mid-flight.
func (t *CaptureTimer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = false
}

// JustFinished reports whether the window elapsed on the most recent Tick.
func (t *CaptureTimer) JustFinished() bool { return t.justFinished }

// Finished reports whether the window has elapsed since the last Reset.
func (t *CaptureTimer) Finished() bool { return t.finished }

// Elapsed returns the time accumulated since the last Reset, capped at the
// window length once finished.
func (t *CaptureTimer) Elapsed() time.Duration {
	if t.elapsed > t.duration {
		return t.duration
	}
	return t.elapsed
}

// Duration returns the window length.
func (t *CaptureTimer) Duration() time.Duration { return t.duration }
