// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gifcap

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Quantizer speed bounds. Lower is slower and higher quality.
const (
	MinSpeed = 1
	MaxSpeed = 30
)

// ConfigurationError reports invalid capture settings at construction time.
// No session starts from settings that failed validation.
type ConfigurationError struct {
	// Reason is a human-readable description of the rejected value.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "gifcap: invalid capture settings: " + e.Reason
}

// repeatMode discriminates the Repeat variants.
type repeatMode int

const (
	repeatInfinite repeatMode = iota
	repeatNone
	repeatFinite
)

// Repeat controls how many times the encoded animation loops.
// Construct values with [RepeatInfinite], [RepeatNone] or [RepeatFinite].
type Repeat struct {
	mode  repeatMode
	count uint16
}

// RepeatInfinite loops the animation forever.
func RepeatInfinite() Repeat { return Repeat{mode: repeatInfinite} }

// RepeatNone plays the animation exactly once.
func RepeatNone() Repeat { return Repeat{mode: repeatNone} }

// RepeatFinite replays the animation n additional times after the first play.
func RepeatFinite(n uint16) Repeat { return Repeat{mode: repeatFinite, count: n} }

// LoopCount returns the repeat behavior in image/gif semantics:
// 0 loops forever, -1 plays once, n > 0 replays n times.
func (r Repeat) LoopCount() int {
	switch r.mode {
	case repeatNone:
		return -1
	case repeatFinite:
		return int(r.count)
	default:
		return 0
	}
}

// String returns a human-readable description of the repeat behavior.
func (r Repeat) String() string {
	switch r.mode {
	case repeatNone:
		return "none"
	case repeatFinite:
		return fmt.Sprintf("finite(%d)", r.count)
	default:
		return "infinite"
	}
}

// CaptureSettings is the validated, immutable configuration for capture
// sessions. Construct with [NewCaptureSettings]; the zero value is not
// usable.
//
// The settings value is owned by the session and snapshotted into each
// tick, so mutating host-side state after construction can never affect a
// capture in flight.
type CaptureSettings struct {
	duration   time.Duration
	outputPath string
	repeat     Repeat
	speed      int
}

// NewCaptureSettings validates and builds capture settings.
//
// durationSeconds is the length of the capture window and must be positive.
// outputPath must reference an existing parent directory; the file itself
// is created at encode time. repeat selects GIF loop behavior. speed is the
// quantizer speed in [MinSpeed, MaxSpeed] and is passed straight through to
// the encoder (lower = higher quality, slower).
//
// Returns a *ConfigurationError describing the first rejected value.
func NewCaptureSettings(durationSeconds float64, outputPath string, repeat Repeat, speed int) (CaptureSettings, error) {
	if durationSeconds <= 0 {
		return CaptureSettings{}, &ConfigurationError{
			Reason: fmt.Sprintf("duration %v must be greater than zero", durationSeconds),
		}
	}
	dir := filepath.Dir(outputPath)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return CaptureSettings{}, &ConfigurationError{
			Reason: fmt.Sprintf("output directory %q does not exist", dir),
		}
	}
	if speed < MinSpeed || speed > MaxSpeed {
		return CaptureSettings{}, &ConfigurationError{
			Reason: fmt.Sprintf("speed %d must be within range of %d to %d", speed, MinSpeed, MaxSpeed),
		}
	}

	return CaptureSettings{
		duration:   time.Duration(durationSeconds * float64(time.Second)),
		outputPath: outputPath,
		repeat:     repeat,
		speed:      speed,
	}, nil
}

// DefaultCaptureSettings returns settings with a 5 second window, infinite
// repeat, speed 10, writing capture.gif in the working directory.
func DefaultCaptureSettings() CaptureSettings {
	return CaptureSettings{
		duration:   5 * time.Second,
		outputPath: "capture.gif",
		repeat:     RepeatInfinite(),
		speed:      10,
	}
}

// Duration returns the capture window length.
func (s CaptureSettings) Duration() time.Duration { return s.duration }

// OutputPath returns the path the encoded GIF is written to.
func (s CaptureSettings) OutputPath() string { return s.outputPath }

// Repeat returns the configured loop behavior.
func (s CaptureSettings) Repeat() Repeat { return s.repeat }

// Speed returns the quantizer speed in [MinSpeed, MaxSpeed].
func (s CaptureSettings) Speed() int { return s.speed }
