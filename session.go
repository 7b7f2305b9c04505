// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gifcap

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gifcap/gifenc"
)

// Session errors.
var (
	// ErrNilRenderer is returned when creating a session without a renderer.
	ErrNilRenderer = errors.New("gifcap: renderer is nil")
)

// SessionOption configures a Session during creation.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	policy RestartPolicy
}

// WithRestartPolicy selects how a capture-start signal arriving on the same
// tick the window elapses is resolved. The default is [RestartWins].
func WithRestartPolicy(p RestartPolicy) SessionOption {
	return func(o *sessionOptions) {
		o.policy = p
	}
}

// Session owns one capture lifecycle: settings, state machine, and the
// accumulated frames. A session produces at most one output file per
// Off -> Capturing -> JustFinished cycle and can run any number of cycles.
//
// Tick and State must be called from the host's render loop goroutine.
// Start is safe to call from any goroutine.
type Session struct {
	settings CaptureSettings
	renderer Renderer
	machine  *stateMachine
	frames   FrameBuffer
}

// NewSession creates a capture session over the given renderer capability.
// Settings must come from [NewCaptureSettings] or [DefaultCaptureSettings].
func NewSession(settings CaptureSettings, renderer Renderer, opts ...SessionOption) (*Session, error) {
	if renderer == nil {
		return nil, ErrNilRenderer
	}

	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	return &Session{
		settings: settings,
		renderer: renderer,
		machine:  newStateMachine(settings.Duration(), o.policy),
	}, nil
}

// Start signals capture to begin on the next tick. Starting while a capture
// is already running restarts the duration window without discarding frames
// captured so far. Multiple Start calls between two ticks coalesce into a
// single restart.
func (s *Session) Start() {
	s.machine.RequestStart()
	Logger().Info("gifcap: capture start requested",
		"duration", s.settings.Duration(), "path", s.settings.OutputPath())
}

// State returns the current capture state.
func (s *Session) State() CaptureState { return s.machine.State() }

// FrameCount returns the number of frames accumulated so far.
func (s *Session) FrameCount() int { return s.frames.Len() }

// Tick advances the capture pipeline by one render tick: state machine
// first, then surface readback and frame accumulation while capturing,
// then the encode check.
//
// Tick returns a non-nil error only when a just-finished capture failed to
// encode; the session resets to StateOff and clears its frames either way,
// so the host may simply log the error and keep rendering.
func (s *Session) Tick(dt time.Duration) error {
	// Settings are immutable; the snapshot keeps one tick's readback and
	// encode decisions consistent.
	settings := s.settings

	state := s.machine.Advance(dt)

	if state == StateCapturing {
		if frame, w, h, ok := captureFrame(s.renderer); ok {
			if !s.frames.Append(frame, w, h) {
				Logger().Warn("gifcap: surface resized mid-capture, frame dropped",
					"width", w, "height", h,
					"sessionWidth", s.frames.Width(), "sessionHeight", s.frames.Height())
			}
		}
	}

	if state != StateJustFinished {
		return nil
	}

	err := s.encode(settings)
	s.frames.Clear()
	s.machine.ConsumeFinished()
	return err
}

// encode writes the accumulated frames to the configured output path.
// IO failures are fatal to the session; a partially written file may be
// left behind.
func (s *Session) encode(settings CaptureSettings) error {
	if s.frames.Len() == 0 {
		Logger().Warn("gifcap: capture window elapsed with no frames, nothing to encode")
		return nil
	}

	Logger().Info("gifcap: encoding capture",
		"frames", s.frames.Len(),
		"width", s.frames.Width(), "height", s.frames.Height(),
		"path", settings.OutputPath())

	err := gifenc.EncodeFile(
		settings.OutputPath(),
		s.frames.Frames(),
		int(s.frames.Width()), int(s.frames.Height()),
		gifenc.Options{
			Speed:     settings.Speed(),
			LoopCount: settings.Repeat().LoopCount(),
		},
	)
	if err != nil {
		return fmt.Errorf("gifcap: encode capture: %w", err)
	}

	Logger().Info("gifcap: capture saved", "path", settings.OutputPath())
	return nil
}
