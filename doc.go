// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gifcap captures rendered frames from a live GPU surface and
// encodes them into an animated GIF.
//
// A capture runs as a timer-driven session: the host signals [Session.Start],
// the session reads back the surface once per render tick while the capture
// window is open, strips the device's row padding from each frame, and when
// the window elapses encodes the accumulated frames to the configured output
// path.
//
// The host rendering engine supplies the [Renderer] capability; gifcap never
// creates GPU devices or schedules render passes itself. [Session.Tick] is
// designed to be invoked from the host's render loop after scene rendering
// and before presentation, so the copy observes the finished frame.
//
// Basic usage:
//
//	settings, err := gifcap.NewCaptureSettings(5.0, "out.gif", gifcap.RepeatInfinite(), 10)
//	if err != nil {
//	    return err
//	}
//	session, err := gifcap.NewSession(settings, renderer)
//	if err != nil {
//	    return err
//	}
//
//	session.Start() // e.g. bound to a hotkey
//
//	// In the render loop, once per frame:
//	if err := session.Tick(dt); err != nil {
//	    log.Printf("capture failed: %v", err)
//	}
//
// For hosts running on gogpu/wgpu, the backend/wgpu package provides a
// ready-made Renderer over a HAL device and queue.
package gifcap
