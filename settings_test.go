// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gifcap

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewCaptureSettings(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.gif")

	s, err := NewCaptureSettings(2.5, out, RepeatFinite(3), 15)
	if err != nil {
		t.Fatalf("NewCaptureSettings() error = %v, want nil", err)
	}
	if got, want := s.Duration(), 2500*time.Millisecond; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
	if got := s.OutputPath(); got != out {
		t.Errorf("OutputPath() = %q, want %q", got, out)
	}
	if got := s.Repeat().LoopCount(); got != 3 {
		t.Errorf("Repeat().LoopCount() = %d, want 3", got)
	}
	if got := s.Speed(); got != 15 {
		t.Errorf("Speed() = %d, want 15", got)
	}
}

func TestNewCaptureSettingsRejectsDuration(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	for _, d := range []float64{0, -1, -0.001} {
		_, err := NewCaptureSettings(d, out, RepeatInfinite(), 10)
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("NewCaptureSettings(duration=%v) error = %v, want *ConfigurationError", d, err)
			continue
		}
		if !strings.Contains(cfgErr.Reason, "duration") {
			t.Errorf("ConfigurationError.Reason = %q, want mention of duration", cfgErr.Reason)
		}
	}
}

func TestNewCaptureSettingsRejectsMissingDirectory(t *testing.T) {
	_, err := NewCaptureSettings(1, "/nonexistent-gifcap-dir/out.gif", RepeatInfinite(), 10)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("NewCaptureSettings() error = %v, want *ConfigurationError", err)
	}
	if !strings.Contains(cfgErr.Error(), "does not exist") {
		t.Errorf("Error() = %q, want mention of missing directory", cfgErr.Error())
	}
}

func TestNewCaptureSettingsRejectsSpeed(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	for _, speed := range []int{0, -5, 31, 50} {
		_, err := NewCaptureSettings(1, out, RepeatInfinite(), speed)
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("NewCaptureSettings(speed=%d) error = %v, want *ConfigurationError", speed, err)
			continue
		}
		if !strings.Contains(cfgErr.Reason, "within range of 1 to 30") {
			t.Errorf("ConfigurationError.Reason = %q, want speed range message", cfgErr.Reason)
		}
	}
}

func TestNewCaptureSettingsSpeedBounds(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	for _, speed := range []int{MinSpeed, MaxSpeed} {
		if _, err := NewCaptureSettings(1, out, RepeatInfinite(), speed); err != nil {
			t.Errorf("NewCaptureSettings(speed=%d) error = %v, want nil", speed, err)
		}
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Reason: "speed 31 must be within range of 1 to 30"}
	want := "gifcap: invalid capture settings: speed 31 must be within range of 1 to 30"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRepeatLoopCount(t *testing.T) {
	tests := []struct {
		name   string
		repeat Repeat
		want   int
	}{
		{"infinite", RepeatInfinite(), 0},
		{"none", RepeatNone(), -1},
		{"finite zero", RepeatFinite(0), 0},
		{"finite five", RepeatFinite(5), 5},
		{"finite max", RepeatFinite(65535), 65535},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.repeat.LoopCount(); got != tt.want {
				t.Errorf("LoopCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRepeatString(t *testing.T) {
	tests := []struct {
		repeat Repeat
		want   string
	}{
		{RepeatInfinite(), "infinite"},
		{RepeatNone(), "none"},
		{RepeatFinite(7), "finite(7)"},
	}
	for _, tt := range tests {
		if got := tt.repeat.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDefaultCaptureSettings(t *testing.T) {
	s := DefaultCaptureSettings()
	if got, want := s.Duration(), 5*time.Second; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
	if got := s.OutputPath(); got != "capture.gif" {
		t.Errorf("OutputPath() = %q, want %q", got, "capture.gif")
	}
	if got := s.Repeat().LoopCount(); got != 0 {
		t.Errorf("Repeat().LoopCount() = %d, want 0", got)
	}
	if got := s.Speed(); got != 10 {
		t.Errorf("Speed() = %d, want 10", got)
	}
}
