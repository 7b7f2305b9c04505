// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gifcap

import (
	"bytes"
	"testing"
)

func TestFrameBufferAppend(t *testing.T) {
	var fb FrameBuffer
	if fb.Len() != 0 {
		t.Fatalf("Len() = %d for empty buffer, want 0", fb.Len())
	}

	frame := make([]byte, 4*4*bytesPerPixel)
	if !fb.Append(frame, 4, 4) {
		t.Fatal("Append() = false for first frame, want true")
	}
	if got, want := fb.Width(), uint32(4); got != want {
		t.Errorf("Width() = %d, want %d", got, want)
	}
	if got, want := fb.Height(), uint32(4); got != want {
		t.Errorf("Height() = %d, want %d", got, want)
	}
	if fb.Len() != 1 {
		t.Errorf("Len() = %d, want 1", fb.Len())
	}
}

func TestFrameBufferRejectsResizedFrames(t *testing.T) {
	var fb FrameBuffer
	fb.Append(make([]byte, 4*4*bytesPerPixel), 4, 4)

	if fb.Append(make([]byte, 8*4*bytesPerPixel), 8, 4) {
		t.Error("Append() = true for mismatched width, want false")
	}
	if fb.Append(make([]byte, 4*8*bytesPerPixel), 4, 8) {
		t.Error("Append() = true for mismatched height, want false")
	}
	if fb.Len() != 1 {
		t.Errorf("Len() = %d after rejected appends, want 1", fb.Len())
	}
	// Matching dimensions still append.
	if !fb.Append(make([]byte, 4*4*bytesPerPixel), 4, 4) {
		t.Error("Append() = false for matching dimensions, want true")
	}
}

func TestFrameBufferClear(t *testing.T) {
	var fb FrameBuffer
	fb.Append(make([]byte, 2*2*bytesPerPixel), 2, 2)
	fb.Append(make([]byte, 2*2*bytesPerPixel), 2, 2)

	fb.Clear()
	if fb.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", fb.Len())
	}
	if fb.Width() != 0 || fb.Height() != 0 {
		t.Errorf("dimensions after Clear = %dx%d, want 0x0", fb.Width(), fb.Height())
	}

	// Cleared buffers re-pin dimensions from the next first frame.
	if !fb.Append(make([]byte, 8*8*bytesPerPixel), 8, 8) {
		t.Error("Append() = false after Clear, want true")
	}
	if got, want := fb.Width(), uint32(8); got != want {
		t.Errorf("Width() = %d after re-pin, want %d", got, want)
	}
}

func TestFrameBufferFramesOrder(t *testing.T) {
	var fb FrameBuffer
	first := []byte{1, 1, 1, 1}
	second := []byte{2, 2, 2, 2}
	fb.Append(first, 1, 1)
	fb.Append(second, 1, 1)

	frames := fb.Frames()
	if len(frames) != 2 {
		t.Fatalf("len(Frames()) = %d, want 2", len(frames))
	}
	if !bytes.Equal(frames[0], first) || !bytes.Equal(frames[1], second) {
		t.Error("Frames() did not preserve capture order")
	}
}

func TestUnpadRows(t *testing.T) {
	const (
		width    = 3
		height   = 4
		unpadded = width * bytesPerPixel // 12
		padded   = 64
	)

	// Fill the padded buffer with a sentinel, then write recognizable pixel
	// bytes at the start of each row. The sentinel must never survive.
	mapped := bytes.Repeat([]byte{0xAB}, padded*height)
	for row := 0; row < height; row++ {
		for i := 0; i < unpadded; i++ {
			mapped[row*padded+i] = byte(row*unpadded + i)
		}
	}

	frame := unpadRows(mapped, padded, unpadded, height)
	if len(frame) != unpadded*height {
		t.Fatalf("len(frame) = %d, want %d", len(frame), unpadded*height)
	}
	for i, b := range frame {
		if b != byte(i) {
			t.Fatalf("frame[%d] = %#x, want %#x", i, b, byte(i))
		}
	}
	if bytes.IndexByte(frame, 0xAB) != -1 {
		t.Error("padding sentinel leaked into the de-padded frame")
	}
}

func TestUnpadRowsNoPadding(t *testing.T) {
	// When the padded and unpadded pitches match, de-padding is a copy.
	src := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	frame := unpadRows(src, 4, 4, 2)
	if !bytes.Equal(frame, src) {
		t.Errorf("unpadRows() = %v, want %v", frame, src)
	}
}

func TestAlignBytesPerRow(t *testing.T) {
	tests := []struct {
		n     uint32
		align uint32
		want  uint32
	}{
		{0, 256, 0},
		{1, 256, 256},
		{256, 256, 256},
		{257, 256, 512},
		{1024, 256, 1024},
		{12, 64, 64},
		{100, 0, 100}, // no alignment requirement
	}
	for _, tt := range tests {
		if got := alignBytesPerRow(tt.n, tt.align); got != tt.want {
			t.Errorf("alignBytesPerRow(%d, %d) = %d, want %d", tt.n, tt.align, got, tt.want)
		}
	}
}

func TestAlignBytesPerRowProperties(t *testing.T) {
	const align = 256
	for width := uint32(1); width <= 1024; width++ {
		n := width * bytesPerPixel
		got := alignBytesPerRow(n, align)
		if got < n {
			t.Fatalf("alignBytesPerRow(%d, %d) = %d, smaller than input", n, align, got)
		}
		if got%align != 0 {
			t.Fatalf("alignBytesPerRow(%d, %d) = %d, not a multiple of %d", n, align, got, align)
		}
		if got-n >= align {
			t.Fatalf("alignBytesPerRow(%d, %d) = %d, over-padded by %d", n, align, got, got-n)
		}
	}
}

func TestLayoutFor(t *testing.T) {
	layout := layoutFor(100, 50, 256)
	if got, want := layout.unpaddedBytesPerRow, uint32(400); got != want {
		t.Errorf("unpaddedBytesPerRow = %d, want %d", got, want)
	}
	if got, want := layout.paddedBytesPerRow, uint32(512); got != want {
		t.Errorf("paddedBytesPerRow = %d, want %d", got, want)
	}
	if got, want := layout.bufferSize, uint64(512*50); got != want {
		t.Errorf("bufferSize = %d, want %d", got, want)
	}
}
