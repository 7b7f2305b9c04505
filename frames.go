// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gifcap

// FrameBuffer accumulates tightly packed RGBA8 frames in presentation
// order. It grows only while the session is capturing and is cleared after
// each encode. One capture session owns exactly one FrameBuffer; it is
// never shared.
type FrameBuffer struct {
	frames [][]byte
	width  uint32
	height uint32
}

// Append adds one frame. The first appended frame pins the session's
// dimensions; frames with other dimensions (a surface resize mid-capture)
// are rejected and false is returned.
func (fb *FrameBuffer) Append(frame []byte, width, height uint32) bool {
	if len(fb.frames) == 0 {
		fb.width = width
		fb.height = height
	} else if width != fb.width || height != fb.height {
		return false
	}
	fb.frames = append(fb.frames, frame)
	return true
}

// Len returns the number of accumulated frames.
func (fb *FrameBuffer) Len() int { return len(fb.frames) }

// Frames returns the accumulated frames in capture order. The slice is
// owned by the FrameBuffer and is only valid until the next Clear.
func (fb *FrameBuffer) Frames() [][]byte { return fb.frames }

// Width returns the pinned frame width, or 0 before the first frame.
func (fb *FrameBuffer) Width() uint32 { return fb.width }

// Height returns the pinned frame height, or 0 before the first frame.
func (fb *FrameBuffer) Height() uint32 { return fb.height }

// Clear drops all frames and unpins the dimensions.
func (fb *FrameBuffer) Clear() {
	fb.frames = nil
	fb.width = 0
	fb.height = 0
}

// unpadRows strips hardware row padding from a mapped readback buffer,
// concatenating the first unpaddedBytesPerRow bytes of each
// paddedBytesPerRow chunk into one contiguous frame.
//
// The mapped slice must hold at least paddedBytesPerRow*height bytes; a
// shorter slice is a programming error and panics via the slice bounds
// check rather than producing a truncated frame.
func unpadRows(mapped []byte, paddedBytesPerRow, unpaddedBytesPerRow, height uint32) []byte {
	frame := make([]byte, 0, int(unpaddedBytesPerRow)*int(height))
	for row := uint32(0); row < height; row++ {
		off := int(row) * int(paddedBytesPerRow)
		frame = append(frame, mapped[off:off+int(unpaddedBytesPerRow)]...)
	}
	return frame
}
