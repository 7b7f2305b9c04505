// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gifcap

import "github.com/gogpu/gputypes"

// bytesPerPixel is the size of one RGBA8 pixel.
const bytesPerPixel = 4

// Texture is the surface's current presentable texture for one tick.
// The host retains ownership; gifcap only reads its dimensions and passes
// it back to the Renderer for the copy.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32
}

// Buffer is a transient host-visible readback buffer. The session creates
// one per captured tick, maps it once, copies its bytes out and destroys
// it. A buffer is never reused across ticks, and the slice returned by
// MapForRead must not be touched after Unmap.
type Buffer interface {
	// MapForRead makes the buffer's contents visible to the CPU. Valid
	// only after the copy into the buffer has completed on the GPU
	// timeline (see Renderer.SubmitAndWait).
	MapForRead() ([]byte, error)

	// Unmap invalidates the slice returned by MapForRead.
	Unmap()

	// Destroy releases the buffer. Idempotent.
	Destroy()
}

// Renderer is the capability the host rendering engine supplies to a
// capture session. Implementations wrap the host's device and queue; the
// backend/wgpu package provides one for gogpu/wgpu hosts.
//
// All methods are invoked from the render tick, between scene rendering
// and presentation. CopyTextureToBuffer records work that becomes visible
// to MapForRead only after SubmitAndWait returns.
type Renderer interface {
	// CurrentSurfaceTexture returns the surface's current texture, or
	// false when the surface is not ready this tick (lost, or mid-resize).
	CurrentSurfaceTexture() (Texture, bool)

	// RowAlignment returns the device's minimum row pitch in bytes for
	// texture-to-buffer copies. Must be a power of two.
	RowAlignment() uint32

	// CreateMappableBuffer allocates a buffer of the given size usable as
	// a copy destination and mappable for CPU reads.
	CreateMappableBuffer(size uint64) (Buffer, error)

	// CopyTextureToBuffer records a copy of the full texture (mip 0,
	// origin zero) into buf using the given padded row layout.
	CopyTextureToBuffer(tex Texture, buf Buffer, layout gputypes.TextureDataLayout, extent gputypes.Extent3D) error

	// SubmitAndWait submits all recorded copies and blocks until the GPU
	// signals completion.
	SubmitAndWait() error
}

// rowLayout describes the byte layout of one captured frame in the
// readback buffer.
type rowLayout struct {
	unpaddedBytesPerRow uint32
	paddedBytesPerRow   uint32
	bufferSize          uint64
}

// layoutFor computes the copy layout for a width x height RGBA8 surface,
// padding each row up to the device alignment.
func layoutFor(width, height, alignment uint32) rowLayout {
	unpadded := width * bytesPerPixel
	padded := alignBytesPerRow(unpadded, alignment)
	return rowLayout{
		unpaddedBytesPerRow: unpadded,
		paddedBytesPerRow:   padded,
		bufferSize:          uint64(padded) * uint64(height),
	}
}

// alignBytesPerRow rounds n up to the next multiple of align, which must
// be a power of two (or zero for no alignment).
func alignBytesPerRow(n, align uint32) uint32 {
	if align == 0 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}
