// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gifcap

import "github.com/gogpu/gputypes"

// captureFrame copies the surface's current texture into a tightly packed
// RGBA frame: allocate a padded staging buffer, record the copy, wait for
// the GPU, map, de-pad, release.
//
// A missing surface or a GPU-side failure is a transient skip, never
// fatal: ok is false, nothing is appended, and capture resumes next tick.
// The staging buffer is destroyed on every path, including early returns.
func captureFrame(r Renderer) (frame []byte, width, height uint32, ok bool) {
	tex, ready := r.CurrentSurfaceTexture()
	if !ready {
		Logger().Debug("gifcap: surface not ready, skipping tick")
		return nil, 0, 0, false
	}

	width = tex.Width()
	height = tex.Height()
	layout := layoutFor(width, height, r.RowAlignment())

	buf, err := r.CreateMappableBuffer(layout.bufferSize)
	if err != nil {
		Logger().Warn("gifcap: staging buffer allocation failed",
			"err", err, "size", layout.bufferSize)
		return nil, 0, 0, false
	}
	defer buf.Destroy()

	err = r.CopyTextureToBuffer(tex, buf,
		gputypes.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  layout.paddedBytesPerRow,
			RowsPerImage: height,
		},
		gputypes.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)
	if err != nil {
		Logger().Warn("gifcap: texture copy failed", "err", err)
		return nil, 0, 0, false
	}

	if err := r.SubmitAndWait(); err != nil {
		Logger().Warn("gifcap: readback submit failed", "err", err)
		return nil, 0, 0, false
	}

	mapped, err := buf.MapForRead()
	if err != nil {
		Logger().Warn("gifcap: staging buffer map failed", "err", err)
		return nil, 0, 0, false
	}
	frame = unpadRows(mapped, layout.paddedBytesPerRow, layout.unpaddedBytesPerRow, height)
	buf.Unmap()

	Logger().Debug("gifcap: frame captured",
		"width", width, "height", height,
		"paddedBytesPerRow", layout.paddedBytesPerRow,
		"frameBytes", len(frame))
	return frame, width, height, true
}
