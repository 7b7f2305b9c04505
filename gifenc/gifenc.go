// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gifenc encodes sequences of tightly packed RGBA8 frames as
// animated GIFs. Each frame gets its own local color table derived by
// median-cut quantization; there is no global color table.
package gifenc

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"
)

// Encoding errors.
var (
	// ErrNoFrames is returned when encoding an empty frame sequence.
	ErrNoFrames = errors.New("gifenc: no frames to encode")

	// ErrInvalidDimensions is returned for non-positive frame dimensions.
	ErrInvalidDimensions = errors.New("gifenc: invalid frame dimensions")

	// ErrFrameSize is returned when a frame's byte length does not match
	// the declared dimensions.
	ErrFrameSize = errors.New("gifenc: frame byte length does not match dimensions")
)

// paletteColors is the local color table size for every frame.
const paletteColors = 256

// Options control quantization and looping.
type Options struct {
	// Speed is the palette sampling factor in [1, 30]. Speed 1 derives
	// each frame's palette from every pixel (slowest, highest quality);
	// speed N samples every Nth pixel. Values outside the range are
	// clamped.
	Speed int

	// LoopCount follows image/gif semantics: 0 loops forever, -1 plays
	// once, n > 0 replays n times.
	LoopCount int

	// Delay is the per-frame delay in 100ths of a second.
	Delay int
}

// Encode writes frames as an animated GIF. Frames are written in slice
// order, each one width*height*4 bytes of tightly packed RGBA. The output
// is fully opaque: alpha is discarded during quantization.
//
// Quantization operates on a private copy of each frame, so the caller's
// frame bytes are never modified. On a write failure the encode aborts;
// whatever was already written to w stays written.
func Encode(w io.Writer, frames [][]byte, width, height int, opts Options) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	speed := opts.Speed
	if speed < 1 {
		speed = 1
	}
	if speed > 30 {
		speed = 30
	}

	frameLen := width * height * 4
	bounds := image.Rect(0, 0, width, height)
	quantizer := quantize.MedianCutQuantizer{}

	anim := &gif.GIF{
		LoopCount: opts.LoopCount,
		Config: image.Config{
			Width:  width,
			Height: height,
		},
	}

	for i, data := range frames {
		if len(data) != frameLen {
			return fmt.Errorf("%w: frame %d has %d bytes, want %d", ErrFrameSize, i, len(data), frameLen)
		}

		rgba := opaqueCopy(data, width, height)
		palette := quantizer.Quantize(make(color.Palette, 0, paletteColors), paletteSample(rgba, speed))

		paletted := image.NewPaletted(bounds, palette)
		draw.FloydSteinberg.Draw(paletted, bounds, rgba, image.Point{})

		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, opts.Delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("gifenc: encode: %w", err)
	}
	return nil
}

// EncodeFile creates the file at path and encodes frames into it. Create,
// write and close failures are fatal to the encode; a partially written
// file is not cleaned up.
func EncodeFile(path string, frames [][]byte, width, height int, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gifenc: create %s: %w", path, err)
	}
	if err := Encode(f, frames, width, height, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("gifenc: close %s: %w", path, err)
	}
	return nil
}

// opaqueCopy copies one frame into fresh RGBA storage with alpha forced
// opaque. GIF carries no partial transparency, and quantizing a private
// copy keeps the caller's frame bytes intact.
func opaqueCopy(data []byte, width, height int) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(rgba.Pix, data)
	for i := 3; i < len(rgba.Pix); i += 4 {
		rgba.Pix[i] = 0xFF
	}
	return rgba
}

// paletteSample returns the pixels a frame's palette is derived from.
// Speed 1 uses the full frame; higher speeds subsample every speed-th
// pixel into a strip, trading palette fidelity for encoding time.
func paletteSample(src *image.RGBA, speed int) image.Image {
	if speed <= 1 {
		return src
	}
	total := len(src.Pix) / 4
	n := (total + speed - 1) / speed
	sample := image.NewRGBA(image.Rect(0, 0, n, 1))
	for i := 0; i < n; i++ {
		copy(sample.Pix[i*4:i*4+4], src.Pix[i*speed*4:i*speed*4+4])
	}
	return sample
}
