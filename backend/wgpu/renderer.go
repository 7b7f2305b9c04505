// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements the gifcap.Renderer capability on a gogpu/wgpu
// HAL device and queue. This is the production readback path for hosts
// that render through gogpu.
package wgpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gifcap"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Renderer errors.
var (
	// ErrNilDevice is returned when creating a renderer without a device.
	ErrNilDevice = errors.New("wgpu: device is nil")

	// ErrNilQueue is returned when creating a renderer without a queue.
	ErrNilQueue = errors.New("wgpu: queue is nil")

	// ErrNilTextureSource is returned when creating a renderer without a
	// texture source.
	ErrNilTextureSource = errors.New("wgpu: texture source is nil")

	// ErrNoHALProvider is returned when a device provider does not expose
	// the underlying HAL device and queue.
	ErrNoHALProvider = errors.New("wgpu: provider does not expose HAL device and queue")

	// ErrForeignTexture is returned when a copy references a texture that
	// did not come from this renderer's CurrentSurfaceTexture.
	ErrForeignTexture = errors.New("wgpu: texture was not produced by this renderer")

	// ErrForeignBuffer is returned when a copy references a buffer that
	// was not created by this renderer.
	ErrForeignBuffer = errors.New("wgpu: buffer was not created by this renderer")

	// ErrBufferDestroyed is returned when mapping a destroyed buffer.
	ErrBufferDestroyed = errors.New("wgpu: staging buffer has been destroyed")
)

// copyPitchAlignment is the row pitch WebGPU (and DX12) require for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// gpuWaitTimeout bounds the fence wait after a readback submit.
const gpuWaitTimeout = 5 * time.Second

// TextureSource supplies the surface's current texture each tick. Return
// ok=false when the surface has no presentable texture this tick (lost, or
// mid-resize). The host retains ownership of the returned texture; the
// renderer only records a copy from it.
type TextureSource func() (tex hal.Texture, width, height uint32, ok bool)

// Renderer implements gifcap.Renderer over a wgpu HAL device and queue.
//
// The copy and the readback are ordered on the same queue: recorded copies
// are submitted with a fence in SubmitAndWait, and MapForRead on the
// staging buffer is only valid after that wait returns. Renderer is not
// safe for concurrent use; drive it from the render tick only.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	source TextureSource

	// pending holds command buffers recorded since the last submit.
	pending []hal.CommandBuffer
}

// NewRenderer creates a renderer over an existing HAL device and queue.
// The caller retains ownership of both.
func NewRenderer(device hal.Device, queue hal.Queue, source TextureSource) (*Renderer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	if source == nil {
		return nil, ErrNilTextureSource
	}
	return &Renderer{
		device: device,
		queue:  queue,
		source: source,
	}, nil
}

// NewRendererFromProvider creates a renderer from a gpucontext device
// provider whose handles expose the underlying HAL types. This is the
// integration path for hosts that hand out their GPU context through
// gpucontext rather than raw HAL handles.
func NewRendererFromProvider(provider gpucontext.DeviceProvider, source TextureSource) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return NewRenderer(device, queue, source)
}

// surfaceTexture adapts a hal.Texture to gifcap.Texture. HAL textures do
// not carry their dimensions, so the source reports them alongside.
type surfaceTexture struct {
	tex    hal.Texture
	width  uint32
	height uint32
}

func (t *surfaceTexture) Width() uint32  { return t.width }
func (t *surfaceTexture) Height() uint32 { return t.height }

// readbackBuffer is the staging buffer for one captured frame. "Mapping"
// is a fenced queue read into host memory; the HAL path keeps no persistent
// mapped pointer across ticks.
type readbackBuffer struct {
	device    hal.Device
	queue     hal.Queue
	buf       hal.Buffer
	size      uint64
	destroyed bool
}

// MapForRead reads the staging buffer's contents into host memory. Only
// valid after the renderer's SubmitAndWait has returned.
func (b *readbackBuffer) MapForRead() ([]byte, error) {
	if b.destroyed {
		return nil, ErrBufferDestroyed
	}
	data := make([]byte, b.size)
	if err := b.queue.ReadBuffer(b.buf, 0, data); err != nil {
		return nil, fmt.Errorf("wgpu: read staging buffer: %w", err)
	}
	return data, nil
}

// Unmap is a no-op for the fenced-read path; the host copy returned by
// MapForRead is already detached from GPU memory.
func (b *readbackBuffer) Unmap() {}

// Destroy releases the staging buffer. Idempotent.
func (b *readbackBuffer) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.device.DestroyBuffer(b.buf)
}

// CurrentSurfaceTexture returns the surface's current texture, or false
// when the host reports no presentable texture this tick.
func (r *Renderer) CurrentSurfaceTexture() (gifcap.Texture, bool) {
	tex, width, height, ok := r.source()
	if !ok || tex == nil {
		return nil, false
	}
	return &surfaceTexture{tex: tex, width: width, height: height}, true
}

// RowAlignment returns the required copy row pitch.
func (r *Renderer) RowAlignment() uint32 { return copyPitchAlignment }

// CreateMappableBuffer allocates a MapRead|CopyDst staging buffer.
func (r *Renderer) CreateMappableBuffer(size uint64) (gifcap.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "gifcap_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	return &readbackBuffer{
		device: r.device,
		queue:  r.queue,
		buf:    buf,
		size:   size,
	}, nil
}

// CopyTextureToBuffer records a full-texture copy into the staging buffer
// using the padded row layout. The copy executes on SubmitAndWait.
func (r *Renderer) CopyTextureToBuffer(tex gifcap.Texture, buf gifcap.Buffer, layout gputypes.TextureDataLayout, extent gputypes.Extent3D) error {
	st, ok := tex.(*surfaceTexture)
	if !ok {
		return ErrForeignTexture
	}
	rb, ok := buf.(*readbackBuffer)
	if !ok {
		return ErrForeignBuffer
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "gifcap_readback",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("gifcap_copy"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	encoder.CopyTextureToBuffer(st.tex, rb.buf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  layout.BytesPerRow,
			RowsPerImage: layout.RowsPerImage,
		},
		TextureBase: hal.ImageCopyTexture{Texture: st.tex, MipLevel: 0},
		Size: hal.Extent3D{
			Width:              extent.Width,
			Height:             extent.Height,
			DepthOrArrayLayers: 1,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	r.pending = append(r.pending, cmdBuf)
	return nil
}

// SubmitAndWait submits all recorded copies with a fence and blocks until
// the GPU signals it. After it returns, MapForRead on the staging buffers
// of those copies observes the finished frame.
func (r *Renderer) SubmitAndWait() error {
	if len(r.pending) == 0 {
		return nil
	}
	cmdBufs := r.pending
	r.pending = nil
	defer func() {
		for _, cb := range cmdBufs {
			r.device.FreeCommandBuffer(cb)
		}
	}()

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit(cmdBufs, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// Verify Renderer implements the capability interface.
var _ gifcap.Renderer = (*Renderer)(nil)
