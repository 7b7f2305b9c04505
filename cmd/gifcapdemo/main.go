// Command gifcapdemo captures a synthetic animation into a GIF, exercising
// the full capture pipeline (state machine, padded readback, de-padding,
// encode) without GPU hardware.
package main

import (
	"flag"
	"log"
	"math"
	"time"

	"github.com/gogpu/gifcap"
	"github.com/gogpu/gputypes"
)

func main() {
	var (
		width    = flag.Int("width", 160, "surface width")
		height   = flag.Int("height", 120, "surface height")
		duration = flag.Float64("duration", 2.0, "capture duration in seconds")
		speed    = flag.Int("speed", 10, "quantizer speed (1-30)")
		output   = flag.String("output", "capture.gif", "output file")
	)
	flag.Parse()

	settings, err := gifcap.NewCaptureSettings(*duration, *output, gifcap.RepeatInfinite(), *speed)
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	renderer := &plasmaRenderer{
		width:     uint32(*width),
		height:    uint32(*height),
		alignment: 256,
	}

	session, err := gifcap.NewSession(settings, renderer)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	const tickRate = 60
	dt := time.Second / tickRate
	ticks := int(*duration*tickRate) + 2

	session.Start()
	for i := 0; i < ticks; i++ {
		renderer.advance()
		if err := session.Tick(dt); err != nil {
			log.Fatalf("Capture failed: %v", err)
		}
	}

	log.Printf("Capture saved to %s (%dx%d)\n", *output, *width, *height)
}

// plasmaRenderer is an in-memory stand-in for a GPU host: it "renders" a
// moving plasma pattern and serves padded readback copies of it, the same
// way a real device would.
type plasmaRenderer struct {
	width     uint32
	height    uint32
	alignment uint32
	frame     int
}

func (r *plasmaRenderer) advance() { r.frame++ }

func (r *plasmaRenderer) CurrentSurfaceTexture() (gifcap.Texture, bool) {
	return &memTexture{width: r.width, height: r.height}, true
}

func (r *plasmaRenderer) RowAlignment() uint32 { return r.alignment }

func (r *plasmaRenderer) CreateMappableBuffer(size uint64) (gifcap.Buffer, error) {
	return &memBuffer{data: make([]byte, size)}, nil
}

func (r *plasmaRenderer) CopyTextureToBuffer(tex gifcap.Texture, buf gifcap.Buffer, layout gputypes.TextureDataLayout, extent gputypes.Extent3D) error {
	mb := buf.(*memBuffer)
	t := float64(r.frame) / 60
	for y := uint32(0); y < extent.Height; y++ {
		row := int(y) * int(layout.BytesPerRow)
		for x := uint32(0); x < extent.Width; x++ {
			v := math.Sin(float64(x)/14+t*3) + math.Sin(float64(y)/9-t*2) +
				math.Sin(float64(x+y)/22+t)
			off := row + int(x)*4
			mb.data[off+0] = byte(128 + 127*math.Sin(v*math.Pi/3))
			mb.data[off+1] = byte(128 + 127*math.Sin(v*math.Pi/3+2))
			mb.data[off+2] = byte(128 + 127*math.Sin(v*math.Pi/3+4))
			mb.data[off+3] = 0xFF
		}
	}
	return nil
}

func (r *plasmaRenderer) SubmitAndWait() error { return nil }

type memTexture struct {
	width  uint32
	height uint32
}

func (t *memTexture) Width() uint32  { return t.width }
func (t *memTexture) Height() uint32 { return t.height }

type memBuffer struct {
	data []byte
}

func (b *memBuffer) MapForRead() ([]byte, error) { return b.data, nil }
func (b *memBuffer) Unmap()                      {}
func (b *memBuffer) Destroy()                    { b.data = nil }
