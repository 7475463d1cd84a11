package raychel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// RenderOptions bounds and configures a single render: how many samples
// to take per pixel, how deep to recurse, and the epsilons the raymarcher
// and shader use to decide "close enough" to a surface.
type RenderOptions struct {
	Width, Height int

	SamplesPerPixel int
	DoAntiAliasing  bool
	ThreadCount     int // 0 means runtime.NumCPU()

	MaxRaySteps        int
	MaxRayDepth        float64
	MaxRecursionDepth  int
	MaxLightingBounces int

	SurfaceEpsilon float64
	NormalEpsilon  float64
	ShadingEpsilon float64
}

// DefaultRenderOptions returns the options the reference renderer ships
// with: enough recursion budget for a handful of dielectric bounces, a
// lighting-bounce cap tighter than the full recursion budget so indirect
// diffuse light doesn't blow out render time, and epsilons tuned for a
// roughly unit-scale scene.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:  512,
		Height: 512,

		SamplesPerPixel: 32,
		DoAntiAliasing:  true,
		ThreadCount:     0,

		MaxRaySteps:        256,
		MaxRayDepth:        100,
		MaxRecursionDepth:  8,
		MaxLightingBounces: 2,

		SurfaceEpsilon: 1e-4,
		NormalEpsilon:  1e-4,
		ShadingEpsilon: 1e-4,
	}
}

func (o RenderOptions) threadCount() int {
	if o.ThreadCount > 0 {
		return o.ThreadCount
	}
	if o.ThreadCount == 0 {
		return runtime.NumCPU()
	}
	return 1
}

// FatPixel carries both the running noisy average used to drive the
// render and the per-channel histogram RHF denoising consumes afterward.
type FatPixel struct {
	NoisyColor Color
	Samples    int
	Histogram  RayHistogram
}

// FatFramebuffer is a flat, row-major grid of FatPixel, sized once at
// construction the way the reference implementation's pixel buffer is.
type FatFramebuffer struct {
	Width, Height int
	Pixels        []FatPixel
}

// NewFatFramebuffer allocates a w x h framebuffer with every pixel's
// histogram sized for the given number of discretization buckets (see
// RayHistogram).
func NewFatFramebuffer(w, h, histogramBuckets int) *FatFramebuffer {
	pixels := make([]FatPixel, w*h)
	for i := range pixels {
		pixels[i].Histogram = NewRayHistogram(histogramBuckets)
	}
	return &FatFramebuffer{Width: w, Height: h, Pixels: pixels}
}

func (f *FatFramebuffer) at(x, y int) *FatPixel {
	return &f.Pixels[y*f.Width+x]
}

// Framebuffer is the final, resolved w x h image of Colors written out by
// the renderer (after denoising, if any was requested).
type Framebuffer struct {
	Width, Height int
	Pixels        []Color
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{Width: w, Height: h, Pixels: make([]Color, w*h)}
}

func (f *Framebuffer) At(x, y int) Color {
	return f.Pixels[y*f.Width+x]
}

func (f *Framebuffer) Set(x, y int, c Color) {
	f.Pixels[y*f.Width+x] = c
}

// Render traces opts.SamplesPerPixel rays through every pixel of a
// opts.Width x opts.Height image, tiling the image into TileSize x
// TileSize tiles and handing tiles out to opts.threadCount() worker
// goroutines through a single shared atomic counter — the Go analogue of
// the reference renderer's std::execution::par tile loop. Each worker
// owns its own RandomState so no per-sample synchronization is needed
// beyond the final accumulation into the shared framebuffer.
func Render(ctx context.Context, scene *Scene, camera *Camera, opts RenderOptions, seed uint64) *FatFramebuffer {
	fb := NewFatFramebuffer(opts.Width, opts.Height, DefaultHistogramBuckets)
	RenderInto(ctx, fb, scene, camera, opts, seed)
	return fb
}

// RenderInto renders into a caller-supplied framebuffer instead of
// allocating one, so a watcher (e.g. a live preview window) can read fb's
// pixels concurrently while the render is still in progress. Reads racing
// a tile's writes are limited to pixels the renderer hasn't finished with
// yet and are never the cause of a crash; a preview reading mid-render
// pixels may simply show a partially-sampled tile.
func RenderInto(ctx context.Context, fb *FatFramebuffer, scene *Scene, camera *Camera, opts RenderOptions, seed uint64) {
	tiles := BuildTiles(opts.Width, opts.Height, TileSize)

	var nextTile atomic.Int64
	var wg sync.WaitGroup
	wg.Add(opts.threadCount())

	for w := 0; w < opts.threadCount(); w++ {
		workerSeed := seed + uint64(w)*0x9E3779B97F4A7C15
		go func(workerSeed uint64) {
			defer wg.Done()
			rnd := NewRandomState(workerSeed)

			for {
				if ctx.Err() != nil {
					return
				}
				idx := nextTile.Add(1) - 1
				if idx >= int64(len(tiles)) {
					return
				}
				renderTile(ctx, fb, scene, camera, opts, rnd, tiles[idx])
			}
		}(workerSeed)
	}

	wg.Wait()
}

func renderTile(ctx context.Context, fb *FatFramebuffer, scene *Scene, camera *Camera, opts RenderOptions, rnd *RandomState, t Tile) {
	for y := t.Y; y < t.Y+t.Height; y++ {
		if ctx.Err() != nil {
			return
		}
		for x := t.X; x < t.X+t.Width; x++ {
			pixel := fb.at(x, y)
			for s := 0; s < opts.SamplesPerPixel; s++ {
				origin, dir := camera.RayFor(x, y, opts.Width, opts.Height, opts.DoAntiAliasing, rnd)
				c := GetShadedColor(scene, opts, rnd, origin, dir, 0)

				pixel.Samples++
				pixel.NoisyColor = pixel.NoisyColor.Add(c.Sub(pixel.NoisyColor).Scale(1.0 / float64(pixel.Samples)))
				pixel.Histogram.AddSample(c)
			}
		}
	}
}

// Resolve copies a FatFramebuffer's noisy running averages into a plain
// Framebuffer, discarding the histograms. Callers that want denoising
// should run Denoise (see denoise.go) on the FatFramebuffer first.
func (f *FatFramebuffer) Resolve() *Framebuffer {
	out := NewFramebuffer(f.Width, f.Height)
	for i, p := range f.Pixels {
		out.Pixels[i] = p.NoisyColor
	}
	return out
}
