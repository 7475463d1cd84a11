// Command raychel renders a scene described as a tree of SDF surfaces
// and writes the result as a P6 PPM image, optionally denoising it first
// and/or previewing it live in a window as it converges.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"image"
	stdcolor "image/color"
	"log"
	"math"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/raychel-go/raychel"
	"github.com/raychel-go/raychel/internal/meshexport"
	"github.com/raychel-go/raychel/internal/rlog"
)

func main() {
	var (
		scenePath  = flag.String("scene", "", "scene text file to render (default: a built-in demo scene)")
		outPath    = flag.String("out", "render.ppm", "output PPM path")
		width      = flag.Int("width", 512, "image width")
		height     = flag.Int("height", 512, "image height")
		spp        = flag.Int("spp", 32, "samples per pixel")
		aa         = flag.Bool("aa", true, "enable anti-aliasing jitter")
		threads    = flag.Int("threads", 0, "worker count (0 = runtime.NumCPU())")
		seed       = flag.Uint64("seed", 1, "PRNG seed")
		denoise    = flag.Bool("denoise", true, "apply ray-histogram-fusion denoising")
		preview    = flag.Bool("preview", false, "open a live preview window while rendering")
		exportMesh = flag.String("export-mesh", "", "also tessellate the scene to an STL file at this path")
	)
	flag.Parse()

	opts := raychel.DefaultRenderOptions()
	opts.Width, opts.Height = *width, *height
	opts.SamplesPerPixel = *spp
	opts.DoAntiAliasing = *aa
	opts.ThreadCount = *threads

	scene, camera := loadOrBuildScene(*scenePath)

	if *exportMesh != "" {
		if err := meshexport.WriteSTL(*exportMesh, scene, meshexport.DefaultBounds()); err != nil {
			log.Fatalf("export-mesh: %v", err)
		}
		rlog.Infof("wrote mesh export to %s", *exportMesh)
	}

	ctx := context.Background()

	var fb *raychel.FatFramebuffer
	if *preview {
		fb = renderWithPreview(ctx, scene, camera, opts, *seed)
	} else {
		totalSamples := int64(opts.Width) * int64(opts.Height) * int64(opts.SamplesPerPixel)
		rlog.Infof("rendering %dx%d at %d spp (%s samples)", opts.Width, opts.Height, opts.SamplesPerPixel, raychel.Humanize(totalSamples))
		fb = raychel.Render(ctx, scene, camera, opts, *seed)
	}

	var framebuffer *raychel.Framebuffer
	if *denoise {
		framebuffer = raychel.Denoise(ctx, fb, raychel.DefaultDenoiseParams())
	} else {
		framebuffer = fb.Resolve()
	}

	if err := writePPM(*outPath, framebuffer); err != nil {
		log.Fatalf("writing %s: %v", *outPath, err)
	}
	rlog.Infof("wrote %s", *outPath)
}

// loadOrBuildScene reads scenePath if given, otherwise returns a small
// built-in scene (a diffuse ground plane under a transparent sphere) so
// the binary is runnable without an input file.
func loadOrBuildScene(scenePath string) (*raychel.Scene, *raychel.Camera) {
	cameraTransform := raychel.IdentityTransform()
	cameraTransform.Offset = raychel.Vec3{Z: -5}
	camera := raychel.NewCamera(cameraTransform, 1)

	if scenePath == "" {
		scene := raychel.NewScene()
		scene.Background = raychel.SunSkyBackground(
			raychel.Color{R: 0.4, G: 0.55, B: 0.9}, raychel.Color{R: 0.05, G: 0.08, B: 0.2}, raychel.Color{R: 0.1, G: 0.1, B: 0.1},
			1.0,
			raychel.Vec3{X: 0.3, Y: 0.8, Z: -0.2}, raychel.Color{R: 1, G: 0.95, B: 0.8}, 4.0, 256,
		)
		scene.AddObject(raychel.Translate(raychel.Plane(raychel.Vec3{Y: 1}), raychel.Vec3{Y: -1}), raychel.DiffuseMaterial(raychel.Color{R: 0.5, G: 0.5, B: 0.5}))
		scene.AddObject(raychel.Sphere(1), raychel.TransparentMaterial(raychel.Color{R: 1, G: 1, B: 1}, 1.5, 0.02))
		return scene, camera
	}

	f, err := os.Open(scenePath)
	if err != nil {
		log.Fatalf("opening %s: %v", scenePath, err)
	}
	defer f.Close()

	scene, err := raychel.DeserializeScene(f)
	if err != nil {
		log.Fatalf("parsing %s: %v", scenePath, err)
	}
	return scene, camera
}

// writePPM writes fb as 8-bit P6 PPM, gamma-uncorrected (the histogram
// already applied tone compression for the denoiser; the output here is
// a straight linear-to-byte clamp, matching the core's non-goal of owning
// a display transform).
func writePPM(path string, fb *raychel.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P6\n%d %d\n255\n", fb.Width, fb.Height)

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			w.Write([]byte{toByte(c.R), toByte(c.G), toByte(c.B)})
		}
	}
	return w.Flush()
}

func toByte(v float64) byte {
	return byte(math.Round(raychel.Clamp01(v) * 255))
}

// renderWithPreview opens a Fyne window and renders into fb on a
// background goroutine, polling fb's pixels every 500ms to refresh the
// displayed image — the watcher §4.8 allows, reading progress without
// mutating renderer state. The window closes itself once the render
// finishes.
func renderWithPreview(ctx context.Context, scene *raychel.Scene, camera *raychel.Camera, opts raychel.RenderOptions, seed uint64) *raychel.FatFramebuffer {
	fb := raychel.NewFatFramebuffer(opts.Width, opts.Height, raychel.DefaultHistogramBuckets)

	a := app.New()
	w := a.NewWindow("raychel")
	w.Resize(fyne.NewSize(float32(opts.Width), float32(opts.Height)))

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	displayed := canvas.NewImageFromImage(img)
	displayed.FillMode = canvas.ImageFillOriginal
	w.SetContent(displayed)

	done := make(chan struct{})
	go func() {
		raychel.RenderInto(ctx, fb, scene, camera, opts, seed)
		close(done)
	}()

	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				fyne.Do(func() {
					blitPreview(img, fb)
					displayed.Refresh()
					w.Close()
				})
				return
			case <-ticker.C:
				fyne.Do(func() {
					blitPreview(img, fb)
					displayed.Refresh()
				})
			}
		}
	}()

	w.ShowAndRun()
	<-done
	return fb
}

func blitPreview(img *image.RGBA, fb *raychel.FatFramebuffer) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.Pixels[y*fb.Width+x].NoisyColor
			img.Set(x, y, stdcolor.RGBA{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B), A: 255})
		}
	}
}
