package raychel

import (
	"context"
	"math"
	"testing"
)

// TestDenoiseIdentityOnConstantInput is S6: a constant-color image
// denoised with an effectively infinite chi-squared threshold must come
// back unchanged, since every neighbor is always accepted and a constant
// image's weighted mean is itself.
func TestDenoiseIdentityOnConstantInput(t *testing.T) {
	const size = 16
	fb := NewFatFramebuffer(size, size, DefaultHistogramBuckets)
	color := Color{R: 1, G: 0, B: 0}
	for i := range fb.Pixels {
		fb.Pixels[i].Histogram.AddSample(color)
		fb.Pixels[i].NoisyColor = color
		fb.Pixels[i].Samples = 1
	}

	params := DenoiseParams{PatchRadius: 1, SearchRadius: 3, ChiSquaredThreshold: 1e9, ThreadCount: 1}
	out := Denoise(context.Background(), fb, params)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := out.At(x, y)
			if math.Abs(c.R-color.R) > 1e-10 || math.Abs(c.G-color.G) > 1e-10 || math.Abs(c.B-color.B) > 1e-10 {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, c, color)
			}
		}
	}
}

// TestDenoiseAcceptsChannelsIndependently is the case a single combined
// chi-squared distance can't pass: two adjacent pixels share a
// near-identical green channel but a maximally different red channel
// (black vs white). Red must stay unblended while green still blends —
// a combined three-channel score would have let red's large distance
// drag the whole neighbor out of consideration, rejecting green too.
func TestDenoiseAcceptsChannelsIndependently(t *testing.T) {
	fb := NewFatFramebuffer(2, 1, DefaultHistogramBuckets)
	left := Color{R: 0, G: 0.3, B: 0.6}
	right := Color{R: 1, G: 0.5, B: 0.6}

	fb.at(0, 0).Histogram.AddSample(left)
	fb.at(0, 0).NoisyColor = left
	fb.at(0, 0).Samples = 1
	fb.at(1, 0).Histogram.AddSample(right)
	fb.at(1, 0).NoisyColor = right
	fb.at(1, 0).Samples = 1

	params := DenoiseParams{PatchRadius: 0, SearchRadius: 1, ChiSquaredThreshold: 0.3, ThreadCount: 1}
	out := Denoise(context.Background(), fb, params)

	wantG := (left.G + right.G) / 2
	cases := []struct {
		x     int
		wantR float64
	}{{0, left.R}, {1, right.R}}

	for _, c := range cases {
		got := out.At(c.x, 0)
		if math.Abs(got.R-c.wantR) > 1e-9 {
			t.Errorf("pixel %d: red got %v, want unblended %v (red channel should be rejected)", c.x, got.R, c.wantR)
		}
		if math.Abs(got.G-wantG) > 1e-9 {
			t.Errorf("pixel %d: green got %v, want blended %v (green channel should be accepted)", c.x, got.G, wantG)
		}
	}
}

// TestDenoiseZeroThresholdOnlyMatchesSelf checks the other extreme: with a
// threshold no chi-squared distance can fall under (distances are never
// negative, so -1 acts like a zero threshold under the strict comparison),
// every candidate is rejected, the pixel itself included, and each pixel
// keeps its own noisy color even with differing neighbors.
func TestDenoiseZeroThresholdOnlyMatchesSelf(t *testing.T) {
	const size = 8
	fb := NewFatFramebuffer(size, size, DefaultHistogramBuckets)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := Color{R: float64(x) / float64(size), G: float64(y) / float64(size)}
			p := fb.at(x, y)
			p.NoisyColor = c
			p.Histogram.AddSample(c)
			p.Samples = 1
		}
	}

	params := DenoiseParams{PatchRadius: 1, SearchRadius: 3, ChiSquaredThreshold: -1, ThreadCount: 1}
	out := Denoise(context.Background(), fb, params)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			want := fb.at(x, y).NoisyColor
			got := out.At(x, y)
			if got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v (unchanged)", x, y, got, want)
			}
		}
	}
}
