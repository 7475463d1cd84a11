package raychel

import "math"

// NoHit is the sentinel surface index returned by Raymarch on a miss —
// "max uint" in the reference implementation, expressed here as the
// largest value of the index type used throughout the package.
const NoHit = ^uint(0)

// tetrahedronOffsets are the four unit-sum direction vectors used by the
// numeric normal estimator: (+,-,-), (-,-,+), (-,+,-), (+,+,+).
var tetrahedronOffsets = [4]Vec3{
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: 1},
}

// EvaluateDistanceField scans every surface in surfaces and returns the
// absolute distance to the nearest one along with its index. Ties
// resolve to the first surface seen. The absolute value makes the scan
// direction-agnostic, which refraction relies on when marching from
// inside a solid.
func EvaluateDistanceField(surfaces []SDFObject, p Vec3) (float64, uint) {
	best := math.Inf(1)
	bestIndex := NoHit
	for i := range surfaces {
		d := math.Abs(surfaces[i].Evaluate(p))
		if d < best {
			best = d
			bestIndex = uint(i)
		}
	}
	return best, bestIndex
}

// RaymarchResult is the outcome of a single Raymarch call.
type RaymarchResult struct {
	Position     Vec3
	Depth        float64
	Steps        int
	SurfaceIndex uint
}

// Hit reports whether the march found a surface before exhausting its
// step or depth budget.
func (r RaymarchResult) Hit() bool {
	return r.SurfaceIndex != NoHit
}

// RaymarchParams bounds a single march: the maximum number of steps, the
// maximum total distance traveled, and the distance under which a
// surface counts as hit.
type RaymarchParams struct {
	MaxSteps     int
	MaxDepth     float64
	SurfaceEps   float64
}

// Raymarch sphere-traces from origin along dir (assumed normalized)
// against surfaces, stepping by the nearest distance-field estimate
// until a surface is hit or the step/depth budget is exhausted.
func Raymarch(origin, dir Vec3, surfaces []SDFObject, params RaymarchParams) RaymarchResult {
	p := origin
	depth := 0.0
	step := 0

	for step < params.MaxSteps && depth < params.MaxDepth {
		d, i := EvaluateDistanceField(surfaces, p)
		if d < params.SurfaceEps {
			return RaymarchResult{Position: p, Depth: depth, Steps: step, SurfaceIndex: i}
		}
		p = p.Add(dir.Scale(d))
		depth += d
		step++
	}

	return RaymarchResult{Position: p, Depth: depth, Steps: step, SurfaceIndex: NoHit}
}

// GetNormal returns the surface normal at p. Spheres and planes use
// their analytic normal; every other node falls back to a
// tetrahedron-offset finite-difference estimate.
func GetNormal(p Vec3, surface *SDFObject, epsilon float64) Vec3 {
	if surface.HasAnalyticNormal() {
		return surface.AnalyticNormal(p)
	}

	var sum Vec3
	for _, v := range tetrahedronOffsets {
		d := surface.Evaluate(p.Add(v.Scale(epsilon)))
		sum = sum.Add(v.Scale(d))
	}
	return sum.Normalize()
}
