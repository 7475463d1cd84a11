package raychel

import "math"

// OuterIOR scans every surface in the scene for the one whose *signed*
// distance at point is negative and closest to zero — the solid the
// point currently sits inside, if any — and returns its material's
// index of refraction. A point outside every surface (the common case)
// returns 1.0, vacuum.
//
// This replaces the reference implementation's refractive-index stack:
// that design pushes/pops an index as rays are traced deeper into nested
// transparent solids, but the shader's recursive structure here always
// has the full scene available to re-scan, so a stack of "where have we
// been" history is unnecessary — a single scan at the point of interest
// gives the same answer.
func OuterIOR(scene *Scene, point Vec3) float64 {
	objects := scene.Objects()
	materials := scene.Materials()

	best := math.Inf(-1)
	found := false
	ior := 1.0

	for i := range objects {
		d := objects[i].Evaluate(point)
		if d < 0 && d > best {
			best = d
			ior = materials[i].IOR()
			found = true
		}
	}

	if !found {
		return 1.0
	}
	return ior
}
