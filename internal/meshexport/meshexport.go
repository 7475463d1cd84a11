// Package meshexport tessellates a rendered scene's SDF tree into a
// triangle mesh and writes it as STL, a supplemental CLI convenience
// outside the rendering core: inspect the geometry that was actually
// path-traced in a mesh viewer or slicer.
package meshexport

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/raychel-go/raychel"
)

// defaultMeshCells controls the marching-cubes tessellation resolution,
// matching the grounding example's default.
const defaultMeshCells = 200

// Bounds is a conservative axis-aligned box the mesh export assumes
// contains every surface in the scene; SDFObject has no notion of a
// bounding box (booleans and transforms can unbound it arbitrarily), so
// the caller supplies one.
type Bounds struct {
	Min, Max v3.Vec
}

// DefaultBounds returns a generous [-10,10]^3 box, enough for the demo
// scene and most hand-authored ones.
func DefaultBounds() Bounds {
	return Bounds{Min: v3.Vec{X: -10, Y: -10, Z: -10}, Max: v3.Vec{X: 10, Y: 10, Z: 10}}
}

// sceneSDF3 adapts a raychel.Scene's unioned surfaces to sdf.SDF3, the
// interface github.com/deadsy/sdfx's marching-cubes renderer expects.
type sceneSDF3 struct {
	scene  *raychel.Scene
	bounds Bounds
}

// Evaluate returns the signed union of every surface in the scene: the
// minimum of their individually signed distances. This deliberately does
// not reuse raychel.EvaluateDistanceField, which scans absolute distance
// for the raymarcher's direction-agnostic hit test and would make every
// surface boundary look like the outside of a shell to marching cubes.
func (s *sceneSDF3) Evaluate(p v3.Vec) float64 {
	point := raychel.Vec3{X: p.X, Y: p.Y, Z: p.Z}
	objects := s.scene.Objects()

	best := objects[0].Evaluate(point)
	for i := 1; i < len(objects); i++ {
		if d := objects[i].Evaluate(point); d < best {
			best = d
		}
	}
	return best
}

func (s *sceneSDF3) BoundingBox() sdf.Box3 {
	return sdf.Box3{Min: s.bounds.Min, Max: s.bounds.Max}
}

// WriteSTL tessellates every surface in scene (unioned by sceneSDF3.Evaluate's
// signed-minimum scan across all objects) via marching cubes and writes the
// result to path as binary STL.
func WriteSTL(path string, scene *raychel.Scene, bounds Bounds) error {
	if scene.Len() == 0 {
		return fmt.Errorf("meshexport: scene has no surfaces to tessellate")
	}

	adapted := &sceneSDF3{scene: scene, bounds: bounds}
	return render.RenderSTL(adapted, defaultMeshCells, path)
}
