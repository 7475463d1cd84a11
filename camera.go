package raychel

import (
	"math"
	"sync"
)

// Camera places the eye in the scene via a Transform (position + rotation)
// and a zoom factor controlling field of view: larger zoom narrows the
// frustum. Rays are always generated looking down the transform's local
// +Z axis, with +X right and +Y up, before the transform's rotation is
// applied.
type Camera struct {
	Transform Transform
	Zoom      float64

	cacheMu  sync.Mutex
	cacheKey rayCacheKey
	cache    []Vec3
}

func NewCamera(transform Transform, zoom float64) *Camera {
	return &Camera{Transform: transform, Zoom: zoom}
}

// rayCacheKey identifies the (zoom, image size) pair a cached set of
// local-space ray directions was computed for. The cache belongs to the
// Camera instance rather than a process-wide global, so multiple cameras
// (or the same camera across zoom changes) never fight over one slot.
type rayCacheKey struct {
	zoom          float64
	width, height int
}

// right, up and forward are the camera's local axes before its transform's
// rotation is applied.
var (
	cameraRight   = Vec3{X: 1}
	cameraUp      = Vec3{Y: 1}
	cameraForward = Vec3{Z: 1}
)

// localDirection computes the un-rotated ray direction for pixel (x, y)
// of a width x height image at the camera's zoom, jittered within the
// pixel by (jitterX, jitterY) in [0, 1). x runs left to right; y runs
// image-row-down but the screen-space coordinate it maps to runs top to
// bottom, so row 0 gets the largest ry.
func (c *Camera) localDirection(x, y, width, height int, jitterX, jitterY float64) Vec3 {
	rx := (float64(x)+jitterX)/float64(width) - 0.5
	ry := 0.5 - (float64(y)+jitterY)/float64(height)

	aspect := float64(width) / float64(height)
	if aspect > 1 {
		rx *= aspect
	} else {
		ry /= aspect
	}

	dir := cameraRight.Scale(rx).Add(cameraUp.Scale(ry)).Add(cameraForward.Scale(c.Zoom))
	return dir.Normalize()
}

// jitteredDirection adds AA jitter directly to an already-computed base
// direction, per §4.7: jitter = (uniform_random/W, uniform_random/H, 0)
// added before renormalizing.
func (c *Camera) jitteredDirection(base Vec3, width, height int, rand *RandomState) Vec3 {
	jitter := Vec3{X: rand.UniformRandom() / float64(width), Y: rand.UniformRandom() / float64(height)}
	return base.Add(jitter).Normalize()
}

// directionCache returns the camera's width x height grid of local-space
// ray directions for the unjittered pixel centers, building and caching
// it on first use for this (zoom, size) pair. Jittered samples (for
// anti-aliasing) perturb the cached direction rather than recomputing the
// whole grid from scratch.
func (c *Camera) directionCache(width, height int) []Vec3 {
	key := rayCacheKey{zoom: c.Zoom, width: width, height: height}

	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	if c.cacheKey == key && c.cache != nil {
		return c.cache
	}

	dirs := make([]Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dirs[y*width+x] = c.localDirection(x, y, width, height, 0.5, 0.5)
		}
	}
	c.cacheKey = key
	c.cache = dirs
	return dirs
}

// RayFor returns the world-space origin and direction of the ray through
// pixel (x, y) of a width x height image. The base direction always comes
// from the camera's process-lifetime (per instance) cache; when doAA is
// set, rand jitters it per §4.7 before the camera's rotation is applied.
func (c *Camera) RayFor(x, y, width, height int, doAA bool, rand *RandomState) (origin, direction Vec3) {
	local := c.directionCache(width, height)[y*width+x]
	if doAA {
		local = c.jitteredDirection(local, width, height, rand)
	}

	world := RotateVec(local, c.Transform.Rotation)
	return c.Transform.Offset, world
}

// LookAt orients the camera's rotation so that its forward axis points
// from its current offset toward target, with up as close to (0,1,0) as
// the forward direction allows.
func (c *Camera) LookAt(target Vec3) {
	forward := target.Sub(c.Transform.Offset)
	if forward.Length() < 1e-12 {
		return
	}
	forward = forward.Normalize()

	worldUp := Vec3{Y: 1}
	right := worldUp.Cross(forward)
	if right.Length() < 1e-6 {
		right = Vec3{X: 1}
	}
	right = right.Normalize()
	up := forward.Cross(right).Normalize()

	c.Transform.Rotation = quaternionFromBasis(right, up, forward)
}

// quaternionFromBasis builds the rotation quaternion taking the canonical
// (X, Y, Z) basis to (right, up, forward), via the standard
// trace-based matrix-to-quaternion conversion.
func quaternionFromBasis(right, up, forward Vec3) Quaternion {
	m00, m01, m02 := right.X, up.X, forward.X
	m10, m11, m12 := right.Y, up.Y, forward.Y
	m20, m21, m22 := right.Z, up.Z, forward.Z

	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1.0)
		return Quaternion{
			W: 0.25 / s,
			X: (m21 - m12) * s,
			Y: (m02 - m20) * s,
			Z: (m10 - m01) * s,
		}.Normalize()
	case m00 > m11 && m00 > m22:
		s := 2.0 * math.Sqrt(1.0+m00-m11-m22)
		return Quaternion{
			W: (m21 - m12) / s,
			X: 0.25 * s,
			Y: (m01 + m10) / s,
			Z: (m02 + m20) / s,
		}.Normalize()
	case m11 > m22:
		s := 2.0 * math.Sqrt(1.0+m11-m00-m22)
		return Quaternion{
			W: (m02 - m20) / s,
			X: (m01 + m10) / s,
			Y: 0.25 * s,
			Z: (m12 + m21) / s,
		}.Normalize()
	default:
		s := 2.0 * math.Sqrt(1.0+m22-m00-m11)
		return Quaternion{
			W: (m10 - m01) / s,
			X: (m02 + m20) / s,
			Y: (m12 + m21) / s,
			Z: 0.25 * s,
		}.Normalize()
	}
}
