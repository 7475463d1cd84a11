package raychel

import (
	"math"
	"testing"
)

func TestNormalizeIdempotent(t *testing.T) {
	vectors := []Vec3{
		{X: 1, Y: 2, Z: 3},
		{X: -4, Y: 0.5, Z: 9},
		{X: 1e-3, Y: 1e-3, Z: 1e-3},
		{X: 1000, Y: -1000, Z: 0.0001},
	}

	for _, v := range vectors {
		once := v.Normalize()
		twice := once.Normalize()

		if math.Abs(once.X-twice.X) > 1e-12 ||
			math.Abs(once.Y-twice.Y) > 1e-12 ||
			math.Abs(once.Z-twice.Z) > 1e-12 {
			t.Errorf("normalize not idempotent for %v: once=%v twice=%v", v, once, twice)
		}
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v := Vec3{}
	if got := v.Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize of zero vector: got %v, want zero", got)
	}
}

func TestReflect(t *testing.T) {
	d := Vec3{X: 1, Y: -1}.Normalize()
	n := Vec3{Y: 1}
	r := Reflect(d, n)

	want := Vec3{X: 1, Y: 1}.Normalize()
	if math.Abs(r.X-want.X) > 1e-9 || math.Abs(r.Y-want.Y) > 1e-9 {
		t.Errorf("Reflect: got %v, want %v", r, want)
	}
}

func TestRotateVecIdentity(t *testing.T) {
	v := Vec3{X: 3, Y: -2, Z: 5}
	r := RotateVec(v, IdentityQuaternion)
	if math.Abs(r.X-v.X) > 1e-12 || math.Abs(r.Y-v.Y) > 1e-12 || math.Abs(r.Z-v.Z) > 1e-12 {
		t.Errorf("RotateVec by identity: got %v, want %v", r, v)
	}
}

func TestRotateVecAroundAxis(t *testing.T) {
	// 90 degrees around +Z should take +X to +Y.
	q := QuaternionFromAxisAngle(Vec3{Z: 1}, math.Pi/2)
	r := RotateVec(Vec3{X: 1}, q)

	if math.Abs(r.X) > 1e-9 || math.Abs(r.Y-1) > 1e-9 || math.Abs(r.Z) > 1e-9 {
		t.Errorf("90deg rotation around Z: got %v, want (0,1,0)", r)
	}
}

func TestQuaternionNormalizeZero(t *testing.T) {
	q := Quaternion{}.Normalize()
	if q != IdentityQuaternion {
		t.Errorf("Normalize of zero quaternion: got %v, want identity", q)
	}
}
