package raychel

import (
	"math"
	"testing"
)

func defaultMarchParams() RaymarchParams {
	return RaymarchParams{MaxSteps: 256, MaxDepth: 100, SurfaceEps: 1e-4}
}

func TestRaymarchHitsSphereBoundary(t *testing.T) {
	surfaces := []SDFObject{Sphere(1)}
	result := Raymarch(Vec3{Z: -2}, Vec3{Z: 1}, surfaces, defaultMarchParams())

	if !result.Hit() {
		t.Fatal("expected a hit")
	}
	if math.Abs(result.Position.Z-(-1)) > 1e-3 {
		t.Errorf("hit position Z: got %v, want ~-1", result.Position.Z)
	}
}

func TestRaymarchMissesWhenFacingAway(t *testing.T) {
	surfaces := []SDFObject{Sphere(1)}
	result := Raymarch(Vec3{Z: 2}, Vec3{Z: 1}, surfaces, defaultMarchParams())

	if result.Hit() {
		t.Fatalf("expected NO_HIT, got a hit at %v", result.Position)
	}
}

func TestRaymarchRespectsMaxSteps(t *testing.T) {
	surfaces := []SDFObject{Sphere(1)}
	params := RaymarchParams{MaxSteps: 0, MaxDepth: 100, SurfaceEps: 1e-4}
	result := Raymarch(Vec3{Z: -2}, Vec3{Z: 1}, surfaces, params)
	if result.Hit() {
		t.Fatal("expected NO_HIT with a zero step budget")
	}
}

func TestGetNormalSphereIsAnalytic(t *testing.T) {
	s := Sphere(1)
	n := GetNormal(Vec3{X: 1}, &s, 1e-4)
	if math.Abs(n.X-1) > 1e-12 || math.Abs(n.Y) > 1e-12 {
		t.Errorf("sphere normal: got %v, want (1,0,0)", n)
	}
}

func TestGetNormalBoxIsNumeric(t *testing.T) {
	b := Box(Vec3{X: 1, Y: 1, Z: 1})
	n := GetNormal(Vec3{X: 1, Y: 0.1, Z: 0.1}, &b, 1e-4)
	if math.Abs(n.X-1) > 1e-2 {
		t.Errorf("box +X face normal: got %v, want close to (1,0,0)", n)
	}
}
