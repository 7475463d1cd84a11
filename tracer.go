package raychel

import (
	"math"

	"github.com/raychel-go/raychel/internal/rlog"
)

// RenderData is the payload handed to a scene's BackgroundFunc when a
// ray escapes every surface.
type RenderData struct {
	Origin         Vec3
	Direction      Vec3
	RecursionDepth int
}

// ShadingData is the payload handed to a material's SurfaceColor once a
// ray has hit a surface and its shading point and normal are known.
type ShadingData struct {
	Position       Vec3
	Normal         Vec3
	Incoming       Vec3
	RecursionDepth int

	scene *Scene
	opts  RenderOptions
	rand  *RandomState
}

// debugBackground is the fallback used whenever a scene has no
// background function configured.
func debugBackground(data RenderData) Color {
	return Color{R: data.Direction.X, G: data.Direction.Y, B: data.Direction.Z}
}

func background(scene *Scene, data RenderData) Color {
	if scene.Background != nil {
		return scene.Background(data)
	}
	return debugBackground(data)
}

// GetShadedColor is the shader's entry point: raymarch along direction
// from origin, shade the hit surface's material, or fall back to the
// scene's background on a miss or once the recursion budget is spent.
func GetShadedColor(scene *Scene, opts RenderOptions, rand *RandomState, origin, direction Vec3, recursionDepth int) Color {
	data := RenderData{Origin: origin, Direction: direction, RecursionDepth: recursionDepth}

	if recursionDepth >= opts.MaxRecursionDepth {
		return background(scene, data)
	}

	objects := scene.Objects()
	result := Raymarch(origin, direction, objects, RaymarchParams{
		MaxSteps:   opts.MaxRaySteps,
		MaxDepth:   opts.MaxRayDepth,
		SurfaceEps: opts.SurfaceEpsilon,
	})
	if !result.Hit() {
		return background(scene, data)
	}

	surface := &objects[result.SurfaceIndex]
	normal := GetNormal(result.Position, surface, opts.NormalEpsilon)
	shadingPoint := result.Position.Add(normal.Scale(opts.ShadingEpsilon))

	material := &scene.Materials()[result.SurfaceIndex]
	shading := ShadingData{
		Position:       shadingPoint,
		Normal:         normal,
		Incoming:       direction,
		RecursionDepth: recursionDepth + 1,
		scene:          scene,
		opts:           opts,
		rand:           rand,
	}
	return material.SurfaceColor(shading)
}

// GetDiffuseLighting cosine-weight samples the hemisphere above normal
// and recurses, clamping the recursion depth the child inherits so that
// indirect lighting is capped at opts.MaxLightingBounces bounces from
// this diffuse event while leaving the full recursion budget available
// to reflection/refraction chains that pass through a diffuse surface.
func GetDiffuseLighting(data ShadingData) Color {
	var sampledDir Vec3
	for guard := 0; ; guard++ {
		if guard == zigguratGuard {
			panic("diffuse: hemisphere sampling loop exceeded guard of 16 iterations")
		}
		jitter := Vec3{
			X: data.rand.ZigguratNormal(),
			Y: data.rand.ZigguratNormal(),
			Z: data.rand.ZigguratNormal(),
		}
		t := data.Normal.Add(jitter)
		if t.Length() > 1e-12 {
			sampledDir = t.Normalize()
			break
		}
	}
	if sampledDir.Dot(data.Normal) < 0 {
		sampledDir = sampledDir.Scale(-1)
	}

	childDepth := data.RecursionDepth
	if budget := data.opts.MaxRecursionDepth - data.opts.MaxLightingBounces; budget > childDepth {
		childDepth = budget
	}

	shaded := GetShadedColor(data.scene, data.opts, data.rand, data.Position, sampledDir, childDepth)
	return shaded.Scale(sampledDir.Dot(data.Normal))
}

// fresnelResult bundles the reflection factor together with the
// exterior/interior IOR pair actually used (after the cosi>0 swap),
// since GetRefraction's caller needs both.
type fresnelResult struct {
	ReflectionFactor float64
	Normal           Vec3
	Exterior         float64
	Interior         float64
	CosI             float64
}

// fresnel computes the unpolarized dielectric reflection factor via the
// full Fresnel equations (no Schlick approximation), handling total
// internal reflection by reporting a reflection factor of 1.
func fresnel(dir, normal Vec3, exteriorIOR, interiorIOR float64) fresnelResult {
	cosi := clampUnit(dir.Dot(normal))
	n := normal
	exterior, interior := exteriorIOR, interiorIOR

	if cosi > 0 {
		exterior, interior = interior, exterior
		n = n.Scale(-1)
	} else {
		cosi = -cosi
	}

	sint := (exterior / interior) * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return fresnelResult{ReflectionFactor: 1, Normal: n, Exterior: exterior, Interior: interior, CosI: cosi}
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	rs := (exterior*cosi - interior*cost) / (exterior*cosi + interior*cost)
	rp := (interior*cosi - exterior*cost) / (interior*cosi + exterior*cost)
	factor := Clamp01(0.5 * (rs*rs + rp*rp))

	return fresnelResult{ReflectionFactor: factor, Normal: n, Exterior: exterior, Interior: interior, CosI: cosi}
}

// refractDirection bends dir across the interface with normal n, given
// the Fresnel result's resolved exterior/interior/cosi triple. Returns
// the zero vector on total internal reflection (ReflectionFactor == 1);
// callers must check that first.
func refractDirection(dir, n Vec3, fr fresnelResult) Vec3 {
	eta := fr.Exterior / fr.Interior
	cosi := fr.CosI
	if dir.Dot(n) > 0 {
		cosi = -cosi
	}
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return Vec3{}
	}
	return dir.Scale(eta).Add(n.Scale(eta*cosi - math.Sqrt(k)))
}

type float64Triple struct {
	R, G, B float64
}

// getRefractionAtIOR evaluates one channel's worth of GetRefraction at a
// single interior IOR value (chromatic dispersion calls this three
// times at ior*(1-v), ior, ior*(1+v)).
func getRefractionAtIOR(data ShadingData, ior float64) float64Triple {
	exterior := OuterIOR(data.scene, data.Position)
	fr := fresnel(data.Incoming, data.Normal, exterior, ior)

	var reflected, refracted Color
	hasReflected, hasRefracted := false, false

	if fr.ReflectionFactor >= 0.01 {
		reflectDir := Reflect(data.Incoming, fr.Normal)
		reflected = GetShadedColor(data.scene, data.opts, data.rand, data.Position, reflectDir, data.RecursionDepth)
		hasReflected = true
	}

	if 1-fr.ReflectionFactor >= 0.01 {
		refracted = shadeRefractedRay(data, fr, ior)
		hasRefracted = true
	}

	var out Color
	if hasReflected {
		out = out.Add(reflected.Scale(fr.ReflectionFactor))
	}
	if hasRefracted {
		out = out.Add(refracted.Scale(1 - fr.ReflectionFactor))
	}
	return float64Triple{out.R, out.G, out.B}
}

// shadeRefractedRay carries a ray across the interface and, if it finds
// an exit, refracts it a second time back out to the surrounding medium
// — falling back to internal reflection if that second refraction would
// itself be a total internal reflection.
func shadeRefractedRay(data ShadingData, fr fresnelResult, ior float64) Color {
	refractDir := refractDirection(data.Incoming, fr.Normal, fr)
	if refractDir == (Vec3{}) {
		return Color{}
	}

	entryPoint := data.Position.Add(data.Normal.Scale(-2 * data.opts.ShadingEpsilon))

	objects := data.scene.Objects()
	exit := Raymarch(entryPoint, refractDir, objects, RaymarchParams{
		MaxSteps:   data.opts.MaxRaySteps,
		MaxDepth:   data.opts.MaxRayDepth,
		SurfaceEps: data.opts.SurfaceEpsilon,
	})
	if !exit.Hit() {
		rlog.Warnf("refraction: interior march found no exit surface, returning black")
		return Color{}
	}

	exitSurface := &objects[exit.SurfaceIndex]
	exitNormal := GetNormal(exit.Position, exitSurface, data.opts.NormalEpsilon)
	outerShadingPoint := exit.Position.Add(exitNormal.Scale(data.opts.ShadingEpsilon))
	innerShadingPoint := exit.Position.Add(exitNormal.Scale(-data.opts.ShadingEpsilon))

	exteriorAtExit := OuterIOR(data.scene, outerShadingPoint)
	exitFresnel := fresnel(refractDir, exitNormal, exteriorAtExit, ior)

	if exitFresnel.ReflectionFactor >= 1 {
		internalReflectDir := Reflect(refractDir, exitFresnel.Normal)
		return GetShadedColor(data.scene, data.opts, data.rand, innerShadingPoint, internalReflectDir, data.RecursionDepth)
	}

	exitDir := refractDirection(refractDir, exitFresnel.Normal, exitFresnel)
	return GetShadedColor(data.scene, data.opts, data.rand, outerShadingPoint, exitDir, data.RecursionDepth)
}

// GetRefraction implements Fresnel-weighted reflection/transmission
// through a dielectric, with total internal reflection and optional
// chromatic dispersion (when ior_variation != 0, each color channel is
// evaluated at its own IOR and the three results combine into one RGB
// triple).
func GetRefraction(data ShadingData, ior, iorVariation float64) Color {
	if iorVariation == 0 {
		t := getRefractionAtIOR(data, ior)
		return Color{R: t.R, G: t.G, B: t.B}
	}

	r := getRefractionAtIOR(data, ior*(1-iorVariation))
	g := getRefractionAtIOR(data, ior)
	b := getRefractionAtIOR(data, ior*(1+iorVariation))
	return Color{R: r.R, G: g.G, B: b.B}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
