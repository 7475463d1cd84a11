package raychel

// MaterialKind discriminates the closed set of material variants, the
// same closed-tagged-union treatment applied to SDFObject.
type MaterialKind int

const (
	MaterialFlat MaterialKind = iota
	MaterialReflective
	MaterialDiffuse
	MaterialTransparent
	MaterialDebug
	MaterialDeserializationError
)

// ErrorMaterialColor is the magenta sentinel surfaced by a material that
// failed to deserialize, so a malformed line is visually obvious without
// crashing the renderer.
var ErrorMaterialColor = Color{R: 1, G: 0, B: 1}

// Material is a value from the variant {Flat, Reflective, Diffuse,
// Transparent, Debug, DeserializationError}. Transparent additionally
// carries an index of refraction and a per-channel dispersion variation.
type Material struct {
	Kind         MaterialKind
	Albedo       Color
	IORValue     float64
	IORVariation float64
}

func FlatMaterial(c Color) Material {
	return Material{Kind: MaterialFlat, Albedo: c}
}

func ReflectiveMaterial(c Color) Material {
	return Material{Kind: MaterialReflective, Albedo: c}
}

func DiffuseMaterial(c Color) Material {
	return Material{Kind: MaterialDiffuse, Albedo: c}
}

func TransparentMaterial(c Color, ior, variation float64) Material {
	return Material{Kind: MaterialTransparent, Albedo: c, IORValue: ior, IORVariation: variation}
}

func DebugMaterial() Material {
	return Material{Kind: MaterialDebug}
}

func DeserializationErrorMaterial() Material {
	return Material{Kind: MaterialDeserializationError, Albedo: ErrorMaterialColor}
}

// IOR returns the material's index of refraction: 1.0 for every
// non-transparent material.
func (m *Material) IOR() float64 {
	if m.Kind == MaterialTransparent {
		return m.IORValue
	}
	return 1.0
}

// SurfaceColor resolves the radiance leaving a shaded point, dispatching
// on the material's kind. Reflective and Transparent recurse back into
// GetShadedColor/GetRefraction, so the renderer's recursion budget
// (data.RecursionDepth / opts.MaxRecursionDepth) bounds this indirectly.
func (m *Material) SurfaceColor(data ShadingData) Color {
	switch m.Kind {
	case MaterialFlat:
		return m.Albedo
	case MaterialDebug:
		return ColorFromVec3(data.Normal)
	case MaterialReflective:
		reflectDir := Reflect(data.Incoming, data.Normal)
		reflected := GetShadedColor(data.scene, data.opts, data.rand, data.Position, reflectDir, data.RecursionDepth)
		return reflected.ComponentMul(m.Albedo)
	case MaterialDiffuse:
		return GetDiffuseLighting(data).ComponentMul(m.Albedo)
	case MaterialTransparent:
		return GetRefraction(data, m.IORValue, m.IORVariation).ComponentMul(m.Albedo)
	default:
		return ErrorMaterialColor
	}
}

// TypeName returns the type name the scene text format uses for this
// material's kind.
func (m *Material) TypeName() string {
	switch m.Kind {
	case MaterialFlat:
		return "Flat"
	case MaterialReflective:
		return "Reflective"
	case MaterialDiffuse:
		return "Diffuse"
	case MaterialTransparent:
		return "Transparent"
	case MaterialDebug:
		return "Debug"
	default:
		return "DeserializationErrorMaterial"
	}
}
