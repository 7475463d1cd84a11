package raychel

import "math"

// SDFKind discriminates the closed set of SDF node variants. The
// reference implementation erases node types behind a heap-allocated
// polymorphic container with a runtime type id; Go generics cannot
// express an open set of node types the way C++ templates can without
// losing the value-type, stack-allocated composition the spec wants, so
// this package uses a closed tagged union instead (see DESIGN.md). Kind
// doubles as the runtime type identifier the scene's stable ordering
// sorts by.
type SDFKind int

const (
	KindSphere SDFKind = iota
	KindBox
	KindPlane
	KindHollow
	KindRounded
	KindOnion
	KindUnion
	KindDifference
	KindIntersection
	KindTranslate
	KindRotate
	KindDeserializationErrorPlaceholder
)

// DeserializationErrorDistance is the large constant a placeholder node
// evaluates to, so a scene with a malformed object line still renders
// (the placeholder never matters to any ray) instead of crashing.
const DeserializationErrorDistance = 1e9

// SDFObject is a value from the variant closed under primitives
// (Sphere, Box, Plane), modifiers (Hollow, Rounded, Onion), booleans
// (Union, Difference, Intersection), transforms (Translate, Rotate) and
// the deserialization-error sentinel. Composite kinds own their
// children as boxed *SDFObject, since SDF trees are finite and acyclic.
type SDFObject struct {
	Kind SDFKind

	// Primitives.
	Radius float64 // Sphere
	Size   Vec3    // Box
	Normal Vec3    // Plane (unit)

	// Modifiers (single target).
	Target    *SDFObject // Hollow, Rounded, Onion, Translate, Rotate
	Thickness float64    // Rounded radius / Onion thickness

	// Transforms.
	Offset   Vec3       // Translate
	Rotation Quaternion // Rotate

	// Booleans (two targets).
	A, B *SDFObject
}

// Sphere builds a sphere of the given radius centered at the origin of
// its local frame.
func Sphere(radius float64) SDFObject {
	return SDFObject{Kind: KindSphere, Radius: radius}
}

// Box builds an axis-aligned box of half-extents size.
func Box(size Vec3) SDFObject {
	return SDFObject{Kind: KindBox, Size: size}
}

// Plane builds a two-sided infinite plane through the local origin with
// the given unit normal.
func Plane(normal Vec3) SDFObject {
	return SDFObject{Kind: KindPlane, Normal: normal.Normalize()}
}

// Hollow turns a solid into an infinitely thin shell following its
// boundary.
func Hollow(target SDFObject) SDFObject {
	return SDFObject{Kind: KindHollow, Target: &target}
}

// Rounded grows the target outward by radius with a rounded corner.
func Rounded(target SDFObject, radius float64) SDFObject {
	return SDFObject{Kind: KindRounded, Target: &target, Thickness: radius}
}

// Onion carves the target into a shell of the given thickness.
func Onion(target SDFObject, thickness float64) SDFObject {
	return SDFObject{Kind: KindOnion, Target: &target, Thickness: thickness}
}

// Union returns the union of a and b.
func Union(a, b SDFObject) SDFObject {
	return SDFObject{Kind: KindUnion, A: &a, B: &b}
}

// Difference returns max(-a, b): b carved out of a's complement.
func Difference(a, b SDFObject) SDFObject {
	return SDFObject{Kind: KindDifference, A: &a, B: &b}
}

// Intersection returns the intersection of a and b.
func Intersection(a, b SDFObject) SDFObject {
	return SDFObject{Kind: KindIntersection, A: &a, B: &b}
}

// Translate offsets target by offset.
func Translate(target SDFObject, offset Vec3) SDFObject {
	return SDFObject{Kind: KindTranslate, Target: &target, Offset: offset}
}

// Rotate rotates target by q.
func Rotate(target SDFObject, q Quaternion) SDFObject {
	return SDFObject{Kind: KindRotate, Target: &target, Rotation: q}
}

// DeserializationErrorPlaceholder stands in for an object line that
// failed to parse, so object/material arrays stay aligned.
func DeserializationErrorPlaceholder() SDFObject {
	return SDFObject{Kind: KindDeserializationErrorPlaceholder}
}

// Evaluate computes the node's signed distance at p, recursing into
// children as needed. Distance estimators for primitives and modifiers
// are conservative: they never over-estimate the true distance.
func (o *SDFObject) Evaluate(p Vec3) float64 {
	switch o.Kind {
	case KindSphere:
		return p.Length() - o.Radius

	case KindBox:
		q := p.Abs().Sub(o.Size)
		outside := Vec3{X: math.Max(q.X, 0), Y: math.Max(q.Y, 0), Z: math.Max(q.Z, 0)}
		return outside.Length() + math.Min(maxComponent(q), 0)

	case KindPlane:
		return math.Abs(o.Normal.Dot(p))

	case KindHollow:
		return math.Abs(o.Target.Evaluate(p))

	case KindRounded:
		return o.Target.Evaluate(p) - o.Thickness

	case KindOnion:
		return math.Abs(o.Target.Evaluate(p)) - o.Thickness

	case KindUnion:
		return math.Min(o.A.Evaluate(p), o.B.Evaluate(p))

	case KindDifference:
		return math.Max(-o.A.Evaluate(p), o.B.Evaluate(p))

	case KindIntersection:
		return math.Max(o.A.Evaluate(p), o.B.Evaluate(p))

	case KindTranslate:
		return o.Target.Evaluate(p.Sub(o.Offset))

	case KindRotate:
		return o.Target.Evaluate(RotateVec(p, o.Rotation.Inverse()))

	case KindDeserializationErrorPlaceholder:
		return DeserializationErrorDistance

	default:
		return DeserializationErrorDistance
	}
}

// HasAnalyticNormal reports whether Normal should be preferred over the
// raymarcher's tetrahedron-offset numeric estimator.
func (o *SDFObject) HasAnalyticNormal() bool {
	return o.Kind == KindSphere || o.Kind == KindPlane
}

// AnalyticNormal returns the exact surface normal at p. Only valid when
// HasAnalyticNormal is true.
func (o *SDFObject) AnalyticNormal(p Vec3) Vec3 {
	switch o.Kind {
	case KindSphere:
		return p.Normalize()
	case KindPlane:
		return o.Normal
	default:
		return Vec3{}
	}
}

// TypeName returns the type name the scene text format uses for this
// node's kind. Scene.AddObject orders by Kind, not by this name.
func (o *SDFObject) TypeName() string {
	switch o.Kind {
	case KindSphere:
		return "Sphere"
	case KindBox:
		return "Box"
	case KindPlane:
		return "Plane"
	case KindHollow:
		return "Hollow"
	case KindRounded:
		return "Rounded"
	case KindOnion:
		return "Onion"
	case KindUnion:
		return "Union"
	case KindDifference:
		return "Difference"
	case KindIntersection:
		return "Intersection"
	case KindTranslate:
		return "Translate"
	case KindRotate:
		return "Rotate"
	default:
		return "DeserializationErrorPlaceholder"
	}
}

// TargetCount reports how many nested "T<> with ..." lines this node's
// serialized form carries: 0 for primitives and the error placeholder,
// 1 for modifiers and transforms, 2 for booleans.
func (o *SDFObject) TargetCount() int {
	switch o.Kind {
	case KindSphere, KindBox, KindPlane, KindDeserializationErrorPlaceholder:
		return 0
	case KindUnion, KindDifference, KindIntersection:
		return 2
	default:
		return 1
	}
}
