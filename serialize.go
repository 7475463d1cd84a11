package raychel

import (
	"bufio"
	"fmt"
	"io"
)

// WriteScene emits scene in the text format DeserializeScene reads: a
// --BEGIN SURFACES-- block of object lines in scene.Objects() order,
// followed by a --BEGIN MATERIALS-- block of material lines in the same
// order. The format is otherwise opaque to any caller that only forwards
// it (a render progress writer, say); only DeserializeScene needs to parse it
// back.
func WriteScene(w io.Writer, scene *Scene) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, "--BEGIN SURFACES--"); err != nil {
		return err
	}
	for i := range scene.Objects() {
		if err := writeObjectLine(bw, &scene.objects[i], 0); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(bw, "--BEGIN MATERIALS--"); err != nil {
		return err
	}
	for i := range scene.Materials() {
		if err := writeMaterialLine(bw, &scene.materials[i]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeIndent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
}

func writeObjectLine(w *bufio.Writer, obj *SDFObject, depth int) error {
	writeIndent(w, depth)

	switch obj.Kind {
	case KindSphere:
		fmt.Fprintf(w, "Sphere with %g\n", obj.Radius)
	case KindBox:
		fmt.Fprintf(w, "Box with %g %g %g\n", obj.Size.X, obj.Size.Y, obj.Size.Z)
	case KindPlane:
		fmt.Fprintf(w, "Plane with %g %g %g\n", obj.Normal.X, obj.Normal.Y, obj.Normal.Z)
	case KindHollow:
		fmt.Fprintf(w, "Hollow<> with\n")
		return writeObjectLine(w, obj.Target, depth+1)
	case KindRounded:
		fmt.Fprintf(w, "Rounded<> with %g\n", obj.Thickness)
		return writeObjectLine(w, obj.Target, depth+1)
	case KindOnion:
		fmt.Fprintf(w, "Onion<> with %g\n", obj.Thickness)
		return writeObjectLine(w, obj.Target, depth+1)
	case KindUnion:
		fmt.Fprintf(w, "Union<> with\n")
		if err := writeObjectLine(w, obj.A, depth+1); err != nil {
			return err
		}
		return writeObjectLine(w, obj.B, depth+1)
	case KindDifference:
		fmt.Fprintf(w, "Difference<> with\n")
		if err := writeObjectLine(w, obj.A, depth+1); err != nil {
			return err
		}
		return writeObjectLine(w, obj.B, depth+1)
	case KindIntersection:
		fmt.Fprintf(w, "Intersection<> with\n")
		if err := writeObjectLine(w, obj.A, depth+1); err != nil {
			return err
		}
		return writeObjectLine(w, obj.B, depth+1)
	case KindTranslate:
		fmt.Fprintf(w, "Translate<> with %g %g %g\n", obj.Offset.X, obj.Offset.Y, obj.Offset.Z)
		return writeObjectLine(w, obj.Target, depth+1)
	case KindRotate:
		fmt.Fprintf(w, "Rotate<> with %g %g %g %g\n", obj.Rotation.W, obj.Rotation.X, obj.Rotation.Y, obj.Rotation.Z)
		return writeObjectLine(w, obj.Target, depth+1)
	default:
		fmt.Fprintf(w, "DeserializationErrorPlaceholder with\n")
	}
	return nil
}

func writeMaterialLine(w *bufio.Writer, m *Material) error {
	switch m.Kind {
	case MaterialFlat:
		fmt.Fprintf(w, "Flat with %g %g %g\n", m.Albedo.R, m.Albedo.G, m.Albedo.B)
	case MaterialReflective:
		fmt.Fprintf(w, "Reflective with %g %g %g\n", m.Albedo.R, m.Albedo.G, m.Albedo.B)
	case MaterialDiffuse:
		fmt.Fprintf(w, "Diffuse with %g %g %g\n", m.Albedo.R, m.Albedo.G, m.Albedo.B)
	case MaterialTransparent:
		fmt.Fprintf(w, "Transparent with %g %g %g %g %g\n", m.Albedo.R, m.Albedo.G, m.Albedo.B, m.IORValue, m.IORVariation)
	case MaterialDebug:
		fmt.Fprintf(w, "Debug with\n")
	default:
		fmt.Fprintf(w, "DeserializationErrorMaterial with\n")
	}
	return nil
}
