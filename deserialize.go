package raychel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/raychel-go/raychel/internal/rlog"
)

// parseState tracks which block of the scene text format the reader is
// in; re-entering SURFACES after MATERIALS has begun is an error per §6.
type parseState int

const (
	parseSurfaces parseState = iota
	parseMaterials
	parseDone
)

// lineScanner is a small pushback wrapper over bufio.Scanner, since
// parsing a compositional object line needs to consume its nested lines
// one at a time without knowing in advance how many there are.
type lineScanner struct {
	sc   *bufio.Scanner
	peek *string
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{sc: bufio.NewScanner(r)}
}

func (s *lineScanner) next() (string, bool) {
	if s.peek != nil {
		line := *s.peek
		s.peek = nil
		return line, true
	}
	if !s.sc.Scan() {
		return "", false
	}
	return s.sc.Text(), true
}

func (s *lineScanner) pushback(line string) {
	s.peek = &line
}

// DeserializeScene reads the text format WriteScene emits (see §6) and
// returns a Scene with objects and materials inserted in file order. A
// malformed object or material line is replaced by its sentinel
// (DeserializationErrorPlaceholder / DeserializationErrorMaterial) so the
// two sequences stay index-aligned, and a warning is logged rather than
// aborting the parse.
func DeserializeScene(r io.Reader) (*Scene, error) {
	sc := newLineScanner(r)
	scene := NewScene()
	state := parseSurfaces

	var objects []SDFObject
	var materials []Material

	for {
		line, ok := sc.next()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch trimmed {
		case "--BEGIN SURFACES--":
			if state != parseSurfaces || len(objects) > 0 {
				return nil, fmt.Errorf("deserialize: unexpected --BEGIN SURFACES-- in state %v", state)
			}
			continue
		case "--BEGIN MATERIALS--":
			if state == parseMaterials || state == parseDone {
				return nil, fmt.Errorf("deserialize: re-entering materials block is an error")
			}
			state = parseMaterials
			continue
		}

		if state == parseSurfaces {
			obj := parseObjectLine(sc, trimmed)
			objects = append(objects, obj)
		} else {
			materials = append(materials, parseMaterialLine(trimmed))
		}
	}

	if len(objects) != len(materials) {
		rlog.Warnf("deserialize: object count %d != material count %d, returning empty scene", len(objects), len(materials))
		return NewScene(), nil
	}

	for i := range objects {
		scene.AddObject(objects[i], materials[i])
	}
	return scene, nil
}

func parseObjectLine(sc *lineScanner, line string) SDFObject {
	typeName, payload, compositional := splitTypeLine(line)

	var targets []SDFObject
	if compositional {
		count := targetCountForType(typeName)
		for i := 0; i < count; i++ {
			childLine, ok := sc.next()
			if !ok {
				rlog.Warnf("deserialize: %q missing nested target line", typeName)
				return DeserializationErrorPlaceholder()
			}
			targets = append(targets, parseObjectLine(sc, strings.TrimSpace(childLine)))
		}
	}

	fields := strings.Fields(payload)

	switch typeName {
	case "Sphere":
		r, err := parseFloats(fields, 1)
		if err != nil {
			return errObj(typeName, err)
		}
		return Sphere(r[0])

	case "Box":
		v, err := parseFloats(fields, 3)
		if err != nil {
			return errObj(typeName, err)
		}
		return Box(Vec3{X: v[0], Y: v[1], Z: v[2]})

	case "Plane":
		v, err := parseFloats(fields, 3)
		if err != nil {
			return errObj(typeName, err)
		}
		n := Vec3{X: v[0], Y: v[1], Z: v[2]}
		if n.Length() < 1e-12 {
			return errObj(typeName, fmt.Errorf("zero normal"))
		}
		return Plane(n)

	case "Hollow":
		if len(targets) != 1 {
			return errObj(typeName, fmt.Errorf("missing target"))
		}
		return Hollow(targets[0])

	case "Rounded":
		r, err := parseFloats(fields, 1)
		if err != nil || len(targets) != 1 {
			return errObj(typeName, err)
		}
		return Rounded(targets[0], r[0])

	case "Onion":
		th, err := parseFloats(fields, 1)
		if err != nil || len(targets) != 1 {
			return errObj(typeName, err)
		}
		return Onion(targets[0], th[0])

	case "Union":
		if len(targets) != 2 {
			return errObj(typeName, fmt.Errorf("missing targets"))
		}
		return Union(targets[0], targets[1])

	case "Difference":
		if len(targets) != 2 {
			return errObj(typeName, fmt.Errorf("missing targets"))
		}
		return Difference(targets[0], targets[1])

	case "Intersection":
		if len(targets) != 2 {
			return errObj(typeName, fmt.Errorf("missing targets"))
		}
		return Intersection(targets[0], targets[1])

	case "Translate":
		v, err := parseFloats(fields, 3)
		if err != nil || len(targets) != 1 {
			return errObj(typeName, err)
		}
		return Translate(targets[0], Vec3{X: v[0], Y: v[1], Z: v[2]})

	case "Rotate":
		v, err := parseFloats(fields, 4)
		if err != nil || len(targets) != 1 {
			return errObj(typeName, err)
		}
		return Rotate(targets[0], Quaternion{W: v[0], X: v[1], Y: v[2], Z: v[3]})

	default:
		return errObj(typeName, fmt.Errorf("unknown object type"))
	}
}

func errObj(typeName string, err error) SDFObject {
	rlog.Warnf("deserialize: %s: %v", typeName, err)
	return DeserializationErrorPlaceholder()
}

func targetCountForType(typeName string) int {
	switch typeName {
	case "Union", "Difference", "Intersection":
		return 2
	case "Sphere", "Box", "Plane":
		return 0
	default:
		return 1
	}
}

// splitTypeLine splits "T with <payload>" or "T<> with <payload>" into
// the type name, the payload text, and whether the "<>" compositional
// marker was present.
func splitTypeLine(line string) (typeName, payload string, compositional bool) {
	parts := strings.SplitN(line, " with", 2)
	head := strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		payload = strings.TrimSpace(parts[1])
	}
	if strings.HasSuffix(head, "<>") {
		return strings.TrimSuffix(head, "<>"), payload, true
	}
	return head, payload, false
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d fields, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseMaterialLine(line string) Material {
	typeName, payload, _ := splitTypeLine(line)
	fields := strings.Fields(payload)

	switch typeName {
	case "Flat":
		v, err := parseFloats(fields, 3)
		if err != nil {
			return errMat(typeName, err)
		}
		return FlatMaterial(Color{R: v[0], G: v[1], B: v[2]})
	case "Reflective":
		v, err := parseFloats(fields, 3)
		if err != nil {
			return errMat(typeName, err)
		}
		return ReflectiveMaterial(Color{R: v[0], G: v[1], B: v[2]})
	case "Diffuse":
		v, err := parseFloats(fields, 3)
		if err != nil {
			return errMat(typeName, err)
		}
		return DiffuseMaterial(Color{R: v[0], G: v[1], B: v[2]})
	case "Transparent":
		v, err := parseFloats(fields, 5)
		if err != nil {
			return errMat(typeName, err)
		}
		return TransparentMaterial(Color{R: v[0], G: v[1], B: v[2]}, v[3], v[4])
	case "Debug":
		return DebugMaterial()
	default:
		return errMat(typeName, fmt.Errorf("unknown material type"))
	}
}

func errMat(typeName string, err error) Material {
	rlog.Warnf("deserialize: %s: %v", typeName, err)
	return DeserializationErrorMaterial()
}
