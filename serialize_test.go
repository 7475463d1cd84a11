package raychel

import (
	"bytes"
	"testing"
)

func buildRoundTripScene() *Scene {
	scene := NewScene()
	scene.AddObject(Sphere(1.5), FlatMaterial(Color{R: 1, G: 0.5, B: 0.25}))
	scene.AddObject(Box(Vec3{X: 1, Y: 2, Z: 3}), DiffuseMaterial(Color{R: 0.1, G: 0.2, B: 0.3}))
	scene.AddObject(
		Translate(Rounded(Sphere(1), 0.1), Vec3{X: 1, Y: 2, Z: 3}),
		TransparentMaterial(Color{R: 1, G: 1, B: 1}, 1.5, 0.02),
	)
	scene.AddObject(
		Union(Sphere(1), Translate(Sphere(1), Vec3{X: 3})),
		ReflectiveMaterial(Color{R: 0.9, G: 0.9, B: 0.9}),
	)
	return scene
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	original := buildRoundTripScene()

	var buf bytes.Buffer
	if err := WriteScene(&buf, original); err != nil {
		t.Fatalf("WriteScene: %v", err)
	}

	restored, err := DeserializeScene(&buf)
	if err != nil {
		t.Fatalf("DeserializeScene: %v", err)
	}

	if restored.Len() != original.Len() {
		t.Fatalf("object count: got %d, want %d", restored.Len(), original.Len())
	}

	for i, want := range original.Objects() {
		got := restored.Objects()[i]
		if got.Kind != want.Kind {
			t.Errorf("object %d: kind got %v, want %v", i, got.Kind, want.Kind)
		}
	}
	for i, want := range original.Materials() {
		got := restored.Materials()[i]
		if got.Kind != want.Kind {
			t.Errorf("material %d: kind got %v, want %v", i, got.Kind, want.Kind)
		}
		if got.Albedo != want.Albedo {
			t.Errorf("material %d: albedo got %v, want %v", i, got.Albedo, want.Albedo)
		}
	}
}

func TestDeserializeMismatchedCountsYieldsEmptyScene(t *testing.T) {
	text := `--BEGIN SURFACES--
Sphere with 1
Sphere with 2
--BEGIN MATERIALS--
Flat with 1 0 0
`
	scene, err := DeserializeScene(bytes.NewReader([]byte(text)))
	if err != nil {
		t.Fatalf("DeserializeScene: %v", err)
	}
	if scene.Len() != 0 {
		t.Errorf("mismatched object/material counts: got len %d, want 0", scene.Len())
	}
}

func TestDeserializeReenteringMaterialsIsError(t *testing.T) {
	text := `--BEGIN SURFACES--
Sphere with 1
--BEGIN MATERIALS--
Flat with 1 0 0
--BEGIN MATERIALS--
`
	_, err := DeserializeScene(bytes.NewReader([]byte(text)))
	if err == nil {
		t.Error("expected an error when re-entering the materials block")
	}
}

func TestDeserializeMalformedLineBecomesPlaceholder(t *testing.T) {
	text := `--BEGIN SURFACES--
Sphere with not-a-number
--BEGIN MATERIALS--
Flat with 1 0 0
`
	scene, err := DeserializeScene(bytes.NewReader([]byte(text)))
	if err != nil {
		t.Fatalf("DeserializeScene: %v", err)
	}
	if scene.Len() != 1 {
		t.Fatalf("scene length: got %d, want 1", scene.Len())
	}

	var foundPlaceholder bool
	for _, o := range scene.Objects() {
		if o.Kind == KindDeserializationErrorPlaceholder {
			foundPlaceholder = true
		}
	}
	if !foundPlaceholder {
		t.Error("malformed object line did not produce a placeholder")
	}
}
