package raychel

import "sort"

// BackgroundFunc supplies radiance for rays that escape every surface in
// the scene. A nil BackgroundFunc makes the shader fall back to the
// direction-colored debug background color(dir.x, dir.y, dir.z).
type BackgroundFunc func(data RenderData) Color

// ObjectHandle identifies an object/material pair by the index
// Scene.AddObject inserted it at. The index is only valid until the next
// AddObject or RemoveObject call, since insertion and removal shift
// later indices.
type ObjectHandle struct {
	Index    int
	Object   *SDFObject
	Material *Material
}

// Scene owns a set of SDF objects and their materials as parallel,
// equal-length sequences, plus a single background function. It is the
// unit of work the renderer borrows read-only for the duration of a
// render.
type Scene struct {
	objects    []SDFObject
	materials  []Material
	Background BackgroundFunc
}

// NewScene returns an empty scene with no background function (the
// shader's direction-colored debug fallback applies until one is set).
func NewScene() *Scene {
	return &Scene{}
}

// Objects returns the scene's surfaces in insertion (type-stable) order.
// The slice is owned by the scene; callers must not retain it across a
// mutating call.
func (s *Scene) Objects() []SDFObject {
	return s.objects
}

// Materials returns the scene's materials, index-aligned with Objects.
func (s *Scene) Materials() []Material {
	return s.materials
}

// AddObject inserts obj and mat at the position a binary search over
// object kinds (the runtime type identifier) finds, keeping objects of
// the same concrete kind contiguous and in the order they were added (a
// new object goes after every existing object of its kind). This mirrors the reference
// implementation's type-id-ordered insertion, needed so serialization
// groups same-typed surfaces together.
func (s *Scene) AddObject(obj SDFObject, mat Material) ObjectHandle {
	index := sort.Search(len(s.objects), func(i int) bool {
		return s.objects[i].Kind > obj.Kind
	})

	s.objects = append(s.objects, SDFObject{})
	copy(s.objects[index+1:], s.objects[index:])
	s.objects[index] = obj

	s.materials = append(s.materials, Material{})
	copy(s.materials[index+1:], s.materials[index:])
	s.materials[index] = mat

	return ObjectHandle{Index: index, Object: &s.objects[index], Material: &s.materials[index]}
}

// RemoveObject deletes the object/material pair at i from both
// sequences. Out-of-range indices are a no-op.
func (s *Scene) RemoveObject(i int) {
	if i < 0 || i >= len(s.objects) {
		return
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	s.materials = append(s.materials[:i], s.materials[i+1:]...)
}

// Len returns the number of objects (equivalently, materials) the scene
// holds.
func (s *Scene) Len() int {
	return len(s.objects)
}
