package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Surface is a named subset of a mesh's primitives sharing material and
// texture state. Tris holds 3 vertex indices per triangle, Quads 4 per quad.
// TriUV/QuadUV optionally hold UV indices parallel to Tris/Quads; a surface
// without UV indices is drawn untextured even when Texture is set.
type Surface struct {
	Name string

	Tris  []uint32
	Quads []uint32

	TriUV  []uint32
	QuadUV []uint32

	// Texture indexes into the owning object's texture table, -1 for none.
	Texture int
}

// HasUV reports whether the surface declares UV indices for all of its
// primitives. Partial UV coverage counts as none at all.
func (s *Surface) HasUV() bool {
	if len(s.TriUV) != len(s.Tris) || len(s.QuadUV) != len(s.Quads) {
		return false
	}
	return len(s.TriUV)+len(s.QuadUV) > 0
}

// TriCount returns the number of whole triangles in the surface.
func (s *Surface) TriCount() int {
	return len(s.Tris) / 3
}

// QuadCount returns the number of whole quads in the surface.
func (s *Surface) QuadCount() int {
	return len(s.Quads) / 4
}

// Mesh is the renderer-facing geometry of one deformable part: a shared
// vertex pool, a shared UV pool and the surfaces indexing into them. The
// renderer only reads it, vertex positions may be rewritten between frames
// by whoever owns the mesh.
type Mesh struct {
	Vertices []mgl32.Vec3
	UVs      []mgl32.Vec2
	Surfaces []Surface
	ModelMat mgl32.Mat4
}

func NewMesh(v []mgl32.Vec3, surfaces []Surface) *Mesh {
	return &Mesh{
		Vertices: v,
		Surfaces: surfaces,
		ModelMat: mgl32.Ident4(),
	}
}
