package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ComputeNormals derives one smoothed normal per mesh vertex from the current
// geometry. Face normals follow counter-clockwise winding; each face adds its
// unnormalized normal to all of its corners and the accumulated sums are
// normalized at the end, so larger faces weigh in proportionally.
//
// There is no caching or dirty tracking: meshes are assumed deformable, so
// this runs once per mesh per frame and the result always has exactly
// len(mesh.Vertices) entries.
func ComputeNormals(m *Mesh) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(m.Vertices))

	for si := range m.Surfaces {
		s := &m.Surfaces[si]
		for i := 0; i+2 < len(s.Tris); i += 3 {
			a, b, c := s.Tris[i], s.Tris[i+1], s.Tris[i+2]
			fn := faceNormal(m.Vertices[a], m.Vertices[b], m.Vertices[c])
			normals[a] = normals[a].Add(fn)
			normals[b] = normals[b].Add(fn)
			normals[c] = normals[c].Add(fn)
		}
		for i := 0; i+3 < len(s.Quads); i += 4 {
			a, b, c, d := s.Quads[i], s.Quads[i+1], s.Quads[i+2], s.Quads[i+3]
			// One normal for the whole quad, taken from its first three corners.
			fn := faceNormal(m.Vertices[a], m.Vertices[b], m.Vertices[c])
			normals[a] = normals[a].Add(fn)
			normals[b] = normals[b].Add(fn)
			normals[c] = normals[c].Add(fn)
			normals[d] = normals[d].Add(fn)
		}
	}

	for i := range normals {
		if l := normals[i].Len(); l > 0 {
			normals[i] = normals[i].Mul(1 / l)
		}
	}
	return normals
}

func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}
