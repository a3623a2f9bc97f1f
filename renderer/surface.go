package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"face_mesh_renderer/model"
)

// SurfaceRenderer walks a mesh surface by surface, resolves the material
// mode, decomposes quads into triangles, bins everything by projected
// centroid depth and emits the bins back to front with blending enabled.
type SurfaceRenderer struct {
	NumBins int
	Mapping BinMapping
}

func NewSurfaceRenderer() *SurfaceRenderer {
	return &SurfaceRenderer{
		NumBins: DEPTH_BIN_COUNT,
		Mapping: DefaultBinMapping(),
	}
}

// Render draws one mesh. normals must have one entry per mesh vertex (see
// model.ComputeNormals), textures is the owning object's texture table and
// alpha the object's translucency. Bin state is rebuilt from scratch for
// every surface; nothing is retained across calls.
func (r *SurfaceRenderer) Render(dev Device, mesh *model.Mesh, normals []mgl32.Vec3, textures []TextureID, alpha float32, view, proj mgl32.Mat4) {
	mvp := proj.Mul4(view).Mul4(mesh.ModelMat)
	dev.SetTransform(mvp, mesh.ModelMat)

	for si := range mesh.Surfaces {
		s := &mesh.Surfaces[si]

		// A missing or out-of-range texture reference is not an error, the
		// surface just renders flat grey. Textured mode additionally requires
		// UV indices.
		textured := s.Texture >= 0 && s.Texture < len(textures) && s.HasUV()
		if textured {
			dev.SetMaterial(model.TexturedMaterial(alpha), textures[s.Texture], true)
		} else {
			dev.SetMaterial(model.FlatGreyMaterial(alpha), 0, false)
		}

		bins := NewDepthBinner(r.NumBins, r.Mapping, mvp)

		for i := 0; i+2 < len(s.Tris); i += 3 {
			var uv [3]uint32
			if s.HasUV() {
				uv = [3]uint32{s.TriUV[i], s.TriUV[i+1], s.TriUV[i+2]}
			}
			bins.Insert(buildTri(mesh, normals,
				[3]uint32{s.Tris[i], s.Tris[i+1], s.Tris[i+2]}, uv, textured))
		}

		// Quads split along the fixed 0-1-2 / 2-3-0 diagonal before binning.
		for i := 0; i+3 < len(s.Quads); i += 4 {
			q := [4]uint32{s.Quads[i], s.Quads[i+1], s.Quads[i+2], s.Quads[i+3]}
			var qu [4]uint32
			if s.HasUV() {
				qu = [4]uint32{s.QuadUV[i], s.QuadUV[i+1], s.QuadUV[i+2], s.QuadUV[i+3]}
			}
			bins.Insert(buildTri(mesh, normals,
				[3]uint32{q[0], q[1], q[2]}, [3]uint32{qu[0], qu[1], qu[2]}, textured))
			bins.Insert(buildTri(mesh, normals,
				[3]uint32{q[2], q[3], q[0]}, [3]uint32{qu[2], qu[3], qu[0]}, textured))
		}

		dev.SetBlending(true)
		dev.DrawTriangles(bins.Ordered())
		dev.SetBlending(false)
	}
}

func buildTri(mesh *model.Mesh, normals []mgl32.Vec3, idx [3]uint32, uv [3]uint32, withUV bool) Tri {
	var t Tri
	for i := 0; i < 3; i++ {
		t.Pos[i] = mesh.Vertices[idx[i]]
		t.Nrm[i] = normals[idx[i]]
		if withUV {
			t.UV[i] = mesh.UVs[uv[i]]
		}
	}
	return t
}
