package renderer

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"face_mesh_renderer/model"
)

// TextureID is an opaque GPU texture handle. Zero is never a valid handle.
type TextureID uint32

// Tri is the only primitive the device draws: three positions with matching
// normals and UVs. Tris are built transiently per draw call from mesh data
// and the current frame's transforms, never persisted.
type Tri struct {
	Pos [3]mgl32.Vec3
	Nrm [3]mgl32.Vec3
	UV  [3]mgl32.Vec2
}

// Centroid is the mean of the three vertex positions, the primitive's
// depth-sort key.
func (t Tri) Centroid() mgl32.Vec3 {
	return t.Pos[0].Add(t.Pos[1]).Add(t.Pos[2]).Mul(1.0 / 3.0)
}

// Device is the graphics backend the renderer emits into. All calls must
// happen on the thread owning the graphics context; no method blocks or
// retries. GLDevice is the real implementation, tests substitute a recording
// fake.
type Device interface {
	// MaxTextureSize reports the device limit for either texture dimension.
	MaxTextureSize() int

	// CreateTexture allocates a fresh handle and uploads the given mipmap
	// chain, level 0 first. Levels must already respect MaxTextureSize.
	// A failed upload returns an explicit error, never a zero handle that
	// silently works.
	CreateTexture(levels []*image.RGBA) (TextureID, error)

	// DeleteTexture releases a handle created by CreateTexture.
	DeleteTexture(id TextureID)

	// SetTransform sets the combined modelview-projection and the model
	// matrix for subsequent draws.
	SetTransform(mvp, modelMat mgl32.Mat4)

	// SetLighting applies the scene lighting descriptor, once per draw pass.
	SetLighting(l model.Lighting)

	// SetMaterial switches between the textured and untextured shading modes
	// for subsequent draws. tex is ignored when textured is false.
	SetMaterial(m model.Material, tex TextureID, textured bool)

	// SetBlending toggles standard src-alpha over blending.
	SetBlending(enabled bool)

	// SetWireframe switches subsequent draws between filled and outline
	// rasterization. A host-level debug toggle; the renderer itself never
	// changes it.
	SetWireframe(enabled bool)

	// IsWireframe reports the current rasterization mode.
	IsWireframe() bool

	// DrawTriangles rasterizes the given triangles in slice order.
	DrawTriangles(tris []Tri)
}
