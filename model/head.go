package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// NewHeadMesh builds the demo face mesh: an ellipsoid tessellated into rings
// of quads with triangle-fan caps, under one "skin" surface. The surface
// references texture slot 0 and carries full UV indices, so it renders
// textured when the owning object has a texture and falls back to flat grey
// otherwise.
func NewHeadMesh(rings, segs int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segs < 3 {
		segs = 3
	}

	// Pole caps are triangle fans, everything between is quads. Each ring
	// duplicates its seam column so UVs stay clean, the poles carry one
	// vertex per segment for the same reason.
	var verts []mgl32.Vec3
	var uvs []mgl32.Vec2
	gridVert := func(r, c int) {
		theta := math32.Pi * float32(r) / float32(rings)
		phi := 2 * math32.Pi * float32(c) / float32(segs)
		verts = append(verts, mgl32.Vec3{
			0.8 * math32.Sin(theta) * math32.Cos(phi),
			1.1 * math32.Cos(theta),
			0.9 * math32.Sin(theta) * math32.Sin(phi),
		})
		uvs = append(uvs, mgl32.Vec2{
			float32(c) / float32(segs),
			float32(r) / float32(rings),
		})
	}

	for c := 0; c < segs; c++ {
		gridVert(0, c)
	}
	for r := 1; r < rings; r++ {
		for c := 0; c <= segs; c++ {
			gridVert(r, c)
		}
	}
	for c := 0; c < segs; c++ {
		gridVert(rings, c)
	}

	row := func(r, c int) uint32 {
		return uint32(segs + (r-1)*(segs+1) + c)
	}
	bottomPole := uint32(segs + (rings-1)*(segs+1))

	// Winding is counter-clockwise seen from outside the ellipsoid.
	skin := Surface{Name: "skin", Texture: 0}
	for c := 0; c < segs; c++ {
		skin.Tris = append(skin.Tris, uint32(c), row(1, c+1), row(1, c))
	}
	for r := 1; r < rings-1; r++ {
		for c := 0; c < segs; c++ {
			skin.Quads = append(skin.Quads, row(r, c), row(r, c+1), row(r+1, c+1), row(r+1, c))
		}
	}
	for c := 0; c < segs; c++ {
		skin.Tris = append(skin.Tris, row(rings-1, c), row(rings-1, c+1), bottomPole+uint32(c))
	}
	skin.TriUV = append(skin.TriUV, skin.Tris...)
	skin.QuadUV = append(skin.QuadUV, skin.Quads...)

	m := NewMesh(verts, []Surface{skin})
	m.UVs = uvs
	return m
}

// NewPaneMesh builds a single untextured quad of the given half extents in
// the XY plane, useful for layering translucent geometry in front of other
// objects.
func NewPaneMesh(hw, hh float32) *Mesh {
	verts := []mgl32.Vec3{
		{-hw, -hh, 0},
		{hw, -hh, 0},
		{hw, hh, 0},
		{-hw, hh, 0},
	}
	pane := Surface{
		Name:    "pane",
		Quads:   []uint32{0, 1, 2, 3},
		Texture: -1,
	}
	return NewMesh(verts, []Surface{pane})
}
