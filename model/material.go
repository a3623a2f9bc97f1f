package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Material carries the per-surface shading state. The renderer only ever uses
// two fixed materials: a textured one where the color comes entirely from the
// texture, and a flat grey fallback. This is a binary mode switch, not a
// material system; both modes shade without a specular term, so there is no
// specular component to carry.
type Material struct {
	Ambient mgl32.Vec3
	Diffuse mgl32.Vec4
}

// TexturedMaterial is used when a surface has both a texture and UV indices:
// ambient and diffuse are white so the per-pixel color comes from the texture.
func TexturedMaterial(alpha float32) Material {
	return Material{
		Ambient: mgl32.Vec3{1, 1, 1},
		Diffuse: mgl32.Vec4{1, 1, 1, alpha},
	}
}

// FlatGreyMaterial is the fallback for surfaces without a usable texture.
func FlatGreyMaterial(alpha float32) Material {
	return Material{
		Ambient: mgl32.Vec3{0.5, 0.5, 0.5},
		Diffuse: mgl32.Vec4{0.5, 0.5, 0.5, alpha},
	}
}
