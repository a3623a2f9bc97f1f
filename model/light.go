package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MAX_LIGHTS is the number of light slots the render backend reserves.
// Additional lights in a Lighting descriptor are ignored.
const MAX_LIGHTS = 4

// Light is one directional or positional light source. For directional
// lights Pos is the direction pointing from the scene toward the light.
type Light struct {
	Pos         mgl32.Vec3
	Color       mgl32.Vec3
	Directional bool
}

// Lighting is the scene-wide descriptor applied once per draw, before any
// geometry is emitted.
type Lighting struct {
	Ambient mgl32.Vec3
	Lights  []Light
}

// DefaultLighting is a mild white key light with a dim ambient floor,
// enough to make untextured grey surfaces readable.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient: mgl32.Vec3{0.25, 0.25, 0.25},
		Lights: []Light{
			{Pos: mgl32.Vec3{0.4, 0.6, -1}, Color: mgl32.Vec3{0.9, 0.9, 0.9}, Directional: true},
		},
	}
}
