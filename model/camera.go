package model

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	CAM_PERSPECTIVE_PROJECTION  = iota
	CAM_ORTHOGRAPHIC_PROJECTION = iota
)

type Camera struct {
	ProjectionType int

	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	Pos        mgl32.Vec3
	LookDir    mgl32.Vec3
	LookTarget *mgl32.Vec3
	Up         mgl32.Vec3
}

func NewCamera(fov float32, near float32, far float32) *Camera {
	return &Camera{
		Fov:        fov,
		Aspect:     1,
		Near:       near,
		Far:        far,
		LookDir:    mgl32.Vec3{0, 0, 1},
		LookTarget: nil,
		Up:         mgl32.Vec3{0, 1, 0},
	}
}

func (c *Camera) Move(v mgl32.Vec3) {
	c.Pos = c.Pos.Add(v)
}

func (c *Camera) Turn(deg float32, axis mgl32.Vec3) {
	rm := mgl32.HomogRotate3D(mgl32.DegToRad(deg), axis.Normalize())
	c.LookDir = rm.Mul4x1(c.LookDir.Vec4(0)).Vec3()
}

func (c *Camera) SetTarget(v mgl32.Vec3) {
	c.LookTarget = &v
}

func (c *Camera) GetProjection() mgl32.Mat4 {
	switch c.ProjectionType {
	case CAM_PERSPECTIVE_PROJECTION:
		return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
	case CAM_ORTHOGRAPHIC_PROJECTION:
		return mgl32.Ortho(-c.Aspect, c.Aspect, -1, 1, c.Near, c.Far)
	default:
		log.Printf("Failed to select projection type, returning identity.")
		return mgl32.Ident4()
	}
}

func (c *Camera) GetView() mgl32.Mat4 {
	if c.LookTarget != nil {
		return mgl32.LookAtV(c.Pos, *c.LookTarget, c.Up)
	}
	if c.LookDir.Len() == 0 {
		log.Printf("Failed to calculate view direction, look direction = [0,0,0]. Using z-axis.")
		c.LookDir = mgl32.Vec3{0, 0, 1}
	}
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.LookDir), c.Up)
}
