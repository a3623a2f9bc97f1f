package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"face_mesh_renderer/model"
)

// These types are part of the rendering core but are split into their own file
// for logical separation. Their focus is scene handling: adding, removing and
// adjusting things shown in the 3D world of the renderer.

// Frame carries the per-frame context handed to every renderable: the device
// to emit into and the camera transforms read at the start of the frame.
type Frame struct {
	Dev  Device
	View mgl32.Mat4
	Proj mgl32.Mat4
}

// Renderable is the lifecycle contract every scene object implements. The
// host calls one method at a time per object, always on the render thread.
type Renderable interface {
	// Name identifies the object within a Registry.
	Name() string

	// Draw performs the object's full per-frame render.
	Draw(f *Frame) error

	// Update advances per-frame animation state. Reserved, MeshObject keeps
	// it a no-op.
	Update(elapsed time.Duration)

	// Reset restores the object's state for a scene restart.
	Reset()

	// Destroy releases all GPU resources the object owns. Called exactly
	// once, after which the object must not be drawn again.
	Destroy(dev Device)
}

// Registry is the explicit object table owned by the hosting application.
// It intentionally replaces any process-wide registration state; two
// applications can hold two registries without interfering.
type Registry struct {
	objects []Renderable
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(o Renderable) {
	r.objects = append(r.objects, o)
}

func (r *Registry) Find(name string) (Renderable, error) {
	for i, o := range r.objects {
		if o.Name() == name {
			return r.objects[i], nil
		}
	}
	return nil, fmt.Errorf("object '%s' not found", name)
}

// Remove drops the first object with the given name from the registry and
// returns it so the caller can destroy it. Comparison is done naively by
// name until more sophisticated methods are required.
func (r *Registry) Remove(name string) Renderable {
	for i, o := range r.objects {
		if o.Name() == name {
			r.objects = append(r.objects[:i], r.objects[i+1:]...)
			return o
		}
	}
	return nil
}

func (r *Registry) Objects() []Renderable {
	return r.objects
}

func (r *Registry) Len() int {
	return len(r.objects)
}

// MeshObject is the face-mesh renderable: a set of deformable meshes plus the
// GPU textures their surfaces reference. It owns its texture handles
// exclusively; they are released exactly once in Destroy.
type MeshObject struct {
	ObjName  string
	Meshes   []*model.Mesh
	Textures []TextureID
	Alpha    float32

	renderer *SurfaceRenderer
}

func NewMeshObject(name string, meshes ...*model.Mesh) *MeshObject {
	return &MeshObject{
		ObjName:  name,
		Meshes:   meshes,
		Alpha:    1,
		renderer: NewSurfaceRenderer(),
	}
}

// AddTexture prepares img for the GPU (see PrepareTexture) and appends the
// resulting handle to the object's texture table, returning its slot index.
// On failure the object is left unchanged and the caller is expected to
// abort object setup rather than render with a missing texture.
func (o *MeshObject) AddTexture(dev Device, img *image.RGBA) (int, error) {
	id, err := PrepareTexture(dev, img)
	if err != nil {
		return -1, fmt.Errorf("object '%s': %w", o.ObjName, err)
	}
	o.Textures = append(o.Textures, id)
	return len(o.Textures) - 1, nil
}

func (o *MeshObject) Name() string {
	return o.ObjName
}

// Draw recomputes normals for every mesh from its current geometry, then
// renders all surfaces depth-binned. Normals are rebuilt unconditionally,
// meshes are assumed deformable.
func (o *MeshObject) Draw(f *Frame) error {
	for _, m := range o.Meshes {
		normals := model.ComputeNormals(m)
		o.renderer.Render(f.Dev, m, normals, o.Textures, o.Alpha, f.View, f.Proj)
	}
	return nil
}

func (o *MeshObject) Update(elapsed time.Duration) {}

func (o *MeshObject) Reset() {}

func (o *MeshObject) Destroy(dev Device) {
	for _, id := range o.Textures {
		dev.DeleteTexture(id)
	}
	o.Textures = nil
}
