package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"face_mesh_renderer/model"
)

type materialCall struct {
	mat      model.Material
	tex      TextureID
	textured bool
}

// fakeDevice records every call so renderer behavior can be asserted without
// a GL context.
type fakeDevice struct {
	maxSize    int
	failCreate bool

	nextID  TextureID
	created [][]*image.RGBA
	deleted []TextureID

	transforms []mgl32.Mat4
	lighting   []model.Lighting
	materials  []materialCall
	blends     []bool
	wireframes []bool
	wireframe  bool
	draws      [][]Tri
}

var _ Device = (*fakeDevice)(nil)

func newFakeDevice(maxSize int) *fakeDevice {
	return &fakeDevice{maxSize: maxSize, nextID: 1}
}

func (d *fakeDevice) MaxTextureSize() int {
	return d.maxSize
}

func (d *fakeDevice) CreateTexture(levels []*image.RGBA) (TextureID, error) {
	if d.failCreate {
		return 0, fmt.Errorf("simulated allocation failure")
	}
	d.created = append(d.created, levels)
	id := d.nextID
	d.nextID++
	return id, nil
}

func (d *fakeDevice) DeleteTexture(id TextureID) {
	d.deleted = append(d.deleted, id)
}

func (d *fakeDevice) SetTransform(mvp, modelMat mgl32.Mat4) {
	d.transforms = append(d.transforms, mvp)
}

func (d *fakeDevice) SetLighting(l model.Lighting) {
	d.lighting = append(d.lighting, l)
}

func (d *fakeDevice) SetMaterial(m model.Material, tex TextureID, textured bool) {
	d.materials = append(d.materials, materialCall{mat: m, tex: tex, textured: textured})
}

func (d *fakeDevice) SetBlending(enabled bool) {
	d.blends = append(d.blends, enabled)
}

func (d *fakeDevice) SetWireframe(enabled bool) {
	d.wireframe = enabled
	d.wireframes = append(d.wireframes, enabled)
}

func (d *fakeDevice) IsWireframe() bool {
	return d.wireframe
}

func (d *fakeDevice) DrawTriangles(tris []Tri) {
	cp := make([]Tri, len(tris))
	copy(cp, tris)
	d.draws = append(d.draws, cp)
}

// drawnTris flattens all recorded draw calls into one list in emission order.
func (d *fakeDevice) drawnTris() []Tri {
	var out []Tri
	for _, call := range d.draws {
		out = append(out, call...)
	}
	return out
}
