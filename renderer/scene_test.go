package renderer

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"face_mesh_renderer/model"
)

func TestRegistryFind(t *testing.T) {
	r := NewRegistry()
	a := NewMeshObject("a")
	b := NewMeshObject("b")
	r.Add(a)
	r.Add(b)

	got, err := r.Find("b")
	if err != nil {
		t.Fatalf("Find(b) failed: %v", err)
	}
	if got != Renderable(b) {
		t.Errorf("Find(b) returned %v", got.Name())
	}
	if _, err := r.Find("missing"); err == nil {
		t.Error("Find(missing) did not fail")
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	a := NewMeshObject("a")
	b := NewMeshObject("b")
	r.Add(a)
	r.Add(b)

	if got := r.Remove("a"); got != Renderable(a) {
		t.Errorf("Remove(a) returned %v", got)
	}
	if r.Len() != 1 {
		t.Errorf("registry holds %d objects after remove, want 1", r.Len())
	}
	if _, err := r.Find("a"); err == nil {
		t.Error("removed object still findable")
	}
	if got := r.Remove("a"); got != nil {
		t.Errorf("second Remove(a) returned %v, want nil", got)
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	r1 := NewRegistry()
	r2 := NewRegistry()
	r1.Add(NewMeshObject("only-in-r1"))

	if r2.Len() != 0 {
		t.Errorf("second registry holds %d objects, want 0", r2.Len())
	}
}

func TestMeshObjectAddTextureSlots(t *testing.T) {
	dev := newFakeDevice(4096)
	o := NewMeshObject("head")

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for want := 0; want < 3; want++ {
		slot, err := o.AddTexture(dev, img)
		if err != nil {
			t.Fatalf("AddTexture failed: %v", err)
		}
		if slot != want {
			t.Errorf("slot = %d, want %d", slot, want)
		}
	}
	if len(o.Textures) != 3 {
		t.Errorf("object holds %d textures, want 3", len(o.Textures))
	}
}

func TestMeshObjectAddTextureFailureLeavesObjectUnchanged(t *testing.T) {
	dev := newFakeDevice(4096)
	dev.failCreate = true
	o := NewMeshObject("head")

	slot, err := o.AddTexture(dev, image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if err == nil {
		t.Fatal("AddTexture did not surface the device failure")
	}
	if slot != -1 {
		t.Errorf("slot = %d, want -1", slot)
	}
	if len(o.Textures) != 0 {
		t.Errorf("failed texture was appended: %d entries", len(o.Textures))
	}
}

func TestMeshObjectDestroyReleasesEachTextureOnce(t *testing.T) {
	dev := newFakeDevice(4096)
	o := NewMeshObject("head")
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	o.AddTexture(dev, img)
	o.AddTexture(dev, img)

	o.Destroy(dev)

	if len(dev.deleted) != 2 {
		t.Fatalf("deleted %d textures, want 2", len(dev.deleted))
	}
	if dev.deleted[0] == dev.deleted[1] {
		t.Errorf("same handle deleted twice: %v", dev.deleted)
	}
	// A second Destroy must not free anything again.
	o.Destroy(dev)
	if len(dev.deleted) != 2 {
		t.Errorf("repeated Destroy freed %d textures total", len(dev.deleted))
	}
}

func TestMeshObjectDrawRecomputesNormals(t *testing.T) {
	// A tri facing +Z must reach the device with +Z normals even though the
	// mesh carries none itself.
	mesh := model.NewMesh([]mgl32.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
	}, []model.Surface{{
		Name:    "front",
		Tris:    []uint32{0, 1, 2},
		Texture: -1,
	}})

	dev := newFakeDevice(4096)
	o := NewMeshObject("tri", mesh)
	f := &Frame{Dev: dev, View: mgl32.Ident4(), Proj: mgl32.Ident4()}
	if err := o.Draw(f); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	tris := dev.drawnTris()
	if len(tris) != 1 {
		t.Fatalf("drew %d tris, want 1", len(tris))
	}
	want := mgl32.Vec3{0, 0, 1}
	for _, n := range tris[0].Nrm {
		if !n.ApproxEqual(want) {
			t.Errorf("normal = %v, want %v", n, want)
		}
	}
}
