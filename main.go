package main

import (
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"neilpa.me/go-stbi"

	"face_mesh_renderer/model"
	"face_mesh_renderer/renderer"
)

func init() {
	// SDL and OpenGL calls must stay on the thread owning the context.
	runtime.LockOSThread()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Println("Starting face mesh renderer")
	log.Printf("Using GoLang: [%s]", runtime.Version())
}

func onIteration(event sdl.Event, c *renderer.Core) {
	switch ev := event.(type) {
	case *sdl.KeyboardEvent:
		if ev.Type == sdl.KEYUP {
			switch ev.Keysym.Sym {
			case sdl.K_1:
				var newProj int
				if c.Cam.ProjectionType == model.CAM_PERSPECTIVE_PROJECTION {
					newProj = model.CAM_ORTHOGRAPHIC_PROJECTION
				} else {
					newProj = model.CAM_PERSPECTIVE_PROJECTION
				}
				log.Printf("Switching projection to -> %d", newProj)
				c.Cam.ProjectionType = newProj
			case sdl.K_2:
				if c.Cam.LookTarget != nil {
					c.Cam.LookTarget = nil
				} else {
					c.Cam.SetTarget(mgl32.Vec3{})
				}
			case sdl.K_3:
				// Reset camera
				c.Cam.Pos = mgl32.Vec3{0, 0, -3}
				c.Cam.LookDir = mgl32.Vec3{0, 0, 1}
				c.Cam.LookTarget = nil
			case sdl.K_4:
				dev := c.Device()
				dev.SetWireframe(!dev.IsWireframe())
				log.Printf("Wireframe rendering -> %v", dev.IsWireframe())
			case sdl.K_w:
				c.Cam.Move(mgl32.Vec3{0, 0, 1})
			case sdl.K_a:
				c.Cam.Move(mgl32.Vec3{-1, 0, 0})
			case sdl.K_s:
				c.Cam.Move(mgl32.Vec3{0, 0, -1})
			case sdl.K_d:
				c.Cam.Move(mgl32.Vec3{1, 0, 0})
			}
		}
	}
}

func main() {
	core := renderer.NewRenderCore()

	head := renderer.NewMeshObject("head", model.NewHeadMesh(24, 32))
	head.Alpha = 0.65
	if len(os.Args) > 1 {
		path := os.Args[1]
		img, err := stbi.Load(path)
		if err != nil {
			log.Panicf("Failed to load %s: %v", path, err)
		}
		log.Printf("Loaded image %s (w: %dp, h: %dp)", path, img.Rect.Dx(), img.Rect.Dy())
		if _, err := head.AddTexture(core.Device(), img); err != nil {
			log.Panicf("Failed to prepare texture: %v", err)
		}
	} else {
		log.Println("No texture given, head renders flat grey. Usage: face_mesh_renderer [image]")
	}
	core.AddToScene(head)

	// A translucent pane in front of the head makes the depth-binned
	// compositing visible.
	pane := renderer.NewMeshObject("pane", model.NewPaneMesh(1.2, 0.9))
	pane.Alpha = 0.35
	pane.Meshes[0].ModelMat = mgl32.Translate3D(0, 0, -1.5)
	core.AddToScene(pane)

	core.Loop(onIteration, func(elapsed time.Duration, c *renderer.Core) {
		spin := mgl32.HomogRotate3D(float32(elapsed.Seconds())*mgl32.DegToRad(30), mgl32.Vec3{0, 1, 0})
		head.Meshes[0].ModelMat = spin
	})

	core.ClearScene()
	core.Destroy()
}
