package renderer

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"face_mesh_renderer/common"
	"face_mesh_renderer/model"
)

const PROGRAM_NAME = "Face mesh renderer"
const WINDOW_WIDTH, WINDOW_HEIGHT int32 = 1280, 720

type Core struct {
	// OS/Window level
	Win *common.Window
	dev *GLDevice

	// 3D World
	Cam      *model.Camera
	Lighting model.Lighting
	registry *Registry
}

// Externally facing functions

func NewRenderCore() *Core {
	c := &Core{}
	c.Initialize()
	return c
}

func (c *Core) Initialize() {
	c.Win = common.NewWindow(PROGRAM_NAME, WINDOW_WIDTH, WINDOW_HEIGHT)
	dev, err := NewGLDevice()
	if err != nil {
		log.Panicf("Failed to initialize render device: %v", err)
	}
	c.dev = dev
	c.registry = NewRegistry()
	c.Lighting = model.DefaultLighting()
	c.DefaultCam()
}

func (c *Core) DefaultCam() {
	cam := model.NewCamera(45, 0.1, 100)
	cam.ProjectionType = model.CAM_PERSPECTIVE_PROJECTION
	cam.Move(mgl32.Vec3{0, 0, -3})
	c.Cam = cam
}

// Device exposes the GPU backend for object setup (texture preparation).
func (c *Core) Device() Device {
	return c.dev
}

// Registry exposes the scene object table owned by this core.
func (c *Core) Registry() *Registry {
	return c.registry
}

func (c *Core) AddToScene(o Renderable) {
	c.registry.Add(o)
}

func (c *Core) FindInScene(name string) (Renderable, error) {
	return c.registry.Find(name)
}

// RemoveFromScene drops the object from the scene and releases its GPU
// resources.
func (c *Core) RemoveFromScene(name string) {
	if o := c.registry.Remove(name); o != nil {
		o.Destroy(c.dev)
	}
}

func (c *Core) ClearScene() {
	for c.registry.Len() > 0 {
		o := c.registry.Objects()[0]
		c.RemoveFromScene(o.Name())
	}
}

// ResetScene invokes the reset hook on every object, used on scene restart.
func (c *Core) ResetScene() {
	for _, o := range c.registry.Objects() {
		o.Reset()
	}
}

type iterationHandler func(sdl.Event, *Core)

type drawHandler func(time.Duration, *Core)

// Loop represents the event-loop for user interaction and currently also
// contains the primary draw call that renders each frame. The whole purpose
// of this function is to provide a neat interface for call backs and all
// basic functionality a well-behaved app should have. E.g.: not rendering if
// minimized, close on window 'close button', close on ESC key.
func (c *Core) Loop(ih iterationHandler, dh drawHandler) {
	t0 := time.Now()
	frames := 0
	var event sdl.Event
	c.Win.Close = false
	for !c.Win.Close {
		for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			// Doing some basic functionality for basic window handling
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				c.Win.Close = true
			case *sdl.WindowEvent:
				if ev.Event == sdl.WINDOWEVENT_RESIZED {
					c.Win.Resized = true
				} else if ev.Event == sdl.WINDOWEVENT_MINIMIZED {
					c.Win.Minimized = true
				} else if ev.Event == sdl.WINDOWEVENT_RESTORED {
					c.Win.Minimized = false
				}
			case *sdl.KeyboardEvent:
				if ev.Keysym.Sym == sdl.K_ESCAPE {
					c.Win.Close = true
				}
			}
			ih(event, c)
		}
		if !c.Win.Minimized {
			elapsed := time.Since(t0)
			for _, o := range c.registry.Objects() {
				o.Update(elapsed)
			}
			dh(elapsed, c)
			c.drawFrame()
			frames++
		} else {
			// Sleep until new events change c.Win.Minimized
			sdl.WaitEvent()
		}
	}
	dt := time.Since(t0)
	log.Printf("Elapsed: %v, rough avg fps: %v fps", dt, float64(frames)/dt.Seconds())
}

func (c *Core) drawFrame() {
	w, h := c.Win.DrawableSize()
	c.dev.Viewport(w, h)
	if h > 0 {
		c.Cam.Aspect = float32(w) / float32(h)
	}
	c.Win.Resized = false

	c.dev.Clear(0.05, 0.05, 0.08, 1)
	c.dev.SetLighting(c.Lighting)

	f := &Frame{
		Dev:  c.dev,
		View: c.Cam.GetView(),
		Proj: c.Cam.GetProjection(),
	}
	for _, o := range c.registry.Objects() {
		if err := o.Draw(f); err != nil {
			log.Printf("Failed to draw '%s': %v", o.Name(), err)
		}
	}
	c.Win.Swap()
}

func (c *Core) Destroy() {
	// If user has not cleaned up all objects manually, warn and remove them now
	if c.registry.Len() > 0 {
		log.Printf("Leftover objects in render core!: %v", c.registry.Len())
		c.ClearScene()
	}
	c.dev.Destroy()
	c.Win.Destroy()
}
