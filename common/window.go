package common

import (
	"fmt"
	"log"

	"github.com/veandco/go-sdl2/sdl"
)

const SDL_MAJOR, SDL_MINOR, SDL_PATCH = int(sdl.MAJOR_VERSION), int(sdl.MINOR_VERSION), int(sdl.PATCHLEVEL)

// Requested OpenGL version, core profile.
const GL_MAJOR, GL_MINOR = 4, 1

// Window encapsulates all window handling components needed to actually draw
// on screen. It uses SDL for window management and user input, for an OpenGL
// application, simplifying the process of getting a current GL context to
// draw on and interact with.
type Window struct {
	sdlVersion string

	Win       *sdl.Window
	Resized   bool
	Minimized bool
	Close     bool

	glCtx sdl.GLContext
}

// NewWindow constructs a new Window by initializing SDL, creating the window
// and making an OpenGL core profile context current on it. On tear down we
// need to destroy the GL context and the sdl.Window again.
func NewWindow(title string, w int32, h int32) *Window {
	window := &Window{
		sdlVersion: fmt.Sprintf("v%d.%d.%d", SDL_MAJOR, SDL_MINOR, SDL_PATCH),
		Resized:    false,
		Minimized:  false,
		Close:      false,
	}
	window.initSDLWindow(title, w, h)
	window.initGLContext()
	log.Printf("Generated SDL/OpenGL window - SDL: %s, GL core profile: %d.%d", window.sdlVersion, GL_MAJOR, GL_MINOR)
	return window
}

// Destroy is a convenience method to tear down all relevant instances
// (GL context and sdl.Window) that have been initialized by itself.
func (w *Window) Destroy() {
	sdl.GLDeleteContext(w.glCtx)
	err := w.Win.Destroy()
	if err != nil {
		log.Fatal(err)
	}
	sdl.Quit()
}

// Swap presents the back buffer.
func (w *Window) Swap() {
	w.Win.GLSwap()
}

// DrawableSize reports the size of the drawable in pixels, which may differ
// from the window size on high-DPI displays.
func (w *Window) DrawableSize() (int32, int32) {
	return w.Win.GLGetDrawableSize()
}

func (w *Window) initSDLWindow(title string, width int32, height int32) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Panicf("Failed to initialize SDL: %v", err)
	}
	log.Println("Initialized SDL")

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, GL_MAJOR)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, GL_MINOR)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	win, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		width,
		height,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI,
	)
	if err != nil {
		log.Panicf("Failed to create SDL window for use with OpenGL: %v", err)
	}
	log.Printf("Created SDL window for use with OpenGL. Title: \"%s\", Width: %d, Height: %d", title, width, height)
	w.Win = win
}

func (w *Window) initGLContext() {
	ctx, err := w.Win.GLCreateContext()
	if err != nil {
		log.Panicf("Failed to create OpenGL context: %v", err)
	}
	w.glCtx = ctx
	if err := sdl.GLSetSwapInterval(1); err != nil {
		log.Printf("Failed to enable vsync: %v", err)
	}
}
