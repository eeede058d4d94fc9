package window

import (
	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/backend"
	"github.com/gogpu/gl2d/backend/opengl"
	"github.com/gogpu/gl2d/driver/gl21"
)

// GLBackend runs the opengl renderer against real GLFW windows. Each
// renderer gets its own window; headless environments should fall back
// to the software backend.
type GLBackend struct {
	initialized bool
	windows     []*Window
}

// init registers the hardware backend on package import.
func init() {
	backend.Register(backend.BackendOpenGL, func() backend.Backend {
		return NewGLBackend()
	})
}

// NewGLBackend creates a new GLFW-backed OpenGL backend.
func NewGLBackend() *GLBackend {
	return &GLBackend{}
}

// Name returns the backend identifier.
func (b *GLBackend) Name() string {
	return backend.BackendOpenGL
}

// Init initializes GLFW. It fails on systems without a display, which
// lets backend.InitDefault fall through to the software backend.
func (b *GLBackend) Init() error {
	if err := initGLFW(); err != nil {
		return err
	}
	b.initialized = true
	return nil
}

// Close destroys every window the backend opened.
func (b *GLBackend) Close() {
	for _, w := range b.windows {
		w.Close()
	}
	b.windows = nil
	b.initialized = false
}

// NewRenderer opens a window of the given size and builds a renderer
// on its context.
func (b *GLBackend) NewRenderer(width, height int) (gl2d.Renderer, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	w, err := Open(Options{Title: "gl2d", Width: width, Height: height})
	if err != nil {
		return nil, err
	}
	d, err := gl21.Open()
	if err != nil {
		w.Close()
		return nil, err
	}
	r, err := opengl.New(opengl.Config{
		Funcs:    d,
		Platform: w,
		VSync:    true,
	})
	if err != nil {
		w.Close()
		return nil, err
	}
	b.windows = append(b.windows, w)
	return r, nil
}
