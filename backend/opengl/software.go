package opengl

import (
	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/backend"
	"github.com/gogpu/gl2d/driver/softgl"
)

// headless is the Platform for the software driver: no window and no
// real context, so activation always succeeds. The advertised
// extensions put the renderer on the arbitrary-extent tier with
// render-target and YUV support.
type headless struct {
	w, h int
}

func (p *headless) MakeCurrent() error { return nil }
func (p *headless) IsCurrent() bool    { return true }
func (p *headless) SwapBuffers() error { return nil }

func (p *headless) DrawableSize() (w, h int) {
	return p.w, p.h
}

func (p *headless) ExtensionSupported(name string) bool {
	switch name {
	case "GL_ARB_texture_non_power_of_two",
		"GL_ARB_framebuffer_object",
		"GL_ARB_multitexture":
		return true
	}
	return false
}

func (p *headless) SwapInterval(int) {}

// SoftwareBackend runs the renderer over the CPU emulation driver.
// It needs no display, which makes it the headless fallback.
type SoftwareBackend struct {
	initialized bool
}

// init registers the software backend on package import.
func init() {
	backend.Register(backend.BackendSoftware, func() backend.Backend {
		return NewSoftwareBackend()
	})
}

// NewSoftwareBackend creates a new software rendering backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return backend.BackendSoftware
}

// Init initializes the backend.
func (b *SoftwareBackend) Init() error {
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	b.initialized = false
}

// NewRenderer creates a renderer over a fresh software driver with a
// backbuffer of the given size.
func (b *SoftwareBackend) NewRenderer(width, height int) (gl2d.Renderer, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	d := softgl.New(width, height)
	r, err := New(Config{
		Funcs:    d,
		Platform: &headless{w: width, h: height},
		Debug:    true,
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
