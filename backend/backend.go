package backend

import (
	"errors"

	"github.com/gogpu/gl2d"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend name constants.
const (
	// BackendOpenGL is the name of the OpenGL 2.1 backend driving a
	// real context through a window.
	BackendOpenGL = "opengl"
	// BackendSoftware is the name of the CPU emulation backend
	// (always available, no display required).
	BackendSoftware = "software"
)

// Backend is the interface for rendering backends.
// It abstracts the device and display plumbing, allowing the library
// to support multiple implementations (OpenGL via a window, a software
// emulation for headless use).
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "opengl", "software").
	Name() string

	// Init initializes the backend.
	// This should be called before creating renderers.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// NewRenderer creates a renderer with a drawable surface of the
	// given dimensions. The renderer's context is current on the
	// calling goroutine when this returns.
	NewRenderer(width, height int) (gl2d.Renderer, error)
}
