// Package backend provides a pluggable rendering backend abstraction.
//
// The backend package allows gl2d to support multiple device
// implementations. The opengl backend drives a real OpenGL 2.1 context
// through a window; the software backend runs the same renderer over a
// CPU emulation and needs no display.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Importing the implementation packages registers them:
//
//	import (
//		_ "github.com/gogpu/gl2d/backend/opengl" // "software"
//		_ "github.com/gogpu/gl2d/window"         // "opengl"
//	)
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("software")
//
// # Usage
//
// The backend produces renderers implementing gl2d.Renderer:
//
//	b := backend.Default()
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	r, err := b.NewRenderer(800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Destroy()
//
// # Available Backends
//
//   - "opengl": OpenGL 2.1 through a GLFW window
//   - "software": CPU emulation (always available)
package backend
