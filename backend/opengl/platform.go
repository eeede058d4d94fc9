package opengl

// Platform is the windowing collaborator the renderer drives. An
// implementation wraps one window plus the GL context created for it;
// the renderer never creates or destroys either.
//
// The context is expected to be an OpenGL 2.1 compatibility context.
// Implementations that find a different context current should
// recreate the window surface with the right attributes before
// handing the platform to the renderer.
type Platform interface {
	// MakeCurrent makes the context current on the calling thread.
	// May block on the windowing system.
	MakeCurrent() error

	// IsCurrent reports whether the context is already current on the
	// calling thread, letting the renderer skip MakeCurrent.
	IsCurrent() bool

	// SwapBuffers presents the backbuffer.
	SwapBuffers() error

	// DrawableSize returns the backbuffer size in pixels, which may
	// differ from the window size on scaled displays.
	DrawableSize() (w, h int)

	// ExtensionSupported reports whether the context exposes a named
	// extension.
	ExtensionSupported(name string) bool

	// SwapInterval sets the presentation swap interval (1 enables
	// vsync, 0 disables it).
	SwapInterval(interval int)
}
