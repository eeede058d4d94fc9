// Package window owns the GLFW windows and OpenGL contexts the gl2d
// renderer draws into. A Window implements opengl.Platform, so it
// plugs straight into the opengl backend; importing this package also
// registers that backend.
//
// GLFW requires its windows and contexts to live on one OS thread.
// Open locks the calling goroutine to its thread; every later call on
// the Window must come from that same goroutine.
package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/gl2d"
)

// Options configures a window.
type Options struct {
	// Title is the window title.
	Title string

	// Width and Height are the initial window size in screen
	// coordinates. The drawable size may be larger on scaled displays.
	Width, Height int

	// Resizable allows the user to resize the window.
	Resizable bool

	// Hidden creates the window without showing it, for offscreen
	// rendering against a real context.
	Hidden bool
}

var (
	initOnce sync.Once
	initErr  error
	windows  int
)

func initGLFW() error {
	initOnce.Do(func() {
		initErr = glfw.Init()
	})
	return initErr
}

// Window is one GLFW window with an OpenGL 2.1 compatibility context.
type Window struct {
	win  *glfw.Window
	opts Options
}

// Open creates a window and its context and makes the context current.
// The calling goroutine is locked to its OS thread for the lifetime of
// the window.
func Open(opts Options) (*Window, error) {
	runtime.LockOSThread()
	if err := initGLFW(); err != nil {
		return nil, fmt.Errorf("window: glfw init: %w", err)
	}
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}

	w := &Window{opts: opts}
	if err := w.create(); err != nil {
		return nil, err
	}
	windows++
	gl2d.Logger().Info("window: opened",
		"title", opts.Title, "size", fmt.Sprintf("%dx%d", opts.Width, opts.Height))
	return w, nil
}

// create builds the GLFW window from the stored options. The fixed
// hints ask for the 2.1 compatibility context the renderer's
// fixed-function calls need.
func (w *Window) create() error {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	if w.opts.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}
	if w.opts.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(w.opts.Width, w.opts.Height, w.opts.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("window: create: %w", err)
	}
	w.win = win
	win.MakeContextCurrent()
	return nil
}

// Recreate replaces the window with a fresh one built from new
// options, for cases where the surface attributes must change after
// the fact. On success the context is new; renderers built on the old
// one are invalid. On failure the old window and its options stay in
// place.
func (w *Window) Recreate(opts Options) error {
	if w.win == nil {
		return fmt.Errorf("window: recreate after close")
	}
	old, oldOpts := w.win, w.opts
	x, y := old.GetPos()

	w.opts = opts
	if err := w.create(); err != nil {
		w.win, w.opts = old, oldOpts
		old.MakeContextCurrent()
		return err
	}
	w.win.SetPos(x, y)
	old.Destroy()
	return nil
}

// MakeCurrent makes the window's context current on the calling
// thread.
func (w *Window) MakeCurrent() error {
	if w.win == nil {
		return fmt.Errorf("window: context gone")
	}
	w.win.MakeContextCurrent()
	return nil
}

// IsCurrent reports whether this window's context is the thread's
// current one.
func (w *Window) IsCurrent() bool {
	return w.win != nil && glfw.GetCurrentContext() == w.win
}

// SwapBuffers presents the backbuffer.
func (w *Window) SwapBuffers() error {
	if w.win == nil {
		return fmt.Errorf("window: context gone")
	}
	w.win.SwapBuffers()
	return nil
}

// DrawableSize returns the framebuffer size in pixels.
func (w *Window) DrawableSize() (int, int) {
	if w.win == nil {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

// ExtensionSupported reports whether the current context exposes a
// named extension.
func (w *Window) ExtensionSupported(name string) bool {
	return glfw.ExtensionSupported(name)
}

// SwapInterval sets the presentation swap interval of the current
// context.
func (w *Window) SwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (int, int) {
	if w.win == nil {
		return 0, 0
	}
	return w.win.GetSize()
}

// ShouldClose reports whether the user asked the window to close.
func (w *Window) ShouldClose() bool {
	return w.win == nil || w.win.ShouldClose()
}

// PollEvents processes pending window events. Call once per frame.
func PollEvents() { glfw.PollEvents() }

// Close destroys the window and its context. The last window closed
// terminates GLFW.
func (w *Window) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	windows--
	if windows == 0 {
		glfw.Terminate()
		initOnce = sync.Once{}
	}
}
