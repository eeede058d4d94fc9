package window

import (
	"errors"
	"testing"

	"github.com/gogpu/gl2d/backend"
)

func TestGLBackendRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendOpenGL) {
		t.Fatal("opengl backend not registered")
	}
	b := backend.Get(backend.BackendOpenGL)
	if b == nil {
		t.Fatal("Get() = nil")
	}
	if b.Name() != backend.BackendOpenGL {
		t.Errorf("Name() = %q, want %q", b.Name(), backend.BackendOpenGL)
	}
}

// TestRecreateKeepsWindowOnFailure needs a display; it drives Recreate
// into a creation failure with an invalid size and checks the old
// window survives.
func TestRecreateKeepsWindowOnFailure(t *testing.T) {
	w, err := Open(Options{Title: "recreate", Width: 64, Height: 64, Hidden: true})
	if err != nil {
		t.Skipf("no display: %v", err)
	}
	defer w.Close()

	if err := w.Recreate(Options{Title: "recreate", Width: -1, Height: -1, Hidden: true}); err == nil {
		t.Fatal("Recreate with invalid size succeeded")
	}
	gotW, gotH := w.Size()
	if gotW != 64 || gotH != 64 {
		t.Errorf("Size() after failed Recreate = %dx%d, want 64x64", gotW, gotH)
	}
	if !w.IsCurrent() {
		t.Error("old context not current after failed Recreate")
	}

	if err := w.Recreate(Options{Title: "recreate", Width: 32, Height: 48, Hidden: true}); err != nil {
		t.Fatalf("Recreate() error = %v", err)
	}
	if gotW, gotH := w.Size(); gotW != 32 || gotH != 48 {
		t.Errorf("Size() after Recreate = %dx%d, want 32x48", gotW, gotH)
	}
}

func TestGLBackendRequiresInit(t *testing.T) {
	b := NewGLBackend()
	if _, err := b.NewRenderer(64, 64); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("NewRenderer before Init error = %v, want ErrNotInitialized", err)
	}
}
