package opengl

import (
	"errors"
	"testing"

	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/backend"
)

func TestSoftwareBackendRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendSoftware) {
		t.Fatal("software backend not registered")
	}
	b := backend.Get(backend.BackendSoftware)
	if b == nil {
		t.Fatal("Get() = nil")
	}
	if b.Name() != backend.BackendSoftware {
		t.Errorf("Name() = %q, want %q", b.Name(), backend.BackendSoftware)
	}
}

func TestSoftwareBackendLifecycle(t *testing.T) {
	b := NewSoftwareBackend()

	if _, err := b.NewRenderer(4, 4); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("NewRenderer before Init error = %v, want ErrNotInitialized", err)
	}

	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	r, err := b.NewRenderer(4, 4)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	// The renderer is fully usable without a display.
	var q gl2d.Queue
	if err := r.QueueClear(&q, gl2d.Color{R: 255, A: 255}); err != nil {
		t.Fatalf("QueueClear() error = %v", err)
	}
	if err := r.RunQueue(&q); err != nil {
		t.Fatalf("RunQueue() error = %v", err)
	}
	buf := make([]byte, 4*4*4)
	if err := r.ReadPixels(gl2d.Rect{X: 0, Y: 0, W: 4, H: 4}, gl2d.FormatARGB8888, buf, 16); err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	if buf[2] != 255 {
		t.Errorf("cleared pixel r = %d, want 255", buf[2])
	}

	r.Destroy()
	b.Close()
}
