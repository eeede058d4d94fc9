package opengl

import (
	"testing"

	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/driver/softgl"
)

func TestFBOPoolReusesBySize(t *testing.T) {
	d := softgl.New(4, 4)
	var p fboPool

	a := p.acquire(d, 4, 4)
	if b := p.acquire(d, 4, 4); b != a {
		t.Errorf("acquire(4,4) twice = %d then %d, want the same object", a, b)
	}
	c := p.acquire(d, 8, 8)
	if c == a {
		t.Error("acquire(8,8) returned the 4x4 object")
	}
	if n := d.FramebufferCount(); n != 2 {
		t.Errorf("FramebufferCount = %d, want 2", n)
	}

	p.releaseAll(d)
	if n := d.FramebufferCount(); n != 0 {
		t.Errorf("FramebufferCount after releaseAll = %d, want 0", n)
	}
}

func TestRenderTargetsShareFramebuffer(t *testing.T) {
	r, d := newTestRenderer(t, 8, 8)

	a, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessTarget)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	b, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessTarget)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	c, err := r.CreateTexture(2, 2, gl2d.FormatARGB8888, gl2d.AccessTarget)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}

	for _, tex := range []*gl2d.Texture{a, b, a} {
		if err := r.SetRenderTarget(tex); err != nil {
			t.Fatalf("SetRenderTarget() error = %v", err)
		}
	}
	if n := d.FramebufferCount(); n != 1 {
		t.Errorf("FramebufferCount after same-size targets = %d, want 1", n)
	}

	if err := r.SetRenderTarget(c); err != nil {
		t.Fatalf("SetRenderTarget() error = %v", err)
	}
	if n := d.FramebufferCount(); n != 2 {
		t.Errorf("FramebufferCount after new size = %d, want 2", n)
	}
}
