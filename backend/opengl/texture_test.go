package opengl

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/driver"
	"github.com/gogpu/gl2d/driver/softgl"
	"github.com/gogpu/gl2d/pixels"
)

// failingFuncs injects a GL error after every texture allocation, to
// exercise the creation rollback path.
type failingFuncs struct {
	*softgl.Driver
}

func (f *failingFuncs) TexImage2D(target driver.Enum, internal int32, w, h int32, format, typ driver.Enum, pix []byte) {
	f.Driver.TexImage2D(target, internal, w, h, format, typ, pix)
	f.Driver.InjectError(driver.OutOfMemory)
}

func TestCreateTextureTooLarge(t *testing.T) {
	r, _ := newTestRenderer(t, 4, 4)
	if _, err := r.CreateTexture(r.MaxTextureSize()+1, 4, gl2d.FormatARGB8888, gl2d.AccessStatic); !errors.Is(err, ErrTextureTooLarge) {
		t.Errorf("CreateTexture(oversize) error = %v, want ErrTextureTooLarge", err)
	}
	if _, err := r.CreateTexture(0, 4, gl2d.FormatARGB8888, gl2d.AccessStatic); !errors.Is(err, ErrTextureTooLarge) {
		t.Errorf("CreateTexture(0 width) error = %v, want ErrTextureTooLarge", err)
	}
}

func TestCreateTextureUnsupportedFormat(t *testing.T) {
	r, d := newTestRenderer(t, 4, 4)
	if _, err := r.CreateTexture(4, 4, gl2d.FormatRGBA8888, gl2d.AccessStatic); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("CreateTexture(RGBA8888) error = %v, want ErrUnsupportedFormat", err)
	}
	if n := d.TextureCount(); n != 0 {
		t.Errorf("TextureCount = %d, want 0 after failed creation", n)
	}
}

func TestCreateTextureTargetWithoutFBO(t *testing.T) {
	d := softgl.New(4, 4)
	r, err := New(Config{Funcs: d, Platform: platformWith(4, 4, "GL_ARB_texture_non_power_of_two")})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessTarget); !errors.Is(err, ErrTargetsUnsupported) {
		t.Errorf("CreateTexture(AccessTarget) error = %v, want ErrTargetsUnsupported", err)
	}

	// Other access modes still work on the same renderer.
	tex, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture(AccessStatic) error = %v", err)
	}
	r.DestroyTexture(tex)
	if n := d.TextureCount(); n != 0 {
		t.Errorf("TextureCount = %d, want 0", n)
	}
}

func TestCreateTextureYUVNeedsUnits(t *testing.T) {
	d := softgl.New(4, 4)
	r, err := New(Config{Funcs: d, Platform: platformWith(4, 4, "GL_ARB_texture_non_power_of_two")})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := r.CreateTexture(4, 4, gl2d.FormatYV12, gl2d.AccessStatic); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("CreateTexture(YV12 without multitexture) error = %v, want ErrUnsupportedFormat", err)
	}
	if n := d.TextureCount(); n != 0 {
		t.Errorf("TextureCount = %d, want 0", n)
	}
}

func TestCreateTextureUYVYNeedsAppleExtension(t *testing.T) {
	r, _ := newTestRenderer(t, 4, 4)
	if _, err := r.CreateTexture(4, 4, gl2d.FormatUYVY, gl2d.AccessStatic); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("CreateTexture(UYVY) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCreateTextureRollback(t *testing.T) {
	d := softgl.New(4, 4)
	r, err := New(Config{
		Funcs:    &failingFuncs{Driver: d},
		Platform: &headless{w: 4, h: 4},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = r.CreateTexture(4, 4, gl2d.FormatYV12, gl2d.AccessStatic)
	if !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("CreateTexture() error = %v, want ErrOutOfMemory", err)
	}
	if n := d.TextureCount(); n != 0 {
		t.Errorf("TextureCount = %d, want 0 after rollback", n)
	}
}

func TestChromaPlaneDims(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{4, 4, 2, 2},
		{5, 3, 3, 2},
		{1, 1, 1, 1},
		{7, 8, 4, 4},
	}
	r, d := newTestRenderer(t, 16, 16)
	for _, tt := range tests {
		tex, err := r.CreateTexture(tt.w, tt.h, gl2d.FormatIYUV, gl2d.AccessStatic)
		if err != nil {
			t.Fatalf("CreateTexture(%dx%d) error = %v", tt.w, tt.h, err)
		}
		gt := tex.Backend.(*glTexture)
		if got := len(d.TexturePixels(gt.u)); got != tt.wantW*tt.wantH {
			t.Errorf("%dx%d chroma plane = %d bytes, want %d", tt.w, tt.h, got, tt.wantW*tt.wantH)
		}
		r.DestroyTexture(tex)
	}

	// Semi-planar stores both chroma channels in one interleaved plane.
	tex, err := r.CreateTexture(5, 3, gl2d.FormatNV12, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture(NV12) error = %v", err)
	}
	gt := tex.Backend.(*glTexture)
	if got := len(d.TexturePixels(gt.u)); got != 3*2*2 {
		t.Errorf("NV12 chroma plane = %d bytes, want %d", got, 3*2*2)
	}
	if gt.v != 0 {
		t.Error("NV12 texture should not allocate a third plane")
	}
}

func TestUpdateTexturePlanarOrder(t *testing.T) {
	r, d := newTestRenderer(t, 8, 8)
	const w, h = 4, 4

	// Interleaved buffer: 16 luma bytes, then first chroma plane, then
	// second. YV12 stores V first, IYUV stores U first.
	buf := make([]byte, 0, w*h+2*2*2)
	buf = append(buf, bytes.Repeat([]byte{50}, w*h)...)
	buf = append(buf, bytes.Repeat([]byte{60}, 4)...)
	buf = append(buf, bytes.Repeat([]byte{70}, 4)...)
	full := gl2d.Rect{X: 0, Y: 0, W: w, H: h}

	for _, tt := range []struct {
		format       gl2d.PixelFormat
		wantU, wantV byte
	}{
		{gl2d.FormatYV12, 70, 60},
		{gl2d.FormatIYUV, 60, 70},
	} {
		tex, err := r.CreateTexture(w, h, tt.format, gl2d.AccessStatic)
		if err != nil {
			t.Fatalf("CreateTexture(%v) error = %v", tt.format, err)
		}
		if err := r.UpdateTexture(tex, full, buf, w); err != nil {
			t.Fatalf("UpdateTexture(%v) error = %v", tt.format, err)
		}
		gt := tex.Backend.(*glTexture)
		if p := d.TexturePixels(gt.id); p[0] != 50 {
			t.Errorf("%v luma = %d, want 50", tt.format, p[0])
		}
		if p := d.TexturePixels(gt.u); p[0] != tt.wantU {
			t.Errorf("%v u plane = %d, want %d", tt.format, p[0], tt.wantU)
		}
		if p := d.TexturePixels(gt.v); p[0] != tt.wantV {
			t.Errorf("%v v plane = %d, want %d", tt.format, p[0], tt.wantV)
		}
		r.DestroyTexture(tex)
	}
}

func TestUpdateYUVTextureMatchesInterleaved(t *testing.T) {
	r, d := newTestRenderer(t, 8, 8)
	const w, h = 4, 4
	full := gl2d.Rect{X: 0, Y: 0, W: w, H: h}

	tex, err := r.CreateTexture(w, h, gl2d.FormatYV12, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	y := bytes.Repeat([]byte{50}, w*h)
	u := bytes.Repeat([]byte{70}, 4)
	v := bytes.Repeat([]byte{60}, 4)
	if err := r.UpdateYUVTexture(tex, full, y, w, u, 2, v, 2); err != nil {
		t.Fatalf("UpdateYUVTexture() error = %v", err)
	}
	gt := tex.Backend.(*glTexture)
	if p := d.TexturePixels(gt.u); p[0] != 70 {
		t.Errorf("u plane = %d, want 70", p[0])
	}
	if p := d.TexturePixels(gt.v); p[0] != 60 {
		t.Errorf("v plane = %d, want 60", p[0])
	}

	if err := r.UpdateYUVTexture(tex, full, y, w, u, 2, v, 2); err != nil {
		t.Fatalf("UpdateYUVTexture() repeat error = %v", err)
	}
}

func TestUpdateNVTexture(t *testing.T) {
	r, d := newTestRenderer(t, 8, 8)
	tex, err := r.CreateTexture(2, 2, gl2d.FormatNV12, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	full := gl2d.Rect{X: 0, Y: 0, W: 2, H: 2}
	if err := r.UpdateNVTexture(tex, full, []byte{1, 2, 3, 4}, 2, []byte{10, 20}, 2); err != nil {
		t.Fatalf("UpdateNVTexture() error = %v", err)
	}
	gt := tex.Backend.(*glTexture)
	if p := d.TexturePixels(gt.u); p[0] != 10 || p[1] != 20 {
		t.Errorf("chroma plane = %v, want [10 20]", p[:2])
	}
}

func TestUpdateTextureMismatchedShapes(t *testing.T) {
	r, _ := newTestRenderer(t, 8, 8)
	planar, _ := r.CreateTexture(4, 4, gl2d.FormatYV12, gl2d.AccessStatic)
	semi, _ := r.CreateTexture(4, 4, gl2d.FormatNV12, gl2d.AccessStatic)
	full := gl2d.Rect{X: 0, Y: 0, W: 4, H: 4}

	if err := r.UpdateNVTexture(planar, full, make([]byte, 16), 4, make([]byte, 8), 4); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("UpdateNVTexture(planar) error = %v, want ErrUnsupportedFormat", err)
	}
	if err := r.UpdateYUVTexture(semi, full, make([]byte, 16), 4, make([]byte, 4), 2, make([]byte, 4), 2); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("UpdateYUVTexture(semi-planar) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestUpdateTextureShortBuffer(t *testing.T) {
	r, _ := newTestRenderer(t, 8, 8)
	tex, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	full := gl2d.Rect{X: 0, Y: 0, W: 4, H: 4}
	if err := r.UpdateTexture(tex, full, make([]byte, 10), 16); !errors.Is(err, pixels.ErrShortBuffer) {
		t.Errorf("UpdateTexture(short) error = %v, want ErrShortBuffer", err)
	}
}

func TestUpdateTextureBadRegion(t *testing.T) {
	r, _ := newTestRenderer(t, 8, 8)
	tex, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	for _, rect := range []gl2d.Rect{
		{X: -1, Y: 0, W: 4, H: 4},
		{X: 0, Y: 0, W: 5, H: 4},
		{X: 2, Y: 2, W: 3, H: 3},
		{X: 0, Y: 0, W: 0, H: 4},
	} {
		if err := r.UpdateTexture(tex, rect, make([]byte, 256), 16); !errors.Is(err, ErrInvalidTexture) {
			t.Errorf("UpdateTexture(%+v) error = %v, want ErrInvalidTexture", rect, err)
		}
	}
}

func TestLockTextureRequiresStreaming(t *testing.T) {
	r, _ := newTestRenderer(t, 8, 8)
	tex, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	full := gl2d.Rect{X: 0, Y: 0, W: 4, H: 4}
	if _, _, err := r.LockTexture(tex, full); !errors.Is(err, ErrNotStreaming) {
		t.Errorf("LockTexture(static) error = %v, want ErrNotStreaming", err)
	}
}

func TestLockTextureDoubleLock(t *testing.T) {
	r, _ := newTestRenderer(t, 8, 8)
	tex, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessStreaming)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	full := gl2d.Rect{X: 0, Y: 0, W: 4, H: 4}
	if _, _, err := r.LockTexture(tex, full); err != nil {
		t.Fatalf("LockTexture() error = %v", err)
	}
	if _, _, err := r.LockTexture(tex, full); err == nil {
		t.Error("second LockTexture before unlock should fail")
	}
	r.UnlockTexture(tex)
	r.UnlockTexture(tex) // no-op
}

// Streaming round trip: lock, write a solid color, unlock, draw the
// texture over the backbuffer, read it back and compare.
func TestStreamingRoundTrip(t *testing.T) {
	r, _ := newTestRenderer(t, 4, 4)
	tex, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessStreaming)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	full := gl2d.Rect{X: 0, Y: 0, W: 4, H: 4}

	pix, pitch, err := r.LockTexture(tex, full)
	if err != nil {
		t.Fatalf("LockTexture() error = %v", err)
	}
	// Packed ARGB little-endian: B, G, R, A.
	want := []byte{40, 30, 220, 255}
	for y := 0; y < 4; y++ {
		row := pix[y*pitch:]
		for x := 0; x < 4; x++ {
			copy(row[x*4:], want)
		}
	}
	r.UnlockTexture(tex)

	var q gl2d.Queue
	frect := gl2d.FRect{X: 0, Y: 0, W: 4, H: 4}
	if err := r.QueueCopy(&q, tex, frect, frect, gl2d.White, gl2d.BlendNone); err != nil {
		t.Fatalf("QueueCopy() error = %v", err)
	}
	if err := r.RunQueue(&q); err != nil {
		t.Fatalf("RunQueue() error = %v", err)
	}

	buf := readback(t, r, full)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := buf[(y*4+x)*4 : (y*4+x)*4+4]
			if !bytes.Equal(got, want) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

// A 4x4 YV12 texture filled with 128 in every plane decodes to a
// mid gray through the BT.601 matrix.
func TestYV12MidGray(t *testing.T) {
	r, _ := newTestRenderer(t, 4, 4)
	tex, err := r.CreateTexture(4, 4, gl2d.FormatYV12, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	full := gl2d.Rect{X: 0, Y: 0, W: 4, H: 4}
	buf := bytes.Repeat([]byte{128}, 16+4+4)
	if err := r.UpdateTexture(tex, full, buf, 4); err != nil {
		t.Fatalf("UpdateTexture() error = %v", err)
	}

	var q gl2d.Queue
	frect := gl2d.FRect{X: 0, Y: 0, W: 4, H: 4}
	if err := r.QueueCopy(&q, tex, frect, frect, gl2d.White, gl2d.BlendNone); err != nil {
		t.Fatalf("QueueCopy() error = %v", err)
	}
	if err := r.RunQueue(&q); err != nil {
		t.Fatalf("RunQueue() error = %v", err)
	}

	buf = readback(t, r, full)
	_, cr, cg, cb := argb(buf, 4, 1, 1)
	for name, c := range map[string]byte{"r": cr, "g": cg, "b": cb} {
		if c < 124 || c > 134 {
			t.Errorf("%s = %d, want mid gray near 128", name, c)
		}
	}
}

func TestDestroyTextureUnbindsTarget(t *testing.T) {
	r, d := newTestRenderer(t, 8, 8)
	tex, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessTarget)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if err := r.SetRenderTarget(tex); err != nil {
		t.Fatalf("SetRenderTarget() error = %v", err)
	}
	r.DestroyTexture(tex)
	if r.RenderTarget() != nil {
		t.Error("RenderTarget() should be nil after destroying the bound target")
	}
	if n := d.TextureCount(); n != 0 {
		t.Errorf("TextureCount = %d, want 0", n)
	}

	// Idempotent on destroyed and nil textures.
	r.DestroyTexture(tex)
	r.DestroyTexture(nil)
}

func TestSetRenderTargetRejectsNonTarget(t *testing.T) {
	r, _ := newTestRenderer(t, 8, 8)
	tex, err := r.CreateTexture(4, 4, gl2d.FormatARGB8888, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if err := r.SetRenderTarget(tex); !errors.Is(err, ErrInvalidTexture) {
		t.Errorf("SetRenderTarget(static) error = %v, want ErrInvalidTexture", err)
	}
}

func TestSetTextureScaleMode(t *testing.T) {
	r, _ := newTestRenderer(t, 8, 8)
	tex, err := r.CreateTexture(4, 4, gl2d.FormatYV12, gl2d.AccessStatic)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if err := r.SetTextureScaleMode(tex, gl2d.ScaleLinear); err != nil {
		t.Fatalf("SetTextureScaleMode() error = %v", err)
	}
	if tex.Scale != gl2d.ScaleLinear {
		t.Errorf("Scale = %v, want ScaleLinear", tex.Scale)
	}
}
