package opengl

import (
	"fmt"

	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/driver"
	"github.com/gogpu/gl2d/pixels"
)

// glTexture is the renderer's per-texture state: the primary GPU
// texture plus, for the YUV formats, one or two chroma-plane textures
// at half resolution. u is sampled on texture unit 1 and v on unit 2;
// for the semi-planar formats u holds the interleaved chroma plane
// and v is unused.
type glTexture struct {
	id   uint32
	u, v uint32

	target driver.Enum
	fmt    glFormat

	// sampling extent: raw [0,1] coordinates scale by these to land
	// on stored content
	texW, texH   float32
	physW, physH int

	// streaming staging state
	staging  []byte
	pitch    int
	lockRect gl2d.Rect
	locked   bool
}

// CreateTexture allocates the GPU textures for a logical texture. On
// any allocation failure every texture created so far is released and
// no logical texture exists.
func (r *Renderer) CreateTexture(w, h int, format gl2d.PixelFormat, access gl2d.TextureAccess) (*gl2d.Texture, error) {
	if err := r.activate(); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 || w > r.maxTex || h > r.maxTex {
		return nil, fmt.Errorf("%w: %dx%d (max %d)", ErrTextureTooLarge, w, h, r.maxTex)
	}
	gf, err := translateFormat(format)
	if err != nil {
		return nil, err
	}
	if access == gl2d.AccessTarget && !r.caps.fbo {
		return nil, ErrTargetsUnsupported
	}
	yuv := format.Planar() || format.SemiPlanar()
	if yuv && (!r.caps.shaders || r.caps.textureUnits < 3) {
		return nil, fmt.Errorf("%w: %v needs shaders and 3 texture units", ErrUnsupportedFormat, format)
	}
	if format == gl2d.FormatUYVY && !r.plat.ExtensionSupported("GL_APPLE_ycbcr_422") {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	t := &gl2d.Texture{W: w, H: h, Format: format, Access: access}
	gt := &glTexture{target: r.tier.textureTarget(), fmt: gf}
	gt.physW, gt.physH = r.tier.physical(w, h)
	gt.texW, gt.texH = r.tier.extent(w, h, gt.physW, gt.physH)

	r.sink.clear()
	gt.id = r.f.GenTexture()
	r.initPlane(gt.id, gt.target, t.Scale, gf, gt.physW, gt.physH)

	if yuv {
		cw, ch := pixels.ChromaDim(gt.physW), pixels.ChromaDim(gt.physH)
		cf := chromaFormat(format)
		gt.u = r.f.GenTexture()
		r.initPlane(gt.u, gt.target, t.Scale, cf, cw, ch)
		if format.Planar() {
			gt.v = r.f.GenTexture()
			r.initPlane(gt.v, gt.target, t.Scale, cf, cw, ch)
		}
	}

	if err := r.sink.check("glTexImage2D"); err != nil {
		r.deletePlanes(gt)
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}

	if access == gl2d.AccessStreaming {
		gt.pitch = pixels.PlanePitch(format, w)
		gt.staging = make([]byte, pixels.BufferSize(format, h, gt.pitch))
	}

	t.Backend = gt
	r.textures[t] = struct{}{}
	gl2d.Logger().Debug("opengl: texture created",
		"size", fmt.Sprintf("%dx%d", w, h), "format", format.String())
	return t, nil
}

// initPlane binds one plane texture, programs its sampling parameters
// and allocates uninitialized storage.
func (r *Renderer) initPlane(id uint32, target driver.Enum, scale gl2d.ScaleMode, gf glFormat, w, h int) {
	filter := int32(driver.Nearest)
	if scale == gl2d.ScaleLinear {
		filter = int32(driver.Linear)
	}
	r.f.BindTexture(target, id)
	r.f.TexParameteri(target, driver.TextureMinFilter, filter)
	r.f.TexParameteri(target, driver.TextureMagFilter, filter)
	r.f.TexParameteri(target, driver.TextureWrapS, int32(driver.ClampToEdge))
	r.f.TexParameteri(target, driver.TextureWrapT, int32(driver.ClampToEdge))
	r.f.TexImage2D(target, gf.internal, int32(w), int32(h), gf.format, gf.typ, nil)
}

func (r *Renderer) deletePlanes(gt *glTexture) {
	if gt.id != 0 {
		r.f.DeleteTexture(gt.id)
	}
	if gt.u != 0 {
		r.f.DeleteTexture(gt.u)
	}
	if gt.v != 0 {
		r.f.DeleteTexture(gt.v)
	}
	gt.id, gt.u, gt.v = 0, 0, 0
}

// SetTextureScaleMode reprograms the sampling filter of every plane.
func (r *Renderer) SetTextureScaleMode(t *gl2d.Texture, mode gl2d.ScaleMode) error {
	if err := r.activate(); err != nil {
		return err
	}
	gt, err := r.glTex(t)
	if err != nil {
		return err
	}
	t.Scale = mode
	filter := int32(driver.Nearest)
	if mode == gl2d.ScaleLinear {
		filter = int32(driver.Linear)
	}
	for _, id := range []uint32{gt.id, gt.u, gt.v} {
		if id == 0 {
			continue
		}
		r.f.BindTexture(gt.target, id)
		r.f.TexParameteri(gt.target, driver.TextureMinFilter, filter)
		r.f.TexParameteri(gt.target, driver.TextureMagFilter, filter)
	}
	return nil
}

// UpdateTexture replaces the pixels of a rect of the texture from one
// interleaved buffer: the rect's primary plane rows at the given
// pitch, followed for the YUV formats by the chroma planes for the
// same rect at half resolution.
func (r *Renderer) UpdateTexture(t *gl2d.Texture, rect gl2d.Rect, pix []byte, pitch int) error {
	if err := r.activate(); err != nil {
		return err
	}
	gt, err := r.glTex(t)
	if err != nil {
		return err
	}
	if err := validRegion(t, rect); err != nil {
		return err
	}
	if len(pix) < pixels.BufferSize(t.Format, rect.H, pitch) {
		return pixels.ErrShortBuffer
	}

	r.sink.clear()
	r.uploadPlane(gt.id, gt, gt.fmt, rect, pix, pitch)

	switch {
	case t.Format.Planar():
		crect := chromaRect(rect)
		cpitch := pixels.ChromaDim(pitch)
		cf := chromaFormat(t.Format)
		plane1 := pix[rect.H*pitch:]
		plane2 := plane1[pixels.ChromaDim(rect.H)*cpitch:]
		// YV12 stores V before U; IYUV the other way around.
		if t.Format == gl2d.FormatYV12 {
			r.uploadPlane(gt.v, gt, cf, crect, plane1, cpitch)
			r.uploadPlane(gt.u, gt, cf, crect, plane2, cpitch)
		} else {
			r.uploadPlane(gt.u, gt, cf, crect, plane1, cpitch)
			r.uploadPlane(gt.v, gt, cf, crect, plane2, cpitch)
		}
	case t.Format.SemiPlanar():
		crect := chromaRect(rect)
		cpitch := 2 * pixels.ChromaDim(pitch)
		r.uploadPlane(gt.u, gt, chromaFormat(t.Format), crect, pix[rect.H*pitch:], cpitch)
	}
	return r.sink.check("UpdateTexture")
}

// UpdateYUVTexture updates a rect of a three-plane texture from
// separate plane buffers with independent pitches. The result matches
// UpdateTexture over an equivalent interleaved buffer.
func (r *Renderer) UpdateYUVTexture(t *gl2d.Texture, rect gl2d.Rect,
	yPlane []byte, yPitch int, uPlane []byte, uPitch int, vPlane []byte, vPitch int) error {
	if err := r.activate(); err != nil {
		return err
	}
	gt, err := r.glTex(t)
	if err != nil {
		return err
	}
	if !t.Format.Planar() {
		return fmt.Errorf("%w: %v is not three-plane", ErrUnsupportedFormat, t.Format)
	}
	if err := validRegion(t, rect); err != nil {
		return err
	}

	r.sink.clear()
	crect := chromaRect(rect)
	cf := chromaFormat(t.Format)
	r.uploadPlane(gt.id, gt, gt.fmt, rect, yPlane, yPitch)
	r.uploadPlane(gt.u, gt, cf, crect, uPlane, uPitch)
	r.uploadPlane(gt.v, gt, cf, crect, vPlane, vPitch)
	return r.sink.check("UpdateYUVTexture")
}

// UpdateNVTexture updates a rect of a semi-planar texture from
// separate luma and interleaved-chroma buffers.
func (r *Renderer) UpdateNVTexture(t *gl2d.Texture, rect gl2d.Rect,
	yPlane []byte, yPitch int, uvPlane []byte, uvPitch int) error {
	if err := r.activate(); err != nil {
		return err
	}
	gt, err := r.glTex(t)
	if err != nil {
		return err
	}
	if !t.Format.SemiPlanar() {
		return fmt.Errorf("%w: %v is not semi-planar", ErrUnsupportedFormat, t.Format)
	}
	if err := validRegion(t, rect); err != nil {
		return err
	}

	r.sink.clear()
	r.uploadPlane(gt.id, gt, gt.fmt, rect, yPlane, yPitch)
	r.uploadPlane(gt.u, gt, chromaFormat(t.Format), chromaRect(rect), uvPlane, uvPitch)
	return r.sink.check("UpdateNVTexture")
}

// uploadPlane uploads one plane's sub-rectangle, expressing the pitch
// as a GL row length in pixels.
func (r *Renderer) uploadPlane(id uint32, gt *glTexture, gf glFormat, rect gl2d.Rect, pix []byte, pitch int) {
	bpp := transferBytes(gf)
	r.f.BindTexture(gt.target, id)
	r.f.PixelStorei(driver.UnpackRowLength, int32(pitch/bpp))
	r.f.TexSubImage2D(gt.target, int32(rect.X), int32(rect.Y),
		int32(rect.W), int32(rect.H), gf.format, gf.typ, pix)
	r.f.PixelStorei(driver.UnpackRowLength, 0)
}

// transferBytes is the per-pixel transfer cost of a plane format.
func transferBytes(gf glFormat) int {
	switch gf.format {
	case driver.Luminance:
		return 1
	case driver.LuminanceAlpha, driver.YCbCr422Apple:
		return 2
	default:
		return 4
	}
}

// chromaRect halves a luma rect, ceil-dividing extents so odd sizes
// keep their last chroma sample.
func chromaRect(rect gl2d.Rect) gl2d.Rect {
	return gl2d.Rect{
		X: rect.X / 2,
		Y: rect.Y / 2,
		W: pixels.ChromaDim(rect.W),
		H: pixels.ChromaDim(rect.H),
	}
}

func validRegion(t *gl2d.Texture, rect gl2d.Rect) error {
	if rect.X < 0 || rect.Y < 0 || rect.W <= 0 || rect.H <= 0 ||
		rect.X+rect.W > t.W || rect.Y+rect.H > t.H {
		return fmt.Errorf("%w: region %+v outside %dx%d", ErrInvalidTexture, rect, t.W, t.H)
	}
	return nil
}

// LockTexture maps a rect of a streaming texture's staging buffer for
// direct writes. The buffer contents are undefined until written; a
// second lock before UnlockTexture is a precondition violation.
func (r *Renderer) LockTexture(t *gl2d.Texture, rect gl2d.Rect) (pix []byte, pitch int, err error) {
	gt, err := r.glTex(t)
	if err != nil {
		return nil, 0, err
	}
	if t.Access != gl2d.AccessStreaming {
		return nil, 0, ErrNotStreaming
	}
	if err := validRegion(t, rect); err != nil {
		return nil, 0, err
	}
	if gt.locked {
		return nil, 0, fmt.Errorf("%w: already locked", ErrInvalidTexture)
	}
	gt.locked = true
	gt.lockRect = rect
	off := rect.Y*gt.pitch + rect.X*t.Format.BytesPerPixel()
	return gt.staging[off:], gt.pitch, nil
}

// UnlockTexture uploads the staged pixels of the locked rect through
// the same path UpdateTexture uses. Unlocking an unlocked texture is
// a no-op.
func (r *Renderer) UnlockTexture(t *gl2d.Texture) {
	gt, err := r.glTex(t)
	if err != nil || !gt.locked {
		return
	}
	gt.locked = false
	rect := gt.lockRect
	off := rect.Y*gt.pitch + rect.X*t.Format.BytesPerPixel()
	if err := r.UpdateTexture(t, rect, gt.staging[off:], gt.pitch); err != nil {
		gl2d.Logger().Warn("opengl: unlock upload failed", "err", err)
	}
}

// DestroyTexture releases the texture's GPU handles and staging
// buffer. Destroying nil or an already-destroyed texture is a no-op.
// A texture bound as the render target is unbound first.
func (r *Renderer) DestroyTexture(t *gl2d.Texture) {
	if t == nil || t.Backend == nil {
		return
	}
	gt, err := r.glTex(t)
	if err != nil {
		return
	}
	if r.target == t {
		if err := r.SetRenderTarget(nil); err != nil {
			gl2d.Logger().Warn("opengl: unbinding destroyed target", "err", err)
		}
	}
	if err := r.activate(); err != nil {
		gl2d.Logger().Warn("opengl: destroying texture without context", "err", err)
	} else {
		r.deletePlanes(gt)
	}
	gt.staging = nil
	t.Backend = nil
	delete(r.textures, t)
}
