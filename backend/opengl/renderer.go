// Package opengl is an OpenGL 2.1 rendering backend for gl2d command
// queues. It compiles queued 2D primitives into pre-baked vertex data,
// executes them with state diffing so redundant GL calls are skipped,
// and manages texture resources including the multi-plane YUV formats
// and framebuffer-object render targets.
//
// The renderer draws through the driver.Funcs seam, so the same code
// runs against a real context (driver/gl21) or the software emulation
// (driver/softgl). Everything here is single-threaded: the renderer,
// its textures and its queues belong to the thread that owns the GL
// context.
package opengl

import (
	"errors"
	"fmt"

	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/driver"
	"github.com/gogpu/gl2d/pixels"
)

// extentTier is the texture-coordinate normalization strategy. Exactly
// one tier is selected when the renderer is created and every texture
// of that renderer uses it.
type extentTier uint8

const (
	// tierArbitrary samples any-size textures with coordinates in
	// [0,1] (needs non-power-of-two support).
	tierArbitrary extentTier = iota

	// tierRectangle uses rectangle textures addressed in pixel-space
	// coordinates [0,w]x[0,h].
	tierRectangle

	// tierPOT pads storage to the next power of two and samples the
	// used fraction.
	tierPOT
)

func (t extentTier) String() string {
	switch t {
	case tierArbitrary:
		return "arbitrary"
	case tierRectangle:
		return "rectangle"
	default:
		return "power-of-two"
	}
}

// textureTarget returns the GL texture target the tier binds.
func (t extentTier) textureTarget() driver.Enum {
	if t == tierRectangle {
		return driver.TextureRectangle
	}
	return driver.Texture2D
}

// physical returns the stored texture dimensions for a logical size.
func (t extentTier) physical(w, h int) (int, int) {
	if t == tierPOT {
		return nextPow2(w), nextPow2(h)
	}
	return w, h
}

// extent returns the (texw, texh) sampling extent mapping unit
// coordinates onto the physical storage.
func (t extentTier) extent(w, h, physW, physH int) (float32, float32) {
	switch t {
	case tierRectangle:
		return float32(w), float32(h)
	case tierPOT:
		return float32(w) / float32(physW), float32(h) / float32(physH)
	default:
		return 1, 1
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// LineEndPolicy picks which endpoint of an open polyline gets the
// extra pixel that closes GL's half-open line rasterization. Drivers
// disagree about which pixel a line leaves undrawn, so the right
// compensation is platform-specific.
type LineEndPolicy uint8

const (
	// LineEndLastVertex draws the final vertex as a point.
	LineEndLastVertex LineEndPolicy = iota

	// LineEndFarthest draws the rightmost and the bottommost of the
	// polyline's two outer endpoints, which may be one point or two.
	LineEndFarthest
)

// caps is the capability set recorded once at renderer creation.
type caps struct {
	npot         bool
	rectangle    bool
	fbo          bool
	multitexture bool
	textureUnits int32
	shaders      bool
	debugOutput  bool
}

// Config configures a Renderer.
type Config struct {
	// Funcs is the GL entry-point set to draw through. Required.
	Funcs driver.Funcs

	// Platform is the windowing collaborator owning the context and
	// backbuffer. Required.
	Platform Platform

	// Debug enables the error sink. Without it, GL errors are not
	// collected and RunQueue never reports DriverError.
	Debug bool

	// VSync requests a presentation swap interval of 1.
	VSync bool

	// LineEnd selects the open-polyline endpoint compensation.
	LineEnd LineEndPolicy
}

var _ gl2d.Renderer = (*Renderer)(nil)

// Renderer implements gl2d.Renderer over an OpenGL 2.1 context.
type Renderer struct {
	f    driver.Funcs
	plat Platform

	caps    caps
	tier    extentTier
	maxTex  int
	lineEnd LineEndPolicy
	sink    *errorSink

	// drawable size, refreshed on every activation
	drawW, drawH int

	// persistent render state
	target      *gl2d.Texture
	viewport    gl2d.Rect
	clip        gl2d.Rect
	clipEnabled bool
	drawColor   gl2d.Color
	drawBlend   gl2d.BlendMode

	fbos     fboPool
	textures map[*gl2d.Texture]struct{}

	destroyed bool
}

// New creates a renderer over an already-current (or activatable)
// OpenGL 2.1 context. Construction probes capabilities once, selects
// the sampling-extent tier for the renderer's lifetime and resets the
// GL state the executor diffs against.
func New(cfg Config) (*Renderer, error) {
	if cfg.Funcs == nil || cfg.Platform == nil {
		return nil, errors.New("opengl: Funcs and Platform are required")
	}
	r := &Renderer{
		f:         cfg.Funcs,
		plat:      cfg.Platform,
		lineEnd:   cfg.LineEnd,
		drawColor: gl2d.White,
		drawBlend: gl2d.BlendNone,
		textures:  make(map[*gl2d.Texture]struct{}),
	}
	if err := r.activate(); err != nil {
		return nil, err
	}

	ext := cfg.Platform.ExtensionSupported
	r.caps.npot = ext("GL_ARB_texture_non_power_of_two")
	r.caps.rectangle = ext("GL_ARB_texture_rectangle") || ext("GL_EXT_texture_rectangle")
	r.caps.fbo = ext("GL_ARB_framebuffer_object") || ext("GL_EXT_framebuffer_object")
	r.caps.multitexture = ext("GL_ARB_multitexture")
	if r.caps.multitexture {
		r.caps.textureUnits = r.f.GetInteger(driver.MaxTextureUnits)
	} else {
		r.caps.textureUnits = 1
	}
	r.caps.shaders = r.f.ShadersSupported()

	switch {
	case r.caps.npot:
		r.tier = tierArbitrary
	case r.caps.rectangle:
		r.tier = tierRectangle
	default:
		r.tier = tierPOT
	}
	if r.tier == tierRectangle {
		r.maxTex = int(r.f.GetInteger(driver.MaxRectangleTextureSize))
	} else {
		r.maxTex = int(r.f.GetInteger(driver.MaxTextureSize))
	}

	r.sink = newErrorSink(r.f, cfg.Debug)
	r.caps.debugOutput = r.sink.synchronous()

	if cfg.VSync {
		r.plat.SwapInterval(1)
	} else {
		r.plat.SwapInterval(0)
	}

	r.resetState()

	gl2d.Logger().Info("opengl: renderer created",
		"tier", r.tier.String(),
		"shaders", r.caps.shaders,
		"fbo", r.caps.fbo,
		"textureUnits", r.caps.textureUnits,
		"maxTextureSize", r.maxTex)
	return r, nil
}

// resetState programs the fixed GL state the executor assumes and the
// initial viewport/projection.
func (r *Renderer) resetState() {
	r.f.Disable(driver.DepthTest)
	r.f.Disable(driver.CullFace)
	r.f.Disable(driver.Blend)
	r.f.Disable(driver.ScissorTest)
	r.f.MatrixMode(driver.ModelView)
	r.f.LoadIdentity()
	r.f.Color4f(1, 1, 1, 1)

	r.viewport = gl2d.Rect{X: 0, Y: 0, W: r.drawW, H: r.drawH}
	r.applyViewport(r.viewport)
}

// activate makes the renderer's context current if it is not already,
// and refreshes the drawable size. Every operation that touches GPU
// state calls this first.
func (r *Renderer) activate() error {
	if !r.plat.IsCurrent() {
		if err := r.plat.MakeCurrent(); err != nil {
			return fmt.Errorf("%w: %v", ErrContextActivation, err)
		}
	}
	r.drawW, r.drawH = r.plat.DrawableSize()
	return nil
}

// applyViewport programs the GL viewport and projection for a logical
// viewport rect. Offscreen targets keep their top-left origin; the
// window backbuffer flips the Y axis.
func (r *Renderer) applyViewport(v gl2d.Rect) {
	y := v.Y
	if r.target == nil {
		y = r.drawH - v.Y - v.H
	}
	r.f.Viewport(int32(v.X), int32(y), int32(v.W), int32(v.H))

	r.f.MatrixMode(driver.Projection)
	r.f.LoadIdentity()
	if v.W > 0 && v.H > 0 {
		if r.target != nil {
			r.f.Ortho(0, float64(v.W), 0, float64(v.H), -1, 1)
		} else {
			r.f.Ortho(0, float64(v.W), float64(v.H), 0, -1, 1)
		}
	}
	r.f.MatrixMode(driver.ModelView)
}

// applyScissor programs the scissor box for a clip rect expressed in
// viewport-relative logical coordinates.
func (r *Renderer) applyScissor(v, c gl2d.Rect) {
	if r.target != nil {
		r.f.Scissor(int32(v.X+c.X), int32(v.Y+c.Y), int32(c.W), int32(c.H))
		return
	}
	r.f.Scissor(int32(v.X+c.X), int32(r.drawH-v.Y-c.Y-c.H), int32(c.W), int32(c.H))
}

// SetRenderTarget redirects drawing into a target-access texture, or
// back to the window backbuffer when t is nil. The target's
// framebuffer comes from the size-keyed pool and is validated for
// completeness before use.
func (r *Renderer) SetRenderTarget(t *gl2d.Texture) error {
	if err := r.activate(); err != nil {
		return err
	}
	if t == nil {
		r.f.BindFramebuffer(driver.Framebuffer, 0)
		r.target = nil
		r.viewport = gl2d.Rect{X: 0, Y: 0, W: r.drawW, H: r.drawH}
		r.applyViewport(r.viewport)
		return nil
	}
	if t.Access != gl2d.AccessTarget {
		return fmt.Errorf("%w: not a render target", ErrInvalidTexture)
	}
	gt, err := r.glTex(t)
	if err != nil {
		return err
	}

	fbo := r.fbos.acquire(r.f, t.W, t.H)
	r.f.BindFramebuffer(driver.Framebuffer, fbo)
	r.f.FramebufferTexture2D(driver.Framebuffer, driver.ColorAttachment0,
		gt.target, gt.id, 0)
	if st := r.f.CheckFramebufferStatus(driver.Framebuffer); st != driver.FramebufferComplete {
		r.f.BindFramebuffer(driver.Framebuffer, 0)
		return fmt.Errorf("%w: status %#x", ErrTargetIncomplete, uint32(st))
	}

	r.target = t
	r.viewport = gl2d.Rect{X: 0, Y: 0, W: t.W, H: t.H}
	r.applyViewport(r.viewport)
	return nil
}

// RenderTarget returns the bound target texture, or nil when drawing
// goes to the window backbuffer.
func (r *Renderer) RenderTarget() *gl2d.Texture { return r.target }

// Present swaps the window backbuffer.
func (r *Renderer) Present() error {
	if err := r.activate(); err != nil {
		return err
	}
	return r.plat.SwapBuffers()
}

// ReadPixels reads back a rect of the current target, converting from
// the packed capture format to the caller's requested format. Reads
// from the backbuffer are row-flipped back to top-down order.
func (r *Renderer) ReadPixels(rect gl2d.Rect, format gl2d.PixelFormat, dst []byte, pitch int) error {
	if err := r.activate(); err != nil {
		return err
	}
	if rect.Empty() {
		return nil
	}

	glY := rect.Y
	if r.target == nil {
		glY = r.drawH - rect.Y - rect.H
	}

	capturePitch := rect.W * 4
	tmp := make([]byte, rect.H*capturePitch)
	r.f.PixelStorei(driver.PackRowLength, 0)
	r.f.ReadPixels(int32(rect.X), int32(glY), int32(rect.W), int32(rect.H),
		driver.BGRA, driver.UnsignedInt8888Rev, tmp)

	if r.target == nil {
		flipRows(tmp, rect.H, capturePitch)
	}
	return pixels.Convert(rect.W, rect.H, gl2d.FormatARGB8888, tmp, capturePitch,
		format, dst, pitch)
}

func flipRows(buf []byte, h, pitch int) {
	tmp := make([]byte, pitch)
	for y := 0; y < h/2; y++ {
		top := buf[y*pitch : (y+1)*pitch]
		bot := buf[(h-1-y)*pitch : (h-y)*pitch]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// SupportsBlendMode reports whether a composed blend mode can be
// expressed with the fixed-function blend entry points. The device
// applies one equation to both color and alpha, so modes mixing
// operations are rejected.
func (r *Renderer) SupportsBlendMode(mode gl2d.BlendMode) bool {
	if mode == gl2d.BlendNone {
		return true
	}
	if mode == gl2d.BlendInvalid {
		return false
	}
	if _, ok := glFactor(mode.SrcColorFactor()); !ok {
		return false
	}
	if _, ok := glFactor(mode.DstColorFactor()); !ok {
		return false
	}
	if _, ok := glFactor(mode.SrcAlphaFactor()); !ok {
		return false
	}
	if _, ok := glFactor(mode.DstAlphaFactor()); !ok {
		return false
	}
	if _, ok := glEquation(mode.ColorOperation()); !ok {
		return false
	}
	return mode.ColorOperation() == mode.AlphaOperation()
}

// MaxTextureSize returns the device texture size limit for the active
// sampling tier.
func (r *Renderer) MaxTextureSize() int { return r.maxTex }

// BindNative binds a texture's GL objects for callers mixing raw GL
// calls with the renderer, returning the sampling extent so their
// texture coordinates land on the stored content. UnbindNative undoes
// the binding.
func (r *Renderer) BindNative(t *gl2d.Texture) (texw, texh float32, err error) {
	if err := r.activate(); err != nil {
		return 0, 0, err
	}
	gt, err := r.glTex(t)
	if err != nil {
		return 0, 0, err
	}
	r.bindTexturePlanes(gt)
	r.f.Enable(gt.target)
	return gt.texW, gt.texH, nil
}

// UnbindNative disables sampling of a texture bound with BindNative.
func (r *Renderer) UnbindNative(t *gl2d.Texture) error {
	if err := r.activate(); err != nil {
		return err
	}
	gt, err := r.glTex(t)
	if err != nil {
		return err
	}
	r.f.BindTexture(gt.target, 0)
	r.f.Disable(gt.target)
	return nil
}

// Destroy releases every texture the renderer created, the framebuffer
// pool and the error sink (restoring any chained debug callback). The
// context and window stay with their owners.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	if err := r.activate(); err != nil {
		gl2d.Logger().Warn("opengl: destroy without context", "err", err)
	}
	for t := range r.textures {
		r.DestroyTexture(t)
	}
	r.fbos.releaseAll(r.f)
	r.sink.close()
	r.destroyed = true
	gl2d.Logger().Info("opengl: renderer destroyed")
}

// glTex unwraps the backend state of a texture owned by this renderer.
func (r *Renderer) glTex(t *gl2d.Texture) (*glTexture, error) {
	if t == nil || t.Backend == nil {
		return nil, ErrInvalidTexture
	}
	gt, ok := t.Backend.(*glTexture)
	if !ok {
		return nil, ErrInvalidTexture
	}
	return gt, nil
}

// glFactor maps a blend factor to its GL constant.
func glFactor(f gl2d.BlendFactor) (driver.Enum, bool) {
	switch f {
	case gl2d.FactorZero:
		return driver.Zero, true
	case gl2d.FactorOne:
		return driver.One, true
	case gl2d.FactorSrcColor:
		return driver.SrcColor, true
	case gl2d.FactorOneMinusSrcColor:
		return driver.OneMinusSrcColor, true
	case gl2d.FactorSrcAlpha:
		return driver.SrcAlpha, true
	case gl2d.FactorOneMinusSrcAlpha:
		return driver.OneMinusSrcAlpha, true
	case gl2d.FactorDstColor:
		return driver.DstColor, true
	case gl2d.FactorOneMinusDstColor:
		return driver.OneMinusDstColor, true
	case gl2d.FactorDstAlpha:
		return driver.DstAlpha, true
	case gl2d.FactorOneMinusDstAlpha:
		return driver.OneMinusDstAlpha, true
	default:
		return 0, false
	}
}

// glEquation maps a blend operation to its GL constant.
func glEquation(op gl2d.BlendOperation) (driver.Enum, bool) {
	switch op {
	case gl2d.OpAdd:
		return driver.FuncAdd, true
	case gl2d.OpSubtract:
		return driver.FuncSubtract, true
	case gl2d.OpRevSubtract:
		return driver.FuncReverseSubtract, true
	default:
		return 0, false
	}
}
