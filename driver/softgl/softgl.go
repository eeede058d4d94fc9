// Package softgl is a software emulation of the driver.Funcs surface
// the rendering backends use. It exists for two reasons: it makes the
// backends usable on machines without OpenGL, and it makes their
// behavior observable in tests — every state-change call is counted,
// GL errors can be injected, and the framebuffer can be inspected
// directly.
//
// The emulation follows GL conventions: window coordinates have their
// origin in the bottom-left corner, buffers store rows bottom-up from
// the point of view of ReadPixels, and texture row 0 is both the
// first uploaded row and the bottom of a framebuffer attachment.
package softgl

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gl2d/driver"
)

// texture is one GPU texture object's emulated storage.
type texture struct {
	target driver.Enum // set at first bind
	w, h   int32
	bpp    int // internal bytes per texel: 1, 2 or 4
	pix    []byte

	minFilter int32
	magFilter int32
}

// framebuffer is an emulated framebuffer object.
type framebuffer struct {
	attachment uint32 // texture id, 0 when nothing attached
}

// unitState is the per-texture-unit slice of state.
type unitState struct {
	bound2D    uint32
	boundRect  uint32
	enabled2D  bool
	enabledRct bool
}

// Driver implements driver.Funcs in software.
//
// Beyond the interface, Driver exposes test instrumentation:
// Calls/ResetCalls for state-change counting, InjectError for error
// paths, SetDebugSupported to pick the error-sink strategy under
// test, and Backbuffer/TexturePixels for output inspection.
type Driver struct {
	backW, backH int32
	back         []byte // RGBA, row 0 = bottom

	textures map[uint32]*texture
	nextTex  uint32
	fbos     map[uint32]*framebuffer
	nextFBO  uint32
	boundFBO uint32

	viewport   [4]int32
	scissor    [4]int32
	scissorOn  bool
	blendOn    bool
	clearColor [4]float32
	color      [4]float32

	srcRGB, dstRGB     driver.Enum
	srcAlpha, dstAlpha driver.Enum
	blendEq            driver.Enum

	matrixMode driver.Enum
	projStack  []mgl32.Mat4
	mvStack    []mgl32.Mat4

	activeUnit int
	units      [3]unitState

	unpackRowLength int32
	packRowLength   int32

	shader driver.ShaderKind

	// immediate-mode assembly
	inBegin  bool
	prim     driver.Enum
	verts    []vertex
	curCoord [2]float32

	errq           []driver.Enum
	debugSupported bool
	debugFn        driver.DebugProc

	calls map[string]int
}

// New creates a software driver with a backbuffer of the given size.
func New(w, h int) *Driver {
	d := &Driver{
		backW:    int32(w),
		backH:    int32(h),
		back:     make([]byte, w*h*4),
		textures: make(map[uint32]*texture),
		fbos:     make(map[uint32]*framebuffer),
		nextTex:  1,
		nextFBO:  1,
		calls:    make(map[string]int),

		matrixMode: driver.ModelView,
		projStack:  []mgl32.Mat4{mgl32.Ident4()},
		mvStack:    []mgl32.Mat4{mgl32.Ident4()},

		srcRGB: driver.One, dstRGB: driver.Zero,
		srcAlpha: driver.One, dstAlpha: driver.Zero,
		blendEq: driver.FuncAdd,
	}
	d.color = [4]float32{1, 1, 1, 1}
	d.viewport = [4]int32{0, 0, int32(w), int32(h)}
	return d
}

// count records one call against the named state-change counter.
func (d *Driver) count(name string) { d.calls[name]++ }

// Calls returns how often the named entry point has been invoked
// since the last ResetCalls.
func (d *Driver) Calls(name string) int { return d.calls[name] }

// ResetCalls clears all call counters.
func (d *Driver) ResetCalls() { clear(d.calls) }

// InjectError queues a GL error, or reports it through the debug
// callback when one is installed (the synchronous debug-output path).
func (d *Driver) InjectError(code driver.Enum) {
	if d.debugFn != nil {
		d.debugFn(0, driver.DebugTypeError, 0, 0, driver.ErrorName(code))
		return
	}
	d.errq = append(d.errq, code)
}

// SetDebugSupported controls whether SetDebugCallback succeeds,
// selecting which error-sink strategy a backend under test exercises.
func (d *Driver) SetDebugSupported(ok bool) { d.debugSupported = ok }

// Backbuffer returns the window backbuffer as an image, flipped to
// top-down row order.
func (d *Driver) Backbuffer() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(d.backW), int(d.backH)))
	for y := 0; y < int(d.backH); y++ {
		src := d.back[(int(d.backH)-1-y)*int(d.backW)*4:]
		copy(img.Pix[y*img.Stride:y*img.Stride+int(d.backW)*4], src)
	}
	return img
}

// TexturePixels returns the raw internal storage of a texture, rows
// in upload order. The slice aliases driver memory; treat as
// read-only.
func (d *Driver) TexturePixels(id uint32) []byte {
	if t := d.textures[id]; t != nil {
		return t.pix
	}
	return nil
}

// TextureCount returns the number of live texture objects.
func (d *Driver) TextureCount() int { return len(d.textures) }

// FramebufferCount returns the number of live framebuffer objects.
func (d *Driver) FramebufferCount() int { return len(d.fbos) }

func (d *Driver) GetError() driver.Enum {
	if len(d.errq) == 0 {
		return driver.NoError
	}
	e := d.errq[0]
	d.errq = d.errq[1:]
	return e
}

func (d *Driver) GetInteger(pname driver.Enum) int32 {
	switch pname {
	case driver.MaxTextureSize, driver.MaxRectangleTextureSize:
		return 16384
	case driver.MaxTextureUnits:
		return 8
	default:
		return 0
	}
}

func (d *Driver) DebugCallback() driver.DebugProc { return d.debugFn }

func (d *Driver) SetDebugCallback(fn driver.DebugProc) bool {
	if !d.debugSupported {
		return false
	}
	d.debugFn = fn
	return true
}

func (d *Driver) Enable(cap driver.Enum) {
	d.count("Enable")
	d.setCap(cap, true)
}

func (d *Driver) Disable(cap driver.Enum) {
	d.count("Disable")
	d.setCap(cap, false)
}

func (d *Driver) setCap(cap driver.Enum, on bool) {
	switch cap {
	case driver.Blend:
		d.blendOn = on
	case driver.ScissorTest:
		d.scissorOn = on
	case driver.Texture2D:
		d.units[d.activeUnit].enabled2D = on
	case driver.TextureRectangle:
		d.units[d.activeUnit].enabledRct = on
	}
	// DepthTest, CullFace and friends have no effect in a 2D emulation.
}

func (d *Driver) Viewport(x, y, w, h int32) {
	d.count("Viewport")
	d.viewport = [4]int32{x, y, w, h}
}

func (d *Driver) Scissor(x, y, w, h int32) {
	d.count("Scissor")
	d.scissor = [4]int32{x, y, w, h}
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.count("ClearColor")
	d.clearColor = [4]float32{r, g, b, a}
}

// Clear fills the color buffer. Like GL, it honors the scissor test.
func (d *Driver) Clear(mask uint32) {
	d.count("Clear")
	if mask&driver.ColorBufferBit == 0 {
		return
	}
	buf, bw, bh := d.target()
	px := [4]byte{
		floatByte(d.clearColor[0]), floatByte(d.clearColor[1]),
		floatByte(d.clearColor[2]), floatByte(d.clearColor[3]),
	}
	for y := int32(0); y < bh; y++ {
		for x := int32(0); x < bw; x++ {
			if d.scissorOn && !inRect(x, y, d.scissor) {
				continue
			}
			copy(buf[(y*bw+x)*4:], px[:])
		}
	}
}

func (d *Driver) Color4f(r, g, b, a float32) {
	d.count("Color4f")
	d.color = [4]float32{r, g, b, a}
}

func (d *Driver) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha driver.Enum) {
	d.count("BlendFuncSeparate")
	d.srcRGB, d.dstRGB = srcRGB, dstRGB
	d.srcAlpha, d.dstAlpha = srcAlpha, dstAlpha
}

func (d *Driver) BlendEquation(mode driver.Enum) {
	d.count("BlendEquation")
	d.blendEq = mode
}

func (d *Driver) MatrixMode(mode driver.Enum) { d.matrixMode = mode }

func (d *Driver) stack() *[]mgl32.Mat4 {
	if d.matrixMode == driver.Projection {
		return &d.projStack
	}
	return &d.mvStack
}

func (d *Driver) top() *mgl32.Mat4 {
	s := *d.stack()
	return &s[len(s)-1]
}

func (d *Driver) LoadIdentity() { *d.top() = mgl32.Ident4() }

func (d *Driver) Ortho(left, right, bottom, top, near, far float64) {
	d.count("Ortho")
	m := d.top()
	*m = m.Mul4(mgl32.Ortho(float32(left), float32(right),
		float32(bottom), float32(top), float32(near), float32(far)))
}

func (d *Driver) PushMatrix() {
	s := d.stack()
	*s = append(*s, (*s)[len(*s)-1])
}

func (d *Driver) PopMatrix() {
	s := d.stack()
	if len(*s) <= 1 {
		d.errq = append(d.errq, driver.StackUnderflow)
		return
	}
	*s = (*s)[:len(*s)-1]
}

func (d *Driver) Translatef(x, y, z float32) {
	m := d.top()
	*m = m.Mul4(mgl32.Translate3D(x, y, z))
}

func (d *Driver) Rotated(angle, x, y, z float64) {
	// Rotation about z is all the 2D pipeline uses.
	m := d.top()
	*m = m.Mul4(mgl32.HomogRotate3DZ(float32(angle * deg2rad)))
}

const deg2rad = 3.14159265358979323846 / 180

func (d *Driver) GenTexture() uint32 {
	id := d.nextTex
	d.nextTex++
	d.textures[id] = &texture{minFilter: int32(driver.Linear), magFilter: int32(driver.Linear)}
	return id
}

func (d *Driver) DeleteTexture(id uint32) {
	delete(d.textures, id)
	for i := range d.units {
		if d.units[i].bound2D == id {
			d.units[i].bound2D = 0
		}
		if d.units[i].boundRect == id {
			d.units[i].boundRect = 0
		}
	}
}

func (d *Driver) BindTexture(target driver.Enum, id uint32) {
	d.count("BindTexture")
	if t := d.textures[id]; t != nil && t.target == 0 {
		t.target = target
	}
	if target == driver.TextureRectangle {
		d.units[d.activeUnit].boundRect = id
	} else {
		d.units[d.activeUnit].bound2D = id
	}
}

func (d *Driver) boundTexture(target driver.Enum, unit int) *texture {
	if target == driver.TextureRectangle {
		return d.textures[d.units[unit].boundRect]
	}
	return d.textures[d.units[unit].bound2D]
}

func (d *Driver) activeTexture(target driver.Enum) *texture {
	return d.boundTexture(target, d.activeUnit)
}

func (d *Driver) TexParameteri(target, pname driver.Enum, param int32) {
	t := d.activeTexture(target)
	if t == nil {
		d.errq = append(d.errq, driver.InvalidOperation)
		return
	}
	switch pname {
	case driver.TextureMinFilter:
		t.minFilter = param
	case driver.TextureMagFilter:
		t.magFilter = param
	}
	// Wrap modes are implicitly clamp-to-edge in the sampler.
}

// internalBPP maps an internal format to emulated bytes per texel.
func internalBPP(internalFormat int32) int {
	switch driver.Enum(internalFormat) {
	case driver.Luminance:
		return 1
	case driver.LuminanceAlpha:
		return 2
	default:
		return 4 // RGBA8, RGB8 (alpha forced opaque on upload)
	}
}

// transferBPP is the byte cost of one pixel in transfer (client)
// memory for a format/type pair.
func transferBPP(format, typ driver.Enum) int {
	switch format {
	case driver.Luminance:
		return 1
	case driver.LuminanceAlpha:
		return 2
	case driver.YCbCr422Apple:
		return 2
	default:
		return 4
	}
}

func (d *Driver) TexImage2D(target driver.Enum, internalFormat, w, h int32, format, typ driver.Enum, pixels []byte) {
	d.count("TexImage2D")
	t := d.activeTexture(target)
	if t == nil {
		d.errq = append(d.errq, driver.InvalidOperation)
		return
	}
	t.w, t.h = w, h
	t.bpp = internalBPP(internalFormat)
	t.pix = make([]byte, int(w)*int(h)*t.bpp)
	if pixels != nil {
		d.storeTexels(t, 0, 0, w, h, format, typ, pixels)
	}
}

func (d *Driver) TexSubImage2D(target driver.Enum, x, y, w, h int32, format, typ driver.Enum, pixels []byte) {
	d.count("TexSubImage2D")
	t := d.activeTexture(target)
	if t == nil || t.pix == nil {
		d.errq = append(d.errq, driver.InvalidOperation)
		return
	}
	if x < 0 || y < 0 || x+w > t.w || y+h > t.h {
		d.errq = append(d.errq, driver.InvalidValue)
		return
	}
	d.storeTexels(t, x, y, w, h, format, typ, pixels)
}

// storeTexels copies client pixels into texture storage, honoring
// UNPACK_ROW_LENGTH and converting the packed BGRA transfer layout to
// the internal RGBA order.
func (d *Driver) storeTexels(t *texture, x, y, w, h int32, format, typ driver.Enum, pixels []byte) {
	srcBPP := transferBPP(format, typ)
	srcPitch := int(w) * srcBPP
	if d.unpackRowLength > 0 {
		srcPitch = int(d.unpackRowLength) * srcBPP
	}
	for row := int32(0); row < h; row++ {
		src := pixels[int(row)*srcPitch:]
		dst := t.pix[((y+row)*t.w+x)*int32(t.bpp):]
		for col := int32(0); col < w; col++ {
			s := src[int(col)*srcBPP:]
			o := col * int32(t.bpp)
			switch {
			case format == driver.BGRA && typ == driver.UnsignedInt8888Rev:
				// Little-endian 8888REV BGRA: bytes B,G,R,A.
				dst[o], dst[o+1], dst[o+2], dst[o+3] = s[2], s[1], s[0], s[3]
			case format == driver.Luminance:
				dst[o] = s[0]
			case format == driver.LuminanceAlpha:
				dst[o], dst[o+1] = s[0], s[1]
			default:
				copy(dst[o:o+int32(t.bpp)], s[:t.bpp])
			}
		}
	}
}

func (d *Driver) PixelStorei(pname driver.Enum, param int32) {
	switch pname {
	case driver.UnpackRowLength:
		d.unpackRowLength = param
	case driver.PackRowLength:
		d.packRowLength = param
	}
	// Alignment is always treated as 1.
}

func (d *Driver) ActiveTexture(unit driver.Enum) {
	d.count("ActiveTexture")
	i := int(unit - driver.Texture0)
	if i >= 0 && i < len(d.units) {
		d.activeUnit = i
	}
}

func (d *Driver) GenFramebuffer() uint32 {
	d.count("GenFramebuffer")
	id := d.nextFBO
	d.nextFBO++
	d.fbos[id] = &framebuffer{}
	return id
}

func (d *Driver) DeleteFramebuffer(id uint32) {
	delete(d.fbos, id)
	if d.boundFBO == id {
		d.boundFBO = 0
	}
}

func (d *Driver) BindFramebuffer(target driver.Enum, id uint32) {
	d.count("BindFramebuffer")
	d.boundFBO = id
}

func (d *Driver) FramebufferTexture2D(target, attachment, texTarget driver.Enum, texture uint32, level int32) {
	fbo := d.fbos[d.boundFBO]
	if fbo == nil {
		d.errq = append(d.errq, driver.InvalidOperation)
		return
	}
	fbo.attachment = texture
}

func (d *Driver) CheckFramebufferStatus(target driver.Enum) driver.Enum {
	fbo := d.fbos[d.boundFBO]
	if fbo == nil || fbo.attachment == 0 {
		return driver.InvalidOperation
	}
	if t := d.textures[fbo.attachment]; t == nil || t.bpp != 4 {
		return driver.InvalidOperation
	}
	return driver.FramebufferComplete
}

// target resolves the current render destination: the bound FBO's
// attachment, or the backbuffer.
func (d *Driver) target() (buf []byte, w, h int32) {
	if d.boundFBO != 0 {
		if fbo := d.fbos[d.boundFBO]; fbo != nil {
			if t := d.textures[fbo.attachment]; t != nil {
				return t.pix, t.w, t.h
			}
		}
	}
	return d.back, d.backW, d.backH
}

func (d *Driver) ReadPixels(x, y, w, h int32, format, typ driver.Enum, pixels []byte) {
	d.count("ReadPixels")
	buf, bw, bh := d.target()
	dstBPP := transferBPP(format, typ)
	dstPitch := int(w) * dstBPP
	if d.packRowLength > 0 {
		dstPitch = int(d.packRowLength) * dstBPP
	}
	for row := int32(0); row < h; row++ {
		sy := y + row
		if sy < 0 || sy >= bh {
			continue
		}
		dst := pixels[int(row)*dstPitch:]
		for col := int32(0); col < w; col++ {
			sx := x + col
			if sx < 0 || sx >= bw {
				continue
			}
			s := buf[(sy*bw+sx)*4:]
			o := int(col) * dstBPP
			if format == driver.BGRA && typ == driver.UnsignedInt8888Rev {
				dst[o], dst[o+1], dst[o+2], dst[o+3] = s[2], s[1], s[0], s[3]
			} else {
				copy(dst[o:o+4], s[:4])
			}
		}
	}
}

func (d *Driver) ShadersSupported() bool { return true }

func (d *Driver) SelectShader(kind driver.ShaderKind) error {
	d.count("SelectShader")
	d.shader = kind
	return nil
}

func inRect(x, y int32, r [4]int32) bool {
	return x >= r[0] && x < r[0]+r[2] && y >= r[1] && y < r[1]+r[3]
}

func floatByte(f float32) byte {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	default:
		return byte(f*255 + 0.5)
	}
}
