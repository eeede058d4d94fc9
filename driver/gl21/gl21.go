// Package gl21 implements driver.Funcs on top of the go-gl OpenGL 2.1
// binding. A context must be current on the calling thread before
// Open is called, and every later call must happen on that thread.
package gl21

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/gogpu/gl2d/driver"
)

// Package errors.
var (
	// ErrInitFailed is returned when the GL function loader fails.
	ErrInitFailed = errors.New("gl21: failed to load OpenGL functions")

	// ErrShaderUnavailable is returned by SelectShader when the shader
	// set could not be compiled on this context.
	ErrShaderUnavailable = errors.New("gl21: shaders unavailable")
)

// Driver is the go-gl implementation of driver.Funcs.
type Driver struct {
	programs [driver.NumShaderKinds]uint32
	compiled [driver.NumShaderKinds]bool

	shadersOK  bool
	debugOK    bool
	extensions map[string]bool

	debugFn driver.DebugProc
}

// Open loads the GL function pointers from the current context and
// probes the extension string. It fails if no context is current.
func Open() (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitFailed, err)
	}

	d := &Driver{extensions: make(map[string]bool)}
	if ext := gl.GetString(gl.EXTENSIONS); ext != nil {
		for _, name := range strings.Fields(gl.GoStr(ext)) {
			d.extensions[name] = true
		}
	}
	d.debugOK = d.extensions["GL_ARB_debug_output"]
	d.shadersOK = d.probeShaders()
	return d, nil
}

// Extension reports whether the context advertises the named
// extension.
func (d *Driver) Extension(name string) bool { return d.extensions[name] }

// probeShaders compiles the solid shader once to find out whether the
// context accepts the program set at all.
func (d *Driver) probeShaders() bool {
	_, err := d.program(driver.ShaderSolid)
	return err == nil
}

func (*Driver) GetError() driver.Enum { return driver.Enum(gl.GetError()) }

func (*Driver) GetInteger(pname driver.Enum) int32 {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return v
}

func (d *Driver) DebugCallback() driver.DebugProc { return d.debugFn }

func (d *Driver) SetDebugCallback(fn driver.DebugProc) bool {
	if !d.debugOK {
		return false
	}
	d.debugFn = fn
	if fn == nil {
		gl.DebugMessageCallbackARB(nil, nil)
		return true
	}
	gl.DebugMessageCallbackARB(func(source, gltype, id, severity uint32, _ int32, message string, _ unsafe.Pointer) {
		fn(driver.Enum(source), driver.Enum(gltype), driver.Enum(id), driver.Enum(severity), message)
	}, nil)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS_ARB)
	return true
}

func (*Driver) Enable(cap driver.Enum)  { gl.Enable(uint32(cap)) }
func (*Driver) Disable(cap driver.Enum) { gl.Disable(uint32(cap)) }

func (*Driver) Viewport(x, y, w, h int32) { gl.Viewport(x, y, w, h) }
func (*Driver) Scissor(x, y, w, h int32)  { gl.Scissor(x, y, w, h) }

func (*Driver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (*Driver) Clear(mask uint32)             { gl.Clear(mask) }
func (*Driver) Color4f(r, g, b, a float32)    { gl.Color4f(r, g, b, a) }

func (*Driver) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha driver.Enum) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

func (*Driver) BlendEquation(mode driver.Enum) { gl.BlendEquation(uint32(mode)) }

func (*Driver) MatrixMode(mode driver.Enum) { gl.MatrixMode(uint32(mode)) }
func (*Driver) LoadIdentity()               { gl.LoadIdentity() }

func (*Driver) Ortho(left, right, bottom, top, near, far float64) {
	gl.Ortho(left, right, bottom, top, near, far)
}

func (*Driver) PushMatrix()                { gl.PushMatrix() }
func (*Driver) PopMatrix()                 { gl.PopMatrix() }
func (*Driver) Translatef(x, y, z float32) { gl.Translatef(x, y, z) }
func (*Driver) Rotated(angle, x, y, z float64) {
	gl.Rotated(angle, x, y, z)
}

func (*Driver) Begin(prim driver.Enum)    { gl.Begin(uint32(prim)) }
func (*Driver) End()                      { gl.End() }
func (*Driver) Vertex2f(x, y float32)     { gl.Vertex2f(x, y) }
func (*Driver) TexCoord2f(u, v float32)   { gl.TexCoord2f(u, v) }
func (*Driver) Rectf(x1, y1, x2, y2 float32) {
	gl.Rectf(x1, y1, x2, y2)
}

func (*Driver) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (*Driver) DeleteTexture(id uint32) { gl.DeleteTextures(1, &id) }

func (*Driver) BindTexture(target driver.Enum, id uint32) {
	gl.BindTexture(uint32(target), id)
}

func (*Driver) TexParameteri(target, pname driver.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (*Driver) TexImage2D(target driver.Enum, internalFormat, w, h int32, format, typ driver.Enum, pixels []byte) {
	var ptr unsafe.Pointer
	if pixels != nil {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(uint32(target), 0, internalFormat, w, h, 0, uint32(format), uint32(typ), ptr)
}

func (*Driver) TexSubImage2D(target driver.Enum, x, y, w, h int32, format, typ driver.Enum, pixels []byte) {
	gl.TexSubImage2D(uint32(target), 0, x, y, w, h, uint32(format), uint32(typ), gl.Ptr(pixels))
}

func (*Driver) PixelStorei(pname driver.Enum, param int32) {
	gl.PixelStorei(uint32(pname), param)
}

func (*Driver) ActiveTexture(unit driver.Enum) { gl.ActiveTexture(uint32(unit)) }

func (*Driver) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffersEXT(1, &id)
	return id
}

func (*Driver) DeleteFramebuffer(id uint32) { gl.DeleteFramebuffersEXT(1, &id) }

func (*Driver) BindFramebuffer(target driver.Enum, id uint32) {
	gl.BindFramebufferEXT(uint32(target), id)
}

func (*Driver) FramebufferTexture2D(target, attachment, texTarget driver.Enum, texture uint32, level int32) {
	gl.FramebufferTexture2DEXT(uint32(target), uint32(attachment), uint32(texTarget), texture, level)
}

func (*Driver) CheckFramebufferStatus(target driver.Enum) driver.Enum {
	return driver.Enum(gl.CheckFramebufferStatusEXT(uint32(target)))
}

func (*Driver) ReadPixels(x, y, w, h int32, format, typ driver.Enum, pixels []byte) {
	gl.ReadPixels(x, y, w, h, uint32(format), uint32(typ), gl.Ptr(pixels))
}

func (d *Driver) ShadersSupported() bool { return d.shadersOK }

// SelectShader switches the active program. ShaderInvalid restores
// fixed-function processing.
func (d *Driver) SelectShader(kind driver.ShaderKind) error {
	if kind == driver.ShaderInvalid {
		gl.UseProgram(0)
		return nil
	}
	if !d.shadersOK {
		return ErrShaderUnavailable
	}
	prog, err := d.program(kind)
	if err != nil {
		return err
	}
	gl.UseProgram(prog)
	return nil
}

// program returns the compiled program for kind, compiling and
// caching it on first use.
func (d *Driver) program(kind driver.ShaderKind) (uint32, error) {
	if d.compiled[kind] {
		return d.programs[kind], nil
	}
	prog, err := compileProgram(vertexShaderSource, fragmentSources[kind])
	if err != nil {
		return 0, err
	}
	gl.UseProgram(prog)
	// Samplers are bound to fixed texture units.
	for i, name := range []string{"tex0\x00", "tex1\x00", "tex2\x00"} {
		if loc := gl.GetUniformLocation(prog, gl.Str(name)); loc >= 0 {
			gl.Uniform1i(loc, int32(i))
		}
	}
	gl.UseProgram(0)
	d.programs[kind] = prog
	d.compiled[kind] = true
	return prog, nil
}

// Close deletes every compiled program.
func (d *Driver) Close() {
	for kind, ok := range d.compiled {
		if ok {
			gl.DeleteProgram(d.programs[kind])
			d.compiled[kind] = false
		}
	}
}

func compileProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vsSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fsSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(prog, n, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("gl21: link failed: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func compileShader(stage uint32, src string) (uint32, error) {
	sh := gl.CreateShader(stage)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(sh, n, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("gl21: compile failed: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}
