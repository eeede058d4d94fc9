// Package driver defines the seam between the rendering backends and
// a concrete graphics API. Every GL call the backends make goes
// through the Funcs interface, so a backend can run against the real
// OpenGL binding (driver/gl21) or the software emulation
// (driver/softgl) without knowing which it has.
//
// The enum constants carry the OpenGL numeric values so that a real
// driver can pass them straight through to the API.
package driver

// Enum is a GL enumerant.
type Enum uint32

// DebugProc receives one synchronous debug-output message.
type DebugProc func(source, gltype, id, severity Enum, message string)

// ShaderKind selects one of the backend-level fragment shaders. The
// driver owns compilation and linking; backends only ever select.
type ShaderKind uint8

// Shader kinds. The nine YUV variants pair a plane layout (three-plane
// YUV, semi-planar NV12/NV21) with a conversion matrix (JPEG full
// range, BT.601, BT.709).
const (
	ShaderInvalid ShaderKind = iota
	ShaderSolid
	ShaderRGB
	ShaderYUVJPEG
	ShaderYUVBT601
	ShaderYUVBT709
	ShaderNV12JPEG
	ShaderNV12BT601
	ShaderNV12BT709
	ShaderNV21JPEG
	ShaderNV21BT601
	ShaderNV21BT709

	numShaderKinds = iota
)

// NumShaderKinds is the number of valid shader kinds, counting
// ShaderInvalid.
const NumShaderKinds = int(numShaderKinds)

var shaderNames = [...]string{
	ShaderInvalid:   "invalid",
	ShaderSolid:     "solid",
	ShaderRGB:       "rgb",
	ShaderYUVJPEG:   "yuv-jpeg",
	ShaderYUVBT601:  "yuv-bt601",
	ShaderYUVBT709:  "yuv-bt709",
	ShaderNV12JPEG:  "nv12-jpeg",
	ShaderNV12BT601: "nv12-bt601",
	ShaderNV12BT709: "nv12-bt709",
	ShaderNV21JPEG:  "nv21-jpeg",
	ShaderNV21BT601: "nv21-bt601",
	ShaderNV21BT709: "nv21-bt709",
}

func (k ShaderKind) String() string {
	if int(k) < len(shaderNames) {
		return shaderNames[k]
	}
	return "invalid"
}

// Funcs is the fixed-function GL 2.1 surface the backends draw
// through. Implementations are not safe for concurrent use; like the
// context they wrap, they belong to one thread.
type Funcs interface {
	// Diagnostics.
	GetError() Enum
	GetInteger(pname Enum) int32

	// DebugCallback returns the currently installed debug callback,
	// nil if none.
	DebugCallback() DebugProc

	// SetDebugCallback installs a synchronous debug-output callback.
	// It reports false when the context has no debug output, in which
	// case callers fall back to polling GetError.
	SetDebugCallback(fn DebugProc) bool

	// Capability toggles and fixed state.
	Enable(cap Enum)
	Disable(cap Enum)
	Viewport(x, y, w, h int32)
	Scissor(x, y, w, h int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Color4f(r, g, b, a float32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BlendEquation(mode Enum)

	// Matrix stack.
	MatrixMode(mode Enum)
	LoadIdentity()
	Ortho(left, right, bottom, top, near, far float64)
	PushMatrix()
	PopMatrix()
	Translatef(x, y, z float32)
	Rotated(angle, x, y, z float64)

	// Immediate-mode geometry.
	Begin(prim Enum)
	End()
	Vertex2f(x, y float32)
	TexCoord2f(u, v float32)
	Rectf(x1, y1, x2, y2 float32)

	// Textures.
	GenTexture() uint32
	DeleteTexture(id uint32)
	BindTexture(target Enum, id uint32)
	TexParameteri(target, pname Enum, param int32)
	TexImage2D(target Enum, internalFormat int32, w, h int32, format, typ Enum, pixels []byte)
	TexSubImage2D(target Enum, x, y, w, h int32, format, typ Enum, pixels []byte)
	PixelStorei(pname Enum, param int32)
	ActiveTexture(unit Enum)

	// Framebuffer objects.
	GenFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(target Enum, id uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, texture uint32, level int32)
	CheckFramebufferStatus(target Enum) Enum

	// Readback.
	ReadPixels(x, y, w, h int32, format, typ Enum, pixels []byte)

	// Shader selection. ShadersSupported reports whether the driver
	// compiled (or can emulate) the backend shader set; SelectShader
	// engages one of them for subsequent draws.
	ShadersSupported() bool
	SelectShader(kind ShaderKind) error
}

// ErrorName returns the symbolic name of a GL error code, "UNKNOWN"
// for anything unrecognized.
func ErrorName(err Enum) string {
	switch err {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case StackOverflow:
		return "GL_STACK_OVERFLOW"
	case StackUnderflow:
		return "GL_STACK_UNDERFLOW"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case TableTooLarge:
		return "GL_TABLE_TOO_LARGE"
	default:
		return "UNKNOWN"
	}
}
