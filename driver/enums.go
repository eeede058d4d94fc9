package driver

// GL enumerant values, limited to the subset the backends use.
const (
	// Error codes.
	NoError          Enum = 0
	InvalidEnum      Enum = 0x0500
	InvalidValue     Enum = 0x0501
	InvalidOperation Enum = 0x0502
	StackOverflow    Enum = 0x0503
	StackUnderflow   Enum = 0x0504
	OutOfMemory      Enum = 0x0505
	TableTooLarge    Enum = 0x8031

	// Capabilities.
	Blend            Enum = 0x0BE2
	CullFace         Enum = 0x0B44
	DepthTest        Enum = 0x0B71
	ScissorTest      Enum = 0x0C11
	Texture2D        Enum = 0x0DE1
	TextureRectangle Enum = 0x84F5

	// Clear masks.
	ColorBufferBit uint32 = 0x4000

	// Blend factors.
	Zero             Enum = 0
	One              Enum = 1
	SrcColor         Enum = 0x0300
	OneMinusSrcColor Enum = 0x0301
	SrcAlpha         Enum = 0x0302
	OneMinusSrcAlpha Enum = 0x0303
	DstAlpha         Enum = 0x0304
	OneMinusDstAlpha Enum = 0x0305
	DstColor         Enum = 0x0306
	OneMinusDstColor Enum = 0x0307

	// Blend equations.
	FuncAdd             Enum = 0x8006
	FuncSubtract        Enum = 0x800A
	FuncReverseSubtract Enum = 0x800B

	// Matrix modes.
	ModelView  Enum = 0x1700
	Projection Enum = 0x1701

	// Primitives.
	Points        Enum = 0x0000
	Lines         Enum = 0x0001
	LineLoop      Enum = 0x0002
	LineStrip     Enum = 0x0003
	TriangleStrip Enum = 0x0005

	// Texture parameters.
	TextureMagFilter Enum = 0x2800
	TextureMinFilter Enum = 0x2801
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	Nearest          Enum = 0x2600
	Linear           Enum = 0x2601
	ClampToEdge      Enum = 0x812F

	// Pixel transfer formats and types.
	UnsignedByte        Enum = 0x1401
	Luminance           Enum = 0x1909
	LuminanceAlpha      Enum = 0x190A
	BGRA                Enum = 0x80E1
	RGB8                Enum = 0x8051
	RGBA8               Enum = 0x8058
	UnsignedInt8888Rev  Enum = 0x8367
	YCbCr422Apple       Enum = 0x85B9
	UnsignedShort88Rev  Enum = 0x85BA
	UnpackRowLength     Enum = 0x0CF2
	UnpackAlignment     Enum = 0x0CF5
	PackRowLength       Enum = 0x0D02
	PackAlignment       Enum = 0x0D05

	// Texture units.
	Texture0 Enum = 0x84C0
	Texture1 Enum = 0x84C1
	Texture2 Enum = 0x84C2

	// Framebuffer objects.
	Framebuffer         Enum = 0x8D40
	ColorAttachment0    Enum = 0x8CE0
	FramebufferComplete Enum = 0x8CD5

	// Integer queries.
	MaxTextureSize          Enum = 0x0D33
	MaxRectangleTextureSize Enum = 0x84F8
	MaxTextureUnits         Enum = 0x84E2

	// Debug output (ARB_debug_output).
	DebugTypeError Enum = 0x824C
)
