package gl2d

// TextureAccess describes how a texture's contents will change over
// its lifetime.
type TextureAccess uint8

// Texture access modes.
const (
	// AccessStatic textures upload rarely via UpdateRegion.
	AccessStatic TextureAccess = iota

	// AccessStreaming textures change frequently and carry a CPU
	// staging buffer for Lock/Unlock.
	AccessStreaming

	// AccessTarget textures can be bound as a render target. Requires
	// framebuffer-object support from the driver.
	AccessTarget
)

// ScaleMode selects the sampling filter used when a texture is drawn
// at a size other than its own.
type ScaleMode uint8

// Scale filter modes.
const (
	ScaleNearest ScaleMode = iota
	ScaleLinear
)

// Texture is a logical drawable surface. The fields describe the
// surface as the caller sees it; Backend holds whatever the rendering
// backend allocates for it (GPU handles, staging memory) and is owned
// by the backend that created the texture.
//
// A Texture is not safe for concurrent use; it belongs to the thread
// that owns the backend.
type Texture struct {
	W, H   int
	Format PixelFormat
	Access TextureAccess
	Scale  ScaleMode

	// YUV is the color-space hint for the planar and semi-planar
	// formats. YUVAuto resolves per resolution at draw time.
	YUV YUVMode

	// Backend is backend-private per-texture state. Nil once the
	// texture has been destroyed.
	Backend any
}
