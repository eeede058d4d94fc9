package gl2d

// Renderer is the interface a rendering backend implements. A renderer
// owns GPU-side resources (textures, render targets) and turns command
// queues into draw calls.
//
// Queue* methods are the compile phase: they validate arguments, bake
// vertex data into the queue's arena and append commands. RunQueue is
// the execute phase: it walks the queue once and issues the minimal
// set of state changes and draws. The two phases never interleave for
// the same queue.
//
// A renderer and everything it created must be used from the thread
// its context is current on.
type Renderer interface {
	// CreateTexture allocates a texture. Width and height must be
	// positive and within MaxTextureSize.
	CreateTexture(w, h int, format PixelFormat, access TextureAccess) (*Texture, error)

	// UpdateTexture replaces the pixels of a rect of the texture.
	// pitch is the byte stride of rows in pixels. For planar and
	// semi-planar formats the buffer holds all planes contiguously.
	UpdateTexture(t *Texture, rect Rect, pixels []byte, pitch int) error

	// LockTexture returns a mapped staging buffer for a rect of a
	// streaming texture. The contents are undefined until written.
	// UnlockTexture uploads the staged pixels.
	LockTexture(t *Texture, rect Rect) (pixels []byte, pitch int, err error)
	UnlockTexture(t *Texture)

	// DestroyTexture releases the texture and any render-target
	// framebuffer state referencing it.
	DestroyTexture(t *Texture)

	// SetRenderTarget redirects drawing into a target-access texture,
	// or back to the window backbuffer when t is nil.
	SetRenderTarget(t *Texture) error

	// RenderTarget returns the bound target, or nil for the backbuffer.
	RenderTarget() *Texture

	// Compile-phase operations.
	QueueSetViewport(q *Queue, r Rect) error
	QueueSetClipRect(q *Queue, r Rect, enabled bool) error
	QueueSetDrawColor(q *Queue, c Color, blend BlendMode) error
	QueueClear(q *Queue, c Color) error
	QueueDrawPoints(q *Queue, pts []FPoint, c Color, blend BlendMode) error
	QueueDrawLines(q *Queue, pts []FPoint, c Color, blend BlendMode) error
	QueueFillRects(q *Queue, rects []FRect, c Color, blend BlendMode) error
	QueueCopy(q *Queue, t *Texture, src FRect, dst FRect, c Color, blend BlendMode) error
	QueueCopyEx(q *Queue, t *Texture, src FRect, dst FRect, angle float64, center FPoint, flipH, flipV bool, c Color, blend BlendMode) error

	// RunQueue executes a compiled queue against the current target.
	RunQueue(q *Queue) error

	// ReadPixels reads back a rect of the current target into dst,
	// converted to the requested packed format.
	ReadPixels(rect Rect, format PixelFormat, dst []byte, pitch int) error

	// Present swaps the window backbuffer.
	Present() error

	// SupportsBlendMode reports whether the composed blend mode can be
	// expressed by the device.
	SupportsBlendMode(mode BlendMode) bool

	// MaxTextureSize returns the device texture size limit.
	MaxTextureSize() int

	// Destroy releases all renderer resources. The renderer must not
	// be used afterwards.
	Destroy()
}
