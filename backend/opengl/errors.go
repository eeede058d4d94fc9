package opengl

import (
	"errors"
	"strings"
)

// Renderer errors.
var (
	// ErrUnsupportedFormat is returned when a pixel format is not in
	// the backend's supported set.
	ErrUnsupportedFormat = errors.New("opengl: unsupported pixel format")

	// ErrTargetsUnsupported is returned when a render-target texture
	// is requested without framebuffer-object support.
	ErrTargetsUnsupported = errors.New("opengl: render targets not supported")

	// ErrOutOfMemory is returned when a GPU allocation fails.
	ErrOutOfMemory = errors.New("opengl: out of memory")

	// ErrContextActivation is returned when the owning context cannot
	// be made current on the calling thread.
	ErrContextActivation = errors.New("opengl: context activation failed")

	// ErrTextureTooLarge is returned when a texture dimension exceeds
	// the device limit.
	ErrTextureTooLarge = errors.New("opengl: texture dimensions out of range")

	// ErrInvalidTexture is returned for operations on a destroyed
	// texture or one owned by another renderer.
	ErrInvalidTexture = errors.New("opengl: invalid texture")

	// ErrNotStreaming is returned when Lock is called on a texture
	// without streaming access.
	ErrNotStreaming = errors.New("opengl: texture is not streaming")

	// ErrTargetIncomplete is returned when a render target cannot be
	// attached to a complete framebuffer.
	ErrTargetIncomplete = errors.New("opengl: render target framebuffer incomplete")

	// ErrUnsupportedBlendMode is returned when a composed blend mode
	// cannot be expressed by the device.
	ErrUnsupportedBlendMode = errors.New("opengl: unsupported blend mode")
)

// DriverError aggregates the GL errors collected during one operation
// or queue traversal. It carries symbolic names where the codes are
// known.
type DriverError struct {
	Messages []string
}

func (e *DriverError) Error() string {
	return "opengl: driver error: " + strings.Join(e.Messages, "; ")
}
