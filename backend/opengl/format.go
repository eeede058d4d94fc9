package opengl

import (
	"fmt"

	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/driver"
)

// glFormat is the GL storage/transfer triple for a pixel format's
// primary plane.
type glFormat struct {
	internal int32
	format   driver.Enum
	typ      driver.Enum
}

// translateFormat maps a pixel format to its GL triple. The supported
// set is fixed: one packed 32-bit layout, the planar and semi-planar
// YUV formats, and packed 4:2:2 where the driver can sample it (Apple
// exposes it through GL_APPLE_ycbcr_422; everywhere else it fails).
func translateFormat(f gl2d.PixelFormat) (glFormat, error) {
	switch f {
	case gl2d.FormatARGB8888:
		return glFormat{
			internal: int32(driver.RGBA8),
			format:   driver.BGRA,
			typ:      driver.UnsignedInt8888Rev,
		}, nil
	case gl2d.FormatYV12, gl2d.FormatIYUV, gl2d.FormatNV12, gl2d.FormatNV21:
		return glFormat{
			internal: int32(driver.Luminance),
			format:   driver.Luminance,
			typ:      driver.UnsignedByte,
		}, nil
	case gl2d.FormatUYVY:
		return glFormat{
			internal: int32(driver.RGB8),
			format:   driver.YCbCr422Apple,
			typ:      driver.UnsignedShort88Rev,
		}, nil
	default:
		return glFormat{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// chromaFormat is the triple for the second (and third) plane of the
// YUV formats: single-channel for the planar pair, two interleaved
// channels for the semi-planar pair.
func chromaFormat(f gl2d.PixelFormat) glFormat {
	if f.SemiPlanar() {
		return glFormat{
			internal: int32(driver.LuminanceAlpha),
			format:   driver.LuminanceAlpha,
			typ:      driver.UnsignedByte,
		}
	}
	return glFormat{
		internal: int32(driver.Luminance),
		format:   driver.Luminance,
		typ:      driver.UnsignedByte,
	}
}
