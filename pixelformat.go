package gl2d

// PixelFormat identifies the in-memory layout of texture pixel data.
//
// The packed format stores four channels per pixel in one plane. The
// planar formats split luma and chroma across two or three planes; see
// Planar and SemiPlanar for which is which.
type PixelFormat uint8

// Supported pixel formats.
const (
	// FormatUnknown is the zero value and never names a real format.
	FormatUnknown PixelFormat = iota

	// FormatARGB8888 is packed 32-bit ARGB, one plane. This is the
	// only packed layout backends sample natively; the other 32-bit
	// layouts below exist for readback conversion.
	FormatARGB8888

	// FormatABGR8888 is packed 32-bit ABGR, one plane.
	FormatABGR8888

	// FormatRGBA8888 is packed 32-bit RGBA, one plane.
	FormatRGBA8888

	// FormatBGRA8888 is packed 32-bit BGRA, one plane.
	FormatBGRA8888

	// FormatYV12 is planar YUV 4:2:0 with the V plane before the U plane.
	FormatYV12

	// FormatIYUV is planar YUV 4:2:0 with the U plane before the V plane.
	FormatIYUV

	// FormatNV12 is semi-planar YUV 4:2:0, chroma interleaved as UV.
	FormatNV12

	// FormatNV21 is semi-planar YUV 4:2:0, chroma interleaved as VU.
	FormatNV21

	// FormatUYVY is packed YUV 4:2:2, supported on one platform family
	// only (the driver reports whether it can sample it natively).
	FormatUYVY
)

var formatNames = [...]string{
	FormatUnknown:  "UNKNOWN",
	FormatARGB8888: "ARGB8888",
	FormatABGR8888: "ABGR8888",
	FormatRGBA8888: "RGBA8888",
	FormatBGRA8888: "BGRA8888",
	FormatYV12:     "YV12",
	FormatIYUV:     "IYUV",
	FormatNV12:     "NV12",
	FormatNV21:     "NV21",
	FormatUYVY:     "UYVY",
}

func (f PixelFormat) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "UNKNOWN"
}

// BytesPerPixel returns the byte cost of one pixel in the primary
// plane. For the planar formats this is the luma plane's cost.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatARGB8888, FormatABGR8888, FormatRGBA8888, FormatBGRA8888:
		return 4
	case FormatYV12, FormatIYUV, FormatNV12, FormatNV21:
		return 1
	case FormatUYVY:
		return 2
	default:
		return 0
	}
}

// Planar reports whether the format carries three separate planes
// (luma plus two chroma planes).
func (f PixelFormat) Planar() bool {
	return f == FormatYV12 || f == FormatIYUV
}

// SemiPlanar reports whether the format carries two planes, with both
// chroma channels interleaved in the second.
func (f PixelFormat) SemiPlanar() bool {
	return f == FormatNV12 || f == FormatNV21
}

// YUVMode selects the matrix used to convert YUV samples to RGB.
type YUVMode uint8

// YUV conversion modes.
const (
	// YUVAuto resolves to a concrete mode per texture resolution; see
	// YUVModeForResolution.
	YUVAuto YUVMode = iota
	YUVJPEG
	YUVBT601
	YUVBT709
)

func (m YUVMode) String() string {
	switch m {
	case YUVAuto:
		return "auto"
	case YUVJPEG:
		return "JPEG"
	case YUVBT601:
		return "BT.601"
	case YUVBT709:
		return "BT.709"
	default:
		return "unknown"
	}
}

// YUVModeForResolution resolves m for a texture of the given size.
// Auto picks BT.601 for SD content (height up to 576 lines) and BT.709
// for anything taller; explicit modes pass through unchanged.
func YUVModeForResolution(m YUVMode, w, h int) YUVMode {
	if m != YUVAuto {
		return m
	}
	if h <= 576 {
		return YUVBT601
	}
	return YUVBT709
}
