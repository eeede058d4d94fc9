// Package pixels converts pixel buffers between the packed formats the
// rendering backends read back, and sizes the plane layouts of the
// planar and semi-planar formats.
package pixels

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gl2d"
)

// Conversion errors.
var (
	// ErrUnsupportedConversion is returned for format pairs Convert
	// cannot handle.
	ErrUnsupportedConversion = errors.New("pixels: unsupported conversion")

	// ErrShortBuffer is returned when a buffer is smaller than its
	// pitch and height require.
	ErrShortBuffer = errors.New("pixels: buffer too small")
)

// channel orders for the packed 32-bit formats, as byte indices of
// (B, G, R, A) in little-endian memory.
var packedOrder = map[gl2d.PixelFormat][4]int{
	gl2d.FormatARGB8888: {0, 1, 2, 3},
	gl2d.FormatABGR8888: {2, 1, 0, 3},
	gl2d.FormatRGBA8888: {1, 2, 3, 0},
	gl2d.FormatBGRA8888: {3, 2, 1, 0},
}

// PlanePitch returns the byte pitch of the primary plane for a row of
// w pixels with no padding.
func PlanePitch(format gl2d.PixelFormat, w int) int {
	return w * format.BytesPerPixel()
}

// ChromaDim halves a luma dimension, rounding up so odd sizes keep
// their last chroma sample.
func ChromaDim(d int) int { return (d + 1) / 2 }

// BufferSize returns the total byte size of a full-frame buffer for
// the format: the primary plane at the given pitch, plus the chroma
// planes of the planar and semi-planar formats at half resolution
// (each dimension rounded up).
func BufferSize(format gl2d.PixelFormat, h, pitch int) int {
	size := h * pitch
	if format.Planar() || format.SemiPlanar() {
		size += 2 * ChromaDim(h) * ChromaDim(pitch)
	}
	return size
}

// Convert rewrites a w×h pixel rectangle from one packed format to
// another. Source and destination may use independent pitches. The
// buffers must not overlap.
func Convert(w, h int, srcFormat gl2d.PixelFormat, src []byte, srcPitch int,
	dstFormat gl2d.PixelFormat, dst []byte, dstPitch int) error {
	srcBPP := srcFormat.BytesPerPixel()
	dstBPP := dstFormat.BytesPerPixel()
	if srcBPP == 0 || dstBPP == 0 {
		return fmt.Errorf("%w: %v to %v", ErrUnsupportedConversion, srcFormat, dstFormat)
	}
	if len(src) < (h-1)*srcPitch+w*srcBPP || len(dst) < (h-1)*dstPitch+w*dstBPP {
		return ErrShortBuffer
	}

	if srcFormat == dstFormat {
		for y := 0; y < h; y++ {
			copy(dst[y*dstPitch:y*dstPitch+w*dstBPP], src[y*srcPitch:])
		}
		return nil
	}

	so, sok := packedOrder[srcFormat]
	do, dok := packedOrder[dstFormat]
	if !sok || !dok {
		return fmt.Errorf("%w: %v to %v", ErrUnsupportedConversion, srcFormat, dstFormat)
	}

	for y := 0; y < h; y++ {
		srow := src[y*srcPitch:]
		drow := dst[y*dstPitch:]
		for x := 0; x < w; x++ {
			s := srow[x*4 : x*4+4]
			d := drow[x*4 : x*4+4]
			for c := 0; c < 4; c++ {
				d[do[c]] = s[so[c]]
			}
		}
	}
	return nil
}

// ToImage copies a packed pixel buffer into an *image.RGBA,
// reordering channels as needed. image.RGBA stores bytes R,G,B,A,
// which is the ABGR8888 little-endian layout.
func ToImage(w, h int, format gl2d.PixelFormat, buf []byte, pitch int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := Convert(w, h, format, buf, pitch, gl2d.FormatABGR8888, img.Pix, img.Stride); err != nil {
		return nil, err
	}
	return img, nil
}
