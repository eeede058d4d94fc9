package opengl

import (
	"github.com/gogpu/gl2d"
	"github.com/gogpu/gl2d/driver"
)

// shaderForTexture resolves the fragment shader a texture is sampled
// with: plain RGB for packed formats, or one of the nine conversion
// variants keyed by plane layout and color-space hint. An Auto hint
// resolves per resolution (BT.601 for SD, BT.709 above).
func shaderForTexture(t *gl2d.Texture) driver.ShaderKind {
	mode := gl2d.YUVModeForResolution(t.YUV, t.W, t.H)
	switch {
	case t.Format.Planar():
		switch mode {
		case gl2d.YUVJPEG:
			return driver.ShaderYUVJPEG
		case gl2d.YUVBT709:
			return driver.ShaderYUVBT709
		default:
			return driver.ShaderYUVBT601
		}
	case t.Format == gl2d.FormatNV12:
		switch mode {
		case gl2d.YUVJPEG:
			return driver.ShaderNV12JPEG
		case gl2d.YUVBT709:
			return driver.ShaderNV12BT709
		default:
			return driver.ShaderNV12BT601
		}
	case t.Format == gl2d.FormatNV21:
		switch mode {
		case gl2d.YUVJPEG:
			return driver.ShaderNV21JPEG
		case gl2d.YUVBT709:
			return driver.ShaderNV21BT709
		default:
			return driver.ShaderNV21BT601
		}
	default:
		return driver.ShaderRGB
	}
}
