package gl2d

import "testing"

func TestPixelFormatProperties(t *testing.T) {
	tests := []struct {
		format     PixelFormat
		name       string
		bpp        int
		planar     bool
		semiPlanar bool
	}{
		{FormatARGB8888, "ARGB8888", 4, false, false},
		{FormatABGR8888, "ABGR8888", 4, false, false},
		{FormatYV12, "YV12", 1, true, false},
		{FormatIYUV, "IYUV", 1, true, false},
		{FormatNV12, "NV12", 1, false, true},
		{FormatNV21, "NV21", 1, false, true},
		{FormatUYVY, "UYVY", 2, false, false},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.format.BytesPerPixel(); got != tt.bpp {
			t.Errorf("%v.BytesPerPixel() = %d, want %d", tt.format, got, tt.bpp)
		}
		if got := tt.format.Planar(); got != tt.planar {
			t.Errorf("%v.Planar() = %v, want %v", tt.format, got, tt.planar)
		}
		if got := tt.format.SemiPlanar(); got != tt.semiPlanar {
			t.Errorf("%v.SemiPlanar() = %v, want %v", tt.format, got, tt.semiPlanar)
		}
	}
}

func TestYUVModeForResolution(t *testing.T) {
	tests := []struct {
		mode YUVMode
		w, h int
		want YUVMode
	}{
		{YUVAuto, 640, 480, YUVBT601},
		{YUVAuto, 720, 576, YUVBT601},
		{YUVAuto, 1280, 720, YUVBT709},
		{YUVAuto, 1920, 1080, YUVBT709},
		{YUVJPEG, 1920, 1080, YUVJPEG},
		{YUVBT709, 320, 240, YUVBT709},
		{YUVBT601, 1920, 1080, YUVBT601},
	}
	for _, tt := range tests {
		if got := YUVModeForResolution(tt.mode, tt.w, tt.h); got != tt.want {
			t.Errorf("YUVModeForResolution(%v, %d, %d) = %v, want %v",
				tt.mode, tt.w, tt.h, got, tt.want)
		}
	}
}
