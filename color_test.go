package gl2d

import (
	"image/color"
	"testing"
)

func TestColorPacked(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint32
	}{
		{"black", Black, 0xFF000000},
		{"white", White, 0xFFFFFFFF},
		{"transparent", Transparent, 0x00000000},
		{"red", Color{R: 255, A: 255}, 0xFFFF0000},
		{"channels", Color{R: 0x12, G: 0x34, B: 0x56, A: 0x78}, 0x78123456},
	}
	for _, tt := range tests {
		if got := tt.c.Packed(); got != tt.want {
			t.Errorf("%s: Packed() = %#x, want %#x", tt.name, got, tt.want)
		}
	}
}

func TestColorPackedDistinguishes(t *testing.T) {
	a := Color{R: 1, G: 2, B: 3, A: 4}
	b := Color{R: 1, G: 2, B: 4, A: 3}
	if a.Packed() == b.Packed() {
		t.Error("distinct colors pack to the same key")
	}
}

func TestColorColor(t *testing.T) {
	c := Color{R: 10, G: 20, B: 30, A: 255}
	got := c.Color()
	want := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	if got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}
}
