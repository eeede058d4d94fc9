package gl2d

import "testing"

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{X: 0, Y: 0, W: 1, H: 1}, false},
		{Rect{X: 5, Y: 5, W: 0, H: 10}, true},
		{Rect{X: 5, Y: 5, W: 10, H: 0}, true},
		{Rect{X: 0, Y: 0, W: -1, H: 4}, true},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Errorf("%+v.Empty() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestRectToFRect(t *testing.T) {
	got := RectToFRect(Rect{X: 1, Y: 2, W: 3, H: 4})
	want := FRect{X: 1, Y: 2, W: 3, H: 4}
	if got != want {
		t.Errorf("RectToFRect() = %+v, want %+v", got, want)
	}
}
