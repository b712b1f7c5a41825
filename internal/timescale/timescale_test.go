package timescale

import (
	"math"
	"testing"
)

func TestTimeToPixels(t *testing.T) {
	tests := []struct {
		name string
		time float64
		zoom Zoom
		want float64
	}{
		{"zero", 0, ZoomFit, 0},
		{"one second fit", 1, ZoomFit, 10},
		{"one second 2x", 1, Zoom2x, 20},
		{"fractional 4x", 2.5, Zoom4x, 100},
		{"8x", 3, Zoom8x, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeToPixels(tt.time, tt.zoom)
			if got != tt.want {
				t.Errorf("TimeToPixels(%v, %v) = %v, want %v", tt.time, tt.zoom, got, tt.want)
			}
		})
	}
}

func TestPixelsToTime_Inverse(t *testing.T) {
	for _, zoom := range []Zoom{ZoomFit, Zoom2x, Zoom4x, Zoom8x} {
		for _, sec := range []float64{0, 0.1, 1, 2.3, 17.25, 600} {
			px := TimeToPixels(sec, zoom)
			back := PixelsToTime(px, zoom)
			if math.Abs(back-sec) > 1e-9 {
				t.Errorf("round trip at %v: %v -> %v px -> %v", zoom, sec, px, back)
			}
		}
	}
}

func TestZoom_Cycle(t *testing.T) {
	if got := Zoom8x.Next(); got != Zoom8x {
		t.Errorf("Next at max = %v, want Zoom8x", got)
	}
	if got := ZoomFit.Prev(); got != ZoomFit {
		t.Errorf("Prev at min = %v, want ZoomFit", got)
	}
	if got := ZoomFit.Next(); got != Zoom2x {
		t.Errorf("ZoomFit.Next() = %v, want Zoom2x", got)
	}
	if got := Zoom4x.Prev(); got != Zoom2x {
		t.Errorf("Zoom4x.Prev() = %v, want Zoom2x", got)
	}
}

func TestZoom_RulerIntervalDensity(t *testing.T) {
	// Markers must get denser as the scale grows, never sparser.
	prev := math.Inf(1)
	for _, z := range []Zoom{ZoomFit, Zoom2x, Zoom4x, Zoom8x} {
		iv := z.RulerInterval()
		if iv > prev {
			t.Errorf("RulerInterval not monotonic at %v: %v > %v", z, iv, prev)
		}
		prev = iv
	}
}
