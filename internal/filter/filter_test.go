package filter

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
)

// maskWithRect returns a pixmap whose alpha is 1 inside the rectangle.
func maskWithRect(w, h, x0, y0, x1, y1 int) *gg.Pixmap {
	p := gg.NewPixmap(w, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p.SetPixel(x, y, gg.White)
		}
	}
	return p
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestGaussianKernel(t *testing.T) {
	tests := []struct {
		blur     float64
		wantSize int
	}{
		{0, 1},
		{-3, 1},
		{2, 7},  // sigma 1 -> half 3
		{8, 25}, // sigma 4 -> half 12
		{5, 17}, // sigma 2.5 -> half ceil(7.5)=8
	}

	for _, tt := range tests {
		k := GaussianKernel(tt.blur)
		if len(k) != tt.wantSize {
			t.Errorf("GaussianKernel(%v) size = %d, want %d", tt.blur, len(k), tt.wantSize)
		}
		var sum float64
		for _, v := range k {
			sum += float64(v)
		}
		if absf(sum-1) > 1e-5 {
			t.Errorf("GaussianKernel(%v) sum = %v, want 1", tt.blur, sum)
		}
		center := len(k) / 2
		for i := 0; i < center; i++ {
			if k[i] != k[len(k)-1-i] {
				t.Errorf("GaussianKernel(%v) not symmetric at %d", tt.blur, i)
			}
			if k[i] > k[i+1] {
				t.Errorf("GaussianKernel(%v) not increasing toward center at %d", tt.blur, i)
			}
		}
	}
}

func TestCachedGaussianKernelReuse(t *testing.T) {
	a := CachedGaussianKernel(6)
	b := CachedGaussianKernel(6)
	if &a[0] != &b[0] {
		t.Error("CachedGaussianKernel returned a new slice for the same blur")
	}
}

func TestShadowExpandBounds(t *testing.T) {
	tests := []struct {
		name   string
		f      ShadowFilter
		input  scene.Rect
		want   scene.Rect
	}{
		{
			name:  "no blur no offset",
			f:     ShadowFilter{},
			input: scene.Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20},
			want:  scene.Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20},
		},
		{
			name:  "vertical offset",
			f:     ShadowFilter{OffsetY: 8, Blur: 8},
			input: scene.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100},
			want:  scene.Rect{MinX: -12, MinY: -12, MaxX: 112, MaxY: 120},
		},
		{
			name:  "negative offset",
			f:     ShadowFilter{OffsetX: -5},
			input: scene.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			want:  scene.Rect{MinX: -5, MinY: 0, MaxX: 10, MaxY: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.f.ExpandBounds(tt.input)
			if got != tt.want {
				t.Errorf("ExpandBounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShadowSourceBounds(t *testing.T) {
	tests := []struct {
		name  string
		f     ShadowFilter
		input scene.Rect
		want  scene.Rect
	}{
		{
			name:  "no blur no offset",
			input: scene.Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20},
			want:  scene.Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20},
		},
		{
			name:  "vertical offset",
			f:     ShadowFilter{OffsetY: 8, Blur: 8},
			input: scene.Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100},
			want:  scene.Rect{MinX: -12, MinY: -20, MaxX: 112, MaxY: 120},
		},
		{
			name:  "negative offset",
			f:     ShadowFilter{OffsetX: -5},
			input: scene.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			want:  scene.Rect{MinX: -5, MinY: 0, MaxX: 15, MaxY: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.SourceBounds(tt.input); got != tt.want {
				t.Errorf("SourceBounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShadowApplyReadsOnlySourceBounds(t *testing.T) {
	const size = 80
	f := &ShadowFilter{OffsetY: 4, Blur: 4, Color: gg.Black, Opacity: 1}
	input := scene.Rect{MinX: 30, MinY: 30, MaxX: 40, MaxY: 40}

	clean := maskWithRect(size, size, 30, 30, 40, 40)
	want := gg.NewPixmap(size, size)
	f.Apply(clean, want, input)

	// Coverage everywhere outside the source bounds must not matter.
	dirty := maskWithRect(size, size, 0, 0, size, size)
	read := RectToImage(f.SourceBounds(input))
	for y := read.Min.Y; y < read.Max.Y; y++ {
		for x := read.Min.X; x < read.Max.X; x++ {
			if x < 30 || x >= 40 || y < 30 || y >= 40 {
				dirty.SetPixel(x, y, gg.Transparent)
			}
		}
	}
	got := gg.NewPixmap(size, size)
	f.Apply(dirty, got, input)

	for i, v := range want.Data() {
		if got.Data()[i] != v {
			t.Fatalf("byte %d = %d, want %d", i, got.Data()[i], v)
		}
	}
}

func TestShadowApplyOffsetWithoutBlur(t *testing.T) {
	src := maskWithRect(40, 40, 10, 10, 20, 20)
	dst := gg.NewPixmap(40, 40)

	f := &ShadowFilter{OffsetX: 5, OffsetY: 3, Color: gg.RGB(1, 0, 0), Opacity: 1}
	f.Apply(src, dst, scene.Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20})

	if got := dst.GetPixel(16, 14); got.A != 1 || got.R != 1 {
		t.Errorf("pixel inside shifted shape = %+v, want opaque red", got)
	}
	if got := dst.GetPixel(12, 11); got.A != 0 {
		t.Errorf("pixel left of shifted shape = %+v, want transparent", got)
	}
	if got := dst.GetPixel(24, 22); got.A != 1 {
		t.Errorf("pixel at shifted corner = %+v, want opaque", got)
	}
}

func TestShadowApplyOpacity(t *testing.T) {
	src := maskWithRect(20, 20, 5, 5, 15, 15)
	dst := gg.NewPixmap(20, 20)

	f := &ShadowFilter{Color: gg.RGBA2(0, 0, 0, 0.5), Opacity: 0.4}
	f.Apply(src, dst, scene.Rect{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15})

	got := dst.GetPixel(10, 10).A
	if absf(got-0.2) > 1.0/255 {
		t.Errorf("alpha = %v, want 0.2", got)
	}
}

func TestShadowApplyZeroOpacityIsNoop(t *testing.T) {
	src := maskWithRect(20, 20, 5, 5, 15, 15)
	dst := gg.NewPixmap(20, 20)

	f := &ShadowFilter{Color: gg.Black, Opacity: 0, Blur: 4}
	f.Apply(src, dst, scene.Rect{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15})

	for _, v := range dst.Data() {
		if v != 0 {
			t.Fatal("zero opacity shadow modified the destination")
		}
	}
}

func TestShadowApplyBlurSpreadsAndConserves(t *testing.T) {
	src := maskWithRect(80, 80, 30, 30, 50, 50)
	dst := gg.NewPixmap(80, 80)

	f := &ShadowFilter{Blur: 6, Color: gg.Black, Opacity: 1}
	f.Apply(src, dst, scene.Rect{MinX: 30, MinY: 30, MaxX: 50, MaxY: 50})

	if got := dst.GetPixel(28, 40).A; got <= 0 {
		t.Errorf("alpha just outside the shape = %v, want > 0", got)
	}
	if got := dst.GetPixel(30, 40).A; got >= 1 {
		t.Errorf("alpha at the edge = %v, want < 1", got)
	}

	var total float64
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			total += dst.GetPixel(x, y).A
		}
	}
	if math.Abs(total-400) > 8 {
		t.Errorf("total shadow alpha = %v, want about 400", total)
	}
}

func TestShadowApplyClip(t *testing.T) {
	src := maskWithRect(30, 30, 0, 0, 30, 30)
	clip := maskWithRect(30, 30, 0, 0, 15, 30)
	dst := gg.NewPixmap(30, 30)

	f := &ShadowFilter{Color: gg.Black, Opacity: 1, Clip: clip}
	f.Apply(src, dst, scene.Rect{MinX: 0, MinY: 0, MaxX: 30, MaxY: 30})

	if got := dst.GetPixel(5, 5).A; got != 1 {
		t.Errorf("alpha inside clip = %v, want 1", got)
	}
	if got := dst.GetPixel(20, 5).A; got != 0 {
		t.Errorf("alpha outside clip = %v, want 0", got)
	}
}

func TestShadowApplyNilPixmaps(t *testing.T) {
	f := &ShadowFilter{Color: gg.Black, Opacity: 1}
	f.Apply(nil, gg.NewPixmap(4, 4), scene.Rect{MaxX: 4, MaxY: 4})
	f.Apply(gg.NewPixmap(4, 4), nil, scene.Rect{MaxX: 4, MaxY: 4})
}
