package filter

import (
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/gogpu/donut/internal/blend"
)

// ShadowFilter paints a blurred, tinted copy of the source coverage onto the
// destination. Both pixmaps hold premultiplied RGBA; only the source alpha
// is read. Unlike a drop shadow it does not redraw the source itself:
// the caller decides what goes on top.
type ShadowFilter struct {
	// OffsetX and OffsetY move the shadow relative to the source, in pixels.
	OffsetX, OffsetY float64

	// Blur is the canvas-style blur value (sigma = Blur/2).
	Blur float64

	// Color is the shadow color. Its alpha is multiplied by Opacity.
	Color   gg.RGBA
	Opacity float64

	// Clip, when set, restricts the shadow to the alpha of this pixmap
	// (destination-in against the shadow layer before compositing).
	Clip *gg.Pixmap
}

var _ scene.Filter = (*ShadowFilter)(nil)

// Apply reads coverage from the alpha channel of src inside bounds and
// composites the shadow source-over onto dst inside the expanded bounds.
func (f *ShadowFilter) Apply(src, dst *gg.Pixmap, bounds scene.Rect) {
	if src == nil || dst == nil {
		return
	}
	alpha := f.Color.A * f.Opacity
	if alpha <= 0 {
		return
	}

	r := blend.Clip(dst, RectToImage(f.ExpandBounds(bounds)))
	if r.Empty() {
		return
	}
	w, h := r.Dx(), r.Dy()

	buf := getBuffer(w * h)
	defer putBuffer(buf)

	extractAlpha(src, buf, r, int(math.Round(f.OffsetX)), int(math.Round(f.OffsetY)))
	if f.Blur > 0 {
		tmp := getBuffer(w * h)
		blurAlpha(buf, tmp, w, h, CachedGaussianKernel(f.Blur))
		putBuffer(tmp)
	}

	dd := dst.Data()
	dw := dst.Width()
	var cd []uint8
	if f.Clip != nil {
		cd = f.Clip.Data()
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := buf[y*w+x]
			if a <= 0 {
				continue
			}
			px, py := r.Min.X+x, r.Min.Y+y
			clip := 1.0
			if cd != nil {
				ci := (py*f.Clip.Width() + px) * 4
				if px >= f.Clip.Width() || py >= f.Clip.Height() || cd[ci+3] == 0 {
					continue
				}
				clip = float64(cd[ci+3]) / 255
			}
			blend.OverPixel(dd, (py*dw+px)*4, f.Color.R, f.Color.G, f.Color.B, float64(a)*alpha*clip)
		}
	}
}

// ExpandBounds returns the region the shadow can touch: the input moved by
// the offset and grown by the kernel radius.
func (f *ShadowFilter) ExpandBounds(input scene.Rect) scene.Rect {
	grow := float32(KernelRadius(f.Blur))
	ox, oy := float32(f.OffsetX), float32(f.OffsetY)
	return scene.Rect{
		MinX: min(input.MinX, input.MinX+ox) - grow,
		MinY: min(input.MinY, input.MinY+oy) - grow,
		MaxX: max(input.MaxX, input.MaxX+ox) + grow,
		MaxY: max(input.MaxY, input.MaxY+oy) + grow,
	}
}

// SourceBounds returns the region of the source Apply reads for input: the
// expanded bounds together with their copy moved back by the offset.
// Coverage outside input but inside this region reaches the shadow.
func (f *ShadowFilter) SourceBounds(input scene.Rect) scene.Rect {
	e := f.ExpandBounds(input)
	dx, dy := float32(math.Round(f.OffsetX)), float32(math.Round(f.OffsetY))
	return scene.Rect{
		MinX: e.MinX - max(dx, 0),
		MinY: e.MinY - max(dy, 0),
		MaxX: e.MaxX - min(dx, 0),
		MaxY: e.MaxY - min(dy, 0),
	}
}

// RectToImage converts scene bounds to the smallest covering pixel rectangle.
func RectToImage(r scene.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.MinX))),
		int(math.Floor(float64(r.MinY))),
		int(math.Ceil(float64(r.MaxX))),
		int(math.Ceil(float64(r.MaxY))),
	)
}

// extractAlpha copies the source alpha, shifted by the offset, into buf.
// Pixels that map outside src are zero.
func extractAlpha(src *gg.Pixmap, buf []float32, r image.Rectangle, dx, dy int) {
	sd := src.Data()
	sw, sh := src.Width(), src.Height()
	w := r.Dx()

	for y := 0; y < r.Dy(); y++ {
		sy := r.Min.Y + y - dy
		for x := 0; x < w; x++ {
			sx := r.Min.X + x - dx
			if sx < 0 || sx >= sw || sy < 0 || sy >= sh {
				buf[y*w+x] = 0
				continue
			}
			buf[y*w+x] = float32(sd[(sy*sw+sx)*4+3]) / 255
		}
	}
}

// blurAlpha applies a separable convolution to buf in place, using tmp as
// the intermediate row buffer. Samples outside the region count as zero.
func blurAlpha(buf, tmp []float32, w, h int, kernel []float32) {
	half := len(kernel) / 2

	for y := 0; y < h; y++ {
		row := buf[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var sum float32
			for k, weight := range kernel {
				kx := x + k - half
				if kx < 0 || kx >= w {
					continue
				}
				sum += row[kx] * weight
			}
			tmp[y*w+x] = sum
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for k, weight := range kernel {
				ky := y + k - half
				if ky < 0 || ky >= h {
					continue
				}
				sum += tmp[ky*w+x] * weight
			}
			buf[y*w+x] = sum
		}
	}
}

type floatBuffer struct {
	data []float32
}

var bufferPool = sync.Pool{
	New: func() any { return &floatBuffer{} },
}

// getBuffer returns a zeroed buffer of n elements.
func getBuffer(n int) []float32 {
	buf := bufferPool.Get().(*floatBuffer).data
	if cap(buf) < n {
		buf = make([]float32, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}

func putBuffer(buf []float32) {
	bufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
}
