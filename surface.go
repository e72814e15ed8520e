package donut

import (
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/donut/internal/blend"
	"github.com/gogpu/donut/internal/filter"
)

// Surface is the raster a chart draws on, together with the off-screen
// buffers the shadow passes need. The buffers are allocated on first use
// and reused by every later frame.
//
// A nil Surface, or one with a zero size, accepts every call and draws
// nothing.
type Surface struct {
	pixmap *gg.Pixmap
	dc     *gg.Context

	// mask receives one shape at a time in opaque white; its alpha is
	// the coverage read by the shadow filters.
	mask   *gg.Pixmap
	maskDC *gg.Context

	// layer collects the cap shadows of one pass before they are
	// composited onto pixmap.
	layer *gg.Pixmap

	// ring is the annulus between the inner and outer radius.
	ring     *gg.Pixmap
	ringFor  Geometry
	ringDone bool
}

// NewSurface creates a surface of the given size in pixels.
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	if width <= 0 || height <= 0 {
		return s
	}
	s.pixmap = gg.NewPixmap(width, height)
	s.dc = gg.NewContext(width, height, gg.WithPixmap(s.pixmap))
	return s
}

func (s *Surface) valid() bool {
	return s != nil && s.pixmap != nil && s.pixmap.Width() > 0 && s.pixmap.Height() > 0
}

// Pixmap returns the visible raster, or nil for an empty surface.
func (s *Surface) Pixmap() *gg.Pixmap {
	if s == nil {
		return nil
	}
	return s.pixmap
}

// Bounds returns the pixel rectangle of the surface.
func (s *Surface) Bounds() image.Rectangle {
	if !s.valid() {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, s.pixmap.Width(), s.pixmap.Height())
}

// reset clears the visible raster and the shadow layer.
func (s *Surface) reset() {
	clear(s.pixmap.Data())
	if s.layer != nil {
		clear(s.layer.Data())
	}
	s.dc.ClearPath()
}

func (s *Surface) ensureScratch() {
	if s.mask != nil {
		return
	}
	w, h := s.pixmap.Width(), s.pixmap.Height()
	s.mask = gg.NewPixmap(w, h)
	s.maskDC = gg.NewContext(w, h, gg.WithPixmap(s.mask))
	s.maskDC.SetRGB(1, 1, 1)
	s.layer = gg.NewPixmap(w, h)
}

// beginMask prepares the mask for one shape inside r that f will read:
// everything f reads is cleared, so shapes left by earlier passes do not
// leak into the shadow. It returns the mask context with an empty path.
func (s *Surface) beginMask(f *filter.ShadowFilter, r image.Rectangle) *gg.Context {
	s.ensureScratch()
	read := filter.RectToImage(f.SourceBounds(imageToScene(r)))
	blend.ClearRect(s.mask, read.Union(r))
	s.maskDC.ClearPath()
	return s.maskDC
}

// ringMask returns the annulus mask for g, rasterizing it when the
// geometry changed since the last call.
func (s *Surface) ringMask(g Geometry) *gg.Pixmap {
	if s.ring != nil && s.ringDone && s.ringFor == g {
		return s.ring
	}
	w, h := s.pixmap.Width(), s.pixmap.Height()
	if s.ring == nil {
		s.ring = gg.NewPixmap(w, h)
	} else {
		clear(s.ring.Data())
	}
	dc := gg.NewContext(w, h, gg.WithPixmap(s.ring))
	dc.SetRGB(1, 1, 1)
	dc.SetFillRule(gg.FillRuleEvenOdd)
	annulusPath(dc, g)
	_ = dc.Fill()
	_ = dc.Close()

	s.ringFor = g
	s.ringDone = true
	return s.ring
}

// circleBounds returns the pixel rectangle covering a circle.
func circleBounds(cx, cy, r float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(cx-r))-1,
		int(math.Floor(cy-r))-1,
		int(math.Ceil(cx+r))+1,
		int(math.Ceil(cy+r))+1,
	)
}
