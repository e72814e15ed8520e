package donut

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/gogpu/donut/internal/blend"
	"github.com/gogpu/donut/internal/filter"
)

// mainShadowAlpha is the canvas global alpha of the body shadow pass.
const mainShadowAlpha = 0.5

// capShadowPass draws the cap shadows of one pass into the shadow layer and
// composites the layer onto the surface. The first pass covers the end
// boundaries. The second covers the start boundaries of every segment but
// the first, then the end boundaries again.
func (r *Renderer) capShadowPass(s *Surface, segments []Segment, alpha float64, second bool) {
	s.ensureScratch()
	clear(s.layer.Data())
	ring := s.ringMask(r.geom)

	if second {
		for i := len(segments) - 1; i >= 0; i-- {
			r.capShadow(s, ring, segments, i, false, alpha)
		}
	}
	for i := len(segments) - 1; i >= 0; i-- {
		r.capShadow(s, ring, segments, i, true, alpha)
	}

	blend.Composite(s.pixmap, s.layer, s.Bounds(), blend.ModeSourceOver, 1)
}

// capShadow draws the shadow of one cap into the layer. The shadow is a
// half disk moved along the ring by the cap shadow offset, facing away from
// the segment body, blurred and clipped to the ring.
func (r *Renderer) capShadow(s *Surface, ring *gg.Pixmap, segments []Segment, i int, end bool, alpha float64) {
	if !end && i == 0 {
		return
	}
	g := r.geom
	if g.Cap <= 0 {
		return
	}

	angle := segments[i].StartAngle
	dir := -1.0
	if end {
		angle = segments[i].EndAngle
		dir = 1
	}

	pos := g.CapPosition(angle)
	off := r.cfg.CapShadowOffset * dir
	cx := pos.X - math.Sin(angle)*off
	cy := pos.Y + math.Cos(angle)*off

	bounds := circleBounds(cx, cy, g.Cap)
	f := &filter.ShadowFilter{
		Blur:    r.cfg.CapShadowBlur,
		Color:   r.capColor,
		Opacity: alpha,
		Clip:    ring,
	}
	dc := s.beginMask(f, bounds)
	halfDiskPath(dc, cx, cy, g.Cap, angle, dir)
	_ = dc.Fill()
	f.Apply(s.mask, s.layer, imageToScene(bounds))
}

// eraseOutsideRing clears the hole inside the inner radius and everything
// outside the outer radius, removing cap shadow bleed.
func (r *Renderer) eraseOutsideRing(s *Surface) {
	blend.Composite(s.pixmap, s.ringMask(r.geom), s.Bounds(), blend.ModeDestinationIn, 1)
}

// mainShadow draws the body of seg with a shadow in its own color, both at
// half alpha scaled by progress, like a canvas fill with shadowColor set.
func (r *Renderer) mainShadow(s *Surface, seg Segment, progress float64) {
	g := r.geom
	bounds := circleBounds(g.CenterX, g.CenterY, g.Outer)
	opacity := mainShadowAlpha * progress
	f := &filter.ShadowFilter{
		OffsetY: r.cfg.ShadowOffset,
		Blur:    r.cfg.ShadowBlur,
		Color:   seg.Color,
		Opacity: opacity,
	}
	dc := s.beginMask(f, bounds)
	ringSegmentPath(dc, g, seg.StartAngle, seg.EndAngle)
	_ = dc.Fill()
	f.Apply(s.mask, s.pixmap, imageToScene(bounds))
	blend.FillMask(s.pixmap, s.mask, bounds, seg.Color, opacity)
}

func imageToScene(r image.Rectangle) scene.Rect {
	return scene.Rect{
		MinX: float32(r.Min.X),
		MinY: float32(r.Min.Y),
		MaxX: float32(r.Max.X),
		MaxY: float32(r.Max.Y),
	}
}
