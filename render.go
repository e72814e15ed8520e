package donut

import (
	"image"

	"github.com/gogpu/gg"
)

// Renderer draws segments onto a Surface. It is configured once per chart
// configuration and holds the decoded icons and rendered glyphs.
type Renderer struct {
	cfg      Config
	geom     Geometry
	capColor gg.RGBA
	capAlpha float64

	// icons holds decoded icons scaled to the icon size, by sector index.
	icons  map[int]image.Image
	glyphs glyphCache
}

// NewRenderer validates cfg and returns a renderer for it.
func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, _ := ParseColor(cfg.CapShadowColor)
	return &Renderer{
		cfg:      cfg,
		geom:     NewGeometry(cfg),
		capColor: c,
		capAlpha: cfg.capShadowAlpha(),
		icons:    make(map[int]image.Image),
	}, nil
}

// Geometry returns the geometry the renderer draws with.
func (r *Renderer) Geometry() Geometry { return r.geom }

// SetIcon installs the image drawn at the end cap of sector index. A nil
// image removes it, so the fallback glyph is drawn instead.
func (r *Renderer) SetIcon(index int, img image.Image) {
	if img == nil {
		delete(r.icons, index)
		return
	}
	r.icons[index] = fitSquare(img, int(r.cfg.IconSize+0.5))
}

// Draw renders one frame. The surface is cleared first, so two calls with
// the same arguments produce identical pixels. Every stage runs over all
// segments in reverse order before the next stage starts, so later
// segments overlap earlier ones.
func (r *Renderer) Draw(s *Surface, segments []Segment, p Progress) {
	if !s.valid() {
		return
	}
	s.reset()
	if len(segments) == 0 {
		return
	}
	dc := s.dc
	g := r.geom

	for i := len(segments) - 1; i >= 0; i-- {
		fillCap(dc, g, segments[i].StartAngle, segments[i].Color)
	}

	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		setColor(dc, seg.Color)
		ringSegmentPath(dc, g, seg.StartAngle, seg.EndAngle)
		_ = dc.Fill()
	}

	capAlpha := r.capAlpha * p.CapShadow
	drawCaps := r.cfg.CapShadowMode != ShadowDisabled && capAlpha > 0

	if drawCaps {
		r.capShadowPass(s, segments, capAlpha, false)
		r.eraseOutsideRing(s)
	}

	if r.cfg.MainShadowMode != ShadowDisabled && p.MainShadow > 0 {
		for i := len(segments) - 1; i >= 0; i-- {
			r.mainShadow(s, segments[i], p.MainShadow)
		}
	}

	if drawCaps {
		r.capShadowPass(s, segments, capAlpha, true)
	}

	glyphs := r.cfg.DrawGlyphs && p.Reveal >= 1 && p.Icon.Visible && p.Icon.Opacity > 0
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		fillCap(dc, g, seg.EndAngle, seg.Color)
		if glyphs {
			r.drawGlyph(s, i, seg, p.Icon)
		}
	}
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

// fillCap fills the rounded cap at a boundary angle.
func fillCap(dc *gg.Context, g Geometry, angle float64, c gg.RGBA) {
	if g.Cap <= 0 {
		return
	}
	pos := g.CapPosition(angle)
	setColor(dc, c)
	dc.DrawCircle(pos.X, pos.Y, g.Cap)
	_ = dc.Fill()
}

// drawGlyph places the icon of segment i, or its fallback glyph, centered
// on the end cap.
func (r *Renderer) drawGlyph(s *Surface, i int, seg Segment, st IconState) {
	pos := r.geom.CapPosition(seg.EndAngle)
	img, ok := r.icons[i]
	if !ok {
		img = r.glyphs.get(seg.Name)
		if img == nil {
			return
		}
	}
	drawCentered(s.pixmap, img, pos.X, pos.Y+st.OffsetY, st.Scale, st.Opacity)
}
