package donut

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/donut/internal/cache"
)

// glyphSize is the pixel size of the fallback glyph.
const glyphSize = 16

// maxGlyphs bounds the rendered glyphs kept by one chart.
const maxGlyphs = 64

// firstGrapheme returns the first character of s in NFC form. Combining
// marks that follow the first rune stay attached to it.
func firstGrapheme(s string) string {
	if s == "" {
		return ""
	}
	var it norm.Iter
	it.InitString(norm.NFC, s)
	return string(it.Next())
}

var boldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// glyphCache renders fallback glyphs once per text. The zero value is
// ready to use; it is confined to the goroutine drawing the chart.
type glyphCache struct {
	face   font.Face
	failed bool
	images *cache.Cache[string, *image.NRGBA]
}

// get returns the white glyph image for text, or nil when the font is
// unavailable or text is empty.
func (c *glyphCache) get(text string) *image.NRGBA {
	if text == "" || c.failed {
		return nil
	}
	if c.face == nil {
		face, err := newGlyphFace()
		if err != nil {
			Logger().Warn("glyph: font unavailable", "err", err)
			c.failed = true
			return nil
		}
		c.face = face
	}
	if c.images == nil {
		c.images = cache.New[string, *image.NRGBA](maxGlyphs)
	}
	return c.images.GetOrCreate(text, func() *image.NRGBA {
		return renderGlyph(c.face, text)
	})
}

func newGlyphFace() (font.Face, error) {
	f, err := boldFont()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    glyphSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// renderGlyph draws text in white on a transparent image sized to the
// advance and the line height, so the image center is the point a
// centered, middle-baseline text is anchored at.
func renderGlyph(face font.Face, text string) *image.NRGBA {
	m := face.Metrics()
	adv := font.MeasureString(face, text)
	w := adv.Ceil() + 2
	h := (m.Ascent + m.Descent).Ceil() + 2

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(1), Y: fixed.I(1) + m.Ascent},
	}
	d.DrawString(text)
	return img
}
