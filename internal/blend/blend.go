// Package blend provides the Porter-Duff compositing the chart rasterizer
// needs on top of gg pixmaps.
//
// gg pixmaps store premultiplied RGBA bytes, the layout gg's own fills
// write. Every operation here reads and writes that layout and restricts
// work to a rectangle, so the cost of a composite is proportional to the
// area an effect touches.
package blend

import (
	"image"

	"github.com/gogpu/gg"
)

// Mode represents a compositing operator.
type Mode int

const (
	// ModeSourceOver is the default alpha blending mode: S + D*(1-Sa).
	ModeSourceOver Mode = iota
	// ModeDestinationIn keeps destination where source is opaque: D*Sa.
	ModeDestinationIn
)

// Clip returns r clipped to the bounds of pm.
func Clip(pm *gg.Pixmap, r image.Rectangle) image.Rectangle {
	if pm == nil {
		return image.Rectangle{}
	}
	return r.Intersect(image.Rect(0, 0, pm.Width(), pm.Height()))
}

// ClearRect sets every pixel of pm inside r to transparent.
func ClearRect(pm *gg.Pixmap, r image.Rectangle) {
	r = Clip(pm, r)
	if r.Empty() {
		return
	}
	data := pm.Data()
	w := pm.Width()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		clear(data[(y*w+r.Min.X)*4 : (y*w+r.Max.X)*4])
	}
}

// OverPixel composites a straight-alpha color onto the premultiplied pixel
// that starts at byte offset i of data. Components are in [0, 1].
func OverPixel(data []uint8, i int, r, g, b, a float64) {
	if a <= 0 {
		return
	}
	a = min(a, 1)
	over(data, i, r*a, g*a, b*a, a)
}

// over composites a premultiplied color given in [0, 1].
func over(data []uint8, i int, r, g, b, a float64) {
	inv := 1 - a
	data[i+0] = toByte(r + float64(data[i+0])/255*inv)
	data[i+1] = toByte(g + float64(data[i+1])/255*inv)
	data[i+2] = toByte(b + float64(data[i+2])/255*inv)
	data[i+3] = toByte(a + float64(data[i+3])/255*inv)
}

// Composite combines src onto dst inside r. For ModeSourceOver the source
// is blended with its premultiplied components scaled by opacity. For
// ModeDestinationIn only the source alpha matters and opacity is ignored.
func Composite(dst, src *gg.Pixmap, r image.Rectangle, mode Mode, opacity float64) {
	if dst == nil || src == nil {
		return
	}
	r = Clip(dst, Clip(src, r))
	if r.Empty() {
		return
	}
	opacity = min(opacity, 1)
	dd, sd := dst.Data(), src.Data()
	dw, sw := dst.Width(), src.Width()

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			di := (y*dw + x) * 4
			si := (y*sw + x) * 4
			sa := float64(sd[si+3]) / 255
			if mode == ModeDestinationIn {
				scalePixel(dd, di, sa)
				continue
			}
			if sa == 0 || opacity <= 0 {
				continue
			}
			over(dd, di,
				float64(sd[si+0])/255*opacity,
				float64(sd[si+1])/255*opacity,
				float64(sd[si+2])/255*opacity,
				sa*opacity)
		}
	}
}

// FillMask paints c through the alpha channel of mask onto dst inside r,
// with the color alpha scaled by opacity.
func FillMask(dst, mask *gg.Pixmap, r image.Rectangle, c gg.RGBA, opacity float64) {
	if dst == nil || mask == nil {
		return
	}
	alpha := c.A * opacity
	if alpha <= 0 {
		return
	}
	r = Clip(dst, Clip(mask, r))
	dd, md := dst.Data(), mask.Data()
	dw, mw := dst.Width(), mask.Width()

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ma := md[(y*mw+x)*4+3]
			if ma == 0 {
				continue
			}
			OverPixel(dd, (y*dw+x)*4, c.R, c.G, c.B, alpha*float64(ma)/255)
		}
	}
}

// DrawImage composites src onto dst with its top-left corner at at.
func DrawImage(dst *gg.Pixmap, src image.Image, at image.Point, opacity float64) {
	if dst == nil || src == nil || opacity <= 0 {
		return
	}
	opacity = min(opacity, 1)
	sb := src.Bounds()
	r := Clip(dst, sb.Sub(sb.Min).Add(at))
	dd := dst.Data()
	dw := dst.Width()

	// color.Color.RGBA returns premultiplied 16-bit components.
	const scale = 1.0 / 0xffff
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, ca := src.At(sb.Min.X+x-at.X, sb.Min.Y+y-at.Y).RGBA()
			if ca == 0 {
				continue
			}
			f := scale * opacity
			over(dd, (y*dw+x)*4, float64(cr)*f, float64(cg)*f, float64(cb)*f, float64(ca)*f)
		}
	}
}

// ToNRGBA returns a copy of pm with straight alpha, the layout image/png
// expects from an image.NRGBA.
func ToNRGBA(pm *gg.Pixmap) *image.NRGBA {
	if pm == nil {
		return image.NewNRGBA(image.Rectangle{})
	}
	img := image.NewNRGBA(image.Rect(0, 0, pm.Width(), pm.Height()))
	src := pm.Data()
	for i := 0; i+3 < len(src); i += 4 {
		a := src[i+3]
		switch a {
		case 0:
			continue
		case 255:
			copy(img.Pix[i:i+4], src[i:i+4])
		default:
			img.Pix[i+0] = unpremul(src[i+0], a)
			img.Pix[i+1] = unpremul(src[i+1], a)
			img.Pix[i+2] = unpremul(src[i+2], a)
			img.Pix[i+3] = a
		}
	}
	return img
}

func unpremul(c, a uint8) uint8 {
	return uint8(min((uint32(c)*255+uint32(a)/2)/uint32(a), 255))
}

// scalePixel multiplies all four premultiplied components by f. A pixel
// whose alpha rounds to zero is cleared entirely.
func scalePixel(data []uint8, i int, f float64) {
	if f >= 1 {
		return
	}
	a := toByte(float64(data[i+3]) / 255 * f)
	if a == 0 {
		clear(data[i : i+4])
		return
	}
	data[i+0] = toByte(float64(data[i+0]) / 255 * f)
	data[i+1] = toByte(float64(data[i+1]) / 255 * f)
	data[i+2] = toByte(float64(data[i+2]) / 255 * f)
	data[i+3] = a
}

// toByte converts a [0, 1] component to a rounded byte.
func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
