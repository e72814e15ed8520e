package donut

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF icons
	_ "image/jpeg" // register JPEG icons
	_ "image/png"  // register PNG icons
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP icons

	"github.com/gogpu/donut/internal/blend"
)

// maxIconBytes bounds the size of a fetched icon.
const maxIconBytes = 8 << 20

// IconLoader fetches and decodes the image behind an icon URL.
type IconLoader interface {
	LoadIcon(ctx context.Context, url string) (image.Image, error)
}

// IconLoaderFunc adapts a function to IconLoader.
type IconLoaderFunc func(ctx context.Context, url string) (image.Image, error)

// LoadIcon calls f.
func (f IconLoaderFunc) LoadIcon(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// DefaultIconLoader loads icons over http and https, from file URLs and
// from plain paths. PNG, JPEG, GIF and WebP are decoded.
type DefaultIconLoader struct {
	// Client is used for http and https URLs. nil means http.DefaultClient.
	Client *http.Client
}

// LoadIcon fetches and decodes the icon at rawURL.
func (l *DefaultIconLoader) LoadIcon(ctx context.Context, rawURL string) (image.Image, error) {
	rc, err := l.open(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(io.LimitReader(rc, maxIconBytes))
	if err != nil {
		return nil, fmt.Errorf("icon: decode %s: %w", rawURL, err)
	}
	return img, nil
}

func (l *DefaultIconLoader) open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("icon: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("icon: %w", err)
		}
		client := l.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("icon: fetch %s: %w", rawURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("icon: fetch %s: %s", rawURL, resp.Status)
		}
		return resp.Body, nil
	case "file":
		return os.Open(u.Path)
	case "":
		return os.Open(rawURL)
	default:
		return nil, fmt.Errorf("icon: unsupported scheme %q", u.Scheme)
	}
}

// fitSquare scales img to fit a size x size square, keeping its aspect
// ratio and centering it.
func fitSquare(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || b.Empty() {
		return img
	}
	scale := math.Min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	x0, y0 := (size-w)/2, (size-h)/2
	xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), img, b, xdraw.Over, nil)
	return dst
}

// drawCentered composites img onto dst centered at (cx, cy), scaled and
// faded.
func drawCentered(dst *gg.Pixmap, img image.Image, cx, cy, scale, opacity float64) {
	if opacity <= 0 || scale <= 0 {
		return
	}
	b := img.Bounds()
	if math.Abs(scale-1) > 1e-3 {
		w := max(1, int(math.Round(float64(b.Dx())*scale)))
		h := max(1, int(math.Round(float64(b.Dy())*scale)))
		scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Over, nil)
		img = scaled
		b = scaled.Bounds()
	}
	at := image.Pt(
		int(math.Round(cx-float64(b.Dx())/2)),
		int(math.Round(cy-float64(b.Dy())/2)),
	)
	blend.DrawImage(dst, img, at, opacity)
}
