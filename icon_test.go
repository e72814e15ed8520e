package donut

import (
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
)

func solidImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 0x20
		img.Pix[i+1] = 0x40
		img.Pix[i+2] = 0x80
		img.Pix[i+3] = 0xff
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIconLoaderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	writePNG(t, path, solidImage(12, 6))

	l := &DefaultIconLoader{}
	for _, u := range []string{path, "file://" + filepath.ToSlash(path)} {
		img, err := l.LoadIcon(context.Background(), u)
		if err != nil {
			t.Errorf("LoadIcon(%q) error = %v", u, err)
			continue
		}
		if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
			t.Errorf("LoadIcon(%q) bounds = %v", u, b)
		}
	}

	if _, err := l.LoadIcon(context.Background(), filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("LoadIcon(missing) succeeded")
	}
}

func TestDefaultIconLoaderHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/icon.png":
			w.Header().Set("Content-Type", "image/png")
			_ = png.Encode(w, solidImage(8, 8))
		case "/text":
			_, _ = w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := &DefaultIconLoader{Client: srv.Client()}
	if _, err := l.LoadIcon(context.Background(), srv.URL+"/icon.png"); err != nil {
		t.Errorf("LoadIcon(png) error = %v", err)
	}
	if _, err := l.LoadIcon(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("LoadIcon(404) succeeded")
	}
	if _, err := l.LoadIcon(context.Background(), srv.URL+"/text"); err == nil {
		t.Error("LoadIcon(text) succeeded")
	}
	if _, err := l.LoadIcon(context.Background(), "ftp://example.com/icon.png"); err == nil {
		t.Error("LoadIcon(ftp) succeeded")
	}
}

func TestFitSquare(t *testing.T) {
	img := fitSquare(solidImage(40, 20), 20)
	if b := img.Bounds(); b != image.Rect(0, 0, 20, 20) {
		t.Fatalf("bounds = %v, want 20x20", b)
	}

	// A 2:1 image fills the middle half rows and leaves the rest clear.
	_, _, _, top := img.At(10, 2).RGBA()
	_, _, _, mid := img.At(10, 10).RGBA()
	if top != 0 {
		t.Errorf("alpha above the image = %d, want 0", top)
	}
	if mid != 0xffff {
		t.Errorf("alpha inside the image = %d, want opaque", mid)
	}

	if got := fitSquare(img, 0); got != img {
		t.Error("fitSquare(size 0) did not return the input")
	}
}

func TestDrawCentered(t *testing.T) {
	pm := gg.NewPixmap(40, 40)
	drawCentered(pm, solidImage(10, 10), 20, 20, 1, 1)

	if got := pm.GetPixel(20, 20); got.A != 1 {
		t.Errorf("center alpha = %v, want 1", got.A)
	}
	if got := pm.GetPixel(10, 10); got.A != 0 {
		t.Errorf("outside alpha = %v, want 0", got.A)
	}

	pm = gg.NewPixmap(40, 40)
	drawCentered(pm, solidImage(10, 10), 20, 20, 2, 0.5)
	if got := pm.GetPixel(12, 20); !(got.A > 0.4 && got.A < 0.6) {
		t.Errorf("scaled half-opacity alpha = %v, want about 0.5", got.A)
	}

	pm = gg.NewPixmap(40, 40)
	drawCentered(pm, solidImage(10, 10), 20, 20, 1, 0)
	if got := pm.GetPixel(20, 20); got.A != 0 {
		t.Errorf("alpha at zero opacity = %v, want 0", got.A)
	}
}
