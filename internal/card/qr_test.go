package card

import (
	"image"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"testing"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

var pathRectRe = regexp.MustCompile(`M([0-9.]+) ([0-9.]+)h([0-9.]+)v([0-9.]+)h-[0-9.]+z`)

// rasterize replays the SVG path onto a grayscale canvas at 10 pixels per
// mm, the way a printer lays down the dark modules.
func rasterize(t *testing.T, path string, sizeMM float64) image.Image {
	t.Helper()
	const scale = 10

	side := px(sizeMM, scale)
	img := image.NewGray(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	rects := pathRectRe.FindAllStringSubmatch(path, -1)
	if len(rects) == 0 {
		t.Fatalf("path holds no rectangles: %q", path)
	}
	for _, m := range rects {
		x := parseMM(t, m[1])
		y := parseMM(t, m[2])
		w := parseMM(t, m[3])
		h := parseMM(t, m[4])
		for py := px(y, scale); py < px(y+h, scale); py++ {
			for pxl := px(x, scale); pxl < px(x+w, scale); pxl++ {
				img.SetGray(pxl, py, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func px(mm float64, scale float64) int {
	return int(math.Round(mm * scale))
}

func parseMM(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.Fatalf("bad coordinate %q: %v", s, err)
	}
	return v
}

// Scanning the rendered glyph must yield the exact published URL.
func TestEncodeQRRoundTrip(t *testing.T) {
	url := "https://cards.example.com/" + testIdentifier.String() + ".m4a"
	path, size, err := encodeQR(url)
	if err != nil {
		t.Fatal(err)
	}

	img := rasterize(t, path, size)
	bitmap, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("prepare bitmap: %v", err)
	}
	decoded, err := zxqrcode.NewQRCodeReader().Decode(bitmap, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := decoded.GetText(); got != url {
		t.Fatalf("decoded %q, want %q", got, url)
	}
}
