// Package covers prepares album art for the web player: embedded pictures
// are decoded, scaled down to a bounded size, and written as JPEG files
// named after the track identifier so the art reveals nothing by itself.
package covers

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"trackdeck/internal/services"
)

// maxEdge bounds both dimensions of a written cover. Player thumbnails never
// need more, and some embedded art arrives at print resolution.
const maxEdge = 600

// jpegQuality matches what the player serves; higher values just cost bytes.
const jpegQuality = 85

// Process decodes the image at source, scales it to fit maxEdge on its
// longer side, and writes it as a JPEG at dest. Images already within
// bounds are re-encoded without scaling. Existing destinations are kept.
func Process(source, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return nil
	}

	f, err := os.Open(source)
	if err != nil {
		return services.Wrap(services.ErrRender, "covers", "process",
			fmt.Sprintf("open %s", source), err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return services.Wrap(services.ErrRender, "covers", "process",
			fmt.Sprintf("decode %s", source), err)
	}

	scaled := scale(src)

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return services.Wrap(services.ErrRender, "covers", "process",
			fmt.Sprintf("create %s", tmp), err)
	}
	if err := jpeg.Encode(out, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		out.Close()
		os.Remove(tmp)
		return services.Wrap(services.ErrRender, "covers", "process",
			fmt.Sprintf("encode %s", dest), err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return services.Wrap(services.ErrRender, "covers", "process",
			fmt.Sprintf("close %s", tmp), err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return services.Wrap(services.ErrRender, "covers", "process",
			fmt.Sprintf("move %s into place", dest), err)
	}
	return nil
}

// scale fits img into a maxEdge square, preserving aspect ratio.
func scale(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxEdge && height <= maxEdge {
		return img
	}

	var newWidth, newHeight int
	if width >= height {
		newWidth = maxEdge
		newHeight = height * maxEdge / width
	} else {
		newHeight = maxEdge
		newWidth = width * maxEdge / height
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Path returns the on-disk location for a cover keyed by identifier.
func Path(dir, identifier string) string {
	return filepath.Join(dir, identifier+".jpg")
}
