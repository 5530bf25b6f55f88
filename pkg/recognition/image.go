package recognition

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tubesort/pkg/errors"
)

var boundsColor = color.RGBA{R: 0xFF, A: 0xFF}

// IsImagePath reports whether path has an image extension we can decode
func IsImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	default:
		return false
	}
}

// LoadImage decodes a PNG, JPEG or GIF file
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "screenshot %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open screenshot %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrImageDecode, "cannot decode screenshot %s", path).
			WithDetail("path", path)
	}
	return img, nil
}

// Annotate returns a copy of img with each detected box outlined in red and
// its anchor pixel marked.
func Annotate(img image.Image, detections []Detection) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	for _, d := range detections {
		r := d.Bounds
		for x := r.Min.X; x < r.Max.X; x++ {
			setIn(out, x, r.Min.Y)
			setIn(out, x, r.Max.Y)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			setIn(out, r.Min.X, y)
			setIn(out, r.Max.X, y)
		}
		setIn(out, d.Anchor.X, d.Anchor.Y)
	}
	return out
}

func setIn(img *image.RGBA, x, y int) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, boundsColor)
	}
}

// SavePNG writes img to path
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot encode %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return nil
}
