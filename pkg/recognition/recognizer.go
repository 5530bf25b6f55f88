package recognition

import (
	"image"
	"image/color"

	"github.com/arthur-debert/tubesort/pkg/config"
	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/lucasb-eyer/go-colorful"
)

// Recognizer extracts tubes from an image. Each tube lists its units bottom
// to top.
type Recognizer interface {
	Recognize(img image.Image) ([]puzzle.Tube, error)
}

// Detection is one tube found in a screenshot
type Detection struct {
	// Bounds is the tube's box, inclusive of its right and bottom edges
	Bounds image.Rectangle
	// Anchor is the outline pixel that triggered the detection
	Anchor image.Point
	// Samples are the points whose color became a unit, bottom first
	Samples []image.Point
	Tube    puzzle.Tube
}

// ScreenshotRecognizer finds tubes by their outline color and reads units
// along each tube's centre line.
type ScreenshotRecognizer struct {
	cfg     config.RecognizerConfig
	outline uint32
}

// NewScreenshotRecognizer validates the outline color of cfg
func NewScreenshotRecognizer(cfg config.RecognizerConfig) (*ScreenshotRecognizer, error) {
	outline, err := config.ParseHexColor(cfg.OutlineColor)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid recognizer outline color")
	}
	return &ScreenshotRecognizer{cfg: cfg, outline: outline}, nil
}

// Recognize implements Recognizer
func (r *ScreenshotRecognizer) Recognize(img image.Image) ([]puzzle.Tube, error) {
	detections := r.Detect(img)
	tubes := make([]puzzle.Tube, len(detections))
	for i, d := range detections {
		tubes[i] = d.Tube
	}
	return tubes, nil
}

// Detect scans rows between scan_top and height-scan_bottom_margin, left to
// right. The first outline pixel outside every known box opens a new box at
// a fixed offset from it, so tube order follows reading order.
func (r *ScreenshotRecognizer) Detect(img image.Image) []Detection {
	logger := logging.GetLogger("recognition")
	b := img.Bounds()

	var detections []Detection
	for y := b.Min.Y + r.cfg.ScanTop; y < b.Max.Y-r.cfg.ScanBottomMargin; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if inAny(detections, x, y) {
				continue
			}
			if pack(img.At(x, y)) != r.outline {
				continue
			}

			d := Detection{
				Bounds: image.Rect(
					x-r.cfg.OffsetX,
					y-r.cfg.OffsetY,
					x-r.cfg.OffsetX+r.cfg.TubeWidth,
					y-r.cfg.OffsetY+r.cfg.TubeHeight,
				),
				Anchor: image.Pt(x, y),
			}
			r.sample(img, &d)

			logger.Debug().
				Int("tube", len(detections)).
				Int("x", d.Bounds.Min.X).
				Int("y", d.Bounds.Min.Y).
				Int("units", len(d.Tube)).
				Msg("Tube detected")
			for i, p := range d.Samples {
				logger.Trace().
					Int("tube", len(detections)).
					Int("x", p.X).
					Int("y", p.Y).
					Str("color", d.Tube[i].String()).
					Msg("Unit sampled")
			}

			detections = append(detections, d)
		}
	}
	return detections
}

// sample walks up the centre line from sample_start of the box height,
// sample_step pixels at a time, until it meets background or leaves the box.
func (r *ScreenshotRecognizer) sample(img image.Image, d *Detection) {
	x := d.Bounds.Min.X + r.cfg.TubeWidth/2
	y := d.Bounds.Min.Y + int(float64(r.cfg.TubeHeight)*r.cfg.SampleStart)
	for ; y >= d.Bounds.Min.Y; y -= r.cfg.SampleStep {
		p := image.Pt(x, y)
		if !p.In(img.Bounds()) {
			break
		}
		c := img.At(x, y)
		if IsBackground(c, r.cfg.MinValue) {
			break
		}
		d.Samples = append(d.Samples, p)
		d.Tube = append(d.Tube, puzzle.Color(pack(c)))
	}
}

// IsBackground reports whether a pixel is too dark (HSV value below
// minValue) or a pure gray, which is where a tube's contents end.
func IsBackground(c color.Color, minValue float64) bool {
	h, s, v := toColorful(c).Hsv()
	return v < minValue || (h <= 1e-7 && s <= 1e-7)
}

// inAny uses inclusive edges, matching how boxes are drawn
func inAny(detections []Detection, x, y int) bool {
	for _, d := range detections {
		if x >= d.Bounds.Min.X && x <= d.Bounds.Max.X && y >= d.Bounds.Min.Y && y <= d.Bounds.Max.Y {
			return true
		}
	}
	return false
}

func toColorful(c color.Color) colorful.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
}

// pack returns the 0xRRGGBB value of a pixel, ignoring alpha
func pack(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}
