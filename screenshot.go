package evergreen

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ShotInfo is the scene state written next to every screenshot, enough to
// reproduce the frame: the same seed and camera give the same layout and
// view.
type ShotInfo struct {
	Label     string  `json:"label"`
	Frame     int     `json:"frame"`
	Elapsed   float64 `json:"elapsed"`
	Seed      uint64  `json:"seed"`
	Azimuth   float64 `json:"azimuth"`
	Polar     float64 `json:"polar"`
	Distance  float64 `json:"distance"`
	Rotation  float64 `json:"rotation"`
	Ornaments int     `json:"ornaments"`
	Confetti  int     `json:"confetti"`
}

// Screenshot queues a capture of the frame being drawn. Each capture writes
// <timestamp>_f<frame>_<label>.png and a matching .json ShotInfo to
// ScreenshotDir.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// shotInfo snapshots the scene for label.
func (s *Scene) shotInfo(label string) ShotInfo {
	return ShotInfo{
		Label:     label,
		Frame:     s.frame,
		Elapsed:   s.elapsed,
		Seed:      s.cfg.Seed,
		Azimuth:   s.camera.Azimuth,
		Polar:     s.camera.Polar,
		Distance:  s.camera.Distance,
		Rotation:  s.tree.Rotation,
		Ornaments: len(s.tree.Ornaments),
		Confetti:  s.confetti.AliveCount(),
	}
}

// flushScreenshots writes every queued capture of screen. Failures are
// logged and never stop the frame. Called at the end of Scene.Draw.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[evergreen] screenshot: mkdir %s: %v\n", s.ScreenshotDir, err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		base := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%s_f%05d_%s", stamp, s.frame, sanitizeLabel(label)))
		if err := writeShot(base, img, s.shotInfo(label)); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[evergreen] screenshot: %v\n", err)
		}
	}
}

// writeShot writes base.png and base.json.
func writeShot(base string, img image.Image, info ShotInfo) error {
	if err := writePNG(base+".png", img); err != nil {
		return err
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s.json: %w", base, err)
	}
	if err := os.WriteFile(base+".json", data, 0o644); err != nil {
		return fmt.Errorf("write %s.json: %w", base, err)
	}
	return nil
}

// unpremultiply converts Ebitengine's premultiplied pixels to an NRGBA
// image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	for i := 0; i+3 < n; i += 4 {
		a := pixels[i+3]
		img.Pix[i+3] = a
		for c := 0; c < 3; c++ {
			v := pixels[i+c]
			if a > 0 && a < 255 {
				v = uint8(min(int(v)*255/int(a), 255))
			}
			img.Pix[i+c] = v
		}
	}
	return img
}

var shotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := shotEncoder.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing anything else
// with '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r < 128 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, label)
}
