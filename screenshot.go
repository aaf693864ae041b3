package hexview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
)

// ScreenshotToFile writes the whole surface as a PNG file.
func (d *Display) ScreenshotToFile(path string) error {
	img := d.surface.CopyRegion(d.surface.Bounds())
	if img == nil {
		return fmt.Errorf("screenshot %s: empty surface", path)
	}
	if err := writePNG(path, img); err != nil {
		d.log.WithError(err).Error("screenshot failed")
		return fmt.Errorf("screenshot: %w", err)
	}
	d.log.WithField("path", path).Info("screenshot saved")
	return nil
}

// Screenshot writes the surface to the next free Screenshot_NNNNN.png in the
// configured directory and returns its path.
func (d *Display) Screenshot() (string, error) {
	dir := d.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}
	for {
		path := filepath.Join(dir, fmt.Sprintf("Screenshot_%05d.png", d.screenshots))
		d.screenshots++
		_, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return path, d.ScreenshotToFile(path)
		case err != nil:
			return "", fmt.Errorf("screenshot: %w", err)
		}
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
