// Package transcode re-encodes source images as size-bounded JPEGs for the
// output archive. Orientation is normalized from EXIF metadata, images are
// scaled to fit within the configured maximum side without upscaling, and
// the result is encoded at the configured JPEG quality.
package transcode

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	// Register the WebP decoder; source archives mix .webp in with JPEG
	// and PNG uploads.
	_ "golang.org/x/image/webp"

	"artpack/internal/config"
)

// Encoder converts arbitrary source images into bounded JPEGs.
type Encoder struct {
	MaxSide int
	Quality int
}

// NewEncoder builds an encoder from the output configuration.
func NewEncoder(cfg *config.Config) Encoder {
	return Encoder{MaxSide: cfg.Output.MaxImageSide, Quality: cfg.Output.JPEGQuality}
}

// EncodeJPEG reads the image at path, applies EXIF orientation, scales it
// to fit within MaxSide on both axes (never upscaling), and returns JPEG
// bytes at the configured quality.
func (e Encoder) EncodeJPEG(path string) ([]byte, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > e.MaxSide || bounds.Dy() > e.MaxSide {
		img = imaging.Fit(img, e.MaxSide, e.MaxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(e.Quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg for %q: %w", path, err)
	}
	return buf.Bytes(), nil
}
