package media

import (
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp" // webp decode support
)

// Optimizer re-encodes stored images for web display: bounded dimensions,
// lossy quality, in place. Callers treat failure as non-fatal and keep the
// original bytes.
type Optimizer struct {
	maxDimension int
	jpegQuality  int
}

func NewOptimizer(maxDimension, jpegQuality int) *Optimizer {
	return &Optimizer{maxDimension: maxDimension, jpegQuality: jpegQuality}
}

// Optimize decodes the file at path, downscales it to fit within the
// configured bounding box when larger (aspect ratio preserved, Lanczos
// resampling), and writes it back re-encoded. Decoding normalizes palette
// and alpha sources; JPEG output is flattened to three channels on encode.
func (o *Optimizer) Optimize(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > o.maxDimension || bounds.Dy() > o.maxDimension {
		img = imaging.Fit(img, o.maxDimension, o.maxDimension, imaging.Lanczos)
	}

	err = imaging.Save(img, path,
		imaging.JPEGQuality(o.jpegQuality),
		imaging.PNGCompressionLevel(png.BestCompression),
	)
	if err != nil {
		return fmt.Errorf("failed to re-encode image: %w", err)
	}
	return nil
}
