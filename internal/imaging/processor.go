package imaging

import (
	"bytes"
	"fmt"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Processor compresses uploads: decode, bound the longest edge, encode WebP.
// Runs synchronously within the request.
type Processor struct {
	maxEdge int
	quality float32
}

// NewProcessor builds a processor with resize and quality bounds.
func NewProcessor(maxEdge int, quality float32) *Processor {
	if maxEdge <= 0 {
		maxEdge = 1600
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Processor{maxEdge: maxEdge, quality: quality}
}

// Compress decodes the input (JPEG, PNG, GIF, ...), downscales so neither
// edge exceeds the configured maximum, and re-encodes as WebP.
func (p *Processor) Compress(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.maxEdge || bounds.Dy() > p.maxEdge {
		img = imaging.Fit(img, p.maxEdge, p.maxEdge, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}
