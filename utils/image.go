package utils

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// ConvertPngToJpeg re-encodes an image as JPEG at the given quality (1-100).
func ConvertPngToJpeg(pngBytes []byte, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality must be between 1 and 100, got %d", quality)
	}

	img, err := imaging.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var jpegBytes bytes.Buffer
	if err := imaging.Encode(&jpegBytes, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return jpegBytes.Bytes(), nil
}
