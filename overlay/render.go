package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Render draws src under transform t onto a transparent canvas the size of
// src. Scaling and rotation happen about the image center; positive rotation
// is clockwise on screen.
func Render(src image.Image, t Transform) *image.NRGBA {
	bounds := src.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.Transparent)

	w := int(math.Round(float64(bounds.Dx()) * t.Scale))
	h := int(math.Round(float64(bounds.Dy()) * t.Scale))
	if w < 1 || h < 1 {
		return canvas
	}

	img := imaging.Resize(src, w, h, imaging.Lanczos)
	if t.Rotation != 0 {
		// imaging rotates counter-clockwise
		img = imaging.Rotate(img, -t.Rotation, color.Transparent)
	}

	x := (bounds.Dx()-img.Bounds().Dx())/2 + int(math.Round(t.TranslateX))
	y := (bounds.Dy()-img.Bounds().Dy())/2 + int(math.Round(t.TranslateY))
	return imaging.Overlay(canvas, img, image.Pt(x, y), 1.0)
}

// RenderEncoded decodes a captured image, renders it under t and encodes
// the result in the given format.
func RenderEncoded(data []byte, t Transform, format imaging.Format) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode captured image: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, Render(src, t), format); err != nil {
		return nil, fmt.Errorf("failed to encode rendered image: %w", err)
	}
	return buf.Bytes(), nil
}
