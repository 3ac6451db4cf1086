package utils

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{uint8(x), uint8(y), 0, 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestConvertPngToJpeg(t *testing.T) {
	jpegBytes, err := ConvertPngToJpeg(encodePNG(t, 32, 24), 90)
	require.NoError(t, err)

	out, _, err := image.Decode(bytes.NewReader(jpegBytes))
	require.NoError(t, err)
	assert.Equal(t, 32, out.Bounds().Dx())
	assert.Equal(t, 24, out.Bounds().Dy())
}

func TestConvertPngToJpeg_Errors(t *testing.T) {
	_, err := ConvertPngToJpeg([]byte("not an image"), 90)
	assert.Error(t, err)

	_, err = ConvertPngToJpeg(encodePNG(t, 4, 4), 0)
	assert.Error(t, err)

	_, err = ConvertPngToJpeg(encodePNG(t, 4, 4), 101)
	assert.Error(t, err)
}
