package overlay

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestRender_IdentityKeepsImage(t *testing.T) {
	src := solidImage(20, 10, color.NRGBA{R: 255, A: 255})

	out := Render(src, Identity())

	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(10, 5))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(0, 0))
}

func TestRender_ShrinkLeavesTransparentBorder(t *testing.T) {
	src := solidImage(40, 40, color.NRGBA{G: 255, A: 255})

	out := Render(src, Transform{Scale: 0.5})

	assert.Equal(t, uint8(0), out.NRGBAAt(2, 2).A)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, out.NRGBAAt(20, 20))
}

func TestRender_TranslateMovesImage(t *testing.T) {
	src := solidImage(40, 40, color.NRGBA{B: 255, A: 255})

	out := Render(src, Transform{Scale: 1, TranslateX: 30})

	assert.Equal(t, uint8(0), out.NRGBAAt(10, 20).A)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, out.NRGBAAt(35, 20))
}

func TestRender_TinyScaleIsEmptyCanvas(t *testing.T) {
	src := solidImage(4, 4, color.White)

	out := Render(src, Transform{Scale: 0.1})

	assert.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, uint8(0), out.NRGBAAt(2, 2).A)
}

func TestRenderEncoded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidImage(16, 16, color.White)))

	data, err := RenderEncoded(buf.Bytes(), Transform{Scale: 1, Rotation: 45}, imaging.PNG)
	require.NoError(t, err)

	out, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 16, out.Bounds().Dx())
	assert.Equal(t, 16, out.Bounds().Dy())

	_, err = RenderEncoded([]byte("not an image"), Identity(), imaging.PNG)
	assert.Error(t, err)
}
