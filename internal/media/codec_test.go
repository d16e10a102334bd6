package media

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	data, err := Encode(img, "png")
	require.NoError(t, err)
	return data
}

func TestDecodeRecognizedFormat(t *testing.T) {
	img, format, err := Decode(testImage(t, 40, 20))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestResizeToWidthPreservesAspect(t *testing.T) {
	img, _, err := Decode(testImage(t, 2000, 1000))
	require.NoError(t, err)

	resized := ResizeToWidth(img, 1200)
	assert.Equal(t, 1200, resized.Bounds().Dx())
	assert.Equal(t, 600, resized.Bounds().Dy())
}

func TestResizeToWidthNoUpscale(t *testing.T) {
	img, _, err := Decode(testImage(t, 800, 400))
	require.NoError(t, err)

	resized := ResizeToWidth(img, 1200)
	assert.Equal(t, 800, resized.Bounds().Dx())
	assert.Equal(t, 400, resized.Bounds().Dy())
}

func TestSquareThumbnail(t *testing.T) {
	img, _, err := Decode(testImage(t, 640, 480))
	require.NoError(t, err)

	thumb := SquareThumbnail(img, 256)
	assert.Equal(t, 256, thumb.Bounds().Dx())
	assert.Equal(t, 256, thumb.Bounds().Dy())
}

func TestRotateSwapsDimensions(t *testing.T) {
	img, _, err := Decode(testImage(t, 300, 100))
	require.NoError(t, err)

	rotated, err := Rotate(img, 90)
	require.NoError(t, err)
	assert.Equal(t, 100, rotated.Bounds().Dx())
	assert.Equal(t, 300, rotated.Bounds().Dy())

	_, err = Rotate(img, 45)
	assert.ErrorIs(t, err, ErrInvalidAngle)
}

func TestFlipKeepsDimensions(t *testing.T) {
	img, _, err := Decode(testImage(t, 300, 100))
	require.NoError(t, err)

	flipped, err := Flip(img, "horizontal")
	require.NoError(t, err)
	assert.Equal(t, 300, flipped.Bounds().Dx())
	assert.Equal(t, 100, flipped.Bounds().Dy())

	_, err = Flip(img, "diagonal")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestFormatConversionRoundtrip(t *testing.T) {
	img, _, err := Decode(testImage(t, 50, 50))
	require.NoError(t, err)

	data, err := Encode(img, "jpeg")
	require.NoError(t, err)

	_, format, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestNormalizeFormat(t *testing.T) {
	got, err := NormalizeFormat("jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", got)

	_, err = NormalizeFormat("tiff")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
