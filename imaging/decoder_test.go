package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func patternNRGBA(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = byte(i*29 + 3)
	}
	return img
}

func TestDecodePNGRoundTripIsExact(t *testing.T) {
	src := patternNRGBA(17, 9) // alpha varies, so this also covers translucent pixels
	data, err := EncodePNG(src)
	require.NoError(t, err)

	img, meta, err := NewImageDecoder(0).DecodeImage(data)
	require.NoError(t, err)

	assert.Equal(t, src.Pix, img.Pix)
	assert.Equal(t, "png", meta.Format)
	assert.Equal(t, "image/png", meta.MIME)
	assert.Equal(t, 17, meta.Width)
	assert.Equal(t, 9, meta.Height)
	assert.False(t, meta.Lossy)
	assert.True(t, meta.HasAlpha)
	assert.Equal(t, len(data), meta.Bytes)
}

func TestDecodeBMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 6, 5))
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}
	src.Set(2, 3, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	img, meta, err := NewImageDecoder(0).DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "bmp", meta.Format)
	assert.False(t, meta.HasAlpha)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, img.NRGBAAt(2, 3))
}

func TestDecodeJPEGIsFlaggedLossy(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8)), nil))

	_, meta, err := NewImageDecoder(0).DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", meta.Format)
	assert.True(t, meta.Lossy)
}

func TestDecodeRejects(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		_, _, err := NewImageDecoder(0).DecodeImage([]byte("just some text, not an image"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("too many pixels", func(t *testing.T) {
		data, err := EncodePNG(patternNRGBA(10, 10))
		require.NoError(t, err)

		_, _, err = NewImageDecoder(99).DecodeImage(data)
		assert.ErrorIs(t, err, ErrImageTooLarge)

		_, _, err = NewImageDecoder(100).DecodeImage(data)
		assert.NoError(t, err)
	})

	t.Run("corrupt png", func(t *testing.T) {
		data, err := EncodePNG(patternNRGBA(4, 4))
		require.NoError(t, err)
		data[20] ^= 0xFF

		_, _, err = NewImageDecoder(0).DecodeImage(data)
		assert.Error(t, err)
	})
}

func TestToNRGBACopies(t *testing.T) {
	src := patternNRGBA(5, 5)
	sub := src.SubImage(image.Rect(1, 2, 4, 5)).(*image.NRGBA)

	dst := ToNRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 3, 3), dst.Rect)
	assert.Equal(t, src.NRGBAAt(1, 2), dst.NRGBAAt(0, 0))
	assert.Equal(t, src.NRGBAAt(3, 4), dst.NRGBAAt(2, 2))

	dst.Pix[0] ^= 0xFF
	assert.NotEqual(t, src.NRGBAAt(1, 2), dst.NRGBAAt(0, 0))

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 77})
	assert.Equal(t, color.NRGBA{R: 77, G: 77, B: 77, A: 255}, ToNRGBA(gray).NRGBAAt(1, 1))
}

func TestDetectFormat(t *testing.T) {
	data, err := EncodePNG(patternNRGBA(2, 2))
	require.NoError(t, err)

	f, err := DetectFormat(data)
	require.NoError(t, err)
	assert.Equal(t, Format{Name: "png", MIME: "image/png"}, f)

	_, err = DetectFormat([]byte("%PDF-1.4"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
