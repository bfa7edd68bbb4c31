// Package imaging turns uploaded bytes into rasters the codec can address
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"stegochat-backend/models"
	"stegochat-backend/pngparser"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const DefaultMaxPixels = 40_000_000

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrImageTooLarge     = errors.New("image exceeds pixel limit")
)

// Format is a sniffed upload type.
type Format struct {
	Name  string
	MIME  string
	Lossy bool
}

var supportedFormats = map[string]Format{
	"image/png":  {Name: "png", MIME: "image/png"},
	"image/gif":  {Name: "gif", MIME: "image/gif"},
	"image/bmp":  {Name: "bmp", MIME: "image/bmp"},
	"image/tiff": {Name: "tiff", MIME: "image/tiff"},
	"image/webp": {Name: "webp", MIME: "image/webp"},
	"image/jpeg": {Name: "jpeg", MIME: "image/jpeg", Lossy: true},
}

type ImageDecoder struct {
	maxPixels int
}

func NewImageDecoder(maxPixels int) *ImageDecoder {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &ImageDecoder{maxPixels: maxPixels}
}

// DetectFormat sniffs data and reports whether it is a raster type the decoder handles.
func DetectFormat(data []byte) (Format, error) {
	mtype := mimetype.Detect(data)
	for m := mtype; m != nil; m = m.Parent() {
		if f, ok := supportedFormats[m.String()]; ok {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mtype.String())
}

// DecodeImage decodes data into a private NRGBA copy. Dimensions are
// checked against the pixel limit before the pixel data is inflated.
func (d *ImageDecoder) DecodeImage(data []byte) (*image.NRGBA, *models.ImageMetadata, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return nil, nil, err
	}

	if format.Name == "png" {
		if _, err := pngparser.ParsePNG(data); err != nil {
			return nil, nil, fmt.Errorf("failed to parse PNG: %w", err)
		}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, nil, fmt.Errorf("failed to read image header: empty image %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height > d.maxPixels {
		return nil, nil, fmt.Errorf("%w: %dx%d, limit %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, d.maxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", format.Name, err)
	}

	img := ToNRGBA(src)
	metadata := &models.ImageMetadata{
		Format:   format.Name,
		MIME:     format.MIME,
		Width:    img.Rect.Dx(),
		Height:   img.Rect.Dy(),
		Lossy:    format.Lossy,
		HasAlpha: !img.Opaque(),
		Bytes:    len(data),
	}

	return img, metadata, nil
}

// ToNRGBA returns a fresh NRGBA copy of img anchored at the origin, so the
// caller's image is never aliased.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	// Going through color.Color premultiplies, which would disturb the low
	// bits of translucent pixels. Copy NRGBA rows verbatim instead.
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()*4], src.Pix[i:i+b.Dx()*4])
		}
		return dst
	}

	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

// EncodePNG serialises img losslessly. PNG is the only output format since
// any lossy re-encode destroys the payload.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
