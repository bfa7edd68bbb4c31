package stego

import "image"

// Channel selects one 8-bit component of a pixel.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
	ChannelAlpha
)

// CarrierChannel is the only channel the codec writes to.
const CarrierChannel = ChannelBlue

// PixelAccess is the raster the codec reads and writes. Coordinates are
// zero-based regardless of how the underlying image is anchored.
//
// Implementations are not expected to be safe for concurrent use. A single
// owner must hold the image for the duration of an Embed or Extract call.
type PixelAccess interface {
	Width() int
	Height() int
	Channel(x, y int, c Channel) uint8
	SetChannel(x, y int, c Channel, v uint8)
}

// NRGBAPixels adapts an *image.NRGBA to PixelAccess. Writes go straight to
// the wrapped Pix slice.
type NRGBAPixels struct {
	img *image.NRGBA
}

func NewNRGBAPixels(img *image.NRGBA) *NRGBAPixels {
	return &NRGBAPixels{img: img}
}

func (p *NRGBAPixels) Width() int {
	if p == nil || p.img == nil {
		return 0
	}
	return p.img.Rect.Dx()
}

func (p *NRGBAPixels) Height() int {
	if p == nil || p.img == nil {
		return 0
	}
	return p.img.Rect.Dy()
}

func (p *NRGBAPixels) Channel(x, y int, c Channel) uint8 {
	return p.img.Pix[p.offset(x, y)+int(c)]
}

func (p *NRGBAPixels) SetChannel(x, y int, c Channel, v uint8) {
	p.img.Pix[p.offset(x, y)+int(c)] = v
}

// Image returns the wrapped image.
func (p *NRGBAPixels) Image() *image.NRGBA {
	return p.img
}

func (p *NRGBAPixels) offset(x, y int) int {
	return p.img.PixOffset(p.img.Rect.Min.X+x, p.img.Rect.Min.Y+y)
}
