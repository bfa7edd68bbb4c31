// Package stego to implement LSB text embedding in images
package stego

import (
	"math"
	"unicode/utf8"

	"stegochat-backend/models"
)

// HeaderBits is the width of the length prefix. The prefix stores the
// message length in bits, not bytes; existing images depend on that, so a
// change needs a versioned format.
const HeaderBits = 32

// Capacity describes how many bits an image can carry.
type Capacity struct {
	TotalBits       uint64
	HeaderBits      uint64
	PayloadBits     uint64
	MaxMessageBytes uint64
}

// LSBSteganography embeds text in bit 0 of the blue channel, one bit per
// pixel in raster order. It keeps no per-call state and may be shared
// between goroutines as long as each works on its own image.
type LSBSteganography struct {
	config *models.StegoConfig
}

func NewLSBSteganography(config *models.StegoConfig) *LSBSteganography {
	if config == nil {
		config = &models.StegoConfig{}
	}
	return &LSBSteganography{config: config}
}

// CalculateCapacity reports the bit budget of img.
func CalculateCapacity(img PixelAccess) (Capacity, error) {
	total, err := validateImage(img)
	if err != nil {
		return Capacity{}, err
	}
	c := Capacity{TotalBits: total, HeaderBits: HeaderBits}
	if total > HeaderBits {
		c.PayloadBits = total - HeaderBits
	}
	c.MaxMessageBytes = c.PayloadBits / 8
	return c, nil
}

// Embed writes the length header and message into img in place. Nothing
// is written if the message does not fit.
func (lsb *LSBSteganography) Embed(img PixelAccess, message []byte) error {
	total, err := validateImage(img)
	if err != nil {
		return err
	}

	bitLength := uint64(len(message)) * 8
	required := HeaderBits + bitLength
	if bitLength > math.MaxUint32 || required > total {
		return &CapacityError{Required: required, Available: total}
	}

	bits := uintToBits(bitLength, HeaderBits)
	bits = append(bits, bytesToBits(message)...)

	width := img.Width()
	for i, bit := range bits {
		x, y := i%width, i/width
		b := img.Channel(x, y, CarrierChannel)
		img.SetChannel(x, y, CarrierChannel, (b&0xFE)|bit)
	}

	return nil
}

// Extract reads a message previously written by Embed. There is no magic
// number or checksum, so an image without a payload yields whatever its
// low bits happen to spell, usually a bounds or encoding error.
func (lsb *LSBSteganography) Extract(img PixelAccess) (string, error) {
	total, err := validateImage(img)
	if err != nil {
		return "", err
	}
	if total < HeaderBits {
		return "", &BoundsError{Declared: HeaderBits, Available: total}
	}

	width := img.Width()
	header := make([]byte, HeaderBits)
	for i := range header {
		header[i] = img.Channel(i%width, i/width, CarrierChannel) & 1
	}
	bitLength := bitsToUint(header)

	available := total - HeaderBits
	if bitLength > available {
		if !lsb.config.AllowTruncation {
			return "", &BoundsError{Declared: bitLength, Available: available}
		}
		bitLength = available
	}

	// drop a trailing partial byte
	bitLength -= bitLength % 8

	bits := make([]byte, 0, bitLength)
	height := img.Height()
	for i := uint64(0); i < bitLength; i++ {
		idx := HeaderBits + i
		x, y := int(idx%uint64(width)), int(idx/uint64(width))
		if y >= height {
			break
		}
		bits = append(bits, img.Channel(x, y, CarrierChannel)&1)
	}

	message, err := bitsToBytes(bits)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(message) {
		return "", ErrInvalidEncoding
	}

	return string(message), nil
}

func validateImage(img PixelAccess) (uint64, error) {
	if img == nil {
		return 0, ErrInvalidImage
	}
	w, h := img.Width(), img.Height()
	if w <= 0 || h <= 0 {
		return 0, ErrInvalidImage
	}
	return uint64(w) * uint64(h), nil
}
