package pngparser

// ColorType is the IHDR colour type byte
type ColorType byte

const (
	ColorGrayscale      ColorType = 0
	ColorTruecolor      ColorType = 2
	ColorIndexed        ColorType = 3
	ColorGrayscaleAlpha ColorType = 4
	ColorTruecolorAlpha ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case ColorGrayscale:
		return "grayscale"
	case ColorTruecolor:
		return "truecolor"
	case ColorIndexed:
		return "indexed"
	case ColorGrayscaleAlpha:
		return "grayscale-alpha"
	case ColorTruecolorAlpha:
		return "truecolor-alpha"
	default:
		return "unknown"
	}
}

// IHDR represents the PNG image header chunk
type IHDR struct {
	Width       int
	Height      int
	BitDepth    int
	ColorType   ColorType
	Compression byte
	Filter      byte
	Interlace   byte
}

// Chunk represents one length-type-data-crc record
type Chunk struct {
	Type     string
	Data     []byte // Chunk payload, copied out of the input
	CRC      uint32
	CRCValid bool
}

// Critical reports whether decoders must understand the chunk (uppercase first letter)
func (c *Chunk) Critical() bool {
	return len(c.Type) == 4 && c.Type[0]&0x20 == 0
}

// PNGFile represents the structure of a PNG file
type PNGFile struct {
	Header *IHDR
	Chunks []*Chunk
}
