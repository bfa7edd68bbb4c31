// Package models contain needed models
package models

// EmbedResponse is returned when an embed request fails; a successful embed streams the PNG
type EmbedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExtractResponse represents the response after extraction
type ExtractResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// InspectResponse describes an uploaded image and how much text it can carry
type InspectResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message,omitempty"`
	Metadata *ImageMetadata `json:"metadata,omitempty"`
	Capacity *CapacityInfo  `json:"capacity,omitempty"`
	PNG      *PNGSummary    `json:"png,omitempty"`
}

// CapacityInfo mirrors stego.Capacity for JSON output
type CapacityInfo struct {
	TotalBits       uint64 `json:"total_bits"`
	HeaderBits      uint64 `json:"header_bits"`
	PayloadBits     uint64 `json:"payload_bits"`
	MaxMessageBytes uint64 `json:"max_message_bytes"`
}

// PNGSummary is the chunk-level view of a PNG upload
type PNGSummary struct {
	BitDepth        int      `json:"bit_depth"`
	ColorType       string   `json:"color_type"`
	Interlaced      bool     `json:"interlaced"`
	IDATChunks      int      `json:"idat_chunks"`
	IDATBytes       int      `json:"idat_bytes"`
	AncillaryChunks []string `json:"ancillary_chunks,omitempty"`
	CorruptChunks   []string `json:"corrupt_chunks,omitempty"`
	HasTransparency bool     `json:"has_transparency"`
}

// ImageMetadata represents metadata about a decoded image
type ImageMetadata struct {
	Format   string `json:"format"`
	MIME     string `json:"mime"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Lossy    bool   `json:"lossy"`
	HasAlpha bool   `json:"has_alpha"`
	Bytes    int    `json:"bytes"`
}

// StegoConfig represents configuration for steganography operations
type StegoConfig struct {
	// AllowTruncation makes Extract return whatever payload fits in the
	// image instead of failing when the header overstates it.
	AllowTruncation bool
}
