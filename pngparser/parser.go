// Package pngparser walks PNG chunk structure without inflating pixel data
package pngparser

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var (
	ErrNotPNG       = errors.New("missing PNG signature")
	ErrCorruptChunk = errors.New("chunk CRC mismatch")
	ErrMissingIHDR  = errors.New("IHDR must be the first chunk")
	ErrChunkTooLong = errors.New("chunk length exceeds remaining data")
)

// maxChunkLength is the largest length the format allows (2^31-1)
const maxChunkLength = 1<<31 - 1

// ReadChunk reads one chunk and verifies its CRC. The declared length is
// checked against r.Len() before anything is allocated for the payload.
func ReadChunk(r *bytes.Reader) (*Chunk, error) {
	head := make([]byte, 8)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(head[:4])
	if length > maxChunkLength {
		return nil, fmt.Errorf("invalid chunk length: %d", length)
	}
	chunkType := string(head[4:8])
	if int64(length)+4 > int64(r.Len()) {
		return nil, fmt.Errorf("%w: %s declares %d bytes, %d left", ErrChunkTooLong, chunkType, length, r.Len())
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("truncated %s chunk: %w", chunkType, err)
	}

	crcBytes := make([]byte, 4)
	if _, err := io.ReadFull(r, crcBytes); err != nil {
		return nil, fmt.Errorf("truncated %s chunk CRC: %w", chunkType, err)
	}
	crc := binary.BigEndian.Uint32(crcBytes)

	sum := crc32.NewIEEE()
	sum.Write(head[4:8])
	sum.Write(data)

	return &Chunk{
		Type:     chunkType,
		Data:     data,
		CRC:      crc,
		CRCValid: sum.Sum32() == crc,
	}, nil
}

func ParseIHDR(data []byte) (*IHDR, error) {
	if len(data) != 13 {
		return nil, fmt.Errorf("invalid IHDR length: %d", len(data))
	}
	h := &IHDR{
		Width:       int(binary.BigEndian.Uint32(data[0:4])),
		Height:      int(binary.BigEndian.Uint32(data[4:8])),
		BitDepth:    int(data[8]),
		ColorType:   ColorType(data[9]),
		Compression: data[10],
		Filter:      data[11],
		Interlace:   data[12],
	}
	if h.Width <= 0 || h.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", h.Width, h.Height)
	}
	return h, nil
}

// ParsePNG walks every chunk up to IEND. Critical chunks with a bad CRC
// fail the parse; ancillary ones are kept and flagged.
func ParsePNG(data []byte) (*PNGFile, error) {
	if !bytes.HasPrefix(data, Signature) {
		return nil, ErrNotPNG
	}

	r := bytes.NewReader(data[len(Signature):])
	file := &PNGFile{}

	for {
		chunk, err := ReadChunk(r)
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("missing IEND chunk")
			}
			return nil, err
		}

		if !chunk.CRCValid && chunk.Critical() {
			return nil, fmt.Errorf("%w in %s", ErrCorruptChunk, chunk.Type)
		}

		if file.Header == nil {
			if chunk.Type != "IHDR" {
				return nil, ErrMissingIHDR
			}
			h, err := ParseIHDR(chunk.Data)
			if err != nil {
				return nil, err
			}
			file.Header = h
		}

		file.Chunks = append(file.Chunks, chunk)

		if chunk.Type == "IEND" {
			break
		}
	}

	return file, nil
}
