package pngparser

import "stegochat-backend/models"

type ChunkStats struct {
	IDATChunks      int
	IDATBytes       int
	AncillaryChunks []string
	CorruptChunks   []string
	HasTransparency bool
}

// AnalyzeChunks summarises the chunk list of a parsed file.
func AnalyzeChunks(file *PNGFile) *ChunkStats {
	stats := &ChunkStats{}
	if file == nil {
		return stats
	}

	if file.Header != nil {
		switch file.Header.ColorType {
		case ColorGrayscaleAlpha, ColorTruecolorAlpha:
			stats.HasTransparency = true
		}
	}

	for _, c := range file.Chunks {
		if !c.CRCValid {
			stats.CorruptChunks = append(stats.CorruptChunks, c.Type)
		}
		switch {
		case c.Type == "IDAT":
			stats.IDATChunks++
			stats.IDATBytes += len(c.Data)
		case c.Type == "tRNS":
			stats.HasTransparency = true
			stats.AncillaryChunks = append(stats.AncillaryChunks, c.Type)
		case !c.Critical():
			stats.AncillaryChunks = append(stats.AncillaryChunks, c.Type)
		}
	}

	return stats
}

// Summary flattens a parsed file into its JSON form.
func Summary(file *PNGFile) *models.PNGSummary {
	if file == nil || file.Header == nil {
		return nil
	}
	stats := AnalyzeChunks(file)
	return &models.PNGSummary{
		BitDepth:        file.Header.BitDepth,
		ColorType:       file.Header.ColorType.String(),
		Interlaced:      file.Header.Interlace == 1,
		IDATChunks:      stats.IDATChunks,
		IDATBytes:       stats.IDATBytes,
		AncillaryChunks: stats.AncillaryChunks,
		CorruptChunks:   stats.CorruptChunks,
		HasTransparency: stats.HasTransparency,
	}
}
