package renderer

import "image"

// Band is a contiguous run of full-width scanlines rendered by one worker
type Band struct {
	ID     int             // Position in top-to-bottom order
	Bounds image.Rectangle // Pixel bounds, Min.Y inclusive to Max.Y exclusive
}

// NewBandGrid splits height scanlines into numBands contiguous bands in
// top-to-bottom order. Every band gets height/numBands rows and the
// remainder is folded into the last band. numBands is clamped to [1, height].
func NewBandGrid(width, height, numBands int) []*Band {
	if height <= 0 {
		return nil
	}
	numBands = max(1, min(numBands, height))
	rowsPerBand := height / numBands

	bands := make([]*Band, numBands)
	for i := range bands {
		y0 := i * rowsPerBand
		y1 := y0 + rowsPerBand
		if i == numBands-1 {
			y1 = height
		}
		bands[i] = &Band{
			ID:     i,
			Bounds: image.Rect(0, y0, width, y1),
		}
	}
	return bands
}

// Rows returns the number of scanlines in the band
func (b *Band) Rows() int {
	return b.Bounds.Dy()
}
