package renderer

import (
	"image"
	"testing"
)

func TestNewBandGrid(t *testing.T) {
	tests := []struct {
		name         string
		height       int
		numBands     int
		expectedRows []int
	}{
		{"even split", 12, 4, []int{3, 3, 3, 3}},
		{"remainder to last band", 10, 4, []int{2, 2, 2, 4}},
		{"single band", 7, 1, []int{7}},
		{"more bands than rows", 3, 8, []int{1, 1, 1}},
		{"zero bands clamps to one", 5, 0, []int{5}},
		{"one row per band", 4, 4, []int{1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := NewBandGrid(16, tt.height, tt.numBands)
			if len(bands) != len(tt.expectedRows) {
				t.Fatalf("Expected %d bands, got %d", len(tt.expectedRows), len(bands))
			}

			nextRow := 0
			for i, band := range bands {
				if band.ID != i {
					t.Errorf("Band %d has ID %d", i, band.ID)
				}
				if band.Bounds.Min.Y != nextRow {
					t.Errorf("Band %d starts at row %d, want %d (bands must be gapless and ordered)", i, band.Bounds.Min.Y, nextRow)
				}
				if band.Rows() != tt.expectedRows[i] {
					t.Errorf("Band %d has %d rows, want %d", i, band.Rows(), tt.expectedRows[i])
				}
				if band.Bounds.Min.X != 0 || band.Bounds.Max.X != 16 {
					t.Errorf("Band %d does not span the full width: %v", i, band.Bounds)
				}
				nextRow = band.Bounds.Max.Y
			}
			if nextRow != tt.height {
				t.Errorf("Bands cover %d rows, want %d", nextRow, tt.height)
			}
		})
	}
}

func TestNewBandGrid_CoversEveryPixelOnce(t *testing.T) {
	width, height := 9, 31
	for numBands := 1; numBands <= height; numBands++ {
		covered := make([]int, width*height)
		for _, band := range NewBandGrid(width, height, numBands) {
			for y := band.Bounds.Min.Y; y < band.Bounds.Max.Y; y++ {
				for x := band.Bounds.Min.X; x < band.Bounds.Max.X; x++ {
					covered[y*width+x]++
				}
			}
		}
		for i, c := range covered {
			if c != 1 {
				t.Fatalf("numBands=%d: pixel %d covered %d times", numBands, i, c)
			}
		}
	}
}

func TestNewBandGrid_EmptyImage(t *testing.T) {
	if bands := NewBandGrid(10, 0, 4); len(bands) != 0 {
		t.Errorf("Expected no bands for zero height, got %d", len(bands))
	}
}

func TestBandRows(t *testing.T) {
	band := &Band{ID: 0, Bounds: image.Rect(0, 5, 10, 12)}
	if band.Rows() != 7 {
		t.Errorf("Expected 7 rows, got %d", band.Rows())
	}
}
