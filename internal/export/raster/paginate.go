package raster

import "math"

// Page is a physical page size in millimetres.
type Page struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

// A4 is the only page size the composer exports.
var A4 = Page{Name: "A4", WidthMM: 210, HeightMM: 297}

// Band is a horizontal strip [Y0, Y1) of the master raster that becomes one
// output page.
type Band struct {
	Y0, Y1 int
}

// Height is the band height in pixels.
func (b Band) Height() int { return b.Y1 - b.Y0 }

// HeightMM is the printed height of b when the raster width is scaled to the
// page width.
func (b Band) HeightMM(rasterWidth int, p Page) float64 {
	return float64(b.Height()) / float64(rasterWidth) * p.WidthMM
}

// Paginate slices a raster of width x height pixels into page-high bands.
// One page equals p.HeightMM * (width / p.WidthMM) raster pixels, so the
// aspect ratio is preserved; the last band may be shorter.
func Paginate(width, height int, p Page) []Band {
	if width <= 0 || height <= 0 || p.WidthMM <= 0 || p.HeightMM <= 0 {
		return nil
	}
	ratio := float64(width) / p.WidthMM
	pagePx := p.HeightMM * ratio

	var bands []Band
	for pos := 0.0; pos < float64(height); pos += pagePx {
		y0 := int(math.Round(pos))
		y1 := int(math.Round(pos + pagePx))
		if y1 > height {
			y1 = height
		}
		if y1 <= y0 {
			break
		}
		bands = append(bands, Band{Y0: y0, Y1: y1})
	}
	return bands
}
