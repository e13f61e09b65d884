package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// crop returns the rows of b from img.
func crop(img image.Image, b Band) image.Image {
	bounds := img.Bounds()
	r := image.Rect(bounds.Min.X, bounds.Min.Y+b.Y0, bounds.Max.X, bounds.Min.Y+b.Y1)
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// assemble writes one PDF page per band, each image placed at the top-left
// corner and scaled to the full page width.
func assemble(w io.Writer, img image.Image, bands []Band, p Page, title string) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: p.WidthMM, Ht: p.HeightMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("resume-composer", true)
	if title != "" {
		pdf.SetTitle(title, true)
	}

	width := img.Bounds().Dx()
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	for i, b := range bands {
		var buf bytes.Buffer
		if err := png.Encode(&buf, crop(img, b)); err != nil {
			return fmt.Errorf("encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page-%d", i+1)
		pdf.AddPage()
		pdf.RegisterImageOptionsReader(name, opt, &buf)
		pdf.ImageOptions(name, 0, 0, p.WidthMM, b.HeightMM(width, p), false, opt, 0, "")
		if pdf.Err() {
			return fmt.Errorf("place page %d: %w", i+1, pdf.Error())
		}
	}
	return pdf.Output(w)
}
