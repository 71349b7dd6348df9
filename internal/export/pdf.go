// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
)

// pdfPageWidthMM is the fixed artifact page width (A4).
const pdfPageWidthMM = 210.0

// =============================================================================
// PDF PACKAGER
// =============================================================================

// PDFPackager embeds the raster full-bleed into a single PDF page of A4
// width; the page height follows the raster's aspect ratio.
type PDFPackager struct{}

// Package writes the artifact to path.
func (p *PDFPackager) Package(img image.Image, path string) error {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return fmt.Errorf("empty raster")
	}

	pageW := pdfPageWidthMM
	pageH := pageW * float64(bounds.Dy()) / float64(bounds.Dx())

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.AddPage()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode raster: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("manuscript", opts, &buf)
	pdf.ImageOptions("manuscript", 0, 0, pageW, pageH, false, opts, 0, "")

	if pdf.Err() {
		return fmt.Errorf("build pdf: %w", pdf.Error())
	}
	return pdf.OutputFileAndClose(path)
}
